package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexcodex/featurekit/app/report"
)

// newInfoCmd prints the registry identity and features.
func newInfoCmd() *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show registry information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(cmd.Context(), snapshotPath(""))
			if err != nil {
				return err
			}
			info := reg.Info()
			if asJSON {
				data, err := json.MarshalIndent(info, "", "  ")
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(data))
				return nil
			}
			p := report.New(cmd.OutOrStdout())
			p.Info(info)
			p.Features(info.Features)
			return nil
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print as JSON")
	return cmd
}

// newFeaturesCmd wires the `features` command group.
func newFeaturesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "features",
		Short: "List or add registry features",
	}
	cmd.AddCommand(newFeaturesListCmd(), newFeaturesAddCmd())
	return cmd
}

func newFeaturesListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List features in insertion order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(cmd.Context(), snapshotPath(""))
			if err != nil {
				return err
			}
			for i, f := range reg.Features() {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, f)
			}
			return nil
		},
	}
}

// newFeaturesAddCmd adds features and, by default, persists the snapshot.
func newFeaturesAddCmd() *cobra.Command {
	var save bool
	cmd := &cobra.Command{
		Use:   "add [feature...]",
		Short: "Add one or more features",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := snapshotPath("")
			reg, err := loadRegistry(cmd.Context(), path)
			if err != nil {
				return err
			}
			p := report.New(cmd.OutOrStdout())
			for _, feature := range args {
				p.AddResult(feature, reg.AddFeature(feature))
			}
			if !save {
				return nil
			}
			if !reg.Save(path) {
				return fmt.Errorf("could not save snapshot to %s", path)
			}
			p.Saved(path, true)
			return nil
		},
	}
	cmd.Flags().BoolVar(&save, "save", true, "Persist the snapshot after adding")
	return cmd
}
