package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexcodex/featurekit/app/report"
	"github.com/lexcodex/featurekit/registry"
)

// newSnapshotCmd groups commands that write or read config.json.
func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Save or show the registry snapshot",
	}
	cmd.AddCommand(newSnapshotSaveCmd(), newSnapshotShowCmd())
	return cmd
}

func newSnapshotSaveCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "save",
		Short: "Write the registry snapshot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(cmd.Context(), snapshotPath(""))
			if err != nil {
				return err
			}
			path := snapshotPath(output)
			ok := reg.Save(path)
			report.New(cmd.OutOrStdout()).Saved(path, ok)
			if !ok {
				return fmt.Errorf("could not save snapshot to %s", path)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Destination (defaults to registry.snapshot_path)")
	return cmd
}

func newSnapshotShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show [file]",
		Short: "Print a saved snapshot",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			override := ""
			if len(args) == 1 {
				override = args[0]
			}
			path := snapshotPath(override)
			snap, err := registry.LoadSnapshot(path)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			fmt.Fprintf(w, "%s v%s\n", snap.Name, snap.Version)
			fmt.Fprintf(w, "Last updated: %s\n", snap.LastUpdated)
			p := report.New(w)
			p.Features(snap.Features)
			return nil
		},
	}
}
