package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexcodex/featurekit/app/report"
	"github.com/lexcodex/featurekit/config"
	"github.com/lexcodex/featurekit/sequence"
)

// newDemoCmd runs the full walkthrough: info, features, sequence, analysis
// and snapshot save.
func newDemoCmd() *cobra.Command {
	var target string
	var count int
	var output string

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Exercise the registry, sequence generator and analyzer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := currentConfig()
			p := report.New(cmd.OutOrStdout())

			reg, err := newRegistry(cmd.Context())
			if err != nil {
				return err
			}
			info := reg.Info()
			p.Header(fmt.Sprintf("featurekit demo for %s", info.Name))
			p.Info(info)
			p.Features(info.Features)

			if !cmd.Flags().Changed("count") {
				count = cfg.Sequence.Length
			}
			seq, err := sequence.Fibonacci(count)
			switch {
			case errors.Is(err, sequence.ErrOverflow):
				p.Sequence(count, sequence.Format(sequence.FibonacciBig(count)))
			case err != nil:
				return err
			default:
				p.Sequence(count, sequence.Format(seq))
			}

			if target == "" {
				target = cfg.Analysis.Target
			}
			if target == "" {
				target = cfgFile
			}
			if stats, ok := newAnalyzer(cmd.Context()).Analyze(target); ok {
				p.FileStats(stats)
			} else {
				p.Section("File Analysis:")
				p.NoAnalysis(target)
			}

			path := snapshotPath(output)
			p.Section("Snapshot:")
			p.Saved(path, reg.Save(path))
			p.Done("Demo completed.")
			return nil
		},
	}
	cmd.Flags().StringVar(&target, "target", "", "File to analyze (defaults to analysis.target, then the config file)")
	cmd.Flags().IntVar(&count, "count", config.DefaultSequenceLength, "Number of Fibonacci terms to print")
	cmd.Flags().StringVar(&output, "output", "", "Snapshot path (defaults to registry.snapshot_path)")
	return cmd
}
