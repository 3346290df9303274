package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/lexcodex/featurekit/analysis"
	"github.com/lexcodex/featurekit/app/report"
	"github.com/lexcodex/featurekit/config"
)

type analyzeReport struct {
	Files   []analysis.FileStatistics `json:"files" yaml:"files"`
	Missing []string                  `json:"missing,omitempty" yaml:"missing,omitempty"`
	Totals  analysis.Totals           `json:"totals" yaml:"totals"`
}

func newAnalyzeCmd() *cobra.Command {
	var recursive bool
	var pattern string
	var format string

	cmd := &cobra.Command{
		Use:   "analyze [path...]",
		Short: "Report size, line, word and character counts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "text", "json", "yaml":
			default:
				return fmt.Errorf("unknown format %q (text, json, yaml)", format)
			}
			if pattern == "" {
				pattern = currentConfig().Analysis.Pattern
			}
			analyzer := newAnalyzer(cmd.Context())
			out := analyzeReport{Files: []analysis.FileStatistics{}}
			for _, path := range args {
				if recursive && isDir(config.ResolvePath(path, ensureWorkspace())) {
					stats, err := analyzer.Walk(path, pattern)
					if err != nil {
						return err
					}
					out.Files = append(out.Files, stats...)
					continue
				}
				stats, ok := analyzer.Analyze(path)
				if !ok {
					out.Missing = append(out.Missing, path)
					continue
				}
				out.Files = append(out.Files, stats)
			}
			out.Totals = analysis.Summarize(out.Files)
			return writeAnalyzeReport(cmd, format, out)
		},
	}
	cmd.Flags().BoolVarP(&recursive, "recursive", "r", false, "Walk directories")
	cmd.Flags().StringVar(&pattern, "pattern", "", "Glob applied to file names while walking (defaults to analysis.pattern)")
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json, yaml")
	return cmd
}

func writeAnalyzeReport(cmd *cobra.Command, format string, out analyzeReport) error {
	w := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	}
	p := report.New(w)
	for _, stats := range out.Files {
		p.FileStats(stats)
	}
	for _, path := range out.Missing {
		p.NoAnalysis(path)
	}
	if len(out.Files) > 1 {
		p.Totals(out.Totals)
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
