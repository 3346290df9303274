package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lexcodex/featurekit/config"
	"github.com/lexcodex/featurekit/framework"
	"github.com/lexcodex/featurekit/internal/logging"
)

var (
	cfgFile   string
	workspace string
	logLevel  string
	logFormat string

	globalCfg *config.Config
	telemetry framework.Telemetry
	eventSink *framework.JSONFileTelemetry
)

// Execute is the entry point for the CLI.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		cancel()
		os.Exit(1)
	}
}

// NewRootCmd wires the cobra tree.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "featurekit",
		Short:         "Feature registry, sequence and file statistics toolkit",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := closeEventSink(); err != nil {
				return err
			}
			ws := ensureWorkspace()
			if cfgFile == "" {
				cfgFile = config.DefaultPath(ws)
			} else if abs, err := filepath.Abs(cfgFile); err == nil {
				cfgFile = abs
			}
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return fmt.Errorf("load config %s: %w", cfgFile, err)
			}
			cfg.ApplyEnv(nil)
			if logLevel != "" {
				cfg.Logging.Level = logLevel
			}
			if logFormat != "" {
				cfg.Logging.Format = logFormat
			}
			globalCfg = cfg
			logger := logging.New(cfg.Logging.Level, cfg.Logging.Format, cmd.ErrOrStderr())
			sinks := []framework.Telemetry{framework.LoggerTelemetry{Logger: logger}}
			if cfg.Logging.EventsFile != "" {
				sink, err := framework.NewJSONFileTelemetry(config.ResolvePath(cfg.Logging.EventsFile, ws))
				if err != nil {
					return err
				}
				eventSink = sink
				sinks = append(sinks, sink)
			}
			telemetry = framework.MultiplexTelemetry{Sinks: sinks}
			cmd.SetContext(logging.WithLogger(cmd.Context(), logger))
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return closeEventSink()
		},
	}
	root.PersistentFlags().StringVar(&workspace, "workspace", "", "Workspace directory")
	root.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to featurekit config file")
	root.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&logFormat, "log-format", "", "Log format (text, json)")

	root.AddCommand(
		newDemoCmd(),
		newInfoCmd(),
		newFeaturesCmd(),
		newFibCmd(),
		newAnalyzeCmd(),
		newSnapshotCmd(),
		newConfigCmd(),
	)
	return root
}

func closeEventSink() error {
	if eventSink == nil {
		return nil
	}
	err := eventSink.Close()
	eventSink = nil
	return err
}
