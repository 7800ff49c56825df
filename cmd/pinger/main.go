package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/x1thexxx-lgtm/pinger/pkg/config"
	"github.com/x1thexxx-lgtm/pinger/pkg/inventory"
	"github.com/x1thexxx-lgtm/pinger/pkg/logging"
	"github.com/x1thexxx-lgtm/pinger/pkg/metrics"
	"github.com/x1thexxx-lgtm/pinger/pkg/report"
	"github.com/x1thexxx-lgtm/pinger/pkg/scheduler"
)

var (
	configPath string
	logLevel   string

	cfg    *config.Config
	logger *logging.Logger

	rootCmd = &cobra.Command{
		Use:               "pinger",
		Short:             "collect and report the identity of this machine",
		SilenceUsage:      true,
		PersistentPreRunE: initPinger,
		PersistentPostRun: func(*cobra.Command, []string) { logger.Close() },
	}
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default: merge fragments from "+strings.Join(config.DefaultDirs, ", ")+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "override logging.level (info|debug)")
	rootCmd.AddCommand(newCollectCmd(), newReportCmd(), newConfigCmd())
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func initPinger(*cobra.Command, []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.Load(configPath)
	} else {
		cfg, err = config.LoadDirs(config.DefaultDirs...)
	}
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	logger, err = logging.New(cfg.Logging.Path, logging.ParseLevel(cfg.Logging.Level), logging.Options{
		JSON: strings.EqualFold(cfg.Logging.Format, "json"),
	})
	return err
}

func newCollectCmd() *cobra.Command {
	var level string
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "collect the identity once and print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("level") {
				level = cfg.Collecting.Level
			}
			id, err := newEngine(cfg, logger).Collect(cmd.Context(), level)
			if err != nil {
				logger.Errorf("%v", err)
				return err
			}
			return writeJSON(cmd.OutOrStdout(), id.Data())
		},
	}
	cmd.Flags().StringVar(&level, "level", string(inventory.LevelMinimal), "collection level (minimal|full)")
	return cmd
}

func newReportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "collect the identity and send it to the configured collector",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reporter, err := report.New(cfg.Reporting)
			if err != nil {
				return err
			}
			if !cfg.Reporting.Enabled {
				logger.Infof("reporting disabled; identity is collected but not sent")
			}
			p := &pinger{
				level:    cfg.Collecting.Level,
				textfile: cfg.Metrics.Textfile,
				collect:  engineCollector{engine: newEngine(cfg, logger)},
				reporter: reporter,
				metrics:  metrics.New(),
				log:      logger,
			}
			if err := scheduler.New(cfg.Scheduler, p, logger).Start(cmd.Context()); err != nil {
				logger.Errorf("%v", err)
				return err
			}
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out, err := cfg.Marshal()
			if err != nil {
				return err
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), string(out))
			return err
		},
	}
}
