package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"lpg-management/internal/catalogue"
	"lpg-management/internal/config"
	"lpg-management/internal/httpx"
	"lpg-management/internal/learning"
	"lpg-management/internal/logger"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	configPath string
	logMode    string

	cfg *config.Config
	log *logger.Logger
	now learning.Clock
}

func main() {
	a := &app{now: time.Now}
	if err := newRootCommand(a).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "lpgmanage",
		Short:         "Author and publish learning catalogue content",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.log != nil {
				a.log.Sync()
			}
		},
	}

	root.PersistentFlags().StringVar(&a.configPath, "config", "", "config file (yaml/json); environment variables override it")
	root.PersistentFlags().StringVar(&a.logMode, "log-mode", "", "development or production (default: LOG_MODE)")

	root.AddCommand(
		newValidateCommand(a),
		newSummaryCommand(a),
		newPushCommand(a),
		newExportCommand(a),
	)
	return root
}

func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	mode := cfg.LogMode
	if a.logMode != "" {
		mode = a.logMode
	}
	log, err := logger.New(mode)
	if err != nil {
		return fmt.Errorf("logger: %w", err)
	}
	a.cfg, a.log = cfg, log
	return nil
}

func (a *app) catalogue() *catalogue.Client {
	policy := httpx.DefaultRetryPolicy()
	policy.MaxAttempts = a.cfg.HTTPMaxAttempts
	return catalogue.New(a.cfg.CatalogueBaseURL, a.cfg.CatalogueToken, a.cfg.HTTPTimeout, policy, a.log)
}
