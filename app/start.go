package app

import (
	"github.com/spf13/cobra"

	"github.com/go-authdemo/authdemo/internal/config"
	"github.com/go-authdemo/authdemo/internal/daemon"
	"github.com/go-authdemo/authdemo/internal/logger"
)

func init() { //nolint: gochecknoinits
	rootCmd.AddCommand(startCmd)
}

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the authdemo web service",
	RunE: func(_ *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		return start(&cfg)
	},
}

func start(cfg *config.Config) error {
	if err := logger.Init(cfg.Log); err != nil {
		return err
	}

	d, err := daemon.New(cfg)
	if err != nil {
		return err
	}

	return d.Start()
}
