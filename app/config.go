package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/go-authdemo/authdemo/internal/config"
)

func init() { //nolint: gochecknoinits
	configCmd.Flags().BoolVar(&dumpJSON, "json", false, "Print as JSON instead of TOML")

	rootCmd.AddCommand(configCmd)
}

var (
	dumpJSON bool

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults and the ` + config.EnvConfigJSON + `
override have been applied.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			out, err := dump(&cfg, dumpJSON)
			if err != nil {
				return err
			}

			_, err = fmt.Fprint(cmd.OutOrStdout(), out)

			return err //nolint:wrapcheck
		},
	}
)

func dump(cfg *config.Config, asJSON bool) (string, error) {
	if asJSON {
		return config.DumpConfigJSON(cfg)
	}

	return config.DumpConfig(cfg)
}
