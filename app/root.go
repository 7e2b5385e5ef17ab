// Package app implements the main application commands.
package app

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/go-authdemo/authdemo/internal/config"
)

const (
	envPrefix = "AUTHDEMO"

	flagConfig = "config"
	flagDev    = "dev"
)

var rootCmd = &cobra.Command{
	Use:   "authdemo",
	Short: "authdemo is a small web application with local username/password login",
	Long: `authdemo is a small web application with local username/password login.
Users sign up, log in and out, and only logged in users may see the secret page.`,
	Args: cobra.OnlyValidArgs,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().String(flagConfig, config.DefaultPath, "Directory holding main.toml")
	rootCmd.PersistentFlags().Bool(flagDev, false, "Enable dev mode")

	_ = viper.BindPFlag(flagConfig, rootCmd.PersistentFlags().Lookup(flagConfig))
	_ = viper.BindPFlag(flagDev, rootCmd.PersistentFlags().Lookup(flagDev))

	// AUTHDEMO_CONFIG and AUTHDEMO_DEV
	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads the config selected by flag or environment.
func loadConfig() (config.Config, error) {
	path := viper.GetString(flagConfig)
	if path != "" && !strings.HasSuffix(path, "/") {
		path += "/"
	}

	cfg, err := config.ReadConfig(path)
	if err != nil {
		return cfg, err
	}

	if viper.GetBool(flagDev) {
		cfg.DevMode = true
	}

	return cfg, nil
}
