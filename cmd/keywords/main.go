// Package main is the entry point for the keywords CLI, a headless client of the
// keyword source adapter and the analysis view.
package main

import (
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"keywordlab/internal/config"
	"keywordlab/internal/logger"
)

// rootCmd is the base command for the keywords CLI.
var rootCmd = &cobra.Command{
	Use:   "keywords",
	Short: "Explore keyword ideas from the command line",
	Long: `keywords queries the keyword source adapter and runs the analysis view
without a browser. Provider selection, timeout and fallback keyword come from
the keyword source config file and SOURCE_* environment variables; flags
override both.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, _ := cmd.Flags().GetString("log-level")
		logger.SetLogger(logger.New(logger.Config{
			Level:  level,
			Format: "console",
			Output: "stderr",
		}))
	},
}

func init() {
	rootCmd.PersistentFlags().String("config", "keywordsource.yaml", "keyword source config file")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")
}

// loadSourceConfig reads the source config, letting the policy flag win when set.
func loadSourceConfig(cmd *cobra.Command) (*config.SourceConfig, error) {
	v := viper.New()
	if f := cmd.Flags().Lookup("policy"); f != nil && f.Changed && f.Value.String() != "" {
		if err := v.BindPFlag("policy", f); err != nil {
			return nil, err
		}
	}
	path, _ := cmd.Flags().GetString("config")
	return config.LoadSourceConfigFrom(v, path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
