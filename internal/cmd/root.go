package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/Dany7865/IITR-esummit07/internal/config"
)

var (
	configPath string
	logLevel   string
)

var rootCmd = &cobra.Command{
	Use:   "leadscope",
	Short: "Score industrial fuel sales leads from news and tenders",
	Long: `leadscope turns news items and tender notices into scored sales leads
with dossiers, notifies officers about promising ones and adapts its
industry weights from the outcomes they report.`,
	SilenceUsage: true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.HiddenDefaultCmd = false

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.GetConfigPath("config.yaml"), "Path to the YAML config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Override the configured log level (debug, info, warn, error)")
}
