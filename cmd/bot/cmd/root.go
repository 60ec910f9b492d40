package cmd

import (
	"fmt"
	"log"
	"os"

	"SignalSentinel/internal/config"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgPath string
	cfg     *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "signalsentinel",
	Short: "Educational FX signal and hot stock Telegram bot",
	Long: `SignalSentinel scans FX and metals symbols for daily breakouts and
EMA/RSI pullbacks, ranks the trade ideas and posts the best ones with charts
to a Telegram chat. A second job scans a stock universe for unusual daily
moves on heavy volume.

Credentials come from the environment or a .env file:
  TOKEN_FTMO / TOKEN_STOCKS / BOT_TOKEN
  CHAT_ID_FTMO / CHAT_ID_STOCKS / CHAT_ID`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cmd == versionCmd || cmd.Name() == "help" {
			return nil
		}
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Printf("[WARN] load .env: %v", err)
		}
		c, err := config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("config validation: %w", err)
		}
		cfg = c
		return nil
	},
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	def := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		def = v
	}
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", def, "path to YAML config file (or set CONFIG_PATH)")
}
