package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var serveRunOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the cron schedule and answer chat commands",
	Long: `Start the scheduler with the signal runs and the stock report from the
config, and long-poll Telegram for the /signals, /stocks and /status commands.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().BoolVar(&serveRunOnStart, "run-on-start", os.Getenv("RUN_ON_START") == "true", "run the signals task once at startup (or set RUN_ON_START=true)")
}

func runServe(cmd *cobra.Command, args []string) error {
	log.Println("[INFO] SignalSentinel starting...")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a, err := buildApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.sched.RegisterAll(); err != nil {
		return fmt.Errorf("register cron tasks: %w", err)
	}
	a.sched.Start()
	defer a.sched.Stop()

	go a.notifier.StartPolling(ctx, a.sched.HandleCommand)
	log.Println("[INFO] Telegram polling started")

	if serveRunOnStart {
		log.Println("[INFO] run-on-start enabled, executing signals task now")
		go a.sched.RunSignals(ctx)
	}

	log.Println("[INFO] SignalSentinel is running. Press Ctrl+C to stop.")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("[INFO] shutdown signal received, stopping...")
	cancel()
	return nil
}
