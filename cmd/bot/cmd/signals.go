package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
)

var signalsCmd = &cobra.Command{
	Use:   "signals",
	Short: "Run the signal scan once and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		sum := a.sched.RunSignals(cmd.Context())
		log.Printf("[INFO] signals run done: %d candidates, %d selected, %d sent", sum.Candidates, len(sum.Selected), sum.Sent)
		return nil
	},
}

var stocksCmd = &cobra.Command{
	Use:   "stocks",
	Short: "Run the hot stock report once and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		sum := a.sched.RunStocks(cmd.Context())
		log.Printf("[INFO] stocks run done: %d hot stocks (strict=%v), %d sent", len(sum.Report.Stocks), sum.Report.Strict, sum.Sent)
		return nil
	},
}

var statusSend bool

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print trading days progress and next runs",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := buildApp(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer a.Close()

		msg := a.sched.StatusMessage()
		fmt.Fprintln(cmd.OutOrStdout(), msg)
		if statusSend {
			return a.notifier.Send(cmd.Context(), msg)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(signalsCmd, stocksCmd, statusCmd)
	statusCmd.Flags().BoolVar(&statusSend, "send", false, "also send the status to the Telegram chat")
}
