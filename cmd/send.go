package cmd

import (
	"fmt"
	"os"

	"github.com/KIRKR101/Streamline/internal/dispatch"
	"github.com/KIRKR101/Streamline/internal/transfer"
	"github.com/KIRKR101/Streamline/internal/ui"

	"github.com/spf13/cobra"
)

// sendCmd represents the send command
var sendCmd = &cobra.Command{
	Use:   "send <address> <file>...",
	Short: "Send one or more files to a listening receiver",
	Long: `Send files to a receiver over TCP. Each file gets its own connection;
at most transfer.max_parallel (default 5) transfers run at once. One file
failing never stops the others.`,
	Args: cobra.MinimumNArgs(2),
	PreRunE: func(cmd *cobra.Command, args []string) error {
		for _, path := range args[1:] {
			if _, err := os.Stat(path); err != nil {
				return fmt.Errorf("cannot access file %s: %w", path, err)
			}
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := createContext()
		address, paths := args[0], args[1:]

		sender := dispatch.NewSender(cfg, logger, func() transfer.Progress {
			return ui.NewConsoleProgress("Sending")
		})
		results := sender.SendAll(ctx, address, paths)
		ui.ShowSendSummary(results)

		var failed int
		for _, r := range results {
			if r.Err != nil {
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("%d of %d file(s) failed", failed, len(results))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(sendCmd)
}
