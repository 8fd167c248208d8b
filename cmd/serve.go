package cmd

import (
	"context"
	"errors"

	"github.com/KIRKR101/Streamline/internal/dispatch"
	"github.com/KIRKR101/Streamline/internal/transfer"
	"github.com/KIRKR101/Streamline/internal/ui"
	"github.com/KIRKR101/Streamline/pkg/utils"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type ServeFlags struct {
	DestDir string
	// Future flags can be easily added here:
	// MaxSessions int
}

var serveFlags ServeFlags

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve [address]",
	Short: "Listen for incoming files and save them to disk",
	Long: `Listen on an address (default 0.0.0.0:8080) and receive files.

Every incoming connection is served concurrently. Each file is verified
against its SHA-256 trailer and saved under --dest, or the current
directory when --dest is not given.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := createContext()

		address := cfg.Transfer.ListenAddr
		if len(args) > 0 {
			address = args[0]
		}
		destDir, err := utils.ResolveDestinationDir(serveFlags.DestDir)
		if err != nil {
			return err
		}

		server := dispatch.NewServer(cfg, logger, func() transfer.Progress {
			return ui.NewConsoleProgress("Receiving")
		})
		if err := server.Serve(ctx, address, destDir); err != nil && !errors.Is(err, context.Canceled) {
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVarP(&serveFlags.DestDir, "dest", "d", "", "Directory to save received files (default current directory)")

	// Bind flags to viper for environment variable support
	viper.BindPFlag("serve.dest", serveCmd.Flags().Lookup("dest"))
}
