package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/KIRKR101/Streamline/internal/config"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfg     *config.Config
	cfgFile string
	logger  *log.Logger
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "streamline",
	Short: "Streamline - point-to-point file transfer over TCP",
	Long: `Streamline transfers files directly between two machines over TCP.

Each file travels on its own connection as a name header, an 8-byte size,
the payload, and a SHA-256 trailer the receiver verifies end to end.

Usage:
  Send files:      streamline send <address> <file>...
  Receive files:   streamline serve [address] --dest /path/to/dir`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		initConfig()

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
		return nil
	},
}

func init() {
	// Add global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.streamline.yaml)")

	// Set up viper environment variable support
	viper.SetEnvPrefix("STREAMLINE")
	viper.AutomaticEnv()

	logger = log.NewWithOptions(os.Stderr, log.Options{ReportTimestamp: true})
}

// initConfig reads in config file and ENV variables
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			logger.Warn("could not find home directory", "err", err)
			return
		}

		// Search config in home directory with name ".streamline" (without extension)
		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".streamline")
	}

	viper.AutomaticEnv()

	// If a config file is found, read it in
	if err := viper.ReadInConfig(); err == nil {
		logger.Debug("using config file", "path", viper.ConfigFileUsed())
	}
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// createContext creates a context that cancels on interrupt signals
func createContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		fmt.Println("\nReceived interrupt signal, shutting down...")
		cancel()
	}()

	return ctx
}
