package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/Maphikza/trust-wallet-client.git/internal/config"
	"github.com/Maphikza/trust-wallet-client.git/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "trust-wallet",
	Short: "Custodial wallet client",
	Long: `A client for a custodial crypto wallet service with both interactive and CLI modes.
The backend base URL is read from WALLET_API_URL (or a .env file).`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().String("session-backend", "", "session storage backend (file, sqlite)")
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("session_backend", rootCmd.PersistentFlags().Lookup("session-backend"))

	rootCmd.AddCommand(createWalletCmd)
	rootCmd.AddCommand(importWalletCmd)
	rootCmd.AddCommand(balanceCmd)
	rootCmd.AddCommand(transferCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(mockBackendCmd)
}

func initConfig() {
	if err := config.LoadConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	settings := config.Current()
	if err := logger.Init(settings.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
	}
	logger.SetLevel(settings.LogLevel)
}

func main() {
	defer logger.Cleanup()

	if len(os.Args) > 1 {
		// CLI mode
		if err := rootCmd.Execute(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			logger.Cleanup()
			os.Exit(1)
		}
		return
	}

	// Interactive mode
	initConfig()
	if err := interactiveMode(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		logger.Cleanup()
		os.Exit(1)
	}
}
