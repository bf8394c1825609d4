package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	"github.com/skip2/go-qrcode"
	"github.com/spf13/cobra"

	"github.com/Maphikza/trust-wallet-client.git/internal/config"
	"github.com/Maphikza/trust-wallet-client.git/internal/logger"
	"github.com/Maphikza/trust-wallet-client.git/internal/mockserver"
	"github.com/Maphikza/trust-wallet-client.git/internal/session"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/auth"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/operations"
)

type sessionResult struct {
	WalletAddress string `json:"walletAddress"`
	Message       string `json:"message"`
}

var createWalletCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a new wallet",
	Long: `Create a new wallet. The terms are shown, the backend generates a recovery
phrase, and three of its words must be confirmed before a session is stored.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			route, err := runOnboarding(ctx, a, newPrompter())
			if err != nil {
				return fmt.Errorf("Error creating wallet: %w", err)
			}
			if route != wallet.ToDashboard {
				fmt.Fprintln(os.Stderr, "Wallet creation cancelled.")
				return nil
			}

			sess, _ := a.store.Load()
			printJSON(sessionResult{WalletAddress: sess.WalletAddress, Message: "Wallet created successfully"})
			return nil
		})
	},
}

var importWalletCmd = &cobra.Command{
	Use:   "import [seed-phrase words...]",
	Short: "Import an existing wallet",
	Long: `Import an existing wallet from its 12-word recovery phrase.
When no words are given the phrase is read from the terminal without echo.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			phrase := strings.Join(args, " ")
			if phrase == "" {
				var err error
				phrase, err = newPrompter().secret("Enter your 12-word recovery phrase: ")
				if err != nil {
					return fmt.Errorf("Error reading recovery phrase: %w", err)
				}
			}

			if _, err := a.importer().Import(ctx, phrase); err != nil {
				return fmt.Errorf("Error importing wallet: %w", err)
			}

			sess, _ := a.store.Load()
			printJSON(sessionResult{WalletAddress: sess.WalletAddress, Message: "Wallet imported successfully"})
			return nil
		})
	},
}

var balanceCmd = &cobra.Command{
	Use:   "balance",
	Short: "Show wallet balances",
	Long:  `Fetch the current balances and total value of the logged-in wallet.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			balances, err := refreshBalances(ctx, a)
			if err != nil {
				return err
			}
			snapshot, _ := balances.Snapshot()
			printJSON(snapshot)
			return nil
		})
	},
}

var transferCmd = &cobra.Command{
	Use:   "transfer [to-address] [amount] [symbol]",
	Short: "Request a transfer",
	Long: `File a transfer request. Transfers are fulfilled manually; the response
names the support address to email and the subject line to use.`,
	Args: cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			record, err := fileTransfer(ctx, a, operations.TransferInput{
				ToAddress: args[0],
				Amount:    args[1],
				Symbol:    args[2],
			})
			if err != nil {
				return err
			}
			printJSON(record)
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out of the wallet",
	Long:  `End the session on the backend and remove the stored session.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(func(ctx context.Context, a *app) error {
			if _, err := auth.NewLogout(a.gw, a.store).Run(ctx); err != nil {
				return fmt.Errorf("Error logging out: %w", err)
			}
			printJSON(struct {
				Message string `json:"message"`
			}{Message: "Logged out"})
			return nil
		})
	},
}

type statusResult struct {
	LoggedIn      bool       `json:"loggedIn"`
	WalletAddress string     `json:"walletAddress,omitempty"`
	ExpiresAt     *time.Time `json:"expiresAt,omitempty"`
	Expired       bool       `json:"expired,omitempty"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the stored session",
	Long: `Report whether a session is stored, the wallet address and when the token
expires. --qr prints the address as a QR code and --copy puts it on the clipboard.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		showQR, _ := cmd.Flags().GetBool("qr")
		copyAddr, _ := cmd.Flags().GetBool("copy")

		store, closeStore, err := session.Open(config.Current())
		if err != nil {
			return fmt.Errorf("Error opening session store: %w", err)
		}
		defer closeStore()

		route, sess := auth.Entry(store)
		if route != wallet.ToDashboard {
			printJSON(statusResult{})
			return nil
		}

		result := statusResult{LoggedIn: true, WalletAddress: sess.WalletAddress}
		if info, err := session.Inspect(sess.Token); err != nil {
			logger.Debug("Session token is opaque", "error", err)
		} else if !info.ExpiresAt.IsZero() {
			result.ExpiresAt = &info.ExpiresAt
			result.Expired = info.Expired(time.Now())
		}

		if showQR {
			if err := printQR(sess.WalletAddress); err != nil {
				return fmt.Errorf("Error rendering QR code: %w", err)
			}
		}
		if copyAddr {
			if err := clipboard.WriteAll(sess.WalletAddress); err != nil {
				return fmt.Errorf("Error copying address: %w", err)
			}
			fmt.Fprintln(os.Stderr, "Address copied to clipboard.")
		}

		printJSON(result)
		return nil
	},
}

// printQR writes the QR code to stderr so stdout stays machine-readable.
func printQR(content string) error {
	q, err := qrcode.New(content, qrcode.Medium)
	if err != nil {
		return err
	}
	fmt.Fprint(os.Stderr, q.ToString(false))
	return nil
}

var mockBackendCmd = &cobra.Command{
	Use:   "mock-backend",
	Short: "Run a local development backend",
	Long: `Serve the wallet API locally with in-memory wallets, fixture balances and
signed session tokens. Point WALLET_API_URL at it to try the client.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		settings := config.Current()
		addr, _ := cmd.Flags().GetString("addr")
		if addr == "" {
			addr = settings.MockAddr
		}

		srv, err := mockserver.New(mockserver.Config{
			JWTSecret:     []byte(settings.MockJWTSecret),
			TokenTTL:      settings.MockTokenTTL,
			AllowedOrigin: settings.AllowedOrigin,
			ContactEmail:  settings.ContactEmail,
		})
		if err != nil {
			return fmt.Errorf("Error starting mock backend: %w", err)
		}

		ctx, cancel := signalContext()
		defer cancel()

		fmt.Fprintf(os.Stderr, "Mock backend listening on http://%s (Ctrl+C to stop)\n", addr)
		if err := srv.ListenAndServe(ctx, addr); err != nil {
			return fmt.Errorf("Mock backend stopped: %w", err)
		}
		return nil
	},
}

func init() {
	statusCmd.Flags().Bool("qr", false, "print the wallet address as a QR code")
	statusCmd.Flags().Bool("copy", false, "copy the wallet address to the clipboard")
	mockBackendCmd.Flags().String("addr", "", "listen address (defaults to mock_addr)")
}
