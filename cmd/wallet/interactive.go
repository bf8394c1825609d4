package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/atotto/clipboard"

	"github.com/Maphikza/trust-wallet-client.git/internal/api"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/auth"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/operations"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/werr"
)

func interactiveMode() error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := signalContext()
	defer cancel()

	p := newPrompter()
	for {
		if route, _ := auth.Entry(a.store); route == wallet.ToDashboard {
			exit, err := dashboard(ctx, a, p)
			if err != nil {
				return quietEOF(err)
			}
			if exit {
				return nil
			}
			continue
		}

		fmt.Println("\nTrust Wallet")
		fmt.Println("1. Create a new wallet")
		fmt.Println("2. Import an existing wallet")
		fmt.Println("3. Exit")
		choice, err := p.line("\nEnter your choice (1, 2, or 3): ")
		if err != nil {
			return quietEOF(err)
		}

		switch choice {
		case "1":
			if _, err := runOnboarding(ctx, a, p); err != nil {
				if errors.Is(err, io.EOF) {
					return nil
				}
				fmt.Printf("Error creating wallet: %s\n", werr.MessageOf(err))
			}
		case "2":
			phrase, err := p.secret("Enter your 12-word recovery phrase: ")
			if err != nil {
				return quietEOF(err)
			}
			if _, err := a.importer().Import(ctx, phrase); err != nil {
				fmt.Printf("Error importing wallet: %s\n", werr.MessageOf(err))
			}
		case "3":
			fmt.Println("Goodbye!")
			return nil
		default:
			fmt.Println("Invalid choice. Please try again.")
		}
	}
}

// dashboard runs until the session ends (false) or the user exits (true).
func dashboard(ctx context.Context, a *app, p *prompter) (bool, error) {
	balances := a.balances()
	transfer := a.transfer(balances)

	if !refreshAndShow(ctx, balances) {
		return false, nil
	}

	for {
		sess, ok := a.store.Load()
		if !ok {
			return false, nil
		}

		fmt.Printf("\nWallet %s\n", sess.WalletAddress)
		fmt.Println("1. Refresh balances")
		fmt.Println("2. Request a transfer")
		fmt.Println("3. Copy wallet address")
		fmt.Println("4. Show wallet address as QR code")
		fmt.Println("5. Log out")
		fmt.Println("6. Exit")
		choice, err := p.line("\nEnter your choice (1-6): ")
		if err != nil {
			return false, err
		}

		switch choice {
		case "1":
			if !refreshAndShow(ctx, balances) {
				return false, nil
			}
		case "2":
			if err := requestTransfer(ctx, transfer, p); err != nil {
				return false, err
			}
		case "3":
			if err := clipboard.WriteAll(sess.WalletAddress); err != nil {
				fmt.Printf("Error copying address: %v\n", err)
			} else {
				fmt.Println("Address copied to clipboard.")
			}
		case "4":
			if err := printQR(sess.WalletAddress); err != nil {
				fmt.Printf("Error rendering QR code: %v\n", err)
			}
		case "5":
			if route, err := auth.NewLogout(a.gw, a.store).Run(ctx); route != wallet.ToEntry {
				fmt.Printf("Error logging out: %s\n", werr.MessageOf(err))
				continue
			}
			fmt.Println("Logged out.")
			return false, nil
		case "6":
			fmt.Println("Goodbye!")
			return true, nil
		default:
			fmt.Println("Invalid choice. Please try again.")
		}
	}
}

// refreshAndShow reports false when the session is gone.
func refreshAndShow(ctx context.Context, balances *operations.Balances) bool {
	fmt.Println("Loading balances...")
	route, err := balances.Refresh(ctx)
	if route == wallet.ToEntry {
		fmt.Println(balances.Message())
		return false
	}
	if err != nil {
		fmt.Printf("Error: %s\n", werr.MessageOf(err))
	}

	snapshot, ok := balances.Snapshot()
	if !ok {
		return true
	}
	printBalances(snapshot)
	return true
}

func printBalances(s api.BalanceSnapshot) {
	fmt.Printf("\nTotal value: $%.2f\n", s.TotalValue)
	for _, b := range s.Balances {
		fmt.Printf("  %-6s %16.8f  $%12.2f  (%+.2f%% 24h)\n", b.Symbol, b.Amount, b.Value, b.Metrics.PriceChange24h)
	}
}

func requestTransfer(ctx context.Context, t *operations.Transfer, p *prompter) error {
	t.Reset()

	var in operations.TransferInput
	var err error
	if in.Symbol, err = p.line("Asset symbol: "); err != nil {
		return err
	}
	if in.ToAddress, err = p.line("Recipient address: "); err != nil {
		return err
	}
	if in.Amount, err = p.line("Amount: "); err != nil {
		return err
	}

	record, err := t.Submit(ctx, in)
	if err != nil {
		fmt.Printf("Error: %s\n", werr.MessageOf(err))
		return nil
	}

	fmt.Printf("\n%s\n", record.Message)
	fmt.Printf("Email %s with the subject %q to complete the transfer.\n", record.ContactEmail, record.EmailSubject)
	d := record.RequestDetails
	fmt.Printf("  %v %s from %s to %s at %s\n", d.Amount, d.Symbol, d.FromAddress, d.ToAddress, d.Timestamp)
	return nil
}

func quietEOF(err error) error {
	if errors.Is(err, io.EOF) {
		return nil
	}
	return err
}
