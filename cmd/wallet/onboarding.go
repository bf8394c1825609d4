package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Maphikza/trust-wallet-client.git/internal/wallet"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/creation"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/werr"
)

// runOnboarding walks the user through wallet creation on the terminal.
// It returns ToDashboard once a session is stored, Stay when the user
// backs out.
func runOnboarding(ctx context.Context, a *app, p *prompter) (wallet.Route, error) {
	f := a.flow()
	defer f.Close()

	for {
		if err := f.Start(); err != nil {
			return wallet.Stay, err
		}

		fmt.Println("\nBefore creating a wallet, you agree to:")
		for _, t := range creation.TermsOfUse {
			fmt.Printf("  - %s\n", t)
		}
		accepted, err := p.confirm("Do you accept these terms?")
		if err != nil || !accepted {
			return wallet.Stay, ignoreCancel(err)
		}
		if err := f.AcceptTerms(true); err != nil {
			return wallet.Stay, err
		}

		fmt.Println("Generating your wallet...")
		err = f.Create(ctx)
		if err == nil {
			break
		}
		fmt.Printf("Error: %s\n", werr.MessageOf(err))
		retry, perr := p.confirm("Try again?")
		if perr != nil || !retry {
			return wallet.Stay, ignoreCancel(perr)
		}
	}

	if err := showPhrase(f, p); err != nil {
		return wallet.Stay, ignoreCancel(err)
	}
	if err := f.Continue(); err != nil {
		return wallet.Stay, err
	}

	if err := verifyWords(ctx, f, p); err != nil {
		return wallet.Stay, ignoreCancel(err)
	}

	fmt.Printf("\nWallet created: %s\n", f.Address())
	return f.Close(), nil
}

func showPhrase(f *creation.Flow, p *prompter) error {
	fmt.Printf("\nYour wallet address: %s\n", f.Address())
	if _, err := p.line("Make sure no one is watching, then press Enter to reveal your recovery phrase..."); err != nil {
		return err
	}
	if err := f.Reveal(); err != nil {
		return err
	}

	phrase, _ := f.Phrase()
	fmt.Println()
	for i, w := range phrase.Words() {
		fmt.Printf("%2d. %s\n", i+1, w)
	}
	fmt.Println()

	for {
		saved, err := p.confirm("Have you written down your recovery phrase?")
		if err != nil {
			return err
		}
		if saved {
			return f.ConfirmBackup(true)
		}
		fmt.Println(creation.MsgBackupRequired)
	}
}

func verifyWords(ctx context.Context, f *creation.Flow, p *prompter) error {
	challenge, _ := f.Challenge()

	for {
		fmt.Println("\nConfirm your recovery phrase (q to cancel).")
		for slot, pos := range challenge.Positions() {
			word, err := p.line(fmt.Sprintf("Word #%d: ", pos+1))
			if err != nil {
				return err
			}
			if word == "q" {
				return errCancelled
			}
			if err := f.SetWord(slot, word); err != nil {
				return err
			}
		}

		err := f.Verify(ctx)
		switch {
		case err == nil:
			return nil
		case werr.CodeOf(err) == werr.CodeWordsMismatch, werr.CodeOf(err) == werr.CodeIncompleteWords:
			fmt.Println(werr.MessageOf(err))
		default:
			fmt.Printf("Error: %s\n", werr.MessageOf(err))
			retry, perr := p.confirm("Try again?")
			if perr != nil {
				return perr
			}
			if !retry {
				return errCancelled
			}
		}
	}
}

func ignoreCancel(err error) error {
	if errors.Is(err, errCancelled) {
		return nil
	}
	return err
}
