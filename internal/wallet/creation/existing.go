package creation

import (
	"context"
	"fmt"
	"strings"

	"github.com/Maphikza/trust-wallet-client.git/internal/api"
	"github.com/Maphikza/trust-wallet-client.git/internal/logger"
	"github.com/Maphikza/trust-wallet-client.git/internal/session"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/werr"
)

const (
	MsgEnterSeedPhrase = "Please enter your seed phrase"
	MsgInvalidPhrase   = "Seed phrase is not a valid recovery phrase"
	MsgImportFailed    = "Failed to import wallet"
)

// ImportGateway is the part of the backend the import flow needs.
type ImportGateway interface {
	ImportWallet(ctx context.Context, seedPhrase string) api.Envelope[api.SessionGrant]
}

// Importer restores access to an existing wallet from its recovery phrase.
type Importer struct {
	gw            ImportGateway
	store         session.Store
	checkMnemonic bool
	busy          wallet.Busy
}

type ImporterOption func(*Importer)

// WithMnemonicCheck rejects phrases whose BIP-39 checksum does not verify
// before anything is sent.
func WithMnemonicCheck(enabled bool) ImporterOption {
	return func(im *Importer) { im.checkMnemonic = enabled }
}

func NewImporter(gw ImportGateway, store session.Store, opts ...ImporterOption) *Importer {
	im := &Importer{gw: gw, store: store}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Import validates raw, submits it and persists the session. It routes to
// the dashboard only once the stored session reads back intact.
func (im *Importer) Import(ctx context.Context, raw string) (wallet.Route, error) {
	phrase := strings.TrimSpace(raw)
	if phrase == "" {
		return wallet.Stay, werr.Validation(werr.CodeMissingSeedPhrase, MsgEnterSeedPhrase)
	}
	words := strings.Fields(phrase)
	if len(words) != PhraseWords {
		return wallet.Stay, werr.Validation(werr.CodeWordCount,
			fmt.Sprintf("Seed phrase must contain exactly %d words (got %d)", PhraseWords, len(words)))
	}
	if im.checkMnemonic {
		parsed, _ := ParsePhrase(phrase)
		if !parsed.ValidMnemonic() {
			return wallet.Stay, werr.Validation(werr.CodeInvalidPhrase, MsgInvalidPhrase)
		}
	}

	if !im.busy.TryAcquire() {
		return wallet.Stay, wallet.ErrBusy
	}
	defer im.busy.Release()

	env := im.gw.ImportWallet(ctx, phrase)
	if !env.OK() {
		logger.Error("Wallet import failed", "error", env.Message())
		if env.Message() == "" {
			return wallet.Stay, werr.Server(MsgImportFailed)
		}
		return wallet.Stay, wallet.EnvelopeError(env)
	}

	grant := env.Data()
	want := session.Session{Token: grant.Token, WalletAddress: grant.WalletAddress}
	if err := im.store.Save(want); err != nil {
		logger.Error("Saving session failed", "error", err)
		return wallet.Stay, werr.Storage(MsgStoreFailed, err)
	}

	got, ok := im.store.Load()
	if !ok || got != want {
		logger.Error("Session read-back mismatch", "present", ok)
		return wallet.Stay, werr.Storage(MsgStoreFailed, nil)
	}

	logger.Info("Wallet imported", "address", got.WalletAddress)
	return wallet.ToDashboard, nil
}
