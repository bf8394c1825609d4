package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Maphikza/trust-wallet-client.git/internal/api"
	"github.com/Maphikza/trust-wallet-client.git/internal/config"
	"github.com/Maphikza/trust-wallet-client.git/internal/logger"
	"github.com/Maphikza/trust-wallet-client.git/internal/session"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/creation"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/operations"
	"github.com/Maphikza/trust-wallet-client.git/lib/addrcheck"
)

const entryHint = "No active session. Run `trust-wallet create` or `trust-wallet import` to get started."

// app bundles what every client command needs.
type app struct {
	settings   config.Settings
	gw         *api.Gateway
	store      session.Store
	closeStore func() error
}

func newApp() (*app, error) {
	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}

	settings := config.Current()
	store, closeStore, err := session.Open(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	logger.Debug("Client configured", "api_url", env.APIURL, "session_backend", settings.SessionBackend)
	return &app{
		settings:   settings,
		gw:         api.New(env.APIURL, api.WithTimeout(settings.RequestTimeout)),
		store:      store,
		closeStore: closeStore,
	}, nil
}

// withApp runs fn against a client built from env and config. A missing
// backend URL is returned as an error.
func withApp(fn func(ctx context.Context, a *app) error) error {
	a, err := newApp()
	if err != nil {
		return fmt.Errorf("Error initializing client: %w", err)
	}
	return a.run(fn)
}

// run releases the store and the signal context on every return path.
func (a *app) run(fn func(ctx context.Context, a *app) error) error {
	defer a.close()

	ctx, cancel := signalContext()
	defer cancel()

	return fn(ctx, a)
}

func (a *app) close() {
	if err := a.closeStore(); err != nil {
		logger.Error("Closing session store failed", "error", err)
	}
}

func (a *app) flow() *creation.Flow {
	return creation.NewFlow(a.gw, a.store)
}

func (a *app) importer() *creation.Importer {
	return creation.NewImporter(a.gw, a.store, creation.WithMnemonicCheck(a.settings.StrictPhraseCheck))
}

func (a *app) balances() *operations.Balances {
	return operations.NewBalances(a.gw, a.store)
}

func (a *app) transfer(b *operations.Balances) *operations.Transfer {
	var opts []operations.TransferOption
	if a.settings.StrictAddressCheck {
		opts = append(opts, operations.WithAddressValidator(addrcheck.New(nil).Validate))
	}
	return operations.NewTransfer(a.gw, a.store, b, opts...)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func printJSON(v interface{}) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding output: %v\n", err)
	}
}

// errNoSession reports a redirect to the entry screen.
var errNoSession = errors.New(entryHint)

// sessionEnded wraps errNoSession with the controller's message, if any.
func sessionEnded(msg string) error {
	if msg == "" {
		return errNoSession
	}
	return fmt.Errorf("%s\n%w", msg, errNoSession)
}

// refreshBalances fetches a snapshot for one-shot commands.
func refreshBalances(ctx context.Context, a *app) (*operations.Balances, error) {
	balances := a.balances()
	route, err := balances.Refresh(ctx)
	if route == wallet.ToEntry {
		return nil, sessionEnded(balances.Message())
	}
	if err != nil {
		return nil, fmt.Errorf("Error fetching balances: %w", err)
	}
	return balances, nil
}

// fileTransfer refreshes balances and submits one transfer request.
func fileTransfer(ctx context.Context, a *app, in operations.TransferInput) (api.TransferRecord, error) {
	balances, err := refreshBalances(ctx, a)
	if err != nil {
		return api.TransferRecord{}, err
	}
	record, err := a.transfer(balances).Submit(ctx, in)
	if err != nil {
		return api.TransferRecord{}, fmt.Errorf("Error requesting transfer: %w", err)
	}
	return record, nil
}
