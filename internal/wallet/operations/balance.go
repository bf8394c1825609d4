package operations

import (
	"context"
	"strings"
	"sync"

	"github.com/Maphikza/trust-wallet-client.git/internal/api"
	"github.com/Maphikza/trust-wallet-client.git/internal/logger"
	"github.com/Maphikza/trust-wallet-client.git/internal/session"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/werr"
)

const MsgSessionExpired = "Your session has expired. Please log in again."

// authFailedMarker is matched against the gateway's 401 message. The
// backend offers no structured code, so the text is the contract.
const authFailedMarker = "Authentication failed"

type BalanceGateway interface {
	GetBalances(ctx context.Context, address, token string) api.Envelope[api.BalanceSnapshot]
}

// Balances keeps the latest balance snapshot and refreshes it one request
// at a time.
type Balances struct {
	gw    BalanceGateway
	store session.Store

	busy  wallet.Busy
	fence wallet.Fence

	mu       sync.RWMutex
	snapshot api.BalanceSnapshot
	loaded   bool
	message  string
}

func NewBalances(gw BalanceGateway, store session.Store) *Balances {
	return &Balances{gw: gw, store: store}
}

// Refresh fetches a new snapshot and replaces the old one wholesale.
// ErrBusy means another refresh is still in flight.
func (b *Balances) Refresh(ctx context.Context) (wallet.Route, error) {
	if !b.busy.TryAcquire() {
		return wallet.Stay, wallet.ErrBusy
	}
	defer b.busy.Release()

	sess, ok := b.store.Load()
	if !ok {
		return wallet.ToEntry, werr.Session("No active session")
	}

	ticket := b.fence.Next()
	env := b.gw.GetBalances(ctx, sess.WalletAddress, sess.Token)
	if !b.fence.Latest(ticket) {
		logger.Debug("Discarding stale balance response", "ticket", ticket)
		return wallet.Stay, wallet.ErrStale
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	if !env.OK() {
		if strings.Contains(env.Message(), authFailedMarker) {
			logger.Info("Balance fetch rejected the session; clearing it")
			if err := b.store.Clear(); err != nil {
				logger.Error("Clearing session failed", "error", err)
			}
			b.message = MsgSessionExpired
			return wallet.ToEntry, werr.Auth(MsgSessionExpired)
		}
		b.message = env.Message()
		return wallet.Stay, wallet.EnvelopeError(env)
	}

	b.snapshot = env.Data().Clone()
	b.loaded = true
	b.message = ""
	return wallet.Stay, nil
}

// Snapshot returns a copy of the latest snapshot, or false before the first
// successful refresh.
func (b *Balances) Snapshot() (api.BalanceSnapshot, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.loaded {
		return api.BalanceSnapshot{}, false
	}
	return b.snapshot.Clone(), true
}

// Loading is true until a snapshot has been fetched.
func (b *Balances) Loading() bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return !b.loaded
}

func (b *Balances) Refreshing() bool {
	return b.busy.Active()
}

func (b *Balances) Message() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.message
}

// Detach makes any in-flight response stale, for when its view went away.
func (b *Balances) Detach() {
	b.fence.Next()
}
