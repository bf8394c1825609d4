package auth

import (
	"context"
	"strings"

	"github.com/Maphikza/trust-wallet-client.git/internal/api"
	"github.com/Maphikza/trust-wallet-client.git/internal/logger"
	"github.com/Maphikza/trust-wallet-client.git/internal/session"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet"
)

// Failure messages containing one of these mean the backend already
// considers the session gone. Matching free text is fragile; it is kept
// until the backend sends a structured code.
var alreadyLoggedOutMarkers = []string{"Session expired", "permission"}

type LogoutGateway interface {
	Logout(ctx context.Context, address, token string) api.Envelope[api.LogoutResult]
}

// Logout ends the session on the backend and locally.
type Logout struct {
	gw    LogoutGateway
	store session.Store
	busy  wallet.Busy
}

func NewLogout(gw LogoutGateway, store session.Store) *Logout {
	return &Logout{gw: gw, store: store}
}

// Run logs out. The local session is cleared on success, when the backend
// says the session is already gone, and when the call never produced an
// HTTP response. Any other failure keeps the session and returns the error.
func (l *Logout) Run(ctx context.Context) (wallet.Route, error) {
	sess, ok := l.store.Load()
	if !ok {
		return wallet.ToEntry, nil
	}

	if !l.busy.TryAcquire() {
		return wallet.Stay, wallet.ErrBusy
	}
	defer l.busy.Release()

	env := l.gw.Logout(ctx, sess.WalletAddress, sess.Token)
	switch {
	case env.OK():
		logger.Info("Logged out", "address", sess.WalletAddress)
	case env.Transport():
		logger.Warn("Logout did not reach the backend; clearing local session", "error", env.Message())
	case alreadyLoggedOut(env.Message()):
		logger.Info("Backend reports session already ended", "error", env.Message())
	default:
		logger.Error("Logout failed", "error", env.Message())
		return wallet.Stay, wallet.EnvelopeError(env)
	}

	if err := l.store.Clear(); err != nil {
		logger.Error("Clearing session failed", "error", err)
	}
	return wallet.ToEntry, nil
}

func alreadyLoggedOut(msg string) bool {
	for _, m := range alreadyLoggedOutMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}
