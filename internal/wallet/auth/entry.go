package auth

import (
	"github.com/Maphikza/trust-wallet-client.git/internal/logger"
	"github.com/Maphikza/trust-wallet-client.git/internal/session"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet"
)

// Entry decides where the app opens. A complete session goes to the
// dashboard; anything else, including a half-written pair, is cleared and
// sent to the entry screen.
func Entry(store session.Store) (wallet.Route, session.Session) {
	sess, ok := store.Load()
	if ok {
		return wallet.ToDashboard, sess
	}
	if err := store.Clear(); err != nil {
		logger.Error("Clearing session residue failed", "error", err)
	}
	return wallet.ToEntry, session.Session{}
}
