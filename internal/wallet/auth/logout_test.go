package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maphikza/trust-wallet-client.git/internal/api"
	"github.com/Maphikza/trust-wallet-client.git/internal/session"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/werr"
)

type fakeLogout struct {
	calls    int
	response api.Envelope[api.LogoutResult]
}

func (f *fakeLogout) Logout(ctx context.Context, address, token string) api.Envelope[api.LogoutResult] {
	f.calls++
	return f.response
}

func loggedIn(t *testing.T) *session.MemoryStore {
	t.Helper()
	s := session.NewMemoryStore()
	require.NoError(t, s.Save(session.Session{Token: "tok", WalletAddress: "0xabc"}))
	return s
}

func TestLogoutOutcomes(t *testing.T) {
	cases := []struct {
		name      string
		response  api.Envelope[api.LogoutResult]
		route     wallet.Route
		cleared   bool
		wantError bool
	}{
		{"success", api.Success(api.LogoutResult{Message: "Logged out"}), wallet.ToEntry, true, false},
		{"session expired", api.Failure[api.LogoutResult](api.MsgSessionExpired), wallet.ToEntry, true, false},
		{"permission denied", api.Failure[api.LogoutResult]("You do not have permission to do that"), wallet.ToEntry, true, false},
		{"unrelated failure", api.Failure[api.LogoutResult]("Database unavailable"), wallet.Stay, false, true},
		{"transport", api.TransportFailure[api.LogoutResult](api.MsgLogoutFailed), wallet.ToEntry, true, false},
		{"transport with unrelated text", api.TransportFailure[api.LogoutResult]("Database unavailable"), wallet.ToEntry, true, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := &fakeLogout{response: tc.response}
			store := loggedIn(t)

			route, err := NewLogout(gw, store).Run(context.Background())
			assert.Equal(t, tc.route, route)
			assert.Equal(t, 1, gw.calls)
			if tc.wantError {
				assert.True(t, werr.IsKind(err, werr.KindServer))
				assert.Equal(t, tc.response.Message(), werr.MessageOf(err))
			} else {
				assert.NoError(t, err)
			}

			_, present := store.Load()
			assert.Equal(t, !tc.cleared, present)
		})
	}
}

func TestLogoutWithoutSessionRedirectsWithoutCall(t *testing.T) {
	gw := &fakeLogout{}
	route, err := NewLogout(gw, session.NewMemoryStore()).Run(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, wallet.ToEntry, route)
	assert.Zero(t, gw.calls)
}

func TestEntryRoutes(t *testing.T) {
	route, sess := Entry(loggedIn(t))
	assert.Equal(t, wallet.ToDashboard, route)
	assert.Equal(t, "0xabc", sess.WalletAddress)

	route, _ = Entry(session.NewMemoryStore())
	assert.Equal(t, wallet.ToEntry, route)
}

func TestEntryClearsHalfWrittenSession(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.env")
	require.NoError(t, os.WriteFile(path, []byte("WALLET_ADDRESS=0xabc\n"), 0600))

	route, _ := Entry(session.NewEnvFileStore(path))
	assert.Equal(t, wallet.ToEntry, route)

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}
