package mockserver

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maphikza/trust-wallet-client.git/internal/api"
	"github.com/Maphikza/trust-wallet-client.git/internal/session"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/auth"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/creation"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/operations"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/werr"
	"github.com/Maphikza/trust-wallet-client.git/lib/addrcheck"
)

const knownMnemonic = "abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about"

func newBackend(t *testing.T, cfg Config) (*Server, *api.Gateway) {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, api.New(ts.URL, api.WithTimeout(5*time.Second))
}

func TestCreateVerifyRefreshTransferLogout(t *testing.T) {
	_, gw := newBackend(t, Config{ContactEmail: "ops@example.com"})
	store := session.NewMemoryStore()
	ctx := context.Background()

	flow := creation.NewFlow(gw, store)
	require.NoError(t, flow.Start())
	require.NoError(t, flow.AcceptTerms(true))
	require.NoError(t, flow.Create(ctx))
	require.Equal(t, creation.SeedPhraseDisplay, flow.State())

	require.NoError(t, flow.Reveal())
	phrase, ok := flow.Phrase()
	require.True(t, ok)
	assert.True(t, phrase.ValidMnemonic())
	challenge, ok := flow.Challenge()
	require.True(t, ok)

	require.NoError(t, flow.ConfirmBackup(true))
	require.NoError(t, flow.Continue())
	for i, w := range challenge.Expected(phrase) {
		require.NoError(t, flow.SetWord(i, strings.ToUpper(w)))
	}
	require.NoError(t, flow.Verify(ctx))
	assert.Equal(t, wallet.ToDashboard, flow.Close())

	sess, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, deriveAddress(phrase.String()), sess.WalletAddress)

	balances := operations.NewBalances(gw, store)
	route, err := balances.Refresh(ctx)
	require.NoError(t, err)
	assert.Equal(t, wallet.Stay, route)
	snap, ok := balances.Snapshot()
	require.True(t, ok)
	eth, ok := snap.Find("eth")
	require.True(t, ok)
	assert.Equal(t, 2.5, eth.Amount)
	assert.Equal(t, 6000.0, eth.Value)

	transfer := operations.NewTransfer(gw, store, balances, operations.WithAddressValidator(addrcheck.New(nil).Validate))
	_, err = transfer.Submit(ctx, operations.TransferInput{ToAddress: "0x52908400098527886E0F7030069857D2E4169EE7", Amount: "3", Symbol: "ETH"})
	assert.Equal(t, werr.CodeInsufficientBalance, werr.CodeOf(err))

	record, err := transfer.Submit(ctx, operations.TransferInput{ToAddress: "0x52908400098527886E0F7030069857D2E4169EE7", Amount: "1.2", Symbol: "eth"})
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", record.ContactEmail)
	assert.Equal(t, "ETH", record.RequestDetails.Symbol)
	assert.Equal(t, 1.2, record.RequestDetails.Amount)
	assert.Equal(t, sess.WalletAddress, record.RequestDetails.FromAddress)

	route, err = auth.NewLogout(gw, store).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, wallet.ToEntry, route)
	_, ok = store.Load()
	assert.False(t, ok)

	// The revoked token no longer reads balances.
	env := gw.GetBalances(ctx, sess.WalletAddress, sess.Token)
	assert.Equal(t, api.MsgAuthFailed, env.Message())
}

func TestImportFlow(t *testing.T) {
	_, gw := newBackend(t, Config{})
	store := session.NewMemoryStore()

	im := creation.NewImporter(gw, store)
	route, err := im.Import(context.Background(), "  "+strings.ToUpper(knownMnemonic)+" ")
	require.NoError(t, err)
	assert.Equal(t, wallet.ToDashboard, route)

	sess, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, deriveAddress(knownMnemonic), sess.WalletAddress)

	info, err := session.Inspect(sess.Token)
	require.NoError(t, err)
	assert.Equal(t, sess.WalletAddress, info.Subject)
}

func TestImportRejectsInvalidMnemonic(t *testing.T) {
	_, gw := newBackend(t, Config{})
	store := session.NewMemoryStore()

	bad := strings.Repeat("abandon ", 12)
	route, err := creation.NewImporter(gw, store).Import(context.Background(), bad)
	assert.Equal(t, wallet.Stay, route)
	assert.Equal(t, "Invalid seed phrase", werr.MessageOf(err))
	_, ok := store.Load()
	assert.False(t, ok)
}

func TestVerifyUnknownWallet(t *testing.T) {
	_, gw := newBackend(t, Config{})
	env := gw.VerifyWallet(context.Background(), knownMnemonic)
	assert.False(t, env.OK())
	assert.False(t, env.Transport())
	assert.Equal(t, "Wallet not found", env.Message())
}

func TestExpiredTokenTearsDownSession(t *testing.T) {
	issued := time.Now().Add(-time.Hour)
	_, gw := newBackend(t, Config{TokenTTL: time.Minute, Now: func() time.Time { return issued }})
	store := session.NewMemoryStore()
	ctx := context.Background()

	_, err := creation.NewImporter(gw, store).Import(ctx, knownMnemonic)
	require.NoError(t, err)

	route, err := operations.NewBalances(gw, store).Refresh(ctx)
	assert.Equal(t, wallet.ToEntry, route)
	assert.True(t, werr.IsKind(err, werr.KindAuth))
	_, ok := store.Load()
	assert.False(t, ok)
}

func TestLogoutWithExpiredTokenStillClears(t *testing.T) {
	issued := time.Now().Add(-time.Hour)
	_, gw := newBackend(t, Config{TokenTTL: time.Minute, Now: func() time.Time { return issued }})
	store := session.NewMemoryStore()
	ctx := context.Background()

	_, err := creation.NewImporter(gw, store).Import(ctx, knownMnemonic)
	require.NoError(t, err)

	route, err := auth.NewLogout(gw, store).Run(ctx)
	require.NoError(t, err)
	assert.Equal(t, wallet.ToEntry, route)
	_, ok := store.Load()
	assert.False(t, ok)
}

func TestBalancesForAnotherWalletForbidden(t *testing.T) {
	_, gw := newBackend(t, Config{})
	ctx := context.Background()

	grant := gw.ImportWallet(ctx, knownMnemonic)
	require.True(t, grant.OK())

	env := gw.GetBalances(ctx, "0x0000000000000000000000000000000000000001", grant.Data().Token)
	assert.False(t, env.OK())
	assert.Contains(t, env.Message(), "permission")
}

func TestMetricsEndpoint(t *testing.T) {
	s, gw := newBackend(t, Config{})
	require.True(t, gw.ImportWallet(context.Background(), knownMnemonic).OK())

	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body, err := io.ReadAll(rec.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), `wallet_backend_wallets_total{source="imported"} 1`)
	assert.Contains(t, string(body), "wallet_backend_active_sessions 1")
}

func TestPreflightAndRequestID(t *testing.T) {
	s, err := New(Config{AllowedOrigin: "http://localhost:3000"})
	require.NoError(t, err)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/api/wallet/import", nil)
	req.Header.Set("X-Request-ID", "req-1")
	s.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "req-1", rec.Header().Get("X-Request-ID"))
}
