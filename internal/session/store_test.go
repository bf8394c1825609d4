package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maphikza/trust-wallet-client.git/internal/config"
	walletstatedb "github.com/Maphikza/trust-wallet-client.git/internal/database"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()
	sqliteStore, err := OpenSQLiteStore(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { sqliteStore.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   NewEnvFileStore(filepath.Join(t.TempDir(), "nested", "session.env")),
		"sqlite": sqliteStore,
	}
}

func TestStoreRoundTrip(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, ok := store.Load()
			assert.False(t, ok)

			want := Session{Token: "tok-1", WalletAddress: "0xabc"}
			require.NoError(t, store.Save(want))
			got, ok := store.Load()
			require.True(t, ok)
			assert.Equal(t, want, got)

			next := Session{Token: "tok-2", WalletAddress: "0xdef"}
			require.NoError(t, store.Save(next))
			got, ok = store.Load()
			require.True(t, ok)
			assert.Equal(t, next, got)

			require.NoError(t, store.Clear())
			_, ok = store.Load()
			assert.False(t, ok)

			// clearing twice is fine
			require.NoError(t, store.Clear())
		})
	}
}

func TestStoreRejectsPartialSession(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, store.Save(Session{Token: "tok", WalletAddress: "0xabc"}))

			assert.ErrorIs(t, store.Save(Session{Token: "only-token"}), ErrPartialSession)
			assert.ErrorIs(t, store.Save(Session{WalletAddress: "0xonly"}), ErrPartialSession)

			got, ok := store.Load()
			require.True(t, ok)
			assert.Equal(t, "tok", got.Token)
		})
	}
}

func TestEnvFileHalfWrittenPairIsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.env")
	require.NoError(t, os.WriteFile(path, []byte("WALLET_TOKEN=tok\n"), 0600))

	store := NewEnvFileStore(path)
	_, ok := store.Load()
	assert.False(t, ok)

	require.NoError(t, store.Clear())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestEnvFileDoesNotLeakIntoEnvironment(t *testing.T) {
	store := NewEnvFileStore(filepath.Join(t.TempDir(), "session.env"))
	require.NoError(t, store.Save(Session{Token: "secret", WalletAddress: "0xabc"}))
	_, ok := store.Load()
	require.True(t, ok)

	assert.NotEqual(t, "secret", os.Getenv(envTokenKey))
}

func TestSQLiteHalfWrittenPairIsAbsent(t *testing.T) {
	db, err := walletstatedb.InitSQLiteDB(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { walletstatedb.Close(db) })

	require.NoError(t, walletstatedb.SetMetadata(db, dbAddressKey, "0xabc"))

	store := NewSQLiteStore(db)
	_, ok := store.Load()
	assert.False(t, ok)
}

func TestOpenSelectsBackend(t *testing.T) {
	dir := t.TempDir()
	s := config.Settings{
		SessionBackend: "file",
		SessionFile:    filepath.Join(dir, "s.env"),
		SessionDBPath:  filepath.Join(dir, "s.db"),
	}

	store, closeFn, err := Open(s)
	require.NoError(t, err)
	assert.IsType(t, &EnvFileStore{}, store)
	require.NoError(t, closeFn())

	s.SessionBackend = "sqlite"
	store, closeFn, err = Open(s)
	require.NoError(t, err)
	assert.IsType(t, &SQLiteStore{}, store)
	require.NoError(t, closeFn())

	s.SessionBackend = "redis"
	_, _, err = Open(s)
	assert.Error(t, err)
}

func TestInspectReadsClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "0xabc",
		ExpiresAt: jwt.NewNumericDate(exp),
	}).SignedString([]byte("any-key"))
	require.NoError(t, err)

	info, err := Inspect(token)
	require.NoError(t, err)
	assert.Equal(t, "0xabc", info.Subject)
	assert.True(t, info.ExpiresAt.Equal(exp))
	assert.False(t, info.Expired(time.Now()))
	assert.True(t, info.Expired(exp.Add(time.Minute)))
}

func TestInspectOpaqueToken(t *testing.T) {
	_, err := Inspect("opaque-session-token")
	assert.Error(t, err)
}
