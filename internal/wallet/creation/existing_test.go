package creation

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Maphikza/trust-wallet-client.git/internal/api"
	"github.com/Maphikza/trust-wallet-client.git/internal/session"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/werr"
)

func TestImportSuccessRoutesToDashboard(t *testing.T) {
	gw := newFakeGateway()
	store := session.NewMemoryStore()
	im := NewImporter(gw, store)

	route, err := im.Import(context.Background(), "  "+testPhrase+"\n")
	require.NoError(t, err)
	assert.Equal(t, wallet.ToDashboard, route)
	assert.Equal(t, testPhrase, gw.lastPhrase, "trimmed phrase is sent")

	sess, ok := store.Load()
	require.True(t, ok)
	assert.Equal(t, "tok", sess.Token)
}

func TestImportWordCountIsValidatedLocally(t *testing.T) {
	cases := []struct {
		name  string
		input string
		code  string
		msg   string
	}{
		{"empty", "   ", werr.CodeMissingSeedPhrase, MsgEnterSeedPhrase},
		{"eleven", strings.Join(phraseWords()[:11], " "), werr.CodeWordCount, "Seed phrase must contain exactly 12 words (got 11)"},
		{"thirteen", testPhrase + " extra", werr.CodeWordCount, "Seed phrase must contain exactly 12 words (got 13)"},
		{"one", "abandon", werr.CodeWordCount, "Seed phrase must contain exactly 12 words (got 1)"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := newFakeGateway()
			im := NewImporter(gw, session.NewMemoryStore())

			route, err := im.Import(context.Background(), tc.input)
			assert.Equal(t, wallet.Stay, route)
			assert.True(t, werr.IsKind(err, werr.KindValidation))
			assert.Equal(t, tc.code, werr.CodeOf(err))
			assert.Equal(t, tc.msg, werr.MessageOf(err))
			assert.Zero(t, gw.importCalls)
		})
	}
}

func TestImportExtraWhitespaceBetweenWords(t *testing.T) {
	gw := newFakeGateway()
	im := NewImporter(gw, session.NewMemoryStore())

	input := strings.Join(phraseWords(), "  \t ")
	route, err := im.Import(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, wallet.ToDashboard, route)
	assert.Equal(t, 1, gw.importCalls)
}

func TestImportServerMessageIsVerbatim(t *testing.T) {
	gw := newFakeGateway()
	gw.imported = api.Failure[api.SessionGrant]("Invalid seed phrase")
	store := session.NewMemoryStore()
	im := NewImporter(gw, store)

	route, err := im.Import(context.Background(), testPhrase)
	assert.Equal(t, wallet.Stay, route)
	assert.Equal(t, "Invalid seed phrase", werr.MessageOf(err))
	assert.True(t, werr.IsKind(err, werr.KindServer))
	_, ok := store.Load()
	assert.False(t, ok)
}

func TestImportReadBackFailureDoesNotNavigate(t *testing.T) {
	gw := newFakeGateway()
	im := NewImporter(gw, &brokenStore{})

	route, err := im.Import(context.Background(), testPhrase)
	assert.Equal(t, wallet.Stay, route)
	assert.True(t, werr.IsKind(err, werr.KindStorage))
	assert.Equal(t, MsgStoreFailed, werr.MessageOf(err))
}

func TestImportSaveFailure(t *testing.T) {
	gw := newFakeGateway()
	im := NewImporter(gw, &brokenStore{saveErr: errDiskFull})

	route, err := im.Import(context.Background(), testPhrase)
	assert.Equal(t, wallet.Stay, route)
	assert.ErrorIs(t, err, errDiskFull)
}

func TestImportMnemonicCheck(t *testing.T) {
	gw := newFakeGateway()
	im := NewImporter(gw, session.NewMemoryStore(), WithMnemonicCheck(true))

	_, err := im.Import(context.Background(), testPhrase)
	assert.Equal(t, werr.CodeInvalidPhrase, werr.CodeOf(err))
	assert.Zero(t, gw.importCalls)

	route, err := im.Import(context.Background(),
		"abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon abandon about")
	require.NoError(t, err)
	assert.Equal(t, wallet.ToDashboard, route)
}

func TestImportIsSingleFlight(t *testing.T) {
	gw := newFakeGateway()
	gw.gate = make(chan struct{})
	im := NewImporter(gw, session.NewMemoryStore())

	done := make(chan error, 1)
	go func() {
		_, err := im.Import(context.Background(), testPhrase)
		done <- err
	}()
	require.Eventually(t, im.busy.Active, time.Second, time.Millisecond)

	_, err := im.Import(context.Background(), testPhrase)
	assert.ErrorIs(t, err, wallet.ErrBusy)

	close(gw.gate)
	require.NoError(t, <-done)
	assert.Equal(t, 1, gw.importCalls)
}
