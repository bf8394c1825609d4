package creation

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/Maphikza/trust-wallet-client.git/internal/api"
	"github.com/Maphikza/trust-wallet-client.git/internal/session"
)

const testPhrase = "w0 w1 w2 w3 w4 w5 w6 w7 w8 w9 w10 w11"

type fixedSource []int

func (f fixedSource) Draw(n, k int) []int { return f[:k] }

type fakeGateway struct {
	mu sync.Mutex

	generate api.Envelope[api.GeneratedWallet]
	verify   api.Envelope[api.SessionGrant]
	imported api.Envelope[api.SessionGrant]

	generateCalls int
	verifyCalls   int
	importCalls   int
	lastPhrase    string

	// gate, when set, blocks calls until closed
	gate chan struct{}
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		generate: api.Success(api.GeneratedWallet{SeedPhrase: testPhrase, WalletAddress: "0xabc"}),
		verify:   api.Success(api.SessionGrant{Token: "tok", WalletAddress: "0xabc"}),
		imported: api.Success(api.SessionGrant{Token: "tok", WalletAddress: "0xabc"}),
	}
}

func (f *fakeGateway) wait() {
	if f.gate != nil {
		<-f.gate
	}
}

func (f *fakeGateway) GenerateWallet(ctx context.Context) api.Envelope[api.GeneratedWallet] {
	f.mu.Lock()
	f.generateCalls++
	f.mu.Unlock()
	f.wait()
	return f.generate
}

func (f *fakeGateway) VerifyWallet(ctx context.Context, seedPhrase string) api.Envelope[api.SessionGrant] {
	f.mu.Lock()
	f.verifyCalls++
	f.lastPhrase = seedPhrase
	f.mu.Unlock()
	f.wait()
	return f.verify
}

func (f *fakeGateway) ImportWallet(ctx context.Context, seedPhrase string) api.Envelope[api.SessionGrant] {
	f.mu.Lock()
	f.importCalls++
	f.lastPhrase = seedPhrase
	f.mu.Unlock()
	f.wait()
	return f.imported
}

// brokenStore accepts writes but never reads them back.
type brokenStore struct {
	saveErr error
}

func (b *brokenStore) Save(session.Session) error   { return b.saveErr }
func (b *brokenStore) Load() (session.Session, bool) { return session.Session{}, false }
func (b *brokenStore) Clear() error                  { return nil }

var errDiskFull = errors.New("disk full")

func phraseWords() []string {
	return strings.Fields(testPhrase)
}
