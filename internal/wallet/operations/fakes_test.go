package operations

import (
	"context"
	"sync"

	"github.com/Maphikza/trust-wallet-client.git/internal/api"
	"github.com/Maphikza/trust-wallet-client.git/internal/session"
)

var testSession = session.Session{Token: "tok", WalletAddress: "0xabc"}

type fakeBalances struct {
	mu       sync.Mutex
	calls    int
	address  string
	token    string
	response api.Envelope[api.BalanceSnapshot]
	started  chan struct{}
	gate     chan struct{}
}

func (f *fakeBalances) GetBalances(ctx context.Context, address, token string) api.Envelope[api.BalanceSnapshot] {
	f.mu.Lock()
	f.calls++
	f.address, f.token = address, token
	resp := f.response
	f.mu.Unlock()
	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.gate != nil {
		<-f.gate
	}
	return resp
}

func (f *fakeBalances) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeTransfers struct {
	calls    int
	token    string
	last     api.TransferRequest
	response api.Envelope[api.TransferRecord]
}

func (f *fakeTransfers) RequestTransfer(ctx context.Context, token string, req api.TransferRequest) api.Envelope[api.TransferRecord] {
	f.calls++
	f.token = token
	f.last = req
	return f.response
}

type staticSnapshot struct {
	snap api.BalanceSnapshot
	ok   bool
}

func (s staticSnapshot) Snapshot() (api.BalanceSnapshot, bool) { return s.snap, s.ok }

func ethSnapshot(amount float64) staticSnapshot {
	return staticSnapshot{ok: true, snap: api.BalanceSnapshot{
		Balances:   []api.CryptoBalance{{Symbol: "ETH", Amount: amount, PriceUsd: 2000, Value: amount * 2000}},
		TotalValue: amount * 2000,
	}}
}

func loggedIn() *session.MemoryStore {
	s := session.NewMemoryStore()
	s.Save(testSession)
	return s
}
