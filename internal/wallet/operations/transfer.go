package operations

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/Maphikza/trust-wallet-client.git/internal/api"
	"github.com/Maphikza/trust-wallet-client.git/internal/logger"
	"github.com/Maphikza/trust-wallet-client.git/internal/session"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/werr"
)

const (
	MsgFillAllFields       = "Please fill in all fields"
	MsgInvalidAmount       = "Please enter a valid amount"
	MsgNonPositiveAmount   = "Amount must be greater than zero"
	MsgInsufficientBalance = "Insufficient balance"
	MsgAuthError           = "Authentication error. Please try again."
)

// ErrAlreadySubmitted is returned when Submit is called after a request was filed.
var ErrAlreadySubmitted = errors.New("transfer request already submitted")

type TransferGateway interface {
	RequestTransfer(ctx context.Context, token string, req api.TransferRequest) api.Envelope[api.TransferRecord]
}

// SnapshotSource provides the cached balances a transfer is checked against.
type SnapshotSource interface {
	Snapshot() (api.BalanceSnapshot, bool)
}

// AddressValidator rejects recipient addresses that cannot belong to symbol.
type AddressValidator func(symbol, address string) error

type TransferState int

const (
	TransferForm TransferState = iota
	TransferSubmitted
)

func (s TransferState) String() string {
	if s == TransferSubmitted {
		return "submitted"
	}
	return "form"
}

// TransferInput is what the user typed into the transfer form.
type TransferInput struct {
	ToAddress string
	Amount    string
	Symbol    string
}

// Transfer files a transfer request for manual fulfillment.
type Transfer struct {
	gw       TransferGateway
	store    session.Store
	balances SnapshotSource
	validate AddressValidator

	busy wallet.Busy

	mu      sync.Mutex
	state   TransferState
	record  api.TransferRecord
	message string
}

type TransferOption func(*Transfer)

func WithAddressValidator(fn AddressValidator) TransferOption {
	return func(t *Transfer) { t.validate = fn }
}

func NewTransfer(gw TransferGateway, store session.Store, balances SnapshotSource, opts ...TransferOption) *Transfer {
	t := &Transfer{gw: gw, store: store, balances: balances}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

func (t *Transfer) State() TransferState {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

func (t *Transfer) Record() (api.TransferRecord, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.record, t.state == TransferSubmitted
}

func (t *Transfer) Message() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.message
}

// Reset returns to an empty form.
func (t *Transfer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = TransferForm
	t.record = api.TransferRecord{}
	t.message = ""
}

// Validate runs the local checks in order and returns the parsed request.
// The first failing check wins.
func (t *Transfer) Validate(in TransferInput) (api.TransferRequest, error) {
	to := strings.TrimSpace(in.ToAddress)
	raw := strings.TrimSpace(in.Amount)
	symbol := strings.TrimSpace(in.Symbol)
	if to == "" || raw == "" || symbol == "" {
		return api.TransferRequest{}, werr.Validation(werr.CodeMissingFields, MsgFillAllFields)
	}

	amount, err := decimal.NewFromString(raw)
	if err != nil {
		return api.TransferRequest{}, werr.Validation(werr.CodeInvalidAmount, MsgInvalidAmount)
	}
	// The backend receives a float64; the amount must survive that conversion.
	wire := amount.InexactFloat64()
	if math.IsInf(wire, 0) || math.IsNaN(wire) {
		return api.TransferRequest{}, werr.Validation(werr.CodeInvalidAmount, MsgInvalidAmount)
	}
	if amount.Sign() <= 0 || wire <= 0 {
		return api.TransferRequest{}, werr.Validation(werr.CodeNonPositiveAmount, MsgNonPositiveAmount)
	}

	available := decimal.Zero
	if t.balances != nil {
		if snap, ok := t.balances.Snapshot(); ok {
			if bal, found := snap.Find(symbol); found {
				available = decimal.NewFromFloat(bal.Amount)
				symbol = bal.Symbol
			}
		}
	}
	if amount.GreaterThan(available) {
		return api.TransferRequest{}, werr.Validation(werr.CodeInsufficientBalance, MsgInsufficientBalance)
	}

	if t.validate != nil {
		if err := t.validate(symbol, to); err != nil {
			return api.TransferRequest{}, &werr.Error{
				Kind:    werr.KindValidation,
				Code:    werr.CodeInvalidAddress,
				Message: fmt.Sprintf("Please enter a valid %s address", symbol),
				Cause:   err,
			}
		}
	}

	return api.TransferRequest{ToAddress: to, Amount: wire, Symbol: symbol}, nil
}

// Submit validates in and files the request. On success the flow is
// Submitted and the record is kept for display.
func (t *Transfer) Submit(ctx context.Context, in TransferInput) (api.TransferRecord, error) {
	if t.State() == TransferSubmitted {
		return api.TransferRecord{}, ErrAlreadySubmitted
	}

	req, err := t.Validate(in)
	if err != nil {
		t.setMessage(werr.MessageOf(err))
		return api.TransferRecord{}, err
	}

	sess, ok := t.store.Load()
	if !ok {
		t.setMessage(MsgAuthError)
		return api.TransferRecord{}, werr.Session(MsgAuthError)
	}

	if !t.busy.TryAcquire() {
		return api.TransferRecord{}, wallet.ErrBusy
	}
	defer t.busy.Release()

	env := t.gw.RequestTransfer(ctx, sess.Token, req)

	t.mu.Lock()
	defer t.mu.Unlock()
	if !env.OK() {
		logger.Error("Transfer request failed", "symbol", req.Symbol, "error", env.Message())
		t.message = env.Message()
		return api.TransferRecord{}, wallet.EnvelopeError(env)
	}

	logger.Info("Transfer request filed", "symbol", req.Symbol, "amount", req.Amount)
	t.record = env.Data()
	t.state = TransferSubmitted
	t.message = ""
	return t.record, nil
}

func (t *Transfer) setMessage(msg string) {
	t.mu.Lock()
	t.message = msg
	t.mu.Unlock()
}
