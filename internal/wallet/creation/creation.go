package creation

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/Maphikza/trust-wallet-client.git/internal/api"
	"github.com/Maphikza/trust-wallet-client.git/internal/logger"
	"github.com/Maphikza/trust-wallet-client.git/internal/session"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet"
	"github.com/Maphikza/trust-wallet-client.git/internal/wallet/werr"
)

const (
	MsgIncorrectWords   = "Incorrect words entered. Please try again."
	MsgIncompleteWords  = "Please enter all 3 verification words"
	MsgTermsRequired    = "Please accept the terms to continue"
	MsgBackupRequired   = "Please reveal your recovery phrase and confirm you have saved it"
	MsgStoreFailed      = "Failed to store wallet information. Please try again."
	MsgInvalidGenerated = "Failed to generate wallet"
)

// TermsOfUse lists what the user agrees to before a wallet is generated.
var TermsOfUse = []string{
	"Securely store your recovery phrase",
	"Take full responsibility for your funds",
	"Understand that lost recovery phrases cannot be recovered",
	"Accept that Trust Wallet cannot recover your wallet",
}

// Gateway is the part of the backend the create flow needs.
type Gateway interface {
	GenerateWallet(ctx context.Context) api.Envelope[api.GeneratedWallet]
	VerifyWallet(ctx context.Context, seedPhrase string) api.Envelope[api.SessionGrant]
}

// Flow drives wallet creation from the welcome screen to an established
// session. The phrase lives only inside the Flow and is wiped on Close.
type Flow struct {
	gw     Gateway
	store  session.Store
	source ChallengeSource

	busy  wallet.Busy
	fence wallet.Fence

	mu            sync.Mutex
	state         State
	termsAccepted bool
	revealed      bool
	confirmed     bool
	phrase        Phrase
	address       string
	challenge     Challenge
	words         [ChallengeWords]string
	message       string
}

type FlowOption func(*Flow)

// WithChallengeSource replaces the secure random source.
func WithChallengeSource(src ChallengeSource) FlowOption {
	return func(f *Flow) { f.source = src }
}

func NewFlow(gw Gateway, store session.Store, opts ...FlowOption) *Flow {
	f := &Flow{gw: gw, store: store, state: Welcome}
	for _, opt := range opts {
		opt(f)
	}
	if f.source == nil {
		f.source = NewSecureSource()
	}
	return f
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Message is the error to show on the current step, if any.
func (f *Flow) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

func (f *Flow) Address() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.address
}

func (f *Flow) Revealed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.revealed
}

// Phrase is only readable on the display step after the user revealed it.
func (f *Flow) Phrase() (Phrase, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != SeedPhraseDisplay || !f.revealed {
		return Phrase{}, false
	}
	return f.phrase, true
}

// Challenge returns the positions to re-enter once a phrase exists.
func (f *Flow) Challenge() (Challenge, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != SeedPhraseDisplay && f.state != Verify {
		return Challenge{}, false
	}
	return f.challenge, true
}

func (f *Flow) Words() [ChallengeWords]string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.words
}

func (f *Flow) Start() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.apply(EventStart)
}

func (f *Flow) AcceptTerms(accepted bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Terms {
		return fmt.Errorf("cannot accept terms in state %s", f.state)
	}
	f.termsAccepted = accepted
	return nil
}

// Create asks the backend for a new phrase. A failure sends the flow back
// to Welcome carrying the error.
func (f *Flow) Create(ctx context.Context) error {
	f.mu.Lock()
	if f.state != Terms {
		defer f.mu.Unlock()
		return fmt.Errorf("cannot create a wallet in state %s", f.state)
	}
	if !f.termsAccepted {
		f.mu.Unlock()
		return werr.Validation(werr.CodeTermsNotAccepted, MsgTermsRequired)
	}
	if !f.busy.TryAcquire() {
		f.mu.Unlock()
		return wallet.ErrBusy
	}
	defer f.busy.Release()

	if err := f.apply(EventCreate); err != nil {
		f.mu.Unlock()
		return err
	}
	f.message = ""
	ticket := f.fence.Next()
	f.mu.Unlock()

	env := f.gw.GenerateWallet(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.fence.Latest(ticket) {
		return wallet.ErrStale
	}

	if !env.OK() {
		logger.Error("Wallet generation failed", "error", env.Message())
		f.message = env.Message()
		f.apply(EventGenerateFailed)
		return wallet.EnvelopeError(env)
	}

	generated := env.Data()
	phrase, err := ParsePhrase(generated.SeedPhrase)
	if err != nil || strings.TrimSpace(generated.WalletAddress) == "" {
		logger.Error("Backend returned an unusable wallet", "error", err)
		f.message = MsgInvalidGenerated
		f.apply(EventGenerateFailed)
		return werr.Server(MsgInvalidGenerated)
	}

	f.phrase = phrase
	f.address = generated.WalletAddress
	f.challenge = NewChallenge(f.source)
	f.words = [ChallengeWords]string{}
	f.revealed = false
	f.confirmed = false
	return f.apply(EventGenerated)
}

// Reveal records that the user unblurred the phrase.
func (f *Flow) Reveal() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != SeedPhraseDisplay {
		return fmt.Errorf("cannot reveal the phrase in state %s", f.state)
	}
	f.revealed = true
	return nil
}

func (f *Flow) ConfirmBackup(confirmed bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != SeedPhraseDisplay {
		return fmt.Errorf("cannot confirm the backup in state %s", f.state)
	}
	f.confirmed = confirmed
	return nil
}

// Continue moves to verification once the phrase was revealed and the
// backup confirmed.
func (f *Flow) Continue() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != SeedPhraseDisplay {
		return fmt.Errorf("cannot continue in state %s", f.state)
	}
	if !f.revealed || !f.confirmed {
		return werr.Validation(werr.CodeBackupUnconfirmed, MsgBackupRequired)
	}
	f.message = ""
	return f.apply(EventContinue)
}

// SetWord stores the user's word for challenge slot (0-based).
func (f *Flow) SetWord(slot int, word string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state != Verify {
		return fmt.Errorf("cannot enter words in state %s", f.state)
	}
	if slot < 0 || slot >= ChallengeWords {
		return fmt.Errorf("slot %d out of range", slot)
	}
	f.words[slot] = normalizeWord(word)
	return nil
}

// Verify checks the entered words locally and only then asks the backend
// to verify the full phrase. A local mismatch never reaches the network.
func (f *Flow) Verify(ctx context.Context) error {
	f.mu.Lock()
	if f.state != Verify {
		defer f.mu.Unlock()
		return fmt.Errorf("cannot verify in state %s", f.state)
	}
	for _, w := range f.words {
		if w == "" {
			f.mu.Unlock()
			return werr.Validation(werr.CodeIncompleteWords, MsgIncompleteWords)
		}
	}
	if !f.challenge.Matches(f.phrase, f.words) {
		f.words = [ChallengeWords]string{}
		f.message = MsgIncorrectWords
		f.mu.Unlock()
		return werr.Validation(werr.CodeWordsMismatch, MsgIncorrectWords)
	}
	if !f.busy.TryAcquire() {
		f.mu.Unlock()
		return wallet.ErrBusy
	}
	defer f.busy.Release()

	f.message = ""
	phrase := f.phrase.String()
	ticket := f.fence.Next()
	f.mu.Unlock()

	env := f.gw.VerifyWallet(ctx, phrase)

	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.fence.Latest(ticket) {
		return wallet.ErrStale
	}

	if !env.OK() {
		f.message = env.Message()
		return wallet.EnvelopeError(env)
	}

	grant := env.Data()
	address := grant.WalletAddress
	if address == "" {
		address = f.address
	}
	if err := f.store.Save(session.Session{Token: grant.Token, WalletAddress: address}); err != nil {
		logger.Error("Saving session failed", "error", err)
		f.message = MsgStoreFailed
		return werr.Storage(MsgStoreFailed, err)
	}

	logger.Info("Wallet verified", "address", address)
	f.address = address
	return f.apply(EventVerified)
}

// Close ends the attempt and wipes the phrase. It returns ToDashboard when
// the wallet was confirmed. Any response still in flight is discarded.
func (f *Flow) Close() wallet.Route {
	f.mu.Lock()
	defer f.mu.Unlock()

	route := wallet.Stay
	if f.state == Confirmed {
		route = wallet.ToDashboard
	}

	f.fence.Next()
	f.phrase.Wipe()
	f.words = [ChallengeWords]string{}
	f.challenge = Challenge{}
	f.address = ""
	f.message = ""
	f.termsAccepted = false
	f.revealed = false
	f.confirmed = false
	f.state = Welcome
	return route
}

func (f *Flow) apply(ev Event) error {
	next, err := transition(f.state, ev)
	if err != nil {
		return err
	}
	logger.Debug("Onboarding transition", "from", f.state, "event", ev, "to", next)
	f.state = next
	return nil
}
