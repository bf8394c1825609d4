package creation

import (
	crand "crypto/rand"
	"math/rand/v2"
	"strings"
	"sync"

	"golang.org/x/exp/slices"
)

// ChallengeWords is how many phrase positions the user must re-enter.
const ChallengeWords = 3

// ChallengeSource draws k distinct values from [0,n).
type ChallengeSource interface {
	Draw(n, k int) []int
}

// RandSource draws with a partial Fisher-Yates shuffle, so every value is
// picked without replacement in exactly k steps.
type RandSource struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func NewRandSource(rng *rand.Rand) *RandSource {
	return &RandSource{rng: rng}
}

// NewSecureSource seeds a ChaCha8 generator from crypto/rand.
func NewSecureSource() *RandSource {
	var seed [32]byte
	if _, err := crand.Read(seed[:]); err != nil {
		panic("creation: crypto/rand unavailable: " + err.Error())
	}
	return NewRandSource(rand.New(rand.NewChaCha8(seed)))
}

func (s *RandSource) Draw(n, k int) []int {
	s.mu.Lock()
	defer s.mu.Unlock()

	pool := make([]int, n)
	for i := range pool {
		pool[i] = i
	}
	for i := 0; i < k; i++ {
		j := i + s.rng.IntN(n-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}

// Challenge is the fixed set of positions the user must re-enter to prove
// they backed up the phrase. It never changes after construction.
type Challenge struct {
	positions [ChallengeWords]int
}

// NewChallenge draws the positions once and sorts them ascending.
func NewChallenge(src ChallengeSource) Challenge {
	drawn := src.Draw(PhraseWords, ChallengeWords)
	picked := make([]int, ChallengeWords)
	copy(picked, drawn)
	slices.Sort(picked)

	var c Challenge
	copy(c.positions[:], picked)
	return c
}

func (c Challenge) Positions() [ChallengeWords]int {
	return c.positions
}

func (c Challenge) Expected(p Phrase) [ChallengeWords]string {
	var out [ChallengeWords]string
	for i, pos := range c.positions {
		out[i] = p[pos]
	}
	return out
}

// Matches compares trimmed, case-insensitive words slot by slot.
func (c Challenge) Matches(p Phrase, words [ChallengeWords]string) bool {
	expected := c.Expected(p)
	for i := range expected {
		if normalizeWord(words[i]) != normalizeWord(expected[i]) {
			return false
		}
	}
	return true
}

func normalizeWord(w string) string {
	return strings.ToLower(strings.TrimSpace(w))
}
