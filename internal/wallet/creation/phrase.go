package creation

import (
	"fmt"
	"strings"

	"github.com/tyler-smith/go-bip39"
)

// PhraseWords is the number of words in a recovery phrase.
const PhraseWords = 12

// Phrase is a 12-word recovery phrase, stored lowercase.
type Phrase [PhraseWords]string

// ParsePhrase splits s on whitespace and requires exactly 12 words.
func ParsePhrase(s string) (Phrase, error) {
	var p Phrase
	words := strings.Fields(s)
	if len(words) != PhraseWords {
		return p, fmt.Errorf("recovery phrase has %d words, want %d", len(words), PhraseWords)
	}
	for i, w := range words {
		p[i] = strings.ToLower(w)
	}
	return p, nil
}

// String joins the words with single spaces.
func (p Phrase) String() string {
	return strings.Join(p[:], " ")
}

func (p Phrase) Words() []string {
	out := make([]string, PhraseWords)
	copy(out, p[:])
	return out
}

// ValidMnemonic reports whether the phrase is a checksummed BIP-39 mnemonic.
func (p Phrase) ValidMnemonic() bool {
	return bip39.IsMnemonicValid(p.String())
}

func (p *Phrase) Wipe() {
	for i := range p {
		p[i] = ""
	}
}
