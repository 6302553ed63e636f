// Package passgen builds practice passphrases from a word list.
package passgen

import (
	"math/rand"
	"strings"
	"time"
	"unicode"
)

// DefaultSymbols are appended to generated passphrases.
const DefaultSymbols = "!@#$%&*?"

// Options control passphrase shape.
type Options struct {
	Words     int
	CapsPct   float64
	Separator string
	Digits    int
	Symbols   []rune
}

// DefaultOptions returns three capitalized-or-not words, two digits and a symbol.
func DefaultOptions() Options {
	return Options{
		Words:     3,
		CapsPct:   0.5,
		Separator: "-",
		Digits:    2,
		Symbols:   []rune(DefaultSymbols),
	}
}

// Generator produces randomized passphrases.
type Generator struct {
	rnd *rand.Rand
}

// New returns a Generator seeded with the current time.
func New() *Generator {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a deterministic Generator.
func NewSeeded(seed int64) *Generator {
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Passphrase joins random words and appends digits and a symbol. It returns
// an empty string when words is empty.
func (g *Generator) Passphrase(words []string, opts Options) string {
	if len(words) == 0 || opts.Words <= 0 {
		return ""
	}
	parts := make([]string, 0, opts.Words)
	for i := 0; i < opts.Words; i++ {
		word := words[g.rnd.Intn(len(words))]
		parts = append(parts, applyCaps(g.rnd, word, opts.CapsPct))
	}
	var b strings.Builder
	b.WriteString(strings.Join(parts, opts.Separator))
	for i := 0; i < opts.Digits; i++ {
		b.WriteByte(byte('0' + g.rnd.Intn(10)))
	}
	if len(opts.Symbols) > 0 {
		b.WriteRune(opts.Symbols[g.rnd.Intn(len(opts.Symbols))])
	}
	return b.String()
}

func applyCaps(rnd *rand.Rand, word string, capsPct float64) string {
	if capsPct <= 0 || rnd.Float64() > capsPct {
		return word
	}
	runes := []rune(word)
	if len(runes) == 0 {
		return word
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}
