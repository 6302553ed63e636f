package passgen

import (
	"strings"
	"testing"
	"unicode"
)

func TestPassphraseShape(t *testing.T) {
	g := NewSeeded(42)
	words := []string{"apple", "river", "stone"}
	opts := DefaultOptions()
	pass := g.Passphrase(words, opts)

	symbol := []rune(pass)[len([]rune(pass))-1]
	if !strings.ContainsRune(DefaultSymbols, symbol) {
		t.Fatalf("expected trailing symbol in %q", pass)
	}
	body := strings.TrimRightFunc(pass[:len(pass)-1], unicode.IsDigit)
	if len(pass)-1-len(body) != opts.Digits {
		t.Fatalf("expected %d digits in %q", opts.Digits, pass)
	}
	parts := strings.Split(body, opts.Separator)
	if len(parts) != opts.Words {
		t.Fatalf("expected %d words in %q", opts.Words, pass)
	}
	for _, p := range parts {
		found := false
		for _, w := range words {
			if strings.EqualFold(p, w) {
				found = true
			}
		}
		if !found {
			t.Fatalf("unexpected word %q in %q", p, pass)
		}
	}
}

func TestPassphraseDeterministic(t *testing.T) {
	words := []string{"apple", "river", "stone", "cloud"}
	a := NewSeeded(7).Passphrase(words, DefaultOptions())
	b := NewSeeded(7).Passphrase(words, DefaultOptions())
	if a != b {
		t.Fatalf("expected same passphrase for same seed, got %q and %q", a, b)
	}
}

func TestPassphraseNoCaps(t *testing.T) {
	opts := DefaultOptions()
	opts.CapsPct = 0
	opts.Digits = 0
	opts.Symbols = nil
	pass := NewSeeded(1).Passphrase([]string{"lower"}, opts)
	if pass != "lower-lower-lower" {
		t.Fatalf("unexpected passphrase %q", pass)
	}
}

func TestPassphraseEmptyWords(t *testing.T) {
	if got := NewSeeded(1).Passphrase(nil, DefaultOptions()); got != "" {
		t.Fatalf("expected empty passphrase, got %q", got)
	}
}
