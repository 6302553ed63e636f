package wordlist

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFiltersFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	content := "# comment\nApple\n\nno\nriver\nco-op\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	words, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(words) != 2 || words[0] != "apple" || words[1] != "river" {
		t.Fatalf("unexpected words %v", words)
	}
}

func TestLoadMissingFallsBack(t *testing.T) {
	words, err := Load(filepath.Join(t.TempDir(), "missing.txt"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(words) != len(Default()) {
		t.Fatalf("expected default list fallback")
	}
}

func TestLoadRejectsUnusableFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.txt")
	if err := os.WriteFile(path, []byte("a\nbb\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatalf("expected error for list without usable words")
	}
}
