// Package wordlist loads passphrase word lists.
package wordlist

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

//go:embed words.txt
var defaultWords string

var passphraseFilter = Passphrase(3, 8)

// Default returns the embedded word list.
func Default() []string {
	words, err := readWords(strings.NewReader(defaultWords))
	if err != nil {
		return nil
	}
	return Filter(words, passphraseFilter)
}

// Load reads the word list at path, falling back to the embedded list when
// path is empty or missing.
func Load(path string) ([]string, error) {
	if path == "" {
		return Default(), nil
	}
	words, err := LoadWords(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}
	words = Filter(words, passphraseFilter)
	if len(words) == 0 {
		return nil, fmt.Errorf("word list %s has no usable words", path)
	}
	return words, nil
}

// LoadWords reads one word per line from the provided file path.
func LoadWords(path string) ([]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only word list.
			_ = cerr
		}
	}()
	return readWords(file)
}

func readWords(r io.Reader) ([]string, error) {
	var words []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		words = append(words, strings.ToLower(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("word list is empty")
	}
	return words, nil
}
