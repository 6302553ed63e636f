package wordlist

// FilterFunc returns true when a word should be kept.
type FilterFunc func(string) bool

// Passphrase keeps lowercase ASCII words between minLen and maxLen letters.
func Passphrase(minLen, maxLen int) FilterFunc {
	return func(word string) bool {
		if len(word) < minLen || len(word) > maxLen {
			return false
		}
		for i := 0; i < len(word); i++ {
			ch := word[i]
			if ch < 'a' || ch > 'z' {
				return false
			}
		}
		return true
	}
}

// Filter returns the words accepted by keep.
func Filter(words []string, keep FilterFunc) []string {
	out := make([]string, 0, len(words))
	for _, w := range words {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}
