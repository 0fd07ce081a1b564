package match

import "strings"

// Tokenize splits free text into a set of normalized word tokens:
// lowercased, split on any run of characters outside [a-z0-9+], tokens
// shorter than 2 characters dropped. Empty input yields an empty set.
func Tokenize(text string) map[string]bool {
	tokens := make(map[string]bool)
	var word strings.Builder
	flush := func() {
		w := word.String()
		word.Reset()
		if len(w) >= 2 {
			tokens[w] = true
		}
	}
	for _, r := range strings.ToLower(text) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '+' {
			word.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return tokens
}
