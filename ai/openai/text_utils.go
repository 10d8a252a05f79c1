package openai

import "strings"

// scrubString collapses whitespace runs and trims the ends of text before it
// is embedded in a prompt.
func scrubString(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// isLetter returns true if the rune is an ASCII letter.
func isLetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
