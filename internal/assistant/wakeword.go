package assistant

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Phrases spoken around wake-word activation.
const (
	WakePrompt   = "Yes? How can I help you?"
	GreetingTmpl = "Hello! I am your %s assistant. Say '%s' to start."
)

// WakeWord gates transcribed speech: only utterances containing the phrase
// are treated as commands.
type WakeWord struct {
	phrase string
}

// NewWakeWord returns a gate for phrase, compared case-insensitively.
func NewWakeWord(phrase string) WakeWord {
	return WakeWord{phrase: strings.ToLower(strings.TrimSpace(phrase))}
}

// Phrase returns the normalized wake phrase.
func (w WakeWord) Phrase() string { return w.phrase }

// Strip reports whether heard contains the wake word and returns whatever
// follows its first occurrence, trimmed of spaces and separating
// punctuation. An empty command with ok true means the user only said the
// wake word and should be prompted.
func (w WakeWord) Strip(heard string) (command string, ok bool) {
	if w.phrase == "" {
		return strings.TrimSpace(heard), true
	}
	lowered, ends := lowerMapped(heard)
	i := strings.Index(lowered, w.phrase)
	if i < 0 {
		return "", false
	}
	rest := heard[ends[i+len(w.phrase)-1]:]
	return strings.TrimLeft(strings.TrimSpace(rest), ",.!?:; "), true
}

// lowerMapped lowercases s rune by rune. ends[k] is the byte offset in s
// just past the rune that produced byte k of the lowered string, since
// lowering can change a rune's encoded length.
func lowerMapped(s string) (string, []int) {
	var b strings.Builder
	b.Grow(len(s))
	ends := make([]int, 0, len(s))
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		n, _ := b.WriteRune(unicode.ToLower(r))
		for range n {
			ends = append(ends, i+size)
		}
		i += size
	}
	return b.String(), ends
}
