package assistant

import "testing"

func TestWakeWord_Strip(t *testing.T) {
	w := NewWakeWord("Hey Pratham")

	tests := []struct {
		heard   string
		wantCmd string
		wantOK  bool
	}{
		{"hey pratham what's the weather", "what's the weather", true},
		{"Hey Pratham, Remind me to call Mom", "Remind me to call Mom", true},
		{"okay hey pratham open notes", "open notes", true},
		{"hey pratham", "", true},
		{"hey prat open notes", "", false},
		{"", "", false},
		// Lowercasing changes these runes' byte lengths.
		{"Ⱥ hey pratham open İstanbul", "open İstanbul", true},
		{"İ Hey Pratham call Ⱥnna", "call Ⱥnna", true},
		{"ẞ hey pratham Open Notes", "Open Notes", true},
		{"\xff hey pratham open notes", "open notes", true},
	}
	for _, tt := range tests {
		cmd, ok := w.Strip(tt.heard)
		if cmd != tt.wantCmd || ok != tt.wantOK {
			t.Errorf("Strip(%q) = %q, %v; want %q, %v", tt.heard, cmd, ok, tt.wantCmd, tt.wantOK)
		}
	}
	if w.Phrase() != "hey pratham" {
		t.Errorf("Phrase() = %q", w.Phrase())
	}
}

func TestWakeWord_EmptyPhraseAcceptsEverything(t *testing.T) {
	cmd, ok := NewWakeWord("  ").Strip("  open notes ")
	if !ok || cmd != "open notes" {
		t.Errorf("Strip = %q, %v", cmd, ok)
	}
}
