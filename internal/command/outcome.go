package command

// Kind distinguishes handled commands from delegated utterances.
type Kind int

// Outcome kinds.
const (
	// Handled means a structured command ran and Text is the reply.
	Handled Kind = iota + 1
	// Delegated means no command applied; the caller must use the
	// language-model fallback.
	Delegated
)

// String returns the kind name used in logs and JSON.
func (k Kind) String() string {
	switch k {
	case Handled:
		return "handled"
	case Delegated:
		return "delegated"
	default:
		return "unknown"
	}
}

// Outcome is the result of executing a MatchResult.
type Outcome struct {
	Kind Kind
	Text string
}

// HandledOutcome returns a Handled outcome with the given reply text.
func HandledOutcome(text string) Outcome {
	return Outcome{Kind: Handled, Text: text}
}

// DelegatedOutcome returns the Delegated outcome.
func DelegatedOutcome() Outcome {
	return Outcome{Kind: Delegated}
}

// IsDelegated reports whether the caller must fall back to the language model.
func (o Outcome) IsDelegated() bool {
	return o.Kind == Delegated
}
