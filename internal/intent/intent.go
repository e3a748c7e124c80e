// Package intent classifies free-text utterances into structured commands
// using an ordered table of case-insensitive patterns.
package intent

// Name identifies a category of user request.
type Name string

// Intent names recognized by the default pattern table.
const (
	SetAlarm  Name = "set_alarm"
	Weather   Name = "weather"
	OpenApp   Name = "open_app"
	Reminder  Name = "reminder"
	SearchWeb Name = "search_web"

	// General is the sentinel for utterances no pattern matched. It is never
	// a pattern name.
	General Name = "general"
)

// Parameter names extracted by the default pattern table.
const (
	ParamTime  = "time"
	ParamApp   = "app"
	ParamTask  = "task"
	ParamQuery = "query"
)

// MatchResult is the outcome of classifying one utterance.
// Intent is General if and only if no pattern matched; Params is then empty.
type MatchResult struct {
	Intent Name              `json:"intent"`
	Params map[string]string `json:"parameters"`
}

// IsGeneral reports whether the utterance fell through every pattern.
func (r MatchResult) IsGeneral() bool {
	return r.Intent == General
}

// Param returns the named parameter and whether it was extracted.
func (r MatchResult) Param(name string) (string, bool) {
	v, ok := r.Params[name]
	return v, ok
}

func general() MatchResult {
	return MatchResult{Intent: General, Params: map[string]string{}}
}
