package intent

// Pattern maps text to an intent. Expr is an RE2 expression searched
// anywhere in the utterance, case-insensitively. Every name in Required must
// be a named capture group (?P<name>...) of Expr.
type Pattern struct {
	Name     Name
	Expr     string
	Required []string
}

// DefaultPatterns returns the built-in table in priority order. The first
// matching pattern wins, so "remind me to open the door" is an open_app
// request. Callers that extend the table must put more specific patterns
// before more general ones.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{
			Name:     SetAlarm,
			Expr:     `set (an )?alarm( for)? (?P<time>.+)`,
			Required: []string{ParamTime},
		},
		{
			Name: Weather,
			Expr: `(what's|what is) the weather( like)?( today)?`,
		},
		{
			Name:     OpenApp,
			Expr:     `open (?P<app>.+)`,
			Required: []string{ParamApp},
		},
		{
			Name:     Reminder,
			Expr:     `(remind me to|set a reminder to) (?P<task>.+)`,
			Required: []string{ParamTask},
		},
		{
			Name:     SearchWeb,
			Expr:     `(search for|look up) (?P<query>.+)`,
			Required: []string{ParamQuery},
		},
	}
}
