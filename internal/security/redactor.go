package security

import (
	"regexp"
	"strings"
	"sync"
)

// RedactPlaceholder is the replacement string for redacted secrets.
const RedactPlaceholder = "***REDACTED***"

// secretKeyPattern matches config keys that likely hold secrets.
var secretKeyPattern = regexp.MustCompile(`(?i)(secret|token|pass|api_key|apikey|dsn|credential)`)

// Rule is a redaction pattern. Repl may reference capture groups; an empty
// Repl replaces the whole match with RedactPlaceholder.
type Rule struct {
	Pattern *regexp.Regexp
	Repl    string
}

// Redactor masks known key formats and literal credential values.
// All methods are safe for concurrent use.
type Redactor struct {
	mu       sync.RWMutex
	rules    []Rule
	literals []string
}

// NewRedactor returns a Redactor loaded with DefaultRules.
func NewRedactor() *Redactor {
	return &Redactor{rules: DefaultRules()}
}

// AddRule appends a redaction rule.
func (r *Redactor) AddRule(rule Rule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rules = append(r.rules, rule)
}

// AddLiteral adds a value to redact verbatim. Empty strings are ignored.
func (r *Redactor) AddLiteral(secret string) {
	if secret == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.literals = append(r.literals, secret)
}

// SyncCredentials replaces all literals with the store's current values.
func (r *Redactor) SyncCredentials(store *CredentialStore) {
	values := store.Values()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.literals = values
}

// Redact returns s with every rule match and literal replaced.
func (r *Redactor) Redact(s string) string {
	if s == "" {
		return s
	}

	r.mu.RLock()
	rules := r.rules
	literals := r.literals
	r.mu.RUnlock()

	for _, rule := range rules {
		repl := rule.Repl
		if repl == "" {
			repl = RedactPlaceholder
		}
		s = rule.Pattern.ReplaceAllString(s, repl)
	}
	for _, lit := range literals {
		s = strings.ReplaceAll(s, lit, RedactPlaceholder)
	}
	return s
}

// RedactMap masks, in place, string values under secret-looking keys and
// any value matching a rule or literal. Nested maps and slices are walked.
func (r *Redactor) RedactMap(m map[string]any) {
	for k, v := range m {
		if secretKeyPattern.MatchString(k) {
			if s, ok := v.(string); ok && s != "" {
				m[k] = RedactPlaceholder
				continue
			}
		}
		switch val := v.(type) {
		case map[string]any:
			r.RedactMap(val)
		case []any:
			for _, item := range val {
				if sub, ok := item.(map[string]any); ok {
					r.RedactMap(sub)
				}
			}
		case string:
			m[k] = r.Redact(val)
		}
	}
}

// DefaultRules returns the rules for key formats mobais handles: OpenAI
// keys, bearer tokens, and api keys passed as URL query parameters
// (SerpAPI api_key, OpenWeatherMap appid).
func DefaultRules() []Rule {
	return []Rule{
		{Pattern: regexp.MustCompile(`sk-(proj-)?[a-zA-Z0-9_\-]{20,}`)},
		{Pattern: regexp.MustCompile(`(?i)(bearer )[a-zA-Z0-9._\-]{8,}`), Repl: "${1}" + RedactPlaceholder},
		{Pattern: regexp.MustCompile(`(?i)\b(api_key|apikey|appid)=[^&\s"]+`), Repl: "${1}=" + RedactPlaceholder},
		{Pattern: regexp.MustCompile(`(postgres(?:ql)?://[^:/\s]+:)[^@\s]+@`), Repl: "${1}" + RedactPlaceholder + "@"},
	}
}
