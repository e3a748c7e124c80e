package intent

import (
	"fmt"
	"regexp"
	"slices"
	"strings"
)

// Router classifies utterances against a fixed, ordered pattern table.
// It is immutable after construction and safe for concurrent use.
type Router struct {
	matchers []matcher
}

type matcher struct {
	name     Name
	re       *regexp.Regexp
	required []string
}

// NewRouter compiles patterns in the given order.
func NewRouter(patterns []Pattern) (*Router, error) {
	seen := make(map[Name]struct{}, len(patterns))
	matchers := make([]matcher, 0, len(patterns))

	for i, p := range patterns {
		if p.Name == "" || p.Name == General {
			return nil, fmt.Errorf("%w: patterns[%d]: name %q is reserved or empty", ErrInvalidPattern, i, p.Name)
		}
		if _, dup := seen[p.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate pattern name %q", ErrInvalidPattern, p.Name)
		}
		seen[p.Name] = struct{}{}

		re, err := regexp.Compile("(?i)" + p.Expr)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrInvalidPattern, p.Name, err)
		}

		groups := re.SubexpNames()
		for _, param := range p.Required {
			if !slices.Contains(groups, param) {
				return nil, fmt.Errorf("%w: %s: required parameter %q has no named group", ErrInvalidPattern, p.Name, param)
			}
		}

		matchers = append(matchers, matcher{
			name:     p.Name,
			re:       re,
			required: slices.Clone(p.Required),
		})
	}

	return &Router{matchers: matchers}, nil
}

// MustNewRouter is like NewRouter but panics on an invalid table.
func MustNewRouter(patterns []Pattern) *Router {
	r, err := NewRouter(patterns)
	if err != nil {
		panic(err)
	}
	return r
}

// NewDefaultRouter returns a Router over DefaultPatterns.
func NewDefaultRouter() *Router {
	return MustNewRouter(DefaultPatterns())
}

// Classify returns the first pattern that matches text, with its named
// parameters trimmed of surrounding whitespace. A pattern whose required
// parameter is blank after trimming is skipped. Empty text is General.
func (r *Router) Classify(text string) MatchResult {
	if strings.TrimSpace(text) == "" {
		return general()
	}

	for _, m := range r.matchers {
		if params, ok := m.match(text); ok {
			return MatchResult{Intent: m.name, Params: params}
		}
	}
	return general()
}

// Intents returns the pattern names in priority order.
func (r *Router) Intents() []Name {
	names := make([]Name, len(r.matchers))
	for i, m := range r.matchers {
		names[i] = m.name
	}
	return names
}

func (m matcher) match(text string) (map[string]string, bool) {
	sub := m.re.FindStringSubmatch(text)
	if sub == nil {
		return nil, false
	}

	params := make(map[string]string)
	for i, group := range m.re.SubexpNames() {
		if group == "" || i >= len(sub) {
			continue
		}
		if v := strings.TrimSpace(sub[i]); v != "" {
			params[group] = v
		}
	}

	for _, req := range m.required {
		if _, ok := params[req]; !ok {
			return nil, false
		}
	}
	return params, true
}
