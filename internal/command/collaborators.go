package command

import "context"

// Service names under which collaborator modules publish themselves.
const (
	WeatherService = "collaborator.weather"
	SearchService  = "collaborator.search"
)

// WeatherReporter produces a human-readable weather sentence. It never fails;
// missing configuration and unreachable backends are reported in the text.
type WeatherReporter interface {
	Weather(ctx context.Context) string
}

// WebSearcher answers a query with a human-readable result. Same no-fail
// contract as WeatherReporter.
type WebSearcher interface {
	Search(ctx context.Context, query string) string
}

// WeatherFunc adapts a function to WeatherReporter.
type WeatherFunc func(ctx context.Context) string

// Weather implements WeatherReporter.
func (f WeatherFunc) Weather(ctx context.Context) string { return f(ctx) }

// SearchFunc adapts a function to WebSearcher.
type SearchFunc func(ctx context.Context, query string) string

// Search implements WebSearcher.
func (f SearchFunc) Search(ctx context.Context, query string) string { return f(ctx, query) }
