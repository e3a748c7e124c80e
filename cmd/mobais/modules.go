package main

// Compiled-in modules. Each registers itself with core in init().
import (
	_ "github.com/mobais/mobais/internal/gateway"
	_ "github.com/mobais/mobais/modules/provider/openai"
	_ "github.com/mobais/mobais/modules/reminder/postgres"
	_ "github.com/mobais/mobais/modules/reminder/sqlite"
	_ "github.com/mobais/mobais/modules/search/serpapi"
	_ "github.com/mobais/mobais/modules/weather/openweathermap"
)
