package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/mobais/mobais/internal/config"
	"gopkg.in/yaml.v3"
)

// DefaultStoreModule is loaded when the configuration names no reminder
// store.
const DefaultStoreModule = "reminder.sqlite"

// envModules maps the API key variables read without a configuration file
// to the module they enable.
var envModules = []struct {
	env, module string
}{
	{"OPENAI_API_KEY", "provider.openai"},
	{"WEATHER_API_KEY", "weather.openweathermap"},
	{"SEARCH_API_KEY", "search.serpapi"},
}

// defaultConfig is used when no configuration file exists and none was
// requested explicitly. Modules are enabled for the API keys present in the
// environment; the keys stay as references so expansion fills them in.
func defaultConfig() []byte {
	var b strings.Builder
	b.WriteString("version: \"1\"\n")
	first := true
	for _, m := range envModules {
		if os.Getenv(m.env) == "" {
			continue
		}
		if first {
			b.WriteString("modules:\n")
			first = false
		}
		fmt.Fprintf(&b, "  %s:\n    api_key: \"${%s}\"\n", m.module, m.env)
	}
	return []byte(b.String())
}

// LoadConfig resolves, loads and validates the configuration. An explicit
// path must exist; otherwise a missing file yields the built-in defaults.
// The returned path is where the configuration was (or would be) read from.
func LoadConfig(explicit string) (*config.Config, string, error) {
	path := config.ResolvePath(explicit)

	cfg, err := config.Load(path)
	if err != nil {
		if explicit != "" || !errors.Is(err, fs.ErrNotExist) {
			return nil, path, err
		}
		cfg, err = config.Parse(defaultConfig())
		if err != nil {
			return nil, path, err
		}
	}

	if err := config.Validate(cfg); err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// moduleIDs returns the modules to load: the configured ones plus the
// default reminder store when none is configured and ephemeral is false.
func moduleIDs(cfg *config.Config, ephemeral bool) []string {
	ids := config.Resolve(cfg)
	if ephemeral {
		kept := ids[:0]
		for _, id := range ids {
			if !strings.HasPrefix(id, "reminder.") {
				kept = append(kept, id)
			}
		}
		return kept
	}
	for _, id := range ids {
		if strings.HasPrefix(id, "reminder.") {
			return ids
		}
	}
	return append(ids, DefaultStoreModule)
}

// moduleConfigs copies cfg.Modules, adding an empty mapping for the
// default store so that it is configured like any other module.
func moduleConfigs(cfg *config.Config) map[string]yaml.Node {
	out := make(map[string]yaml.Node, len(cfg.Modules)+1)
	for id, node := range cfg.Modules {
		out[id] = node
	}
	if _, ok := out[DefaultStoreModule]; !ok {
		out[DefaultStoreModule] = yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
	}
	return out
}

// ensureDir creates dir with owner-only permissions.
func ensureDir(dir string) error {
	return os.MkdirAll(dir, 0o700)
}
