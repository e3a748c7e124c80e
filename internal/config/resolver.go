package config

import (
	"os"
	"path/filepath"
	"slices"
)

// FileName is the configuration file name looked up by ResolvePath.
const FileName = "mobais.yaml"

// Resolve returns a sorted list of module IDs from the configuration.
// The deterministic order ensures consistent module loading.
func Resolve(cfg *Config) []string {
	ids := make([]string, 0, len(cfg.Modules))
	for id := range cfg.Modules {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// ResolvePath returns explicit if set, otherwise the first existing file
// among $XDG_CONFIG_HOME/mobais, ~/.config/mobais and the working
// directory. When none exists the XDG location is returned so callers
// can report or create it.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	candidates := candidatePaths()
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return candidates[0]
}

func candidatePaths() []string {
	var paths []string
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		paths = append(paths, filepath.Join(xdg, "mobais", FileName))
	}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".config", "mobais", FileName))
	}
	return append(paths, FileName)
}

// DefaultDataDir returns $XDG_DATA_HOME/mobais or ~/.local/share/mobais.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "mobais")
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".local", "share", "mobais")
	}
	return ".mobais"
}
