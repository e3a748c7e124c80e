package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/mobais/mobais/internal/assistant"
	"github.com/mobais/mobais/internal/config"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// Reminder store choices offered by the wizard.
const (
	storeSQLite   = "sqlite"
	storePostgres = "postgres"
)

// initAnswers are the choices collected by the setup wizard.
type initAnswers struct {
	Character   string
	WakeWord    string
	Store       string
	PostgresDSN string
	OpenAI      bool
	Weather     bool
	Search      bool
	Gateway     bool
	GatewayBind string
}

func defaultAnswers() initAnswers {
	return initAnswers{
		Character:   config.DefaultCharacter,
		WakeWord:    config.DefaultWakeWord,
		Store:       storeSQLite,
		PostgresDSN: "${MOBAIS_POSTGRES_DSN}",
		OpenAI:      true,
		GatewayBind: "127.0.0.1:8080",
	}
}

func initCmd() *cobra.Command {
	var (
		force        bool
		defaultsOnly bool
	)
	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Create a configuration file interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfgFlag, _ := cmd.Flags().GetString("config")
			path := config.ResolvePath(cfgFlag)
			if len(args) == 1 {
				path = args[0]
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}

			answers := defaultAnswers()
			if !defaultsOnly {
				if err := runWizard(&answers); err != nil {
					if errors.Is(err, huh.ErrUserAborted) {
						fmt.Fprintln(cmd.OutOrStdout(), "Aborted.")
						return nil
					}
					return err
				}
			}

			data, err := renderConfig(answers)
			if err != nil {
				return err
			}
			if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
				return err
			}
			if err := os.WriteFile(path, data, 0o600); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&defaultsOnly, "defaults", false, "Skip the questions and write the defaults")
	return cmd
}

func runWizard(a *initAnswers) error {
	characters := huh.NewOptions(assistant.CharacterNames()...)

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Personality").
				Description("Used whenever the language model answers.").
				Options(characters...).
				Value(&a.Character),
			huh.NewInput().
				Title("Wake word").
				Value(&a.WakeWord).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return errors.New("wake word must not be empty")
					}
					return nil
				}),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Where should reminders be stored?").
				Options(
					huh.NewOption("SQLite file in the data directory", storeSQLite),
					huh.NewOption("PostgreSQL", storePostgres),
				).
				Value(&a.Store),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("PostgreSQL DSN").
				Description("An ${ENV_VAR} reference keeps the password out of the file.").
				Value(&a.PostgresDSN),
		).WithHideFunc(func() bool { return a.Store != storePostgres }),
		huh.NewGroup(
			huh.NewConfirm().
				Title("Answer general questions with OpenAI?").
				Description("Reads the key from $OPENAI_API_KEY.").
				Value(&a.OpenAI),
			huh.NewConfirm().
				Title("Enable the weather module?").
				Description("Reads the key from $WEATHER_API_KEY.").
				Value(&a.Weather),
			huh.NewConfirm().
				Title("Enable the web search module?").
				Description("Reads the key from $SEARCH_API_KEY.").
				Value(&a.Search),
			huh.NewConfirm().
				Title("Serve the HTTP API?").
				Value(&a.Gateway),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("HTTP bind address").
				Value(&a.GatewayBind),
		).WithHideFunc(func() bool { return !a.Gateway }),
	).Run()
}

// renderConfig turns wizard answers into a configuration file. Secrets are
// always written as environment references.
func renderConfig(a initAnswers) ([]byte, error) {
	doc := struct {
		Version   string                    `yaml:"version"`
		Assistant config.AssistantConfig    `yaml:"assistant"`
		Logging   config.LoggingConfig      `yaml:"logging"`
		Modules   map[string]map[string]any `yaml:"modules"`
	}{
		Version: "1",
		Assistant: config.AssistantConfig{
			Character: a.Character,
			WakeWord:  strings.TrimSpace(a.WakeWord),
		},
		Logging: config.LoggingConfig{Level: config.DefaultLogLevel},
		Modules: map[string]map[string]any{},
	}

	switch a.Store {
	case storePostgres:
		doc.Modules["reminder.postgres"] = map[string]any{"dsn": a.PostgresDSN}
	default:
		doc.Modules["reminder.sqlite"] = map[string]any{"wal": true}
	}
	if a.OpenAI {
		doc.Modules["provider.openai"] = map[string]any{"api_key": "${OPENAI_API_KEY}", "model": "gpt-4"}
	}
	if a.Weather {
		doc.Modules["weather.openweathermap"] = map[string]any{"api_key": "${WEATHER_API_KEY:-}", "city": "London"}
	}
	if a.Search {
		doc.Modules["search.serpapi"] = map[string]any{"api_key": "${SEARCH_API_KEY:-}"}
	}
	if a.Gateway {
		doc.Modules["gateway.http"] = map[string]any{
			"bind": a.GatewayBind,
			"auth": map[string]any{"bearer_token": "${MOBAIS_GATEWAY_TOKEN:-}"},
		}
	}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("rendering config: %w", err)
	}
	return append([]byte("# Generated by mobais init.\n"), data...), nil
}
