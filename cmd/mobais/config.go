package main

import (
	"fmt"

	"github.com/mobais/mobais/internal/config"
	"github.com/mobais/mobais/internal/security"
	"github.com/mobais/mobais/pkg/app"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}

	var show bool
	check := &cobra.Command{
		Use:   "check [path]",
		Short: "Validate configuration and provision its modules",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := quietParams(cmd)
			if len(args) == 1 {
				p.ConfigPath = args[0]
			}

			rt, err := app.Build(cmd.Context(), p)
			if err != nil {
				return err
			}
			defer func() { _ = rt.Close(cmd.Context()) }()

			out := cmd.OutOrStdout()
			ids := config.Resolve(rt.Config)
			fmt.Fprintf(out, "Configuration OK: %s (%d modules)\n", rt.ConfigPath, len(ids))
			for _, id := range ids {
				fmt.Fprintf(out, "  %s\n", id)
			}

			if !show {
				return nil
			}
			data, err := redactedConfig(rt.Config, rt.Redactor)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n%s", data)
			return nil
		},
	}
	check.Flags().BoolVar(&show, "show", false, "Print the effective configuration with secrets masked")
	cmd.AddCommand(check)
	return cmd
}

// redactedConfig renders cfg as YAML with credentials masked.
func redactedConfig(cfg *config.Config, r *security.Redactor) ([]byte, error) {
	raw, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, err
	}
	var m map[string]any
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, err
	}
	r.RedactMap(m)
	return yaml.Marshal(m)
}
