// Package main is the entry point for the mobais CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mobais/mobais/internal/core"
	"github.com/mobais/mobais/pkg/app"
	"github.com/spf13/cobra"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "mobais",
		Short:         "A conversational assistant that routes commands and remembers reminders",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("config", "c", "", "Path to configuration file")
	root.PersistentFlags().String("data-dir", "", "Directory for persistent data")
	root.PersistentFlags().String("log-level", "", "Override logging.level (debug, info, warn, error)")

	root.AddCommand(
		versionCmd(),
		startCmd(),
		askCmd(),
		chatCmd(),
		remindersCmd(),
		configCmd(),
		initCmd(),
		mcpCmd(),
		serviceCmd(),
	)
	return root
}

// paramsFrom reads the persistent flags shared by every command that
// builds a runtime.
func paramsFrom(cmd *cobra.Command) app.Params {
	cfgPath, _ := cmd.Flags().GetString("config")
	dataDir, _ := cmd.Flags().GetString("data-dir")
	level, _ := cmd.Flags().GetString("log-level")
	return app.Params{
		ConfigPath: cfgPath,
		DataDir:    dataDir,
		LogLevel:   level,
		LogOutput:  cmd.ErrOrStderr(),
		Version:    version,
		Commit:     commit,
		Date:       date,
	}
}

// quietParams is paramsFrom for interactive commands: unless asked
// otherwise only warnings reach the terminal.
func quietParams(cmd *cobra.Command) app.Params {
	p := paramsFrom(cmd)
	if p.LogLevel == "" {
		p.LogLevel = "warn"
	}
	return p
}

// withRuntime builds a runtime, runs fn and closes it.
func withRuntime(cmd *cobra.Command, p app.Params, fn func(ctx context.Context, rt *app.Runtime) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	rt, err := app.Build(ctx, p)
	if err != nil {
		return err
	}
	defer func() { _ = rt.Close(context.WithoutCancel(ctx)) }()
	return fn(ctx, rt)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version and compiled modules",
		Run: func(cmd *cobra.Command, _ []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "mobais %s (commit: %s, built: %s)\n", version, commit, date)
			mods := core.GetModules()
			if len(mods) == 0 {
				fmt.Fprintln(out, "\nNo compiled modules.")
				return
			}
			fmt.Fprintln(out, "\nCompiled modules:")
			for _, mod := range mods {
				fmt.Fprintf(out, "  %s\n", mod.ID)
			}
		},
	}
}

func startCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start mobais with all configured modules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			return app.Run(ctx, paramsFrom(cmd))
		},
	}
}
