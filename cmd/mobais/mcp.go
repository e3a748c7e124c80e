package main

import (
	"context"
	"os"

	"github.com/mobais/mobais/internal/mcpserver"
	"github.com/mobais/mobais/pkg/app"
	"github.com/spf13/cobra"
)

func mcpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mcp",
		Short: "Serve the assistant as MCP tools over stdio",
		Long: "Serve the classify, respond and list_reminders tools over the Model Context\n" +
			"Protocol on stdin/stdout. Logs go to stderr.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// stdout carries the protocol.
			p := quietParams(cmd)
			p.LogOutput = os.Stderr
			return withRuntime(cmd, p, func(ctx context.Context, rt *app.Runtime) error {
				srv := mcpserver.New(rt.Assistant, version, rt.Logger.With("component", "mcp"))
				return srv.Serve(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
			})
		},
	}
}
