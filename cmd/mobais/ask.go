package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/mobais/mobais/pkg/app"
	"github.com/spf13/cobra"
)

func askCmd() *cobra.Command {
	var (
		character string
		asJSON    bool
		ephemeral bool
	)
	cmd := &cobra.Command{
		Use:   "ask <utterance...>",
		Short: "Answer a single utterance and exit",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p := quietParams(cmd)
			p.Ephemeral = ephemeral
			return withRuntime(cmd, p, func(ctx context.Context, rt *app.Runtime) error {
				return askOnce(ctx, cmd.OutOrStdout(), rt.Assistant, strings.Join(args, " "), character, asJSON)
			})
		},
	}
	cmd.Flags().StringVar(&character, "character", "", "Personality for this answer (default from config)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the whole turn as JSON")
	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "Keep reminders in memory only")
	return cmd
}

// askOnce prints the reply to utterance, then returns the command error, if
// any, so a reminder that was not saved still exits non-zero.
func askOnce(ctx context.Context, out io.Writer, r turnResponder, utterance, character string, asJSON bool) error {
	turn, err := r.RespondAs(ctx, utterance, character)
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(turn); encErr != nil {
			return encErr
		}
	} else {
		fmt.Fprintln(out, turn.Reply)
	}
	return err
}
