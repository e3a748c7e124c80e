package main

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/mobais/mobais/internal/reminder"
	"github.com/mobais/mobais/pkg/app"
	"github.com/spf13/cobra"
)

func remindersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reminders",
		Short: "Inspect stored reminders",
	}

	var asJSON bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List reminders in the order they were set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withRuntime(cmd, quietParams(cmd), func(ctx context.Context, rt *app.Runtime) error {
				items, err := rt.Assistant.Reminders(ctx)
				if err != nil {
					return err
				}
				if asJSON {
					if items == nil {
						items = []reminder.Reminder{}
					}
					enc := json.NewEncoder(cmd.OutOrStdout())
					enc.SetIndent("", "  ")
					return enc.Encode(items)
				}
				if len(items) == 0 {
					fmt.Fprintln(cmd.OutOrStdout(), "No reminders.")
					return nil
				}
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "ID\tSET AT\tTASK")
				for _, r := range items {
					fmt.Fprintf(tw, "%d\t%s\t%s\n", r.ID, r.Time, r.Task)
				}
				return tw.Flush()
			})
		},
	}
	list.Flags().BoolVar(&asJSON, "json", false, "Print reminders as JSON")
	cmd.AddCommand(list)
	return cmd
}
