// Package command executes classified intents. Each intent maps to one
// Command in a dispatch table; unmatched utterances are delegated back to
// the caller.
package command

import (
	"context"
	"fmt"
	"slices"

	"github.com/mobais/mobais/internal/intent"
)

// RunFunc performs a command with its validated parameters.
type RunFunc func(ctx context.Context, params map[string]string) (string, error)

// Command is one dispatch table entry.
type Command struct {
	Intent   intent.Name
	Required []string
	Run      RunFunc
}

// Executor dispatches match results to commands. It is immutable after
// construction and safe for concurrent use when its commands are.
type Executor struct {
	commands map[intent.Name]Command
}

// NewExecutor builds an executor from a command table.
func NewExecutor(commands ...Command) (*Executor, error) {
	table := make(map[intent.Name]Command, len(commands))
	for _, c := range commands {
		if c.Intent == "" || c.Intent == intent.General {
			return nil, fmt.Errorf("command: intent %q cannot have a command", c.Intent)
		}
		if c.Run == nil {
			return nil, fmt.Errorf("command: %s: run function is nil", c.Intent)
		}
		if _, dup := table[c.Intent]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCommand, c.Intent)
		}
		c.Required = slices.Clone(c.Required)
		table[c.Intent] = c
	}
	return &Executor{commands: table}, nil
}

// Execute runs the command for result. General results are Delegated
// without side effects.
func (e *Executor) Execute(ctx context.Context, result intent.MatchResult) (Outcome, error) {
	if result.IsGeneral() {
		return DelegatedOutcome(), nil
	}

	cmd, ok := e.commands[result.Intent]
	if !ok {
		return Outcome{}, fmt.Errorf("%w: %s", ErrUnknownIntent, result.Intent)
	}

	for _, name := range cmd.Required {
		if v, ok := result.Params[name]; !ok || v == "" {
			return Outcome{}, fmt.Errorf("%w: %s requires %q", ErrMissingParameter, result.Intent, name)
		}
	}

	text, err := cmd.Run(ctx, result.Params)
	if err != nil {
		return Outcome{}, err
	}
	return HandledOutcome(text), nil
}

// Missing returns the router intents that have no command. An empty result
// means every classifiable intent can be executed.
func (e *Executor) Missing(intents []intent.Name) []intent.Name {
	var missing []intent.Name
	for _, name := range intents {
		if _, ok := e.commands[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
