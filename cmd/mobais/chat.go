package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/mobais/mobais/internal/assistant"
	"github.com/mobais/mobais/internal/config"
	"github.com/mobais/mobais/pkg/app"
	"github.com/spf13/cobra"
)

// lineReader is the part of *readline.Instance the chat loop uses.
type lineReader interface {
	Readline() (string, error)
}

// turnResponder is the part of *assistant.Assistant the chat loop uses.
type turnResponder interface {
	RespondAs(ctx context.Context, utterance, character string) (assistant.Turn, error)
}

// chatSession holds the state of one interactive conversation.
type chatSession struct {
	in        lineReader
	out       io.Writer
	responder turnResponder
	character string

	// wake gates every line when non-nil, as speech input would be.
	wake *assistant.WakeWord

	reply  *color.Color
	notice *color.Color
}

var errQuit = errors.New("quit")

func chatCmd() *cobra.Command {
	var (
		character string
		wake      bool
		ephemeral bool
	)
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Talk to the assistant in an interactive prompt",
		RunE: func(cmd *cobra.Command, _ []string) error {
			p := quietParams(cmd)
			p.Ephemeral = ephemeral
			return withRuntime(cmd, p, func(ctx context.Context, rt *app.Runtime) error {
				dataDir := p.DataDir
				if dataDir == "" {
					dataDir = config.DefaultDataDir()
				}
				rl, err := readline.NewEx(&readline.Config{
					Prompt:            color.New(color.FgCyan, color.Bold).Sprint("you> "),
					HistoryFile:       filepath.Join(dataDir, ".mobais_chat_history"),
					InterruptPrompt:   "^C",
					EOFPrompt:         "exit",
					HistorySearchFold: true,
				})
				if err != nil {
					return fmt.Errorf("failed to initialize readline: %w", err)
				}
				defer func() { _ = rl.Close() }()

				s := newChatSession(rl, rl.Stdout(), rt.Assistant, character)
				if wake {
					w := rt.WakeWord
					s.wake = &w
				}
				name := character
				if name == "" {
					name = rt.Assistant.Character().Name
				}
				return s.run(ctx, name)
			})
		},
	}
	cmd.Flags().StringVar(&character, "character", "", "Personality for this conversation (default from config)")
	cmd.Flags().BoolVar(&wake, "wake", false, "Only answer lines that contain the wake word")
	cmd.Flags().BoolVar(&ephemeral, "ephemeral", false, "Keep reminders in memory only")
	return cmd
}

func newChatSession(in lineReader, out io.Writer, r turnResponder, character string) *chatSession {
	return &chatSession{
		in:        in,
		out:       out,
		responder: r,
		character: character,
		reply:     color.New(color.FgGreen),
		notice:    color.New(color.Faint),
	}
}

// run greets the user and answers lines until exit, EOF or ^C on an
// empty line.
func (s *chatSession) run(ctx context.Context, characterName string) error {
	if s.wake != nil {
		fmt.Fprintf(s.out, assistant.GreetingTmpl+"\n", characterName, s.wake.Phrase())
	} else {
		fmt.Fprintf(s.out, "Hello! I am your %s assistant. Type 'exit' to quit.\n", characterName)
	}

	for {
		line, err := s.in.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				fmt.Fprintln(s.out, "Goodbye!")
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			fmt.Fprintln(s.out, "Goodbye!")
			return nil
		case err != nil:
			return err
		}

		if err := s.handle(ctx, line); err != nil {
			if errors.Is(err, errQuit) {
				fmt.Fprintln(s.out, "Goodbye!")
				return nil
			}
			return err
		}
	}
}

func (s *chatSession) handle(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	switch strings.ToLower(line) {
	case "":
		return nil
	case "exit", "quit":
		return errQuit
	}

	if s.wake != nil {
		command, ok := s.wake.Strip(line)
		if !ok {
			s.notice.Fprintf(s.out, "(waiting for %q)\n", s.wake.Phrase())
			return nil
		}
		if command == "" {
			s.reply.Fprintln(s.out, assistant.WakePrompt)
			return nil
		}
		line = command
	}

	turn, err := s.responder.RespondAs(ctx, line, s.character)
	s.reply.Fprintln(s.out, turn.Reply)
	if err != nil {
		s.notice.Fprintf(s.out, "(%v)\n", err)
	}
	return nil
}
