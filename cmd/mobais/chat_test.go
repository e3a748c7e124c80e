package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"github.com/mobais/mobais/internal/assistant"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	m.Run()
}

type scriptReader struct {
	lines []string
	err   error
}

func (r *scriptReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		if r.err != nil {
			return "", r.err
		}
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

type echoResponder struct {
	got []string
	err error
}

func (e *echoResponder) RespondAs(_ context.Context, utterance, _ string) (assistant.Turn, error) {
	e.got = append(e.got, utterance)
	return assistant.Turn{Utterance: utterance, Reply: "echo: " + utterance}, e.err
}

func TestChat_AnswersUntilExit(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := &echoResponder{}
	s := newChatSession(&scriptReader{lines: []string{"hello", "  ", "exit", "never read"}}, &out, r, "")

	if err := s.run(context.Background(), "helpful"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(r.got) != 1 || r.got[0] != "hello" {
		t.Errorf("responder got %q", r.got)
	}
	text := out.String()
	for _, want := range []string{"helpful assistant", "echo: hello", "Goodbye!"} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestChat_WakeWordGating(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := &echoResponder{}
	s := newChatSession(&scriptReader{lines: []string{
		"what's the weather",
		"hey pratham",
		"Hey Pratham, open Spotify",
	}}, &out, r, "")
	w := assistant.NewWakeWord("hey pratham")
	s.wake = &w

	if err := s.run(context.Background(), "funny"); err != nil {
		t.Fatalf("run: %v", err)
	}

	if len(r.got) != 1 || r.got[0] != "open Spotify" {
		t.Errorf("responder got %q, want only the command after the wake word", r.got)
	}
	text := out.String()
	for _, want := range []string{
		"Hello! I am your funny assistant. Say 'hey pratham' to start.",
		`(waiting for "hey pratham")`,
		assistant.WakePrompt,
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q:\n%s", want, text)
		}
	}
}

func TestChat_ShowsCommandError(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	r := &echoResponder{err: errors.New("store offline")}
	s := newChatSession(&scriptReader{lines: []string{"remind me to eat"}}, &out, r, "")

	if err := s.run(context.Background(), "helpful"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "(store offline)") {
		t.Errorf("error not shown:\n%s", out.String())
	}
}

func TestChat_InterruptOnEmptyLineQuits(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	s := newChatSession(&scriptReader{err: readline.ErrInterrupt}, &out, &echoResponder{}, "")
	if err := s.run(context.Background(), "helpful"); err != nil {
		t.Fatalf("run: %v", err)
	}
	if !strings.Contains(out.String(), "Goodbye!") {
		t.Errorf("output = %q", out.String())
	}
}

func TestChat_ReadErrorPropagates(t *testing.T) {
	t.Parallel()

	boom := errors.New("tty gone")
	s := newChatSession(&scriptReader{err: boom}, io.Discard, &echoResponder{}, "")
	if err := s.run(context.Background(), "helpful"); !errors.Is(err, boom) {
		t.Errorf("run error = %v, want %v", err, boom)
	}
}
