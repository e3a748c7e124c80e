package assistant

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/mobais/mobais/internal/command"
	"github.com/mobais/mobais/internal/intent"
	"github.com/mobais/mobais/internal/provider"
	"github.com/mobais/mobais/internal/provider/providertest"
	"github.com/mobais/mobais/internal/reminder"
	"github.com/mobais/mobais/internal/reminder/remindertest"
	"github.com/mobais/mobais/internal/telemetry"
)

var fixedNow = time.Date(2026, 10, 17, 9, 30, 0, 0, time.Local)

type fixture struct {
	assistant *Assistant
	store     reminder.Store
	llm       *providertest.MockProvider
	sink      *RecordingSink
}

func newFixture(t *testing.T, store reminder.Store, weatherKey bool) *fixture {
	t.Helper()
	if store == nil {
		store = reminder.NewMemoryStore()
	}

	weather := command.WeatherFunc(func(context.Context) string {
		if !weatherKey {
			return "Weather API key not set."
		}
		return "The weather is sunny and pleasant! (This is a mock response.)"
	})
	search := command.SearchFunc(func(_ context.Context, q string) string {
		return "Search API key not set. Here is a mock result for: " + q
	})

	exec, err := command.NewDefaultExecutor(command.Deps{
		Weather:   weather,
		Search:    search,
		Reminders: store,
		Now:       func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("NewDefaultExecutor: %v", err)
	}

	llm := &providertest.MockProvider{
		CompleteFunc: func(_ context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error) {
			return provider.CompletionResponse{Content: "  Why do gophers dig? To get to the root.  "}, nil
		},
	}
	sink := &RecordingSink{}

	a, err := New(Config{
		Router:    intent.NewDefaultRouter(),
		Executor:  exec,
		Reminders: store,
		Fallback:  &LLMFallback{Provider: llm},
		Character: "funny",
		Sinks:     []Sink{sink},
		Metrics:   telemetry.NewMetrics(),
		Now:       func() time.Time { return fixedNow },
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return &fixture{assistant: a, store: store, llm: llm, sink: sink}
}

func TestRespond_ReminderIsStored(t *testing.T) {
	f := newFixture(t, nil, false)
	ctx := context.Background()

	turn, err := f.assistant.Respond(ctx, "remind me to call mom")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if turn.Intent != intent.Reminder || turn.Params[intent.ParamTask] != "call mom" {
		t.Errorf("classified as %s %v", turn.Intent, turn.Params)
	}
	if turn.Reply != "Reminder set: call mom" || turn.Delegated {
		t.Errorf("turn = %+v", turn)
	}

	got, err := f.store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Task != "call mom" || got[0].Time != "2026-10-17 09:30:00" {
		t.Errorf("store = %+v", got)
	}
	if f.llm.Calls() != 0 {
		t.Error("handled turns must not reach the language model")
	}
}

func TestRespond_WeatherWithoutKey(t *testing.T) {
	f := newFixture(t, nil, false)

	turn, err := f.assistant.Respond(context.Background(), "what's the weather")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if turn.Intent != intent.Weather || turn.Reply != "Weather API key not set." {
		t.Errorf("turn = %+v", turn)
	}
}

func TestRespond_GeneralIsDelegated(t *testing.T) {
	f := newFixture(t, nil, false)

	turn, err := f.assistant.Respond(context.Background(), "tell me a joke")
	if err != nil {
		t.Fatalf("Respond: %v", err)
	}
	if turn.Intent != intent.General || len(turn.Params) != 0 || !turn.Delegated {
		t.Errorf("turn = %+v", turn)
	}
	if turn.Reply != "Why do gophers dig? To get to the root." {
		t.Errorf("reply = %q", turn.Reply)
	}

	req := f.llm.Request()
	if len(req.Messages) != 2 {
		t.Fatalf("messages = %+v", req.Messages)
	}
	if req.Messages[0].Role != provider.MessageRoleSystem || req.Messages[0].Content != "You are a witty, funny assistant who likes to joke." {
		t.Errorf("system message = %+v", req.Messages[0])
	}
	if req.Messages[1].Content != "tell me a joke" {
		t.Errorf("user message = %+v", req.Messages[1])
	}
}

func TestRespondAs_OverridesCharacter(t *testing.T) {
	f := newFixture(t, nil, false)

	turn, err := f.assistant.RespondAs(context.Background(), "good evening", "formal")
	if err != nil {
		t.Fatal(err)
	}
	if turn.Character != "formal" {
		t.Errorf("character = %q", turn.Character)
	}
	if got := f.llm.Request().Messages[0].Content; got != "You are a formal and polite assistant." {
		t.Errorf("system prompt = %q", got)
	}

	turn, _ = f.assistant.RespondAs(context.Background(), "good evening", "grumpy")
	if turn.Character != "helpful" {
		t.Errorf("unknown mode should fall back to helpful, got %q", turn.Character)
	}
}

func TestRespond_FallbackFailureApologizes(t *testing.T) {
	f := newFixture(t, nil, false)
	f.llm.CompleteFunc = func(context.Context, provider.CompletionRequest) (provider.CompletionResponse, error) {
		return provider.CompletionResponse{}, provider.ErrRateLimit
	}

	var logs bytes.Buffer
	f.assistant.logger = slog.New(slog.NewTextHandler(&logs, nil))

	turn, err := f.assistant.Respond(context.Background(), "tell me a joke")
	if err != nil {
		t.Fatalf("fallback failures are absorbed, got %v", err)
	}
	if turn.Reply != ReplyFallbackFailed {
		t.Errorf("reply = %q", turn.Reply)
	}
	if !strings.Contains(logs.String(), "retryable=true") {
		t.Errorf("rate limit not logged as retryable:\n%s", logs.String())
	}
}

func TestRespond_BlankUtterance(t *testing.T) {
	f := newFixture(t, nil, false)

	for _, in := range []string{"", "   \t"} {
		turn, err := f.assistant.Respond(context.Background(), in)
		if err != nil {
			t.Fatal(err)
		}
		if turn.Reply != ReplyNotHeard || turn.Delegated {
			t.Errorf("Respond(%q) = %+v", in, turn)
		}
	}
	if f.llm.Calls() != 0 {
		t.Error("blank input must not reach the language model")
	}
}

func TestRespond_StoreFailure(t *testing.T) {
	boom := errors.New("database is locked")
	store := &remindertest.MockStore{
		AddFunc: func(context.Context, string, string) (reminder.Reminder, error) {
			return reminder.Reminder{}, boom
		},
	}
	f := newFixture(t, store, false)

	turn, err := f.assistant.Respond(context.Background(), "remind me to call mom")
	if !errors.Is(err, command.ErrStoreWrite) || !errors.Is(err, boom) {
		t.Fatalf("err = %v, want ErrStoreWrite wrapping %v", err, boom)
	}
	if turn.Reply != ReplyStoreFailed {
		t.Errorf("reply = %q, must not confirm the reminder", turn.Reply)
	}
}

func TestRespond_DeliversEveryTurn(t *testing.T) {
	f := newFixture(t, nil, false)
	ctx := context.Background()

	for _, in := range []string{"open spotify", "look up go modules", "tell me a joke"} {
		if _, err := f.assistant.Respond(ctx, in); err != nil {
			t.Fatal(err)
		}
	}

	turns := f.sink.Turns()
	if len(turns) != 3 {
		t.Fatalf("sink got %d turns, want 3", len(turns))
	}
	if turns[0].Reply != "Opening spotify... (Not really, just a demo!)" {
		t.Errorf("turn 0 = %q", turns[0].Reply)
	}
	if !strings.HasSuffix(turns[1].Reply, "go modules") {
		t.Errorf("turn 1 = %q", turns[1].Reply)
	}
	if turns[0].ID == turns[1].ID {
		t.Error("turn ids must be unique")
	}
	if !turns[2].At.Equal(fixedNow) {
		t.Errorf("At = %v", turns[2].At)
	}
}

func TestRespond_SinkErrorsIgnored(t *testing.T) {
	f := newFixture(t, nil, false)
	f.assistant.sinks = append(f.assistant.sinks, SinkFunc(func(context.Context, Turn) error {
		return errors.New("disk full")
	}))

	if _, err := f.assistant.Respond(context.Background(), "open notes"); err != nil {
		t.Fatalf("sink errors must not fail the turn: %v", err)
	}
}

func TestRespond_NoFallbackConfigured(t *testing.T) {
	f := newFixture(t, nil, false)
	f.assistant.fallback = nil

	turn, err := f.assistant.Respond(context.Background(), "tell me a joke")
	if err != nil {
		t.Fatal(err)
	}
	if turn.Reply != ReplyFallbackFailed {
		t.Errorf("reply = %q", turn.Reply)
	}
}

func TestNew_Validation(t *testing.T) {
	if _, err := New(Config{}); err == nil {
		t.Error("expected error for empty config")
	}

	exec, err := command.NewExecutor(command.Command{
		Intent: intent.Weather,
		Run:    func(context.Context, map[string]string) (string, error) { return "", nil },
	})
	if err != nil {
		t.Fatal(err)
	}
	_, err = New(Config{Router: intent.NewDefaultRouter(), Executor: exec, Reminders: reminder.NewMemoryStore()})
	if err == nil || !strings.Contains(err.Error(), "no command") {
		t.Errorf("err = %v, want missing-command error", err)
	}
}

func TestAssistant_Reminders(t *testing.T) {
	f := newFixture(t, nil, false)
	ctx := context.Background()
	_, _ = f.assistant.Respond(ctx, "set a reminder to stretch")

	got, err := f.assistant.Reminders(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Task != "stretch" {
		t.Errorf("Reminders = %+v", got)
	}
}

func TestAssistant_Ping(t *testing.T) {
	f := newFixture(t, nil, false)
	if err := f.assistant.Ping(context.Background()); err != nil {
		t.Fatalf("Ping: %v", err)
	}

	boom := errors.New("disk gone")
	f = newFixture(t, &remindertest.MockStore{PingFunc: func(context.Context) error { return boom }}, false)
	if err := f.assistant.Ping(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Ping = %v, want %v", err, boom)
	}
}

func TestAssistant_ProbeFallback(t *testing.T) {
	f := newFixture(t, nil, false)
	f.llm.HealthCheckFunc = func(context.Context) error { return provider.ErrAuth }

	if err := f.assistant.ProbeFallback(context.Background()); !errors.Is(err, provider.ErrAuth) {
		t.Errorf("ProbeFallback = %v, want ErrAuth", err)
	}
	if f.llm.HealthCalls != 1 {
		t.Errorf("health calls = %d, want 1", f.llm.HealthCalls)
	}

	f.assistant.fallback = FallbackFunc(func(context.Context, string, Character) (string, error) { return "hi", nil })
	if err := f.assistant.ProbeFallback(context.Background()); err != nil {
		t.Errorf("unprobeable fallback: %v", err)
	}

	f.assistant.fallback = nil
	if err := f.assistant.ProbeFallback(context.Background()); !errors.Is(err, provider.ErrNoProvider) {
		t.Errorf("ProbeFallback without fallback = %v, want ErrNoProvider", err)
	}
}
