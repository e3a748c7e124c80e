// Package assistant runs one conversational turn end to end: classify the
// utterance, execute the matching command, and fall back to a language
// model with the selected personality when nothing handled it.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/mobais/mobais/internal/command"
	"github.com/mobais/mobais/internal/intent"
	"github.com/mobais/mobais/internal/provider"
	"github.com/mobais/mobais/internal/reminder"
	"github.com/mobais/mobais/internal/telemetry"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ServiceName is the AppContext key of the running Assistant.
const ServiceName = "assistant"

// Fixed replies.
const (
	ReplyNotHeard       = "Sorry, I didn't catch that."
	ReplyFallbackFailed = "Sorry, I couldn't process that."
	ReplyStoreFailed    = "Sorry, I couldn't save that reminder."
)

// Turn is one utterance and the assistant's answer.
type Turn struct {
	ID        uuid.UUID         `json:"id"`
	At        time.Time         `json:"at"`
	Character string            `json:"character"`
	Utterance string            `json:"utterance"`
	Intent    intent.Name       `json:"intent"`
	Params    map[string]string `json:"parameters"`
	Reply     string            `json:"reply"`
	Delegated bool              `json:"delegated"`
}

// Config wires an Assistant. Router, Executor and Reminders are required.
type Config struct {
	Router    *intent.Router
	Executor  *command.Executor
	Reminders reminder.Store

	// Fallback answers general utterances. Nil always apologizes.
	Fallback  Fallback
	Character string
	Sinks     []Sink
	Metrics   *telemetry.Metrics
	Logger    *slog.Logger
	Now       func() time.Time
}

// Assistant is safe for concurrent use.
type Assistant struct {
	router    *intent.Router
	executor  *command.Executor
	reminders reminder.Store
	fallback  Fallback
	character Character
	sinks     []Sink
	metrics   *telemetry.Metrics
	logger    *slog.Logger
	tracer    trace.Tracer
	now       func() time.Time
}

// New builds an Assistant from cfg.
func New(cfg Config) (*Assistant, error) {
	if cfg.Router == nil || cfg.Executor == nil || cfg.Reminders == nil {
		return nil, errors.New("assistant: router, executor and reminder store are required")
	}
	if missing := cfg.Executor.Missing(cfg.Router.Intents()); len(missing) > 0 {
		return nil, fmt.Errorf("assistant: no command for intents %v", missing)
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	return &Assistant{
		router:    cfg.Router,
		executor:  cfg.Executor,
		reminders: cfg.Reminders,
		fallback:  cfg.Fallback,
		character: ResolveCharacter(cfg.Character),
		sinks:     cfg.Sinks,
		metrics:   cfg.Metrics,
		logger:    cfg.Logger,
		tracer:    telemetry.Tracer(),
		now:       cfg.Now,
	}, nil
}

// Character returns the default personality.
func (a *Assistant) Character() Character { return a.character }

// Classify runs only the intent router.
func (a *Assistant) Classify(ctx context.Context, text string) intent.MatchResult {
	_, span := a.tracer.Start(ctx, "intent.classify")
	defer span.End()

	res := a.router.Classify(text)
	span.SetAttributes(telemetry.AttrIntent.String(string(res.Intent)))
	return res
}

// Reminders lists stored reminders in insertion order.
func (a *Assistant) Reminders(ctx context.Context) ([]reminder.Reminder, error) {
	return a.reminders.List(ctx)
}

// Ping checks that the reminder store is reachable.
func (a *Assistant) Ping(ctx context.Context) error {
	if err := a.reminders.Ping(ctx); err != nil {
		return fmt.Errorf("assistant: reminder store: %w", err)
	}
	return nil
}

// ProbeFallback actively checks the language model behind the fallback.
// It returns provider.ErrNoProvider when no fallback is configured and nil
// when the fallback cannot be probed.
func (a *Assistant) ProbeFallback(ctx context.Context) error {
	if a.fallback == nil {
		return provider.ErrNoProvider
	}
	llm, ok := a.fallback.(*LLMFallback)
	if !ok || llm.Provider == nil {
		return nil
	}
	checker, ok := llm.Provider.(provider.HealthChecker)
	if !ok {
		return nil
	}
	if err := checker.HealthCheck(ctx); err != nil {
		return fmt.Errorf("assistant: fallback via %s: %w", llm.Provider.ModelName(), err)
	}
	return nil
}

// Respond answers utterance with the default personality.
func (a *Assistant) Respond(ctx context.Context, utterance string) (Turn, error) {
	return a.RespondAs(ctx, utterance, "")
}

// RespondAs answers utterance with the named personality; an empty or
// unknown name uses the default one.
//
// The returned Turn always carries a reply fit to show the user. The error
// is non-nil only when a command failed (a reminder that was not saved
// wraps command.ErrStoreWrite); fallback failures are absorbed into
// ReplyFallbackFailed.
func (a *Assistant) RespondAs(ctx context.Context, utterance, character string) (Turn, error) {
	start := a.now()
	c := a.character
	if character != "" {
		c = ResolveCharacter(character)
	}

	ctx, span := a.tracer.Start(ctx, "assistant.respond")
	defer span.End()

	turn := Turn{
		ID:        uuid.New(),
		At:        start,
		Character: c.Name,
		Utterance: utterance,
		Intent:    intent.General,
		Params:    map[string]string{},
	}
	span.SetAttributes(telemetry.AttrTurnID.String(turn.ID.String()), telemetry.AttrCharacter.String(c.Name))

	outcome, err := a.answer(ctx, &turn, c)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	span.SetAttributes(telemetry.AttrIntent.String(string(turn.Intent)), telemetry.AttrDelegated.Bool(turn.Delegated))
	a.metrics.ObserveTurn(string(turn.Intent), outcome, a.now().Sub(start))

	a.deliver(ctx, turn)
	return turn, err
}

func (a *Assistant) answer(ctx context.Context, turn *Turn, c Character) (string, error) {
	if strings.TrimSpace(turn.Utterance) == "" {
		turn.Reply = ReplyNotHeard
		return telemetry.OutcomeEmpty, nil
	}

	res := a.Classify(ctx, turn.Utterance)
	turn.Intent, turn.Params = res.Intent, res.Params

	execCtx, span := a.tracer.Start(ctx, "command.execute")
	out, err := a.executor.Execute(execCtx, res)
	span.End()

	if res.Intent == intent.Reminder {
		a.metrics.ObserveReminder(err)
	}
	if err != nil {
		a.logger.Error("command failed", "turn_id", turn.ID, "intent", res.Intent, "error", err)
		turn.Reply = ReplyFallbackFailed
		if errors.Is(err, command.ErrStoreWrite) {
			turn.Reply = ReplyStoreFailed
		}
		return telemetry.OutcomeError, err
	}

	if !out.IsDelegated() {
		turn.Reply = out.Text
		return telemetry.OutcomeHandled, nil
	}

	turn.Delegated = true
	turn.Reply = a.reply(ctx, turn, c)
	return telemetry.OutcomeDelegated, nil
}

func (a *Assistant) reply(ctx context.Context, turn *Turn, c Character) string {
	if a.fallback == nil {
		a.metrics.ObserveFallback(false)
		return ReplyFallbackFailed
	}

	ctx, span := a.tracer.Start(ctx, "fallback.reply")
	defer span.End()

	text, err := a.fallback.Reply(ctx, turn.Utterance, c)
	a.metrics.ObserveFallback(err == nil)
	if err != nil {
		span.RecordError(err)
		a.logger.Error("fallback failed", "turn_id", turn.ID, "retryable", provider.IsRetryable(err), "error", err)
		return ReplyFallbackFailed
	}
	return text
}

func (a *Assistant) deliver(ctx context.Context, turn Turn) {
	for _, s := range a.sinks {
		if err := s.Deliver(ctx, turn); err != nil {
			a.logger.Warn("turn sink failed", "turn_id", turn.ID, "error", err)
		}
	}
}
