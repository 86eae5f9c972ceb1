// Package hint asks an LLM coach for the best next move in a position.
package hint

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/grandmaster/internal/llm"
)

// Purpose labels hint requests in the LLM event log.
const Purpose = "hint"

// ErrIncomplete reports a response that parsed but left a field empty.
var ErrIncomplete = errors.New("hint response has empty fields")

// Hint is a coach suggestion for the side to move.
type Hint struct {
	SuggestedMove string `json:"suggestedMove"`
	Reasoning     string `json:"reasoning"`
	Evaluation    string `json:"evaluation"`
}

// Requester sends positions to an LLM provider and returns structured hints.
type Requester struct {
	provider llm.Provider
	cfg      Config
	logger   *zap.Logger
}

// NewRequester creates a Requester. A nil provider makes every request fail.
func NewRequester(provider llm.Provider, cfg Config, logger *zap.Logger) *Requester {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Requester{provider: provider, cfg: cfg, logger: logger.Named("hint")}
}

// Available reports whether a provider is configured.
func (r *Requester) Available() bool {
	return r != nil && r.provider != nil
}

// Request returns a hint for fen given the SAN move history, or nil on any
// failure. Failures are logged, never returned.
func (r *Requester) Request(ctx context.Context, fen string, history []string) *Hint {
	h, err := r.Fetch(ctx, fen, history)
	if err != nil {
		if r != nil {
			r.logger.Warn("hint request failed", zap.String("fen", fen), zap.Error(err))
		}
		return nil
	}
	return h
}

// Fetch is Request with the failure reason exposed.
func (r *Requester) Fetch(ctx context.Context, fen string, history []string) (*Hint, error) {
	if !r.Available() {
		return nil, fmt.Errorf("no LLM provider configured")
	}

	ctx = llm.WithPurpose(ctx, Purpose)
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(fen, history)},
		},
		Schema:      Schema,
		MaxTokens:   r.cfg.MaxTokens,
		Temperature: r.cfg.Temperature,
	}

	resp, err := r.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("hint generation: %w", err)
	}

	// Providers without native structured output still have to honor the
	// contract.
	if err := llm.Validate(Schema, resp.Content); err != nil {
		return nil, err
	}

	var out Hint
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return nil, fmt.Errorf("parse hint response: %w", err)
	}
	out.SuggestedMove = strings.TrimSpace(out.SuggestedMove)
	out.Reasoning = strings.TrimSpace(out.Reasoning)
	out.Evaluation = strings.TrimSpace(out.Evaluation)
	if out.SuggestedMove == "" || out.Reasoning == "" || out.Evaluation == "" {
		return nil, ErrIncomplete
	}

	r.logger.Debug("hint received",
		zap.String("fen", fen),
		zap.String("move", out.SuggestedMove),
		zap.String("evaluation", out.Evaluation),
	)
	return &out, nil
}
