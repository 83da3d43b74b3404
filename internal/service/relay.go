package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"deepti.app/relay/common/id"
	"deepti.app/relay/common/llm"
	"deepti.app/relay/common/logger"
	"deepti.app/relay/core/config"
	"deepti.app/relay/internal/model"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// RelayService turns a client conversation into a single assistant reply.
type RelayService interface {
	Reply(ctx context.Context, history model.History) (string, error)
	// Live reports whether replies come from a provider rather than the fallback text.
	Live() bool
}

type relayService struct {
	completer llm.Completer
	sampling  config.RelayConfig
}

// NewRelayService builds the relay. A nil completer means no provider credential is
// configured, and every call returns model.FallbackReply.
func NewRelayService(completer llm.Completer, sampling config.RelayConfig) RelayService {
	return &relayService{completer: completer, sampling: sampling}
}

func (s *relayService) Live() bool {
	return s.completer != nil
}

func (s *relayService) Reply(ctx context.Context, history model.History) (string, error) {
	filtered := model.FilterHistory(history)

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		RequestID:  logger.Ptr(id.New()),
		HistoryLen: logger.Ptr(len(filtered)),
		Component:  "relay.service",
	})

	if s.completer == nil {
		slog.InfoContext(ctx, "no provider configured, serving fallback reply",
			"dropped", len(history)-len(filtered))
		return model.FallbackReply, nil
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{Provider: logger.Ptr(s.completer.Model())})

	sc := logger.StartSpan(ctx, "relay.reply", trace.WithSpanKind(trace.SpanKindClient))
	defer sc.End()
	ctx = sc.Context()
	sc.SetAttributes(
		attribute.String("llm.model", s.completer.Model()),
		attribute.Int("relay.history_len", len(filtered)),
	)

	start := time.Now()
	resp, err := s.completer.Complete(ctx, s.buildRequest(filtered))
	if err != nil {
		sc.RecordError(err)
		slog.ErrorContext(ctx, "provider call failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return "", fmt.Errorf("completing conversation: %w", err)
	}

	reply := resp.Content
	if strings.TrimSpace(reply) == "" {
		slog.WarnContext(ctx, "provider returned no text, serving fallback reply",
			"finish_reason", resp.FinishReason)
		reply = model.FallbackReply
	}

	slog.InfoContext(ctx, "relay reply ready",
		"duration_ms", time.Since(start).Milliseconds(),
		"finish_reason", resp.FinishReason,
		"completion_tokens", resp.CompletionTokens,
		"reply_preview", logger.Truncate(reply, 40))

	return reply, nil
}

func (s *relayService) buildRequest(history model.History) llm.CompletionRequest {
	messages := make([]llm.Message, 0, len(history)+1)
	system := model.SystemMessage()
	messages = append(messages, llm.Message{Role: string(system.Role), Content: system.Content})
	for _, m := range history {
		messages = append(messages, llm.Message{Role: string(m.Role), Content: m.Content})
	}

	return llm.CompletionRequest{
		Messages:    messages,
		MaxTokens:   s.sampling.MaxTokens,
		Temperature: llm.Temp(s.sampling.Temperature),
		TopP:        llm.Temp(s.sampling.TopP),
	}
}
