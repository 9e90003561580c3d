package llm

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/lingua/internal/logging"
	"github.com/abhisek/lingua/internal/store"
)

// LLMEventRecorder persists one row per model call.
type LLMEventRecorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider is a decorator that records every LLM request as an event.
type LoggingProvider struct {
	inner    Provider
	provider string
	recorder LLMEventRecorder
}

// WithLogging wraps a Provider with event logging. provider is the vendor
// name stored alongside each event.
func WithLogging(p Provider, provider string, rec LLMEventRecorder) Provider {
	return &LoggingProvider{inner: p, provider: provider, recorder: rec}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()

	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		SessionID:   logging.SessionIDFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}

	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		if resp.Model != "" {
			data.Model = resp.Model
		}
		data.ResponseBody = resp.Text
	}

	if err != nil {
		data.ErrorMessage = err.Error()
	}

	// The lesson must not fail because the event log did.
	if logErr := l.recorder.AppendLLMRequest(context.WithoutCancel(ctx), data); logErr != nil {
		logging.WithContext(ctx).WithError(logErr).Warn("failed to record LLM request event")
	}

	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

func serializeRequest(req Request) string {
	var b strings.Builder

	if req.System != "" {
		b.WriteString("[system]\n")
		b.WriteString(req.System)
		b.WriteString("\n\n")
	}

	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n", m.Role)
		b.WriteString(m.Content)
		b.WriteString("\n\n")
	}

	fmt.Fprintf(&b, "[max_tokens: %d]\n", req.MaxTokens)
	return b.String()
}
