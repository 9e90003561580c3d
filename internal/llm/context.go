package llm

import (
	"context"

	"github.com/abhisek/lingua/internal/logging"
)

// WithPurpose labels the outgoing request so the event log can tell a
// translation call from a vocabulary call.
func WithPurpose(ctx context.Context, purpose string) context.Context {
	return logging.WithPurpose(ctx, purpose)
}

// PurposeFrom extracts the purpose label from the context.
func PurposeFrom(ctx context.Context) string {
	if p := logging.PurposeFrom(ctx); p != "" {
		return p
	}
	return "unknown"
}
