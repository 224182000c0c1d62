package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	l := Logger()
	assert.NotNil(t, l)
}

func TestWithRequestID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctx = WithRequestID(ctx, "test-request-123")

	val := ctx.Value(requestIDKey)
	assert.Equal(t, "test-request-123", val)
}

func TestWithSessionID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	ctx = WithSessionID(ctx, "session-456")

	val := ctx.Value(sessionIDKey)
	assert.Equal(t, "session-456", val)
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		setupCtx func() context.Context
	}{
		{
			name:     "empty context",
			setupCtx: context.Background,
		},
		{
			name: "with request ID",
			setupCtx: func() context.Context {
				return WithRequestID(context.Background(), "req-123")
			},
		},
		{
			name: "with session ID",
			setupCtx: func() context.Context {
				return WithSessionID(context.Background(), "session-456")
			},
		},
		{
			name: "with both",
			setupCtx: func() context.Context {
				ctx := WithRequestID(context.Background(), "req-123")
				return WithSessionID(ctx, "session-456")
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			l := FromContext(tt.setupCtx())
			assert.NotNil(t, l)
		})
	}
}
