package logger

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFrom(ctx))

	ctx = WithRequestID(ctx, "req-123")
	assert.Equal(t, "req-123", RequestIDFrom(ctx))
}

func TestFromCtx(t *testing.T) {
	Init("development")

	t.Run("NoRequestID", func(t *testing.T) {
		l := FromCtx(context.Background())
		require.NotNil(t, l)
	})

	t.Run("WithRequestID", func(t *testing.T) {
		ctx := WithRequestID(context.Background(), "req-456")
		l := FromCtx(ctx)
		require.NotNil(t, l)
	})
}

func TestL_LazyInit(t *testing.T) {
	log = nil
	require.NotNil(t, L())
}
