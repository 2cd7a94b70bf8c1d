package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitTracer_DisabledWithoutEndpoint(t *testing.T) {
	shutdown, err := InitTracer(Config{ServiceName: "msquare-api"})
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}

func TestStartSpan_NoTracer(t *testing.T) {
	ctx := context.Background()
	got, span := StartSpan(ctx, "noop")
	assert.Equal(t, ctx, got)
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}
