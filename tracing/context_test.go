package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", RequestIDFrom(ctx))
	ctx = WithRequestID(ctx, "req-1")
	assert.Equal(t, "req-1", RequestIDFrom(ctx))
}

func TestComponent(t *testing.T) {
	ctx := context.Background()
	assert.Equal(t, "", ComponentFrom(ctx))
	ctx = WithComponent(ctx, "greeting")
	assert.Equal(t, "greeting", ComponentFrom(ctx))
	assert.Equal(t, "", RequestIDFrom(ctx))
}
