package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContext(t *testing.T) {
	logger, buf := newBufferLogger("testContextLogger")
	logger.Info("message0")
	ctx := NewContext(context.Background(), logger, "field1", "value1")
	From(ctx).Info("message1")
	ctx = NewComponentContext(ctx, "component1", "field2", "value2")
	From(ctx).Info("message2")

	// Test with empty logger
	nilCtx := NewContext(ctx, nil)
	nilLogger := From(nilCtx)
	assert.Equal(t, Global(), nilLogger)

	s := lines(buf)
	assert.Contains(t, s[0], "message0")
	assert.Contains(t, s[1], "message1")
	assert.Contains(t, s[1], `"field1":"value1"`)
	assert.Contains(t, s[2], `"field2":"value2"`)
	assert.Contains(t, s[2], `"component":"component1"`)
}

func TestNewRequestContext(t *testing.T) {
	logger, buf := newBufferLogger("testContextLogger")
	ctx := NewContext(context.Background(), logger, "field1", "value1")
	From(NewRequestContext(ctx, "")).Info("message0")
	From(NewRequestContext(ctx, "req-42")).Info("message1")
	s := lines(buf)
	assert.Contains(t, s[0], "message0")
	assert.Contains(t, s[0], `"requestId":"`)
	assert.Contains(t, s[1], `"requestId":"req-42"`)
	assert.Contains(t, s[1], `"field1":"value1"`)
}

func TestNewRequestContextWithoutLogger(t *testing.T) {
	ctx := NewRequestContext(context.Background(), "")
	assert.NotNil(t, ctx)
	assert.NotNil(t, From(ctx))
}

func TestNewTestContext(t *testing.T) {
	ctx := NewTestContext("TestNewTestContext")
	l := ctx.Value(loggerContextKey).(*Logger)
	assert.NotNil(t, l)
}
