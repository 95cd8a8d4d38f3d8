package logging

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContextFields(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, GetSession(ctx))
	assert.Empty(t, GetProvider(ctx))
	assert.Empty(t, GetModel(ctx))
	assert.Empty(t, contextAttrs(ctx))

	ctx = WithSession(ctx, "s1")
	ctx = WithProvider(ctx, "anthropic")

	assert.Equal(t, "s1", GetSession(ctx))
	assert.Equal(t, "anthropic", GetProvider(ctx))
	assert.Empty(t, GetModel(ctx))

	attrs := contextAttrs(ctx)
	if assert.Len(t, attrs, 2) {
		assert.Equal(t, "session_id", attrs[0].Key)
		assert.Equal(t, "provider", attrs[1].Key)
	}
}

func TestContextAttrs_NilContext(t *testing.T) {
	//nolint:staticcheck // exercising the nil guard
	assert.Nil(t, contextAttrs(nil))
}
