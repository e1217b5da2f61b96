package ctxlog

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext_MissingLoggerPanics(t *testing.T) {
	require.PanicsWithValue(t, "ctxlog: logger missing from context", func() {
		FromContext(context.Background())
	})
}

func TestWith_AddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	ctx := With(WithLogger(context.Background(), logger), "extension", "tizen.time")
	FromContext(ctx).Info("loaded")

	assert.Contains(t, buf.String(), "extension=tizen.time")
	assert.Contains(t, buf.String(), "msg=loaded")
}

func TestDiscard(t *testing.T) {
	ctx := Discard(context.Background())
	require.NotPanics(t, func() {
		FromContext(ctx).Error("dropped")
	})
}
