package logging

import (
	"bytes"
	"context"
	"errors"
	"testing"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func TestLoggerWritesKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, LevelInfo).With("stage", "extract")

	logger.Warn("skip match", "match_id", "402", "error", errors.New("snapshot not found"))

	var line map[string]any
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "skip match", line["msg"])
	assert.Equal(t, "WARN", line["level"])
	assert.Equal(t, "extract", line["stage"])
	assert.Equal(t, "402", line["match_id"])
	assert.Equal(t, "snapshot not found", line["error"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, LevelWarn)

	logger.Info("dropped")
	assert.Zero(t, buf.Len())
}

func TestLoggerContextAddsTraceIDs(t *testing.T) {
	var buf bytes.Buffer
	logger := newWithWriter(&buf, LevelInfo)

	traceID, _ := trace.TraceIDFromHex("0102030405060708090a0b0c0d0e0f10")
	spanID, _ := trace.SpanIDFromHex("0102030405060708")
	ctx := trace.ContextWithSpanContext(context.Background(), trace.NewSpanContext(trace.SpanContextConfig{
		TraceID: traceID,
		SpanID:  spanID,
	}))

	logger.InfoContext(ctx, "run finished")

	var line map[string]any
	require.NoError(t, jsoniter.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, traceID.String(), line["trace_id"])
	assert.Equal(t, spanID.String(), line["span_id"])
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, LevelWarn, ParseLevel("warning"))
	assert.Equal(t, LevelError, ParseLevel(" error "))
	assert.Equal(t, LevelInfo, ParseLevel("verbose"))
}
