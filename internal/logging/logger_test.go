// Recompra - Recurrent Purchase Prediction and Product Recommendation
// SPDX-License-Identifier: AGPL-3.0-or-later

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  zerolog.Level
	}{
		{input: "trace", want: zerolog.TraceLevel},
		{input: "debug", want: zerolog.DebugLevel},
		{input: "info", want: zerolog.InfoLevel},
		{input: "warn", want: zerolog.WarnLevel},
		{input: "warning", want: zerolog.WarnLevel},
		{input: "error", want: zerolog.ErrorLevel},
		{input: "fatal", want: zerolog.FatalLevel},
		{input: "disabled", want: zerolog.Disabled},
		{input: "INFO", want: zerolog.InfoLevel},
		{input: "bogus", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		if got := parseLevel(tt.input); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestInitWritesJSON(t *testing.T) {
	var buf bytes.Buffer
	Init(Config{Level: "debug", Format: "json", Output: &buf})
	defer Init(DefaultConfig())

	Info().Str("component", "test").Msg("hello")

	line := buf.String()
	if !strings.Contains(line, `"component":"test"`) {
		t.Errorf("log output missing structured field: %s", line)
	}
	if !strings.Contains(line, `"message":"hello"`) {
		t.Errorf("log output missing message: %s", line)
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	defer SetLogger(original)

	SetLogger(zerolog.New(&buf))
	Info().Msg("replaced")

	if !strings.Contains(buf.String(), "replaced") {
		t.Errorf("replaced logger did not receive the event: %s", buf.String())
	}
}

func TestCorrelationID(t *testing.T) {
	ctx := context.Background()
	if got := CorrelationIDFromContext(ctx); got != "" {
		t.Errorf("CorrelationIDFromContext(empty) = %q, want empty", got)
	}

	ctx = ContextWithCorrelationID(ctx, "abc123")
	if got := CorrelationIDFromContext(ctx); got != "abc123" {
		t.Errorf("CorrelationIDFromContext() = %q, want abc123", got)
	}
}

func TestContextWithNewCorrelationID(t *testing.T) {
	ctx := ContextWithNewCorrelationID(context.Background())
	id := CorrelationIDFromContext(ctx)
	if len(id) != 8 {
		t.Errorf("generated correlation ID %q has length %d, want 8", id, len(id))
	}
}

func TestCtxEnrichesLogger(t *testing.T) {
	var buf bytes.Buffer
	original := Logger()
	defer SetLogger(original)
	SetLogger(zerolog.New(&buf))

	ctx := ContextWithCorrelationID(context.Background(), "abc123")
	logger := Ctx(ctx)
	logger.Info().Msg("with id")

	if !strings.Contains(buf.String(), `"correlation_id":"abc123"`) {
		t.Errorf("log output missing correlation id: %s", buf.String())
	}
}
