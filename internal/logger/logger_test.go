package logger

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPretty(buf *bytes.Buffer, level slog.Level) *slog.Logger {
	h := NewPrettyHandler(buf, &slog.HandlerOptions{Level: level})
	h.noColor = true
	return slog.New(h)
}

func TestNew_CustomWriter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{
		Level:  slog.LevelInfo,
		Format: "json",
		Writer: &buf,
	})

	logger.Info("test message")

	assert.Contains(t, buf.String(), "test message")
	assert.Contains(t, buf.String(), `"level":"INFO"`)
}

func TestNew_FormatAutoDetection(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		wantJSON    bool
	}{
		{"production uses json", "production", true},
		{"development uses pretty", "development", false},
		{"staging uses pretty", "staging", false},
		{"empty uses pretty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := New(Config{
				Writer:      &buf,
				Environment: tt.environment,
				Level:       slog.LevelInfo,
			})
			logger.Info("format check")

			output := buf.String()
			if tt.wantJSON {
				assert.True(t, strings.HasPrefix(output, "{"), output)
			} else {
				assert.Contains(t, output, "INF")
				assert.False(t, strings.HasPrefix(output, "{"), output)
			}
		})
	}
}

func TestForEnvironment(t *testing.T) {
	var buf bytes.Buffer
	logger := ForEnvironment(&buf, "production", "warn")

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"DEBUG", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"warning", slog.LevelWarn},
		{"error", slog.LevelError},
		{"bogus", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.input))
		})
	}
}

func TestPrettyHandler_Handle(t *testing.T) {
	var buf bytes.Buffer
	newPretty(&buf, slog.LevelInfo).Info("tag created", "tag_id", "tag-1", "count", 42)

	output := buf.String()
	assert.Contains(t, output, "INF tag created")
	assert.Contains(t, output, "tag_id=tag-1")
	assert.Contains(t, output, "count=42")
	assert.NotContains(t, output, "\033[", "no color codes when disabled")
}

func TestPrettyHandler_LevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := newPretty(&buf, slog.LevelWarn)

	logger.Debug("debug message")
	logger.Info("info message")
	logger.Warn("warn message")
	logger.Error("error message")

	output := buf.String()
	assert.NotContains(t, output, "debug message")
	assert.NotContains(t, output, "info message")
	assert.Contains(t, output, "WRN warn message")
	assert.Contains(t, output, "ERR error message")
}

func TestPrettyHandler_WithAttrs(t *testing.T) {
	var buf bytes.Buffer
	logger := newPretty(&buf, slog.LevelInfo).With("service", "tagdesk", "version", 1)

	logger.Info("test message")

	output := buf.String()
	assert.Contains(t, output, "service=tagdesk")
	assert.Contains(t, output, "version=1")
}

func TestPrettyHandler_Groups(t *testing.T) {
	var buf bytes.Buffer
	logger := newPretty(&buf, slog.LevelInfo)

	logger.WithGroup("request").Info("handled", "path", "/tags")
	logger.Info("broadcast", slog.Group("stats", slog.Int("delivered", 3), slog.Int("dropped", 0)))

	output := buf.String()
	assert.Contains(t, output, "request.path=/tags")
	assert.Contains(t, output, "stats.delivered=3")
	assert.Contains(t, output, "stats.dropped=0")
}

func TestPrettyHandler_WithGroupEmptyName(t *testing.T) {
	h := NewPrettyHandler(&bytes.Buffer{}, nil)
	assert.Same(t, h, h.WithGroup(""))
}

func TestPrettyHandler_WithSource(t *testing.T) {
	var buf bytes.Buffer
	h := NewPrettyHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo, AddSource: true})

	slog.New(h).Info("test message")

	assert.Contains(t, buf.String(), "logger_test.go:")
}

func TestPrettyHandler_Colors(t *testing.T) {
	var buf bytes.Buffer
	slog.New(NewPrettyHandler(&buf, nil)).Info("colored")

	assert.Contains(t, buf.String(), colorGreen+"INF"+colorReset)
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	tests := []struct {
		name  string
		value slog.Value
		want  string
	}{
		{"plain string", slog.StringValue("hello"), "hello"},
		{"string with space", slog.StringValue("Café Crème"), `"Café Crème"`},
		{"int", slog.IntValue(7), "7"},
		{"bool", slog.BoolValue(true), "true"},
		{"duration", slog.DurationValue(1500 * time.Millisecond), "1.5s"},
		{"time", slog.TimeValue(ts), "2026-01-02T03:04:05Z"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, formatValue(tt.value))
		})
	}
}

func TestLogger_WithError(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Writer: &buf, Format: "json", Level: slog.LevelInfo})

	logger.WithError(errors.New("disk full")).Error("append failed")

	assert.Contains(t, buf.String(), `"error":"disk full"`)
}

func TestLogger_WithField(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Writer: &buf, Format: "json", Level: slog.LevelInfo})

	logger.WithField("backend", "badger").WithField("count", 3).Info("opened")

	output := buf.String()
	assert.Contains(t, output, `"backend":"badger"`)
	assert.Contains(t, output, `"count":3`)
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	require.NotNil(t, logger)
	assert.False(t, logger.Enabled(context.Background(), slog.LevelDebug))
}
