package logging_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"gitlab.com/tozd/go/errors"

	"github.com/yaklabco/formatkit/internal/logging"
)

func TestParseLevel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level string
		want  log.Level
	}{
		{"debug", log.DebugLevel},
		{"INFO", log.InfoLevel},
		{"warn", log.WarnLevel},
		{"Warning", log.WarnLevel},
		{"error", log.ErrorLevel},
		{"", log.InfoLevel},
		{"verbose", log.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, logging.ParseLevel(tt.level))
		})
	}
}

func TestNewWithWriter(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, "debug")
	logger.Debug("formatted", logging.FieldPath, "a.json")

	assert.Contains(t, buf.String(), "formatted")
	assert.Contains(t, buf.String(), "a.json")
}

func TestFromContext(t *testing.T) {
	t.Parallel()

	logger := logging.New("error")
	ctx := logging.WithLogger(context.Background(), logger)

	assert.Same(t, logger, logging.FromContext(ctx))
	assert.NotNil(t, logging.FromContext(context.Background()))
}

func TestSetDefault(t *testing.T) {
	// Not parallel: replaces the process-wide logger.
	original := logging.Default()
	t.Cleanup(func() { logging.SetDefault(original) })

	logger := logging.New("info")
	logging.SetDefault(logger)
	logging.SetLevel("debug")

	assert.Same(t, logger, logging.Default())
	assert.Equal(t, log.DebugLevel, logging.Default().GetLevel())
}

func TestErrorValue(t *testing.T) {
	t.Parallel()

	err := errors.Errorf("--line-ending: %w", errors.Base("invalid option value"))

	got := logging.ErrorValue(logging.New("info"), err)
	assert.Equal(t, "--line-ending: invalid option value", got)
	assert.NotContains(t, got, "logger_test.go")

	got = logging.ErrorValue(logging.New("debug"), err)
	assert.Contains(t, got, "--line-ending: invalid option value")
	assert.Contains(t, got, "logger_test.go", "debug output carries the stack trace")

	assert.Empty(t, logging.ErrorValue(logging.New("info"), nil))
}
