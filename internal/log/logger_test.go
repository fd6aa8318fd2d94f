package log

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"INFO":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	for in, want := range tests {
		got, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseLevel("loud")
	assert.ErrorContains(t, err, "invalid log level")
}

func TestSetupJSON(t *testing.T) {
	var buf bytes.Buffer
	l, err := Setup("info", "json", &buf)
	require.NoError(t, err)

	WithComponent(l, ComponentHTTP).Info("hello", FieldRequestID, "req_1")
	l.Debug("hidden")

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, ComponentHTTP, rec[FieldComponent])
	assert.Equal(t, "req_1", rec[FieldRequestID])
	assert.NotContains(t, buf.String(), "hidden")
}

func TestSetupRejectsFormat(t *testing.T) {
	_, err := Setup("info", "xml", &bytes.Buffer{})
	assert.ErrorContains(t, err, "invalid log format")
}

func TestFromContext(t *testing.T) {
	assert.Same(t, slog.Default(), FromContext(context.Background()))

	l := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	ctx := WithContext(context.Background(), l)
	assert.Same(t, l, FromContext(ctx))
}

func TestGormLoggerTrace(t *testing.T) {
	var buf bytes.Buffer
	l, err := Setup("debug", "json", &buf)
	require.NoError(t, err)
	gl := NewGormLogger(l, 100*time.Millisecond)

	sql := func() (string, int64) { return "SELECT 1", 1 }

	gl.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Contains(t, buf.String(), `"level":"DEBUG"`)
	buf.Reset()

	gl.Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	assert.Contains(t, buf.String(), `"level":"ERROR"`)
	assert.Contains(t, buf.String(), "boom")
	buf.Reset()

	gl.Trace(context.Background(), time.Now().Add(-time.Second), sql, nil)
	assert.Contains(t, buf.String(), "slow query")
	buf.Reset()

	gl.LogMode(logger.Silent).Trace(context.Background(), time.Now(), sql, errors.New("boom"))
	assert.Empty(t, buf.String())
}
