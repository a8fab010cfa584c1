package logger_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/srgjo27/launch_booking/internal/platform/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWithContext_AddsSessionAndUser(t *testing.T) {
	var buf bytes.Buffer
	logger.Init("debug", "json", &buf)

	ctx := logger.WithUser(logger.WithSession(context.Background()), "USER1001")
	logger.WithContext(ctx).Info("booking created", "booking_id", "BKG2001")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "booking created", line["msg"])
	assert.Equal(t, "USER1001", line["user_id"])
	assert.Equal(t, "BKG2001", line["booking_id"])
	assert.NotEmpty(t, line["session_id"])
}

func TestInit_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	logger.Init("warn", "text", &buf)

	logger.Get().Info("hidden")
	assert.Empty(t, buf.String())

	logger.Get().Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}

type closeRecorder struct {
	bytes.Buffer
	closed int
}

func (c *closeRecorder) Close() error {
	c.closed++
	return nil
}

func TestClose_ClosesLogWriterOnce(t *testing.T) {
	w := &closeRecorder{}
	logger.Init("info", "text", w)

	require.NoError(t, logger.Close())
	require.NoError(t, logger.Close())
	assert.Equal(t, 1, w.closed)
}
