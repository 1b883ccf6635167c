package logger_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint/logger"
)

func TestNewSentryLogger(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(newTestLogger(b))).(*logger.WaypointLogger)

	// Act
	actual := logger.NewSentryLogger(l, "not a dsn")

	// Assert
	require.Same(t, l, actual)
	require.Contains(t, b.String(), "unable to init Sentry")

	// Act
	actual = logger.NewSentryLogger(l, "https://public@sentry.example.com/1")

	// Assert
	sl, ok := actual.(*logger.SentryLogger)
	require.True(t, ok)
	require.Equal(t, l.LogLevel(), sl.LogLevel())
	require.Equal(t, 1, sl.Skip())

	// Arrange
	b.Reset()

	// Act
	sl.Info("forwarded", nil)

	// Assert
	require.Contains(t, b.String(), "'forwarded'")
}
