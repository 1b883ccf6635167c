package server_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/logger"
	"github.com/xy-planning-network/waypoint/server"
)

var configEnvVars = []string{
	"WAYPOINT_CONFIG",
	"ENVIRONMENT",
	"HOST",
	"PORT",
	"LOG_LEVEL",
	"LOG_FILE",
	"SENTRY_DSN",
	"SERVER_MAX_BODY_BYTES",
	"SERVER_READ_TIMEOUT",
	"SERVER_WRITE_TIMEOUT",
	"SERVER_IDLE_TIMEOUT",
	"SERVER_SHUTDOWN_TIMEOUT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvVars {
		t.Setenv(key, "")
	}
}

func TestNewConfigDefaults(t *testing.T) {
	// Arrange
	clearEnv(t)

	// Act
	cfg, err := server.NewConfig()

	// Assert
	require.NoError(t, err)
	require.Equal(t, server.Config{
		Env:             waypoint.Development,
		Host:            server.DefaultHost,
		Port:            server.DefaultPort,
		LogLevel:        "INFO",
		MaxBodyBytes:    req.DefaultMaxBodyBytes,
		ReadTimeout:     server.DefaultServerReadTimeout,
		WriteTimeout:    server.DefaultServerWriteTimeout,
		IdleTimeout:     server.DefaultServerIdleTimeout,
		ShutdownTimeout: server.DefaultServerShutdownTimeout,
	}, cfg)
}

func TestNewConfigEnv(t *testing.T) {
	// Arrange
	clearEnv(t)
	t.Setenv("ENVIRONMENT", "production")
	t.Setenv("PORT", "8080")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SERVER_MAX_BODY_BYTES", "2048")
	t.Setenv("SERVER_READ_TIMEOUT", "1s")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "not a duration")

	// Act
	cfg, err := server.NewConfig()

	// Assert
	require.NoError(t, err)
	require.Equal(t, waypoint.Production, cfg.Env)
	require.Equal(t, ":8080", cfg.Addr())
	require.Equal(t, logger.LogLevelDebug, cfg.Level())
	require.Equal(t, int64(2048), cfg.MaxBodyBytes)
	require.Equal(t, time.Second, cfg.ReadTimeout)
	require.Equal(t, server.DefaultServerShutdownTimeout, cfg.ShutdownTimeout)
}

func TestNewConfigYAML(t *testing.T) {
	for _, tc := range []struct {
		name string
		yaml string
		err  error
	}{
		{"Overrides", "environment: staging\nport: \":9000\"\nreadTimeout: 250ms\nmaxBodyBytes: 10\n", nil},
		{"Malformed", "port: [", waypoint.ErrBadConfig},
		{"Bad-Environment", "environment: mars\n", waypoint.ErrBadConfig},
		{"Negative-Timeout", "idleTimeout: -1s\n", waypoint.ErrBadConfig},
	} {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			clearEnv(t)
			t.Setenv("PORT", "8080")
			fp := filepath.Join(t.TempDir(), "waypoint.yaml")
			require.NoError(t, os.WriteFile(fp, []byte(tc.yaml), 0o600))
			t.Setenv("WAYPOINT_CONFIG", fp)

			// Act
			cfg, err := server.NewConfig()

			// Assert
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, waypoint.Staging, cfg.Env)
			require.Equal(t, ":9000", cfg.Addr())
			require.Equal(t, 250*time.Millisecond, cfg.ReadTimeout)
			require.Equal(t, int64(10), cfg.MaxBodyBytes)
			require.Equal(t, server.DefaultServerWriteTimeout, cfg.WriteTimeout)
		})
	}
}

func TestNewConfigMissingFile(t *testing.T) {
	// Arrange
	clearEnv(t)
	t.Setenv("WAYPOINT_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))

	// Act
	_, err := server.NewConfig()

	// Assert
	require.ErrorIs(t, err, waypoint.ErrBadConfig)
}

func TestConfigAddr(t *testing.T) {
	require.Equal(t, server.DefaultPort, server.Config{}.Addr())
	require.Equal(t, ":80", server.Config{Port: "80"}.Addr())
	require.Equal(t, ":443", server.Config{Port: ":443"}.Addr())
}

func TestConfigLevel(t *testing.T) {
	require.Equal(t, logger.LogLevelWarn, server.Config{LogLevel: "WARN"}.Level())
	require.Equal(t, logger.LogLevelInfo, server.Config{LogLevel: "chatty"}.Level())
}
