package server

import (
	"fmt"
	"os"
	"strings"
	"time"

	// TODO(dlk): configurable env files
	_ "github.com/joho/godotenv/autoload"
	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/logger"
	"gopkg.in/yaml.v3"
)

const (
	// Config file
	configEnvVar = "WAYPOINT_CONFIG"

	// Environment defaults
	environmentEnvVar = "ENVIRONMENT"

	// Log defaults
	logFileEnvVar   = "LOG_FILE"
	logLevelEnvVar  = "LOG_LEVEL"
	defaultLogLvl   = logger.LogLevelInfo
	sentryDsnEnvVar = "SENTRY_DSN"

	// Web server defaults
	DefaultHost                  = "localhost"
	hostEnvVar                   = "HOST"
	DefaultPort                  = ":3000"
	portEnvVar                   = "PORT"
	maxBodyBytesEnvVar           = "SERVER_MAX_BODY_BYTES"
	serverReadTimeoutEnvVar      = "SERVER_READ_TIMEOUT"
	DefaultServerReadTimeout     = 5 * time.Second
	serverIdleTimeoutEnvVar      = "SERVER_IDLE_TIMEOUT"
	DefaultServerIdleTimeout     = 120 * time.Second
	serverWriteTimeoutEnvVar     = "SERVER_WRITE_TIMEOUT"
	DefaultServerWriteTimeout    = 5 * time.Second
	serverShutdownTimeoutEnvVar  = "SERVER_SHUTDOWN_TIMEOUT"
	DefaultServerShutdownTimeout = 5 * time.Second
)

// A Config holds the settings a Server runs with.
type Config struct {
	Env             waypoint.Environment `yaml:"environment"`
	Host            string               `yaml:"host"`
	Port            string               `yaml:"port"`
	LogLevel        string               `yaml:"logLevel"`
	LogFile         string               `yaml:"logFile"`
	SentryDSN       string               `yaml:"sentryDsn"`
	MaxBodyBytes    int64                `yaml:"maxBodyBytes"`
	ReadTimeout     time.Duration        `yaml:"readTimeout"`
	WriteTimeout    time.Duration        `yaml:"writeTimeout"`
	IdleTimeout     time.Duration        `yaml:"idleTimeout"`
	ShutdownTimeout time.Duration        `yaml:"shutdownTimeout"`
}

// NewConfig reads a Config from environment variables,
// including those in a ".env" file found in the working directory.
//
// If WAYPOINT_CONFIG names a YAML file, any value set in that file
// overrides the one read from the environment.
//
// Here are the available environment variables.
//   - ENVIRONMENT: the environment the application is running in; default: DEVELOPMENT; cf. [waypoint.Environment]
//   - HOST: the host the application is running on; default: localhost
//   - PORT: the port the application should listen on; default: :3000
//   - LOG_LEVEL: the level at which to begin logging; default: INFO; cf. [logger.LogLevel]
//   - LOG_FILE: a file logs are also written to, rotated as it grows
//   - SENTRY_DSN: the DSN errors are reported to Sentry with
//   - SERVER_MAX_BODY_BYTES: the most bytes of a request body read; default: 1MB
//   - SERVER_IDLE_TIMEOUT: the timeout - as understood by [time.ParseDuration] - for idling between requests when using keep-alives; default: 120s
//   - SERVER_READ_TIMEOUT: the timeout for reading HTTP requests; default: 5s
//   - SERVER_WRITE_TIMEOUT: the timeout for writing HTTP responses; default: 5s
//   - SERVER_SHUTDOWN_TIMEOUT: how long in-flight requests get to finish on shutdown; default: 5s
func NewConfig() (Config, error) {
	cfg := Config{
		Env:             waypoint.EnvVarOrEnv(environmentEnvVar, waypoint.Development),
		Host:            waypoint.EnvVarOrString(hostEnvVar, DefaultHost),
		Port:            waypoint.EnvVarOrString(portEnvVar, DefaultPort),
		LogLevel:        waypoint.EnvVarOrString(logLevelEnvVar, "INFO"),
		LogFile:         os.Getenv(logFileEnvVar),
		SentryDSN:       os.Getenv(sentryDsnEnvVar),
		MaxBodyBytes:    int64(waypoint.EnvVarOrInt(maxBodyBytesEnvVar, int(req.DefaultMaxBodyBytes))),
		ReadTimeout:     waypoint.EnvVarOrDuration(serverReadTimeoutEnvVar, DefaultServerReadTimeout),
		WriteTimeout:    waypoint.EnvVarOrDuration(serverWriteTimeoutEnvVar, DefaultServerWriteTimeout),
		IdleTimeout:     waypoint.EnvVarOrDuration(serverIdleTimeoutEnvVar, DefaultServerIdleTimeout),
		ShutdownTimeout: waypoint.EnvVarOrDuration(serverShutdownTimeoutEnvVar, DefaultServerShutdownTimeout),
	}

	if fp := os.Getenv(configEnvVar); fp != "" {
		b, err := os.ReadFile(fp)
		if err != nil {
			return cfg, fmt.Errorf("%w: could not read %s: %s", waypoint.ErrBadConfig, fp, err)
		}

		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("%w: could not parse %s: %s", waypoint.ErrBadConfig, fp, err)
		}
	}

	cfg.Env = waypoint.Environment(strings.ToUpper(cfg.Env.String()))

	return cfg, cfg.Valid()
}

// Addr is the address the Server listens on, e.g., ":3000".
func (c Config) Addr() string {
	if c.Port == "" {
		return DefaultPort
	}

	if c.Port[0] != ':' {
		return ":" + c.Port
	}

	return c.Port
}

// Level parses LogLevel, falling back to INFO.
func (c Config) Level() logger.LogLevel {
	ll := logger.NewLogLevel(c.LogLevel)
	if ll == logger.LogLevelUnk {
		return defaultLogLvl
	}

	return ll
}

// Valid reports whether c holds a usable environment and limits.
func (c Config) Valid() error {
	if err := c.Env.Valid(); err != nil {
		return fmt.Errorf("%w: environment %q", waypoint.ErrBadConfig, c.Env)
	}

	if c.MaxBodyBytes < 0 {
		return fmt.Errorf("%w: negative max body bytes %d", waypoint.ErrBadConfig, c.MaxBodyBytes)
	}

	for name, d := range map[string]time.Duration{
		"read":     c.ReadTimeout,
		"write":    c.WriteTimeout,
		"idle":     c.IdleTimeout,
		"shutdown": c.ShutdownTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%w: negative %s timeout %s", waypoint.ErrBadConfig, name, d)
		}
	}

	return nil
}
