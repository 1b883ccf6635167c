package server

import (
	"context"
	"net"
	"net/http"

	"github.com/xy-planning-network/waypoint/logger"
)

// defaultLogger constructs a [logger.Logger] configured by cfg.
func defaultLogger(cfg Config) logger.Logger {
	l := logger.New(
		logger.WithEnv(cfg.Env),
		logger.WithLevel(cfg.Level()),
		logger.WithFile(cfg.LogFile),
	)

	if wl, ok := l.(*logger.WaypointLogger); ok && cfg.SentryDSN != "" {
		l = logger.NewSentryLogger(wl, cfg.SentryDSN)
	}

	l.Debug("setting up server logger", nil)

	return l
}

// defaultServer constructs a default [*http.Server].
func defaultServer(ctx context.Context, cfg Config) *http.Server {
	srv := &http.Server{
		Addr:         cfg.Addr(),
		IdleTimeout:  cfg.IdleTimeout,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if ctx != nil {
		srv.BaseContext = func(_ net.Listener) context.Context { return ctx }
	}

	return srv
}
