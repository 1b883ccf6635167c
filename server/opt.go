package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/middleware"
	"github.com/xy-planning-network/waypoint/logger"
)

// A ServerOption configures a *Server under construction.
//
// Options needing a Config or logger.Logger see the one set by an earlier option;
// New fills in defaults for anything no option set once every option has run.
type ServerOption func(s *Server) error

// WithAdapters wraps the Server in net/http middlewares, e.g., [middleware.CORS],
// applied in the order given before a request reaches any Handler.
func WithAdapters(adapters ...middleware.Adapter) ServerOption {
	return func(s *Server) error {
		s.adapters = append(s.adapters, adapters...)
		return nil
	}
}

// WithConfig sets the Config the Server runs with instead of reading one with NewConfig.
func WithConfig(cfg Config) ServerOption {
	return func(s *Server) error {
		if err := cfg.Valid(); err != nil {
			return err
		}

		s.cfg = &cfg
		return nil
	}
}

// WithContext sets the base context of every request the Server handles.
// Guide stops when ctx is done.
func WithContext(ctx context.Context) ServerOption {
	return func(s *Server) error {
		if ctx == nil {
			return fmt.Errorf("%w: nil context", waypoint.ErrBadConfig)
		}

		s.ctx = ctx
		return nil
	}
}

// WithHandlers appends handlers to the Server's global chain.
func WithHandlers(handlers ...middleware.Handler) ServerOption {
	return func(s *Server) error {
		s.handlers = append(s.handlers, handlers...)
		return nil
	}
}

// WithLogger sets the logger.Logger the Server reports through.
func WithLogger(l logger.Logger) ServerOption {
	return func(s *Server) error {
		s.l = l
		return nil
	}
}

// WithServer sets the *http.Server the Server listens with.
// Its Handler is replaced when the Server begins serving.
func WithServer(srv *http.Server) ServerOption {
	return func(s *Server) error {
		s.srv = srv
		return nil
	}
}
