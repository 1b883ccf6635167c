package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/xy-planning-network/waypoint"
	"github.com/xy-planning-network/waypoint/http/middleware"
	"github.com/xy-planning-network/waypoint/http/req"
	"github.com/xy-planning-network/waypoint/http/resp"
	"github.com/xy-planning-network/waypoint/logger"
)

// A Server runs every request through an ordered chain of global Handlers,
// routers and plain middlewares alike, and writes the response they build.
type Server struct {
	adapters []middleware.Adapter
	cfg      *Config
	ctx      context.Context
	l        logger.Logger
	srv      *http.Server

	mu       sync.Mutex
	handlers []middleware.Handler
	serving  atomic.Bool
}

// New constructs a Server from the provided options.
// Anything the options leave unset is filled in afterward:
// the Config from NewConfig, the logger.Logger and *http.Server from that Config.
func New(opts ...ServerOption) (*Server, error) {
	s := &Server{ctx: context.Background()}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("%w: %s", waypoint.ErrBadConfig, err)
		}
	}

	if s.cfg == nil {
		cfg, err := NewConfig()
		if err != nil {
			return nil, err
		}

		s.cfg = &cfg
	}

	if s.l == nil {
		s.l = defaultLogger(*s.cfg)
	}

	if s.srv == nil {
		s.srv = defaultServer(s.ctx, *s.cfg)
	}

	s.l.Debug(fmt.Sprintf("using %d global handlers and %d adapters", len(s.handlers), len(s.adapters)), nil)

	return s, nil
}

func (s *Server) Config() Config         { return *s.cfg }
func (s *Server) Logger() logger.Logger { return s.l }

// Use appends handlers to the global chain.
// Use returns ErrServing once the Server has handled a request.
func (s *Server) Use(handlers ...middleware.Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.serving.Load() {
		return ErrServing
	}

	for _, h := range handlers {
		if h != nil {
			s.handlers = append(s.handlers, h)
		}
	}

	return nil
}

// Handler is the Server wrapped in the adapters set with WithAdapters.
func (s *Server) Handler() http.Handler {
	return middleware.Chain(s, s.adapters...)
}

// ServeHTTP converts r, runs it through the global chain and writes the response.
//
// A request that cannot be converted, e.g., one using a method no router dispatches on,
// is answered with http.StatusBadRequest, or http.StatusRequestEntityTooLarge for an oversized body,
// without running the chain.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	rx, err := req.FromHTTP(r, s.cfg.MaxBodyBytes)
	if err != nil {
		code := http.StatusBadRequest
		if errors.Is(err, req.ErrBodyTooLarge) {
			code = http.StatusRequestEntityTooLarge
		}

		s.l.Warn("could not read request", &logger.LogContext{
			Data:  map[string]any{"method": r.Method, "path": r.URL.Path},
			Error: err,
		})

		wx := resp.New().Status(code).Text(http.StatusText(code))
		if err := wx.Write(w); err != nil {
			s.l.Error("could not write response", &logger.LogContext{Error: err})
		}

		return
	}

	wx := s.Mock(rx)
	if err := wx.Write(w); err != nil {
		s.l.Error("could not write response", &logger.LogContext{Error: err, Request: rx})
	}
}

// Mock runs r through the global chain and returns the response the chain built,
// without any network I/O.
func (s *Server) Mock(r *req.Request) *resp.Response {
	if !s.serving.Load() {
		s.freeze()
	}

	w := resp.New()
	middleware.Run(s.handlers, r, w)

	return w
}

// freezer is implemented by Handlers, like routers, that stop accepting configuration once serving.
type freezer interface {
	Freeze()
}

// freeze ends the Server's setup phase, along with that of any Handler in its chain.
func (s *Server) freeze() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.serving.Load() {
		return
	}

	for _, h := range s.handlers {
		if f, ok := h.(freezer); ok {
			f.Freeze()
		}
	}

	s.serving.Store(true)
}

// Guide begins the web server.
//
// These, and (*Server).Shutdown, stop Guide:
//
// - the context set by WithContext being done
// - os.Interrupt
// - syscall.SIGHUP
// - syscall.SIGINT
// - syscall.SIGQUIT
// - syscall.SIGTERM
func (s *Server) Guide() error {
	s.freeze()

	ctx, cancel := signal.NotifyContext(
		s.ctx,
		os.Interrupt,
		syscall.SIGHUP,
		syscall.SIGINT,
		syscall.SIGQUIT,
		syscall.SIGTERM,
	)
	defer cancel()

	s.srv.Handler = s.Handler()

	errCh := make(chan error, 1)
	go func() {
		s.l.Info(fmt.Sprintf("running web server at %s%s", s.cfg.Host, s.srv.Addr), nil)
		if err := s.srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("could not listen: %w", err)
		}
	}()

	select {
	case err := <-errCh:
		s.l.Error(err.Error(), &logger.LogContext{Error: err})
		return err

	case <-ctx.Done():
		s.l.Info("received shutdown signal", nil)
	}

	return s.Shutdown()
}

// Shutdown shutdowns the web server,
// giving in-flight requests the configured shutdown timeout to finish.
func (s *Server) Shutdown() error {
	timeout := s.cfg.ShutdownTimeout
	if timeout == 0 {
		timeout = DefaultServerShutdownTimeout
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s.l.Info("shutting down web server", nil)
	err := s.srv.Shutdown(shutdownCtx)
	if err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("could not shutdown: %w", err)
	}

	s.l.Info("web server shutdown successfully", nil)
	return nil
}
