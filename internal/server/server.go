// Package server provides the HTTP service for balancing equations.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/zephyrtronium/reactions"
	"github.com/zephyrtronium/reactions/internal/batch"
	"github.com/zephyrtronium/reactions/internal/config"
	"github.com/zephyrtronium/reactions/internal/render"
)

// Server serves the balancing API.
type Server struct {
	cfg      config.ServerConfig
	balancer batch.Balancer
	workers  int
	log      *zap.Logger
}

// New creates a server. workers limits the equations of one request that are
// balanced at once.
func New(cfg config.ServerConfig, b batch.Balancer, workers int, log *zap.Logger) *Server {
	return &Server{cfg: cfg, balancer: b, workers: workers, log: log}
}

// Handler returns the router of the API.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		requestLogger(s.log),
		middleware.Recoverer,
	)
	r.Get("/healthz", s.health)
	r.Route("/v1", func(r chi.Router) {
		r.Post("/balance", s.balance)
		r.Post("/check", s.check)
		r.Get("/formula/{formula}", s.formula)
	})
	return r
}

// Serve listens on the configured address and serves until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.cfg.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}
	return s.ServeListener(ctx, ln)
}

// ServeListener serves on ln until ctx is done, then shuts down gracefully.
func (s *Server) ServeListener(ctx context.Context, ln net.Listener) error {
	eg, egctx := errgroup.WithContext(ctx)
	srv := &http.Server{
		Handler: s.Handler(),
		BaseContext: func(net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: s.cfg.ReadHeaderTimeout,
	}
	s.log.Info("serving", zap.String("addr", ln.Addr().String()))

	eg.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
		defer cancel()
		s.log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})
	return eg.Wait()
}

type balanceRequest struct {
	Equations []string `json:"equations"`
}

type balanceResponse struct {
	Results []render.Record `json:"results"`
	Failed  int             `json:"failed"`
}

type checkRequest struct {
	Equation string `json:"equation"`
}

type checkResponse struct {
	Equation string `json:"equation"`
	Balanced bool   `json:"balanced"`
}

type errorResponse struct {
	Error    string `json:"error"`
	Kind     string `json:"kind,omitempty"`
	Position int    `json:"position,omitempty"`
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// balance balances a list of equations. The status is 422 if any of them
// fails, with the results of all of them in the body.
func (s *Server) balance(w http.ResponseWriter, r *http.Request) {
	var req balanceRequest
	if err := decode(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	switch {
	case len(req.Equations) == 0:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "no equations"})
		return
	case len(req.Equations) > s.cfg.MaxEquations:
		writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: fmt.Sprintf("more than %d equations", s.cfg.MaxEquations)})
		return
	}
	results, err := batch.Run(r.Context(), s.balancer, req.Equations, batch.Options{Workers: s.workers})
	if r.Context().Err() != nil {
		// The client is gone.
		return
	}
	status := http.StatusOK
	if err != nil {
		status = http.StatusUnprocessableEntity
		s.log.Debug("balance failed", zap.Error(err), zap.String("request_id", middleware.GetReqID(r.Context())))
	}
	writeJSON(w, status, balanceResponse{Results: render.Records(results), Failed: batch.Failed(results)})
}

func (s *Server) check(w http.ResponseWriter, r *http.Request) {
	var req checkRequest
	if err := decode(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, checkResponse{Equation: req.Equation, Balanced: reactions.IsBalanced(req.Equation)})
}

func (s *Server) formula(w http.ResponseWriter, r *http.Request) {
	src, err := url.PathUnescape(chi.URLParam(r, "formula"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	f, err := reactions.ParseString(src)
	if err != nil {
		resp := errorResponse{Error: err.Error(), Kind: render.ErrorKind(err)}
		var ie reactions.InputError
		if errors.As(err, &ie) {
			resp.Position = ie.Pos()
		}
		writeJSON(w, http.StatusUnprocessableEntity, resp)
		return
	}
	writeJSON(w, http.StatusOK, render.NewFormulaRecord(f))
}

// maxBody bounds request bodies.
const maxBody = 1 << 20

func decode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger logs each request after it completes.
func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			defer func() {
				log.Info("request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Int("bytes", ww.BytesWritten()),
					zap.Duration("duration", time.Since(start)),
					zap.String("request_id", middleware.GetReqID(r.Context())),
				)
			}()
			next.ServeHTTP(ww, r)
		})
	}
}
