// Package mockserver is a development backend that speaks the custodial
// wallet API closely enough to drive the client end to end.
package mockserver

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"

	"github.com/Maphikza/trust-wallet-client.git/internal/logger"
)

type Config struct {
	JWTSecret     []byte
	TokenTTL      time.Duration
	AllowedOrigin string
	ContactEmail  string
	Now           func() time.Time
}

type Server struct {
	cfg     Config
	router  *mux.Router
	metrics *metricsRegistry

	mu      sync.Mutex
	wallets map[string]string // phrase -> address
	issued  map[string]bool   // jti -> revoked
}

// New builds the server. An empty JWTSecret is replaced with random bytes.
func New(cfg Config) (*Server, error) {
	if len(cfg.JWTSecret) == 0 {
		cfg.JWTSecret = make([]byte, 32)
		if _, err := rand.Read(cfg.JWTSecret); err != nil {
			return nil, fmt.Errorf("failed to generate signing secret: %w", err)
		}
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 15 * time.Minute
	}
	if cfg.AllowedOrigin == "" {
		cfg.AllowedOrigin = "*"
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}

	s := &Server{
		cfg:     cfg,
		metrics: newMetricsRegistry(),
		wallets: make(map[string]string),
		issued:  make(map[string]bool),
	}
	s.routes()
	return s, nil
}

func (s *Server) routes() {
	r := mux.NewRouter()
	r.Use(RequestIDMiddleware, ErrorMiddleware, s.LoggingMiddleware, s.CORSMiddleware)

	r.Handle("/metrics", s.metrics.handler()).Methods(http.MethodGet)

	r.HandleFunc("/api/wallet/generate", s.handleGenerate).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/wallet/verify", s.handleVerify).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/api/wallet/import", s.handleImport).Methods(http.MethodPost, http.MethodOptions)

	balances := r.PathPrefix("/api/crypto").Subrouter()
	balances.Use(s.JWTMiddleware(http.StatusUnauthorized, "Authentication failed"))
	balances.HandleFunc("/{address}/balances", s.handleBalances).Methods(http.MethodGet)

	transfer := r.Path("/api/wallet/transfer").Subrouter()
	transfer.Use(s.JWTMiddleware(http.StatusUnauthorized, "Authentication failed"))
	transfer.Methods(http.MethodPost).HandlerFunc(s.handleTransfer)

	logout := r.Path("/api/wallet/{address}/logout").Subrouter()
	logout.Use(s.JWTMiddleware(http.StatusForbidden, "Session expired. Please log in again."))
	logout.Methods(http.MethodPost).HandlerFunc(s.handleLogout)

	s.router = r
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Mock backend listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		logger.Info("Shutting down mock backend")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) isRevoked(jti string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	revoked, known := s.issued[jti]
	return !known || revoked
}

func (s *Server) revoke(jti string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.issued[jti] = true
	s.metrics.setActiveSessions(s.activeLocked())
}

func (s *Server) activeLocked() int {
	n := 0
	for _, revoked := range s.issued {
		if !revoked {
			n++
		}
	}
	return n
}
