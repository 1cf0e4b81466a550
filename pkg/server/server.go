package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"swap-link/pkg/dispatch"
)

// Server exposes swap deep-link handling over HTTP
type Server struct {
	address    string
	router     *gin.Engine
	dispatcher *dispatch.Dispatcher
	gatherer   prometheus.Gatherer
	logger     *zap.Logger
	srv        *http.Server
}

// NewServer creates a new HTTP server
func NewServer(address string, dispatcher *dispatch.Dispatcher, gatherer prometheus.Gatherer, logger *zap.Logger) *Server {
	r := gin.New()
	r.Use(gin.Recovery())

	s := &Server{
		address:    address,
		router:     r,
		dispatcher: dispatcher,
		gatherer:   gatherer,
		logger:     logger,
	}
	s.setupRoutes()
	return s
}

// setupRoutes defines HTTP endpoints
func (s *Server) setupRoutes() {
	s.router.GET("/swap", s.handleSwap)
	s.router.GET("/healthz", s.handleHealth)
	s.router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{})))
}

// Handler returns the server's http.Handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// handleSwap dispatches the request URL as a swap deep link. It always
// answers 200: an event without initial state is the degraded result.
func (s *Server) handleSwap(c *gin.Context) {
	event := s.dispatcher.Handle(c.Request.URL)
	c.JSON(http.StatusOK, event)
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	s.srv = &http.Server{
		Addr:              s.address,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("swap link server listening", zap.String("address", s.address))
		if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	s.logger.Info("shutting down swap link server")
	return s.srv.Shutdown(shutdownCtx)
}
