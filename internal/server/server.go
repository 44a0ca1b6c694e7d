// Package server exposes the dispatch operations over HTTP for the web
// frontend: intent analysis and execution, recurrence summaries, and CRUD on
// shifts, payroll, and notifications.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/routewise/dispatch/internal/engine"
	"github.com/routewise/dispatch/internal/service"
)

// Config holds the HTTP server configuration.
type Config struct {
	Host         string
	Port         int
	Debug        bool
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DefaultConfig returns the default server configuration.
func DefaultConfig() Config {
	return Config{
		Host:         "localhost",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Server serves the dispatch HTTP API.
type Server struct {
	storage    service.Storage
	dispatcher *engine.Dispatcher
	engine     *gin.Engine
	httpServer *http.Server
	config     Config
}

// New creates a server around the given storage and dispatcher.
func New(storage service.Storage, dispatcher *engine.Dispatcher, config Config) *Server {
	if !config.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowAllOrigins = true
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Requested-With"}
	router.Use(cors.New(corsConfig))

	s := &Server{
		storage:    storage,
		dispatcher: dispatcher,
		engine:     router,
		config:     config,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")

	api.GET("/health", s.handleHealth)

	api.POST("/intent", s.handleAnalyzeIntent)
	api.POST("/intent/execute", s.handleExecuteIntent)
	api.POST("/recurrence/summary", s.handleRecurrenceSummary)

	api.GET("/shifts", s.handleListShifts)
	api.POST("/shifts", s.handleCreateShift)
	api.PUT("/shifts/:id", s.handleUpdateShift)
	api.DELETE("/shifts/:id", s.handleDeleteShift)

	api.GET("/drivers", s.handleListDrivers)

	api.POST("/payroll/request", s.handleCreatePayout)
	api.GET("/payroll/requests", s.handleListPayouts)
	api.PUT("/payroll/approve/:id", s.handleApprovePayout)

	api.GET("/notifications/:recipient", s.handleListNotifications)
	api.POST("/notifications", s.handleCreateNotification)
}

// Handler returns the underlying HTTP handler. Used by tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Start begins serving and blocks until the listener fails or Shutdown is
// called.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.engine,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	slog.Info("starting HTTP server", "addr", addr)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	slog.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}
