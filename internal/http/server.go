// Package http provides the API server, route registration, and middleware.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	execHTTP "github.com/allisson/refvault/internal/exec/http"
	keysHTTP "github.com/allisson/refvault/internal/keys/http"
	rewriteHTTP "github.com/allisson/refvault/internal/rewrite/http"
	valuesHTTP "github.com/allisson/refvault/internal/values/http"
	variablesHTTP "github.com/allisson/refvault/internal/variables/http"
)

// Handlers bundles the per-module HTTP handlers registered on the API server.
type Handlers struct {
	Values    *valuesHTTP.SecureValueHandler
	Variables *variablesHTTP.VariableHandler
	Keys      *keysHTTP.KeyHandler
	Commands  *execHTTP.CommandHandler
	Rewrite   *rewriteHTTP.RewriteHandler
}

// Server represents the API HTTP server.
type Server struct {
	server *http.Server
	router *gin.Engine
	db     *sql.DB
	logger *slog.Logger
}

// NewServer creates a new HTTP server. Routes are registered separately with
// SetupRouter so tests can exercise handlers without a full dependency graph.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", host, port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
	}
}

// SetupRouter builds the Gin router with middleware and all API routes.
func (s *Server) SetupRouter(handlers Handlers, corsEnabled bool, corsAllowOrigins string) {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if corsMiddleware := createCORSMiddleware(corsEnabled, corsAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	v1 := router.Group("/v1")
	{
		v1.POST("/canonicalize", handlers.Rewrite.CanonicalizeHandler)
		v1.POST("/resolve", handlers.Rewrite.ResolveHandler)

		v1.POST("/values", handlers.Values.CreateHandler)
		v1.GET("/values", handlers.Values.ListHandler)
		v1.POST("/values/rewrap", handlers.Values.RewrapHandler)
		v1.GET("/values/:refId", handlers.Values.GetHandler)
		v1.PUT("/values/:refId", handlers.Values.UpdateHandler)
		v1.DELETE("/values/:refId", handlers.Values.DeleteHandler)

		v1.POST("/variables", handlers.Variables.SetHandler)
		v1.GET("/variables", handlers.Variables.ListHandler)
		v1.GET("/variables/:refId", handlers.Variables.GetHandler)
		v1.DELETE("/variables/:refId", handlers.Variables.DeleteHandler)

		v1.POST("/keys/rotate", handlers.Keys.RotateHandler)
		v1.GET("/keys", handlers.Keys.ListHandler)

		v1.POST("/commands", handlers.Commands.CreateHandler)
		v1.GET("/commands", handlers.Commands.ListHandler)
		v1.GET("/commands/:commandId", handlers.Commands.GetHandler)
		v1.DELETE("/commands/:commandId", handlers.Commands.DeleteHandler)
	}

	s.router = router
}

// Start starts the HTTP server.
func (s *Server) Start(ctx context.Context) error {
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

// healthHandler reports process liveness.
func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports whether the server can serve traffic.
func (s *Server) readinessHandler(c *gin.Context) {
	components := gin.H{}
	status := "ready"
	code := http.StatusOK

	if err := s.pingDB(c.Request.Context()); err != nil {
		components["database"] = "error"
		status = "not_ready"
		code = http.StatusServiceUnavailable
	} else {
		components["database"] = "ok"
	}

	c.JSON(code, gin.H{"status": status, "components": components})
}

func (s *Server) pingDB(ctx context.Context) error {
	if s.db == nil {
		return fmt.Errorf("database is not configured")
	}

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	return s.db.PingContext(pingCtx)
}
