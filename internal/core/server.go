// Package core is the MCP serving shell: a gin router exposing the
// streamable HTTP and SSE transports and dispatching JSON-RPC requests to
// the tool registry.
package core

import (
	"context"
	"fmt"
	"net/http"

	"github.com/cf-ypark/mcp-server-cloudflare/internal/account"
	"github.com/cf-ypark/mcp-server-cloudflare/internal/common/config"
	"github.com/cf-ypark/mcp-server-cloudflare/internal/mcp/session"
	"github.com/cf-ypark/mcp-server-cloudflare/internal/tools"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Server represents the MCP server
type Server struct {
	logger   *zap.Logger
	port     int
	router   *gin.Engine
	registry *tools.Registry
	// sessions manages all active sessions
	sessions session.Store
	// activeAccount is resolved once from configuration; an empty ID means
	// no account is selected and every tool short-circuits with an advisory
	activeAccount account.Account
	// shutdownCh is used to signal shutdown to all SSE connections
	shutdownCh chan struct{}
}

// NewServer creates a new MCP server
func NewServer(logger *zap.Logger, cfg *config.ServerConfig, registry *tools.Registry, sessions session.Store) *Server {
	s := &Server{
		logger:        logger.Named("core"),
		port:          cfg.Port,
		router:        gin.New(),
		registry:      registry,
		sessions:      sessions,
		activeAccount: account.Account{ID: cfg.Cloudflare.AccountID},
		shutdownCh:    make(chan struct{}),
	}

	s.router.Use(s.loggerMiddleware())
	s.router.Use(s.recoveryMiddleware())
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	s.router.GET("/health_check", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Health check passed.",
		})
	})

	s.router.Any("/mcp", s.handleMCP)
	s.router.GET("/sse", s.handleSSE)
	s.router.POST("/message", s.handleMessage)
}

// Start runs the HTTP server until it fails or the process exits
func (s *Server) Start() error {
	s.logger.Info("starting MCP server", zap.Int("port", s.port))
	return s.router.Run(fmt.Sprintf(":%d", s.port))
}

// Shutdown signals all long-lived connections to terminate
func (s *Server) Shutdown(_ context.Context) error {
	close(s.shutdownCh)
	return nil
}

// toolContext threads the active account into the request context before any
// tool runs
func (s *Server) toolContext(ctx context.Context) context.Context {
	if s.activeAccount.ID == "" {
		return ctx
	}
	return account.WithActive(ctx, s.activeAccount)
}
