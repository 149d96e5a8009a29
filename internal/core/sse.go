package core

import (
	"fmt"
	"net/http"
	"time"

	"github.com/cf-ypark/mcp-server-cloudflare/internal/mcp/session"
	"github.com/cf-ypark/mcp-server-cloudflare/pkg/mcp"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// handleSSE handles legacy SSE connections: the client opens this stream and
// posts JSON-RPC messages to the /message endpoint it is told about
func (s *Server) handleSSE(c *gin.Context) {
	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache, no-transform")
	c.Writer.Header().Set("Connection", "keep-alive")

	sessionID := uuid.New().String()
	meta := &session.Meta{
		ID:        sessionID,
		CreatedAt: time.Now(),
		Type:      "sse",
	}

	conn, err := s.sessions.Register(c.Request.Context(), meta)
	if err != nil {
		s.sendProtocolError(c, sessionID, "Failed to create SSE connection", http.StatusInternalServerError, mcp.ErrorCodeInternalError)
		return
	}

	// Send the initial endpoint event
	_, err = fmt.Fprintf(c.Writer, "event: endpoint\ndata: /message?sessionId=%s\n\n", meta.ID)
	if err != nil {
		s.sendProtocolError(c, sessionID, "Failed to initialize SSE connection", http.StatusInternalServerError, mcp.ErrorCodeInternalError)
		return
	}
	c.Writer.Flush()

	for {
		select {
		case event := <-conn.EventQueue():
			if event == nil {
				return
			}
			if event.Event == "message" {
				if _, err := fmt.Fprintf(c.Writer, "event: message\ndata: %s\n\n", event.Data); err != nil {
					s.logger.Error("failed to send SSE message", zap.Error(err))
				}
				c.Writer.Flush()
			}
		case <-c.Request.Context().Done():
			return
		case <-s.shutdownCh:
			return
		}
	}
}

// handleMessage processes incoming JSON-RPC messages for SSE sessions
func (s *Server) handleMessage(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		s.sendProtocolError(c, nil, "Missing sessionId parameter", http.StatusBadRequest, mcp.ErrorCodeInvalidRequest)
		return
	}

	conn, err := s.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		s.sendProtocolError(c, nil, "Session not found", http.StatusNotFound, mcp.ErrorCodeRequestTimeout)
		return
	}

	var req mcp.JSONRPCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.sendProtocolError(c, nil, "Invalid JSON-RPC request", http.StatusBadRequest, mcp.ErrorCodeParseError)
		return
	}

	s.handleMCPRequest(c, req, conn, true)
}
