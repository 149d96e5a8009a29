package core

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/cf-ypark/mcp-server-cloudflare/internal/common/cnst"
	"github.com/cf-ypark/mcp-server-cloudflare/internal/mcp/session"
	"github.com/cf-ypark/mcp-server-cloudflare/pkg/mcp"
	"github.com/cf-ypark/mcp-server-cloudflare/pkg/version"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// handleMCP handles MCP connections on the streamable HTTP transport
func (s *Server) handleMCP(c *gin.Context) {
	switch c.Request.Method {
	case http.MethodOptions:
		c.Status(http.StatusOK)
	case http.MethodGet:
		s.handleGet(c)
	case http.MethodPost:
		s.handlePost(c)
	case http.MethodDelete:
		s.handleDelete(c)
	default:
		c.Header("Allow", "GET, POST, DELETE")
		s.sendProtocolError(c, nil, "Method not allowed", http.StatusMethodNotAllowed, mcp.ErrorCodeConnectionClosed)
	}
}

// handleGet handles GET requests for the SSE stream of a streamable session
func (s *Server) handleGet(c *gin.Context) {
	acceptHeader := c.GetHeader("Accept")
	if !strings.Contains(acceptHeader, "text/event-stream") {
		s.sendProtocolError(c, nil, "Not Acceptable: Client must accept text/event-stream", http.StatusNotAcceptable, mcp.ErrorCodeInvalidRequest)
		return
	}

	conn := s.getSession(c)
	if conn == nil {
		return
	}

	c.Writer.Header().Set("Content-Type", "text/event-stream")
	c.Writer.Header().Set("Cache-Control", "no-cache, no-transform")
	c.Writer.Header().Set("Connection", "keep-alive")
	c.Writer.Header().Set(mcp.HeaderMcpSessionID, conn.Meta().ID)
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

// handlePost handles POST requests containing JSON-RPC messages
func (s *Server) handlePost(c *gin.Context) {
	contentType := c.GetHeader("Content-Type")
	if !strings.Contains(contentType, "application/json") {
		s.sendProtocolError(c, nil, "Unsupported Media Type: Content-Type must be application/json",
			http.StatusUnsupportedMediaType, mcp.ErrorCodeConnectionClosed)
		return
	}

	var req mcp.JSONRPCRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.sendProtocolError(c, nil, "Invalid JSON-RPC request",
			http.StatusBadRequest, mcp.ErrorCodeParseError)
		return
	}

	sessionID := c.GetHeader(mcp.HeaderMcpSessionID)

	var (
		conn session.Connection
		err  error
	)
	if req.Method == mcp.Initialize {
		if sessionID != "" {
			s.sendProtocolError(c, req.Id, "Invalid Request: Server already initialized",
				http.StatusBadRequest, mcp.ErrorCodeInvalidRequest)
			return
		}
		sessionID = uuid.New().String()
		meta := &session.Meta{
			ID:        sessionID,
			CreatedAt: time.Now(),
			Type:      "streamable",
		}
		conn, err = s.sessions.Register(c.Request.Context(), meta)
		if err != nil {
			s.sendProtocolError(c, req.Id, "Failed to create session", http.StatusInternalServerError, mcp.ErrorCodeInternalError)
			return
		}
		c.Header(mcp.HeaderMcpSessionID, sessionID)
	} else {
		conn, err = s.sessions.Get(c.Request.Context(), sessionID)
		if err != nil {
			s.sendProtocolError(c, req.Id, "Session not found",
				http.StatusNotFound, mcp.ErrorCodeRequestTimeout)
			return
		}
	}

	s.handleMCPRequest(c, req, conn, false)
}

// handleDelete handles DELETE requests to terminate sessions
func (s *Server) handleDelete(c *gin.Context) {
	conn := s.getSession(c)
	if conn == nil {
		return
	}

	if err := s.sessions.Unregister(c.Request.Context(), conn.Meta().ID); err != nil {
		s.sendProtocolError(c, conn.Meta().ID, "Failed to terminate session", http.StatusInternalServerError, mcp.ErrorCodeInternalError)
		return
	}
	c.Status(http.StatusOK)
}

// getSession resolves the session named by the Mcp-Session-Id header
func (s *Server) getSession(c *gin.Context) session.Connection {
	sessionID := c.GetHeader(mcp.HeaderMcpSessionID)
	if sessionID == "" {
		s.sendProtocolError(c, nil, "Missing session ID", http.StatusBadRequest, mcp.ErrorCodeInvalidRequest)
		return nil
	}

	conn, err := s.sessions.Get(c.Request.Context(), sessionID)
	if err != nil {
		s.sendProtocolError(c, nil, "Session not found", http.StatusNotFound, mcp.ErrorCodeRequestTimeout)
		return nil
	}
	return conn
}

// handleMCPRequest processes one JSON-RPC request on either transport
func (s *Server) handleMCPRequest(c *gin.Context, req mcp.JSONRPCRequest, conn session.Connection, isSSE bool) {
	switch req.Method {
	case mcp.Initialize:
		var params mcp.InitializeRequestParams
		if len(req.Params) > 0 {
			if err := json.Unmarshal(req.Params, &params); err != nil {
				s.sendProtocolError(c, req.Id, fmt.Sprintf("invalid initialize parameters: %v", err),
					http.StatusBadRequest, mcp.ErrorCodeInvalidParams)
				return
			}
		}

		s.sendSuccessResponse(c, conn, req, mcp.InitializedResult{
			ProtocolVersion: mcp.LatestProtocolVersion,
			Capabilities: mcp.ServerCapabilitiesSchema{
				Logging: mcp.LoggingCapabilitySchema{},
				Tools: mcp.ToolsCapabilitySchema{
					ListChanged: false,
				},
			},
			ServerInfo: mcp.ImplementationSchema{
				Name:    cnst.AppName,
				Version: version.Get(),
			},
		}, isSSE)

	case mcp.NotificationInitialized:
		c.Status(http.StatusAccepted)

	case mcp.Ping:
		s.sendSuccessResponse(c, conn, req, struct{}{}, isSSE)

	case mcp.ToolsList:
		s.sendSuccessResponse(c, conn, req, mcp.ListToolsResult{
			Tools: s.registry.ListTools(),
		}, isSSE)

	case mcp.ToolsCall:
		var params mcp.CallToolParams
		if err := json.Unmarshal(req.Params, &params); err != nil {
			s.sendProtocolError(c, req.Id, fmt.Sprintf("invalid tool call parameters: %v", err),
				http.StatusBadRequest, mcp.ErrorCodeInvalidParams)
			return
		}

		ctx := s.toolContext(c.Request.Context())
		result := s.registry.Call(ctx, params.Name, params.Arguments)
		s.sendSuccessResponse(c, conn, req, result, isSSE)

	default:
		s.sendProtocolError(c, req.Id, fmt.Sprintf("method not found: %s", req.Method),
			http.StatusNotFound, mcp.ErrorCodeMethodNotFound)
	}
}
