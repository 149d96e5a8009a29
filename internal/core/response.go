package core

import (
	"encoding/json"
	"net/http"

	"github.com/cf-ypark/mcp-server-cloudflare/internal/mcp/session"
	"github.com/cf-ypark/mcp-server-cloudflare/pkg/mcp"

	"github.com/gin-gonic/gin"
)

// sendProtocolError sends a protocol-level error response
func (s *Server) sendProtocolError(c *gin.Context, id any, message string, statusCode int, bizCode int) {
	response := mcp.JSONRPCErrorSchema{
		JSONRPCBaseResult: mcp.JSONRPCBaseResult{
			JSONRPC: mcp.JSPNRPCVersion,
			ID:      id,
		},
		Error: mcp.JSONRPCError{
			Code:    bizCode,
			Message: message,
		},
	}
	c.JSON(statusCode, response)
}

// sendSuccessResponse sends a successful response
func (s *Server) sendSuccessResponse(c *gin.Context, conn session.Connection, req mcp.JSONRPCRequest, result any, isSSE bool) {
	response := mcp.JSONRPCResponse{
		JSONRPCBaseResult: mcp.JSONRPCBaseResult{
			JSONRPC: mcp.JSPNRPCVersion,
			ID:      req.Id,
		},
		Result: result,
	}
	s.sendResponse(c, req.Id, conn, response, isSSE)
}

// sendResponse handles sending the response through SSE or direct HTTP
func (s *Server) sendResponse(c *gin.Context, id any, conn session.Connection, response any, isSSE bool) {
	eventData, err := json.Marshal(response)
	if err != nil {
		s.sendProtocolError(c, id, "Failed to marshal response", http.StatusInternalServerError, mcp.ErrorCodeInternalError)
		return
	}

	if isSSE {
		err = conn.Send(c.Request.Context(), &session.Message{
			Event: "message",
			Data:  eventData,
		})
		if err != nil {
			s.sendProtocolError(c, id, "failed to send SSE message", http.StatusInternalServerError, mcp.ErrorCodeInternalError)
			return
		}
		c.String(http.StatusAccepted, mcp.Accepted)
	} else {
		c.Header(mcp.HeaderMcpSessionID, conn.Meta().ID)
		c.Data(http.StatusOK, "application/json", eventData)
	}
}
