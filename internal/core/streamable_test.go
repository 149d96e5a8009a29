package core

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/cf-ypark/mcp-server-cloudflare/internal/cloudflare"
	"github.com/cf-ypark/mcp-server-cloudflare/internal/common/config"
	"github.com/cf-ypark/mcp-server-cloudflare/internal/mcp/session"
	"github.com/cf-ypark/mcp-server-cloudflare/internal/tools"
	"github.com/cf-ypark/mcp-server-cloudflare/pkg/mcp"
)

type fakeUpstream struct {
	overview  *cloudflare.SchemaOverview
	queryResp *cloudflare.Response
}

func (f *fakeUpstream) FetchSchemaOverview(ctx context.Context) (*cloudflare.SchemaOverview, error) {
	return f.overview, nil
}

func (f *fakeUpstream) FetchTypeDetails(ctx context.Context, typeName string) (*cloudflare.TypeDescriptor, error) {
	return nil, nil
}

func (f *fakeUpstream) Query(ctx context.Context, query string, variables map[string]any) (*cloudflare.Response, error) {
	return f.queryResp, nil
}

func newTestServer(t *testing.T, accountID string) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zap.NewNop()
	up := &fakeUpstream{
		overview: &cloudflare.SchemaOverview{
			QueryTypeName: "Query",
			Types:         []cloudflare.TypeSummary{{Name: "Query", Kind: "OBJECT"}},
		},
		queryResp: &cloudflare.Response{Data: json.RawMessage(`{"viewer": {}}`)},
	}
	cfg := &config.ServerConfig{Port: 0}
	cfg.Cloudflare.AccountID = accountID

	return NewServer(logger, cfg, tools.NewRegistry(logger, up), session.NewMemoryStore(logger))
}

func postJSONRPC(s *Server, sessionID string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if sessionID != "" {
		req.Header.Set(mcp.HeaderMcpSessionID, sessionID)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// initialize opens a session and returns its ID
func initialize(t *testing.T, s *Server) string {
	t.Helper()
	w := postJSONRPC(s, "", `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	sessionID := w.Header().Get(mcp.HeaderMcpSessionID)
	require.NotEmpty(t, sessionID)
	return sessionID
}

func TestHealthCheck(t *testing.T) {
	s := newTestServer(t, "acct-1")

	req := httptest.NewRequest(http.MethodGet, "/health_check", nil)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", gjson.Get(w.Body.String(), "status").String())
}

func TestInitializeCreatesSession(t *testing.T) {
	s := newTestServer(t, "acct-1")

	w := postJSONRPC(s, "", `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{"protocolVersion":"2024-11-05"}}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.Equal(t, "2.0", gjson.Get(body, "jsonrpc").String())
	assert.Equal(t, mcp.LatestProtocolVersion, gjson.Get(body, "result.protocolVersion").String())
	assert.Equal(t, "mcp-server-cloudflare", gjson.Get(body, "result.serverInfo.name").String())
	assert.NotEmpty(t, w.Header().Get(mcp.HeaderMcpSessionID))
}

func TestInitializeWithExistingSessionRejected(t *testing.T) {
	s := newTestServer(t, "acct-1")
	sessionID := initialize(t, s)

	w := postJSONRPC(s, sessionID, `{"jsonrpc":"2.0","id":2,"method":"initialize"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostRequiresKnownSession(t *testing.T) {
	s := newTestServer(t, "acct-1")

	w := postJSONRPC(s, "unknown", `{"jsonrpc":"2.0","id":1,"method":"tools/list"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPostRequiresJSONContentType(t *testing.T) {
	s := newTestServer(t, "acct-1")

	req := httptest.NewRequest(http.MethodPost, "/mcp", bytes.NewBufferString("{}"))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
}

func TestPing(t *testing.T) {
	s := newTestServer(t, "acct-1")
	sessionID := initialize(t, s)

	w := postJSONRPC(s, sessionID, `{"jsonrpc":"2.0","id":7,"method":"ping"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), gjson.Get(w.Body.String(), "id").Int())
	assert.True(t, gjson.Get(w.Body.String(), "result").Exists())
}

func TestToolsList(t *testing.T) {
	s := newTestServer(t, "acct-1")
	sessionID := initialize(t, s)

	w := postJSONRPC(s, sessionID, `{"jsonrpc":"2.0","id":2,"method":"tools/list"}`)
	require.Equal(t, http.StatusOK, w.Code)

	toolCount := gjson.Get(w.Body.String(), "result.tools.#").Int()
	assert.Equal(t, int64(7), toolCount)
}

func TestToolsCall(t *testing.T) {
	s := newTestServer(t, "acct-1")
	sessionID := initialize(t, s)

	w := postJSONRPC(s, sessionID,
		`{"jsonrpc":"2.0","id":3,"method":"tools/call","params":{"name":"graphql_schema_overview","arguments":{}}}`)
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	assert.False(t, gjson.Get(body, "result.isError").Bool())
	text := gjson.Get(body, "result.content.0.text").String()
	assert.Equal(t, "Query", gjson.Get(text, "queryTypeName").String())
}

func TestToolsCallWithoutConfiguredAccount(t *testing.T) {
	s := newTestServer(t, "")
	sessionID := initialize(t, s)

	w := postJSONRPC(s, sessionID,
		`{"jsonrpc":"2.0","id":4,"method":"tools/call","params":{"name":"graphql_schema_overview","arguments":{}}}`)
	require.Equal(t, http.StatusOK, w.Code)

	text := gjson.Get(w.Body.String(), "result.content.0.text").String()
	assert.Contains(t, text, "No active Cloudflare account")
}

func TestNotificationInitialized(t *testing.T) {
	s := newTestServer(t, "acct-1")
	sessionID := initialize(t, s)

	w := postJSONRPC(s, sessionID, `{"jsonrpc":"2.0","method":"notifications/initialized"}`)
	assert.Equal(t, http.StatusAccepted, w.Code)
}

func TestUnknownMethod(t *testing.T) {
	s := newTestServer(t, "acct-1")
	sessionID := initialize(t, s)

	w := postJSONRPC(s, sessionID, `{"jsonrpc":"2.0","id":5,"method":"resources/list"}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, int64(mcp.ErrorCodeMethodNotFound), gjson.Get(w.Body.String(), "error.code").Int())
}

func TestDeleteTerminatesSession(t *testing.T) {
	s := newTestServer(t, "acct-1")
	sessionID := initialize(t, s)

	req := httptest.NewRequest(http.MethodDelete, "/mcp", nil)
	req.Header.Set(mcp.HeaderMcpSessionID, sessionID)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)

	// The session is gone afterwards
	w2 := postJSONRPC(s, sessionID, `{"jsonrpc":"2.0","id":6,"method":"ping"}`)
	assert.Equal(t, http.StatusNotFound, w2.Code)
}
