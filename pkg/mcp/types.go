package mcp

import "encoding/json"

type (
	JSONRPCBaseResult struct {
		JSONRPC string `json:"jsonrpc"`
		ID      any    `json:"id"`
	}

	// BaseRequestParams represents the base parameters for all requests
	BaseRequestParams struct {
		// Meta information for the request
		Meta RequestMeta `json:"_meta"`
	}

	// RequestMeta represents the meta information for a request
	RequestMeta struct {
		// Progress token for tracking request progress
		// Can be string or number
		ProgressToken any `json:"progressToken"`
	}

	// JSONRPCRequest represents a JSON-RPC request that expects a response
	JSONRPCRequest struct {
		// JSONRPC version, must be "2.0"
		JSONRPC string `json:"jsonrpc"`
		// A uniquely identifying ID for a request in JSON-RPC
		Id any `json:"id"`
		// The method to be invoked
		Method string `json:"method"`
		// The parameters to be passed to the method
		Params json.RawMessage `json:"params"`
	}

	// JSONRPCResponse represents a JSON-RPC response
	JSONRPCResponse struct {
		JSONRPCBaseResult
		Result any `json:"result"`
	}

	// JSONRPCError represents a JSON-RPC error object
	JSONRPCError struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
		Data    any    `json:"data,omitempty"`
	}

	// JSONRPCErrorSchema represents a JSON-RPC error response
	JSONRPCErrorSchema struct {
		JSONRPCBaseResult
		Error JSONRPCError `json:"error"`
	}

	// JSONRPCNotification represents a JSON-RPC notification
	JSONRPCNotification struct {
		JSONRPCBaseResult
		Method string          `json:"method"`
		Params json.RawMessage `json:"params"`
	}

	// ToolSchema represents a tool definition
	ToolSchema struct {
		// The name of the tool
		Name string `json:"name"`
		// A human-readable description of the tool
		Description string `json:"description"`
		// A JSON Schema object defining the expected parameters for the tool
		InputSchema ToolInputSchema `json:"inputSchema"`
	}

	ToolInputSchema struct {
		Type       string         `json:"type"`
		Properties map[string]any `json:"properties"`
		Required   []string       `json:"required,omitempty"`
	}

	// ListToolsResult represents the result of a tools/list request
	ListToolsResult struct {
		Tools []ToolSchema `json:"tools"`
	}

	// CallToolParams represents parameters for a tools/call request
	CallToolParams struct {
		BaseRequestParams
		// The name of the tool to call
		Name string `json:"name"`
		// The arguments to pass to the tool
		Arguments json.RawMessage `json:"arguments"`
	}

	// Content represents a content item in a tool call result
	Content interface {
		// GetType returns the type of the content
		GetType() string
	}

	// TextContent represents a text content item
	TextContent struct {
		// Must be "text"
		Type string `json:"type"`
		// The text content
		Text string `json:"text"`
	}

	// CallToolResult represents the result of a tools/call request
	CallToolResult struct {
		Content []Content `json:"content"`
		IsError bool      `json:"isError"`
	}

	// ImplementationSchema describes the name and version of an MCP implementation
	ImplementationSchema struct {
		Name    string `json:"name"`
		Version string `json:"version"`
	}

	// ClientCapabilitiesSchema represents capabilities a client may support
	ClientCapabilitiesSchema struct {
		Experimental map[string]any        `json:"experimental"`
		Sampling     map[string]any        `json:"sampling"`
		Roots        RootsCapabilitySchema `json:"roots"`
	}

	// RootsCapabilitySchema represents roots-related capabilities
	RootsCapabilitySchema struct {
		ListChanged bool `json:"listChanged"`
	}

	// InitializeRequestParams represents parameters for initialize request
	InitializeRequestParams struct {
		BaseRequestParams
		// The latest version of the Model Context Protocol that the client supports
		ProtocolVersion string `json:"protocolVersion"`
		// Client capabilities
		Capabilities ClientCapabilitiesSchema `json:"capabilities"`
		// Client implementation information
		ClientInfo ImplementationSchema `json:"clientInfo"`
	}

	// ServerCapabilitiesSchema represents capabilities a server may support
	ServerCapabilitiesSchema struct {
		Logging   LoggingCapabilitySchema   `json:"logging"`
		Prompts   PromptsCapabilitySchema   `json:"prompts"`
		Resources ResourcesCapabilitySchema `json:"resources"`
		Tools     ToolsCapabilitySchema     `json:"tools"`
	}

	LoggingCapabilitySchema struct {
	}

	// PromptsCapabilitySchema represents prompts-related capabilities
	PromptsCapabilitySchema struct {
		ListChanged bool `json:"listChanged"`
	}

	// ResourcesCapabilitySchema represents resources-related capabilities
	ResourcesCapabilitySchema struct {
		Subscribe   bool `json:"subscribe"`
		ListChanged bool `json:"listChanged"`
	}

	// ToolsCapabilitySchema represents tools-related capabilities
	ToolsCapabilitySchema struct {
		ListChanged bool `json:"listChanged"`
	}

	// InitializedResult represents the result of an initialize request
	InitializedResult struct {
		// The version of the Model Context Protocol that the server wants to use
		ProtocolVersion string `json:"protocolVersion"`
		// Server capabilities
		Capabilities ServerCapabilitiesSchema `json:"capabilities"`
		// Server implementation information
		ServerInfo ImplementationSchema `json:"serverInfo"`
		// Instructions describing how to use the server and its features
		Instructions string `json:"instructions,omitempty"`
	}
)

// GetType implements Content for TextContent
func (t *TextContent) GetType() string {
	return "text"
}

// NewTextContent
// Helper function to create a new TextContent
func NewTextContent(text string) *TextContent {
	return &TextContent{
		Type: "text",
		Text: text,
	}
}
