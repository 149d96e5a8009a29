package cnst

const (
	// AppName is the service name reported during MCP initialization
	AppName = "mcp-server-cloudflare"
	// CommandName is the binary name
	CommandName = "mcp-server-cloudflare"
)

const (
	// ServerYaml is the default configuration file name
	ServerYaml = "mcp-server-cloudflare.yaml"
)
