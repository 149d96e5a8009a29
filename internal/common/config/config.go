package config

import (
	"os"
	"regexp"

	"github.com/cf-ypark/mcp-server-cloudflare/pkg/helper"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type (
	// ServerConfig represents the MCP server configuration
	ServerConfig struct {
		Port       int              `yaml:"port"`
		Logger     LoggerConfig     `yaml:"logger"`
		Cloudflare CloudflareConfig `yaml:"cloudflare"`
	}

	// CloudflareConfig represents the upstream Cloudflare API configuration
	CloudflareConfig struct {
		// GraphQL endpoint, defaults to the public analytics endpoint
		Endpoint string `yaml:"endpoint"`
		// API token used as the bearer credential for every upstream call
		APIToken string `yaml:"api_token"`
		// Active account the tools operate on; empty means no account selected
		AccountID string `yaml:"account_id"`
	}

	// LoggerConfig represents the logger configuration
	LoggerConfig struct {
		Level      string `yaml:"level"`       // debug, info, warn, error
		Format     string `yaml:"format"`      // json, console
		Output     string `yaml:"output"`      // stdout, file
		FilePath   string `yaml:"file_path"`   // path to log file when output is file
		MaxSize    int    `yaml:"max_size"`    // max size of log file in MB
		MaxBackups int    `yaml:"max_backups"` // max number of backup files
		MaxAge     int    `yaml:"max_age"`     // max age of backup files in days
		Compress   bool   `yaml:"compress"`    // whether to compress backup files
		Color      bool   `yaml:"color"`       // whether to use color in console output
		Stacktrace bool   `yaml:"stacktrace"`  // whether to include stacktrace in error logs
		TimeZone   string `yaml:"time_zone"`   // time zone for log timestamps, e.g., "UTC", default is local
		TimeFormat string `yaml:"time_format"` // time format for log timestamps, default is "2006-01-02 15:04:05"
	}
)

// DefaultCloudflareEndpoint is the public Cloudflare GraphQL Analytics endpoint
const DefaultCloudflareEndpoint = "https://api.cloudflare.com/client/v4/graphql"

// LoadConfig loads configuration from a YAML file with environment variable support
func LoadConfig(filename string) (*ServerConfig, string, error) {
	// Load .env file if exists
	_ = godotenv.Load()

	cfgPath := helper.GetCfgPath(filename)
	data, err := os.ReadFile(cfgPath)
	if err != nil {
		return nil, cfgPath, err
	}

	// Resolve environment variables
	data = resolveEnv(data)
	var cfg ServerConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, cfgPath, err
	}

	setDefaults(&cfg)

	return &cfg, cfgPath, nil
}

func setDefaults(cfg *ServerConfig) {
	if cfg.Port == 0 {
		cfg.Port = 8080
	}
	if cfg.Cloudflare.Endpoint == "" {
		cfg.Cloudflare.Endpoint = DefaultCloudflareEndpoint
	}
}

// resolveEnv replaces environment variable placeholders in YAML content
func resolveEnv(content []byte) []byte {
	regex := regexp.MustCompile(`\$\{(\w+)(?::([^}]*))?\}`)

	return regex.ReplaceAllFunc(content, func(match []byte) []byte {
		matches := regex.FindSubmatch(match)
		envKey := string(matches[1])
		var defaultValue string

		if len(matches) > 2 {
			defaultValue = string(matches[2])
		}

		if value, exists := os.LookupEnv(envKey); exists {
			return []byte(value)
		}
		return []byte(defaultValue)
	})
}
