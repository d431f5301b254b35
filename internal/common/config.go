package common

import (
	"fmt"
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all yfinance-mcp configuration.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Yahoo     YahooConfig     `toml:"yahoo"`
	Directory DirectoryConfig `toml:"directory"`
	Live      LiveConfig      `toml:"live"`
	Logging   LoggingConfig   `toml:"logging"`
}

// ServerConfig holds MCP server settings.
type ServerConfig struct {
	Name string `toml:"name"`
	Port string `toml:"port"`
}

// YahooConfig holds the Yahoo Finance endpoints used by the provider client.
type YahooConfig struct {
	BaseURL   string `toml:"base_url"`
	CookieURL string `toml:"cookie_url"`
	StreamURL string `toml:"stream_url"`
	UserAgent string `toml:"user_agent"`
	Timeout   string `toml:"timeout"`
}

// GetTimeout parses and returns the timeout duration
func (c *YahooConfig) GetTimeout() time.Duration {
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 30 * time.Second
	}
	return d
}

// DirectoryConfig points at the optional company name → symbol table.
// The get_company_name_symbols tool is only registered when SymbolsFile is set.
type DirectoryConfig struct {
	SymbolsFile string `toml:"symbols_file"`
	Suffix      string `toml:"suffix"`
}

// LiveConfig holds settings for the live quote feed.
type LiveConfig struct {
	Symbol string `toml:"symbol"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level      string   `toml:"level"`
	Outputs    []string `toml:"outputs"`
	FilePath   string   `toml:"file_path"`
	MaxSizeMB  int      `toml:"max_size_mb"`
	MaxBackups int      `toml:"max_backups"`
}

// NewDefaultConfig returns a Config with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Name: "yahoo_finance_mcp",
			Port: "4250",
		},
		Yahoo: YahooConfig{
			BaseURL:   "https://query2.finance.yahoo.com",
			CookieURL: "https://fc.yahoo.com",
			StreamURL: "wss://streamer.finance.yahoo.com/?version=2",
			UserAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36",
			Timeout:   "30s",
		},
		Directory: DirectoryConfig{
			Suffix: ".NS",
		},
		Live: LiveConfig{
			Symbol: "ITC.NS",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Outputs:    []string{"console"},
			FilePath:   "logs/yfinance-mcp.log",
			MaxSizeMB:  100,
			MaxBackups: 3,
		},
	}
}

// LoadConfig loads configuration with priority: defaults -> file -> env.
// A missing file is not an error; the defaults are used instead.
func LoadConfig(path string) (*Config, error) {
	cfg := NewDefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
			}
		} else if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)
	return cfg, nil
}

// applyEnvOverrides applies YFMCP_* environment variable overrides to config.
func applyEnvOverrides(cfg *Config) {
	if port := os.Getenv("YFMCP_PORT"); port != "" {
		cfg.Server.Port = port
	}
	if f := os.Getenv("YFMCP_SYMBOLS_FILE"); f != "" {
		cfg.Directory.SymbolsFile = f
	}
	if level := os.Getenv("YFMCP_LOG_LEVEL"); level != "" {
		cfg.Logging.Level = level
	}
	if u := os.Getenv("YFMCP_YAHOO_BASE_URL"); u != "" {
		cfg.Yahoo.BaseURL = u
	}
}
