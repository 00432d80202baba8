// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct.
type Config struct {
	App     AppConfig              `mapstructure:"app"`
	Server  ServerConfig           `mapstructure:"server"`
	Cache   CacheConfig            `mapstructure:"cache"`
	Agents  map[string]AgentConfig `mapstructure:"agents"`
	Render  RenderConfig           `mapstructure:"render"`
	Logging LoggingConfig          `mapstructure:"logging"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

// ServerConfig holds the HTTP listener settings.
type ServerConfig struct {
	Host            string   `mapstructure:"host"`
	Port            int      `mapstructure:"port"`
	ReadTimeout     int      `mapstructure:"read_timeout"`     // milliseconds
	WriteTimeout    int      `mapstructure:"write_timeout"`    // milliseconds
	ShutdownTimeout int      `mapstructure:"shutdown_timeout"` // milliseconds
	AllowedOrigins  []string `mapstructure:"allowed_origins"`
	MetricsPort     int      `mapstructure:"metrics_port"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// CacheConfig holds Redis settings for the response cache and query history.
type CacheConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Address        string `mapstructure:"address"`
	Password       string `mapstructure:"password"`
	DB             int    `mapstructure:"db"`
	ResponseTTL    int    `mapstructure:"response_ttl"` // milliseconds
	HistoryMaxSize int    `mapstructure:"history_max_size"`
}

// AgentConfig holds the core settings applicable to every agent.
type AgentConfig struct {
	Enabled          bool `mapstructure:"enabled"`
	MaxToolCalls     int  `mapstructure:"max_tool_calls"`    // per tool+params within the window
	ToolCallWindow   int  `mapstructure:"tool_call_window"`  // milliseconds
	MaxComponents    int  `mapstructure:"max_components"`    // per response
	GenerationBudget int  `mapstructure:"generation_budget"` // milliseconds
}

// RenderConfig holds settings for the rendering pipeline.
type RenderConfig struct {
	// Aliases maps declared component types to a router state name
	// (trend, comparison, metric, map, accessibility, composite).
	Aliases map[string]string `mapstructure:"aliases"`
	// MaxDepth bounds interpreter recursion over call trees.
	MaxDepth int `mapstructure:"max_depth"`
	// MaxCodeBytes bounds the componentCode blobs the pipeline accepts.
	MaxCodeBytes int `mapstructure:"max_code_bytes"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}
