// internal/agents/chartgen/config.go
package chartgen

import "time"

type Config struct {
	MaxToolCalls     int
	ToolCallWindow   time.Duration
	MaxComponents    int
	GenerationBudget time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MaxToolCalls:     3,
		ToolCallWindow:   30 * time.Second,
		MaxComponents:    4,
		GenerationBudget: 5 * time.Second,
	}
}
