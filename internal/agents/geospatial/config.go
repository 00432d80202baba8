// internal/agents/geospatial/config.go
package geospatial

import "time"

type Config struct {
	MaxToolCalls     int
	ToolCallWindow   time.Duration
	GenerationBudget time.Duration
}

func LoadConfig() *Config {
	return &Config{
		MaxToolCalls:     3,
		ToolCallWindow:   30 * time.Second,
		GenerationBudget: 5 * time.Second,
	}
}
