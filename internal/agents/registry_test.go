// internal/agents/registry_test.go
package agents

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agenticbi/internal/agents/accessibility"
	"agenticbi/internal/agents/chartgen"
	"agenticbi/internal/agents/geospatial"
	"agenticbi/internal/agents/layout"
	"agenticbi/internal/common/logger"
	"agenticbi/internal/models"
)

// ==========================
// Test Helper Functions
// ==========================

// Logger adapters for the agent packages' own Logger interfaces.
type chartgenLoggerAdapter struct {
	logger.Logger
}

func (a *chartgenLoggerAdapter) WithFields(fields map[string]interface{}) chartgen.Logger {
	return &chartgenLoggerAdapter{a.Logger.WithFields(fields)}
}

type geospatialLoggerAdapter struct {
	logger.Logger
}

func (a *geospatialLoggerAdapter) WithFields(fields map[string]interface{}) geospatial.Logger {
	return &geospatialLoggerAdapter{a.Logger.WithFields(fields)}
}

type accessibilityLoggerAdapter struct {
	logger.Logger
}

func (a *accessibilityLoggerAdapter) WithFields(fields map[string]interface{}) accessibility.Logger {
	return &accessibilityLoggerAdapter{a.Logger.WithFields(fields)}
}

type layoutLoggerAdapter struct {
	logger.Logger
}

func (a *layoutLoggerAdapter) WithFields(fields map[string]interface{}) layout.Logger {
	return &layoutLoggerAdapter{a.Logger.WithFields(fields)}
}

// The adapters must keep satisfying each agent's Logger interface.
var (
	_ chartgen.Logger      = (*chartgenLoggerAdapter)(nil)
	_ geospatial.Logger    = (*geospatialLoggerAdapter)(nil)
	_ accessibility.Logger = (*accessibilityLoggerAdapter)(nil)
	_ layout.Logger        = (*layoutLoggerAdapter)(nil)
)

func newFullRegistry(t *testing.T) *Registry {
	log := logger.NewTestLogger(t)
	registry := NewRegistry(log)

	registry.Register(chartgen.NewHandler(&chartgen.Config{
		MaxToolCalls: 10, ToolCallWindow: time.Minute, MaxComponents: 4,
	}, &chartgenLoggerAdapter{log}))
	registry.Register(geospatial.NewHandler(&geospatial.Config{
		MaxToolCalls: 10, ToolCallWindow: time.Minute,
	}, &geospatialLoggerAdapter{log}))
	registry.Register(accessibility.NewHandler(&accessibility.Config{
		MaxToolCalls: 10, ToolCallWindow: time.Minute,
	}, &accessibilityLoggerAdapter{log}))
	registry.Register(layout.NewHandler(&layout.Config{
		MaxToolCalls: 10, ToolCallWindow: time.Minute, MaxComponents: 4,
	}, &layoutLoggerAdapter{log}))

	return registry
}

// stubAgent lets tests force specific Generate outcomes.
type stubAgent struct {
	name       string
	components []models.GeneratedComponent
	err        error
}

func (s *stubAgent) Name() string        { return s.name }
func (s *stubAgent) Description() string { return "stub" }
func (s *stubAgent) Tools() []string     { return []string{"stub_tool"} }
func (s *stubAgent) Generate(ctx context.Context, query string) ([]models.GeneratedComponent, error) {
	return s.components, s.err
}

// ==========================
// Routing Tests
// ==========================

func TestRegistry_Route(t *testing.T) {
	registry := newFullRegistry(t)

	tests := []struct {
		name          string
		query         string
		expectedAgent string
	}{
		{"trend query", "Show me sales trends for Q3", chartgen.AgentName},
		{"metric query", "What is our monthly revenue?", chartgen.AgentName},
		{"comparison query", "Compare products side by side", chartgen.AgentName},
		{"map query", "Sales by region on a map", geospatial.AgentName},
		{"territory query", "territory breakdown please", geospatial.AgentName},
		{"a11y query", "accessible charts please", accessibility.AgentName},
		{"screen reader query", "optimize for screen reader users", accessibility.AgentName},
		{"dashboard query", "build an overview dashboard", layout.AgentName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			agent, matched := registry.Route(tt.query)
			assert.True(t, matched)
			assert.Equal(t, tt.expectedAgent, agent.Name())
		})
	}
}

func TestRegistry_Route_Precedence(t *testing.T) {
	registry := newFullRegistry(t)

	// Queries hitting multiple keyword sets resolve to the most specific
	// agent: a11y beats geo beats layout beats charts.
	tests := []struct {
		query         string
		expectedAgent string
	}{
		{"accessible map of sales by region", accessibility.AgentName},
		{"regional sales dashboard", geospatial.AgentName},
		{"dashboard of sales trends", layout.AgentName},
	}

	for _, tt := range tests {
		agent, matched := registry.Route(tt.query)
		assert.True(t, matched)
		assert.Equal(t, tt.expectedAgent, agent.Name(), "query: %s", tt.query)
	}
}

func TestRegistry_Route_NoMatch(t *testing.T) {
	registry := newFullRegistry(t)

	agent, matched := registry.Route("what's the weather like?")

	assert.False(t, matched)
	assert.Nil(t, agent)
}

func TestRegistry_Route_SkipsUnregistered(t *testing.T) {
	log := logger.NewTestLogger(t)
	registry := NewRegistry(log)
	registry.Register(chartgen.NewHandler(&chartgen.Config{
		MaxToolCalls: 10, ToolCallWindow: time.Minute,
	}, &chartgenLoggerAdapter{log}))

	// The geo route matches "map" but no geo agent is registered; the
	// query falls through to the chart route via "sales".
	agent, matched := registry.Route("map of sales")

	assert.True(t, matched)
	assert.Equal(t, chartgen.AgentName, agent.Name())
}

// ==========================
// Analyze Tests
// ==========================

func TestRegistry_Analyze_Delegation(t *testing.T) {
	registry := newFullRegistry(t)

	result, err := registry.Analyze(context.Background(), "Show me sales trends")

	assert.NoError(t, err)
	assert.Equal(t, chartgen.AgentName, result.AgentName)
	assert.Len(t, result.Components, 1)
	assert.Equal(t, []string{
		"Root agent analyzed query",
		"Delegated to chart_generation_agent",
		"Generated 1 UI component(s)",
		"Returned renderable component trees",
	}, result.Trace)
}

func TestRegistry_Analyze_GeneralResponse(t *testing.T) {
	registry := newFullRegistry(t)

	result, err := registry.Analyze(context.Background(), "hello there")

	assert.NoError(t, err)
	assert.Equal(t, "root_agent", result.AgentName)
	assert.Len(t, result.Components, 1)

	component := result.Components[0]
	assert.Equal(t, "general_response", component.ComponentType)
	assert.Contains(t, component.ComponentCode, "Query Processed")
	assert.Contains(t, component.ComponentCode, "hello there")
}

func TestRegistry_Analyze_EmptyComponentsGetGeneralResponse(t *testing.T) {
	log := logger.NewTestLogger(t)
	registry := NewRegistry(log)
	registry.routes = []Route{{Agent: "stub", Keywords: []string{"sales"}}}
	registry.Register(&stubAgent{name: "stub"})

	result, err := registry.Analyze(context.Background(), "sales please")

	assert.NoError(t, err)
	assert.Len(t, result.Components, 1, "the result always carries at least one component")
	assert.Equal(t, "general_response", result.Components[0].ComponentType)
}

func TestRegistry_Analyze_AgentError(t *testing.T) {
	log := logger.NewTestLogger(t)
	registry := NewRegistry(log)
	registry.routes = []Route{{Agent: "stub", Keywords: []string{"sales"}}}
	registry.Register(&stubAgent{name: "stub", err: errors.New("boom")})

	result, err := registry.Analyze(context.Background(), "sales please")

	assert.Error(t, err)
	assert.Nil(t, result)
}

// ==========================
// Listing Tests
// ==========================

func TestRegistry_Agents(t *testing.T) {
	registry := newFullRegistry(t)

	infos := registry.Agents()

	assert.Len(t, infos, 4)
	// Registration order is preserved.
	assert.Equal(t, chartgen.AgentName, infos[0].Name)
	assert.Equal(t, layout.AgentName, infos[3].Name)
	for _, info := range infos {
		assert.NotEmpty(t, info.Description)
		assert.NotEmpty(t, info.Tools)
	}
}

func TestRegistry_Register_Replaces(t *testing.T) {
	log := logger.NewTestLogger(t)
	registry := NewRegistry(log)

	registry.Register(&stubAgent{name: "dup"})
	registry.Register(&stubAgent{name: "dup"})

	assert.Equal(t, []string{"dup"}, registry.AgentNames())
}
