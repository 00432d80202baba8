// internal/agents/layout/handler_test.go
package layout

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agenticbi/internal/render"
)

// ==========================
// Test Logger Implementation
// ==========================

type TestLogger struct {
	t *testing.T
}

func NewTestLogger(t *testing.T) *TestLogger { return &TestLogger{t: t} }

func (l *TestLogger) Info(msg string, fields map[string]interface{}) {
	l.t.Logf("INFO: %s %v", msg, fields)
}

func (l *TestLogger) Warn(msg string, fields map[string]interface{}) {
	l.t.Logf("WARN: %s %v", msg, fields)
}

func (l *TestLogger) Error(msg string, fields map[string]interface{}) {
	l.t.Logf("ERROR: %s %v", msg, fields)
}

func (l *TestLogger) WithFields(fields map[string]interface{}) Logger {
	return l
}

// ==========================
// Test Helper Functions
// ==========================

func createTestConfig() *Config {
	return &Config{
		MaxToolCalls:   3,
		ToolCallWindow: 30 * time.Second,
		MaxComponents:  4,
	}
}

// ==========================
// Core Functionality Tests
// ==========================

func TestHandler_Execute_DashboardLayout(t *testing.T) {
	handler := NewHandler(createTestConfig(), NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Query: "build me a dashboard"})

	assert.NoError(t, err)
	assert.Equal(t, []string{ToolDashboardLayout}, output.ToolsUsed)
	assert.Len(t, output.Components, 1)

	component := output.Components[0]
	assert.Equal(t, TypeDashboardLayout, component.ComponentType)
	assert.Equal(t, AgentName, component.AgentName)
	assert.Contains(t, component.ComponentCode, `<script type="application/json"`)
}

func TestHandler_Execute_ResponsiveGrid(t *testing.T) {
	handler := NewHandler(createTestConfig(), NewTestLogger(t))

	output, err := handler.Execute(context.Background(), &Input{Query: "responsive grid layout"})

	assert.NoError(t, err)
	assert.Equal(t, []string{ToolResponsiveGrid}, output.ToolsUsed)
	assert.Equal(t, TypeResponsiveGrid, output.Components[0].ComponentType)
	assert.Contains(t, output.Components[0].ComponentCode, "grid-cols-3")
}

// The embedded metadata must round-trip through the extraction layer so
// the renderer can lay out the children.

func TestHandler_Metadata_RoundTrip(t *testing.T) {
	handler := NewHandler(createTestConfig(), NewTestLogger(t))

	component := handler.dashboardLayout(ToolDashboardLayout)

	assert.Equal(t, render.FormatEmbeddedJSON, render.Classify(component.ComponentCode))

	meta := render.ExtractEmbeddedMetadata(component.ComponentCode)
	assert.NotNil(t, meta)
	assert.Equal(t, "Sales Overview", meta["title"])
	assert.Equal(t, float64(2), meta["columns"])

	children, ok := meta["components"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, children, 3)

	first := children[0].(map[string]interface{})
	assert.Equal(t, "metric_card", first["type"])
}

func TestHandler_Layout_CappedAtMaxComponents(t *testing.T) {
	config := createTestConfig()
	config.MaxComponents = 2
	handler := NewHandler(config, NewTestLogger(t))

	component := handler.dashboardLayout(ToolDashboardLayout)

	meta := render.ExtractEmbeddedMetadata(component.ComponentCode)
	assert.NotNil(t, meta)

	children, ok := meta["components"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, children, 2)
}

// ==========================
// Tool Call Limit Tests
// ==========================

func TestHandler_Execute_ToolCallLimit(t *testing.T) {
	config := createTestConfig()
	config.MaxToolCalls = 1
	handler := NewHandler(config, NewTestLogger(t))

	query := "dashboard please"

	output, err := handler.Execute(context.Background(), &Input{Query: query})
	assert.NoError(t, err)
	assert.Len(t, output.Components, 1)

	output, err = handler.Execute(context.Background(), &Input{Query: query})
	assert.NoError(t, err)
	assert.Empty(t, output.Components)
}

// ==========================
// Edge Cases
// ==========================

func TestHandler_Execute_CancelledContext(t *testing.T) {
	handler := NewHandler(createTestConfig(), NewTestLogger(t))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	output, err := handler.Execute(ctx, &Input{Query: "dashboard"})

	assert.Error(t, err)
	assert.Nil(t, output)
}

func TestHandler_Metadata(t *testing.T) {
	handler := NewHandler(createTestConfig(), NewTestLogger(t))

	assert.Equal(t, AgentName, handler.Name())
	assert.Len(t, handler.Tools(), 2)
}
