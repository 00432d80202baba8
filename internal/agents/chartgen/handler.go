// internal/agents/chartgen/handler.go
package chartgen

import (
	"context"
	"fmt"
	"strings"

	"agenticbi/internal/agents/toolcall"
	"agenticbi/internal/models"

	"github.com/google/uuid"
)

const AgentName = "chart_generation_agent"

// Logger interface definition
type Logger interface {
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, fields map[string]interface{})
	WithFields(fields map[string]interface{}) Logger
}

type Handler struct {
	config  *Config
	tracker *toolcall.Tracker
	logger  Logger
}

func NewHandler(config *Config, log Logger) *Handler {
	return &Handler{
		config:  config,
		tracker: toolcall.NewTracker(config.MaxToolCalls, config.ToolCallWindow),
		logger: log.WithFields(map[string]interface{}{
			"agent": AgentName,
		}),
	}
}

func (h *Handler) Name() string { return AgentName }

func (h *Handler) Description() string {
	return "Generates sales trend, KPI metric, and comparison chart components"
}

func (h *Handler) Tools() []string {
	return []string{ToolSalesTrend, ToolMetricCard, ToolComparisonChart}
}

// Generate routes the query to one of this agent's tools and returns the
// generated components.
func (h *Handler) Generate(ctx context.Context, query string) ([]models.GeneratedComponent, error) {
	output, err := h.Execute(ctx, &Input{Query: query})
	if err != nil {
		return nil, err
	}
	return output.Components, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if h.config.GenerationBudget > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.config.GenerationBudget)
		defer cancel()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	tools := h.selectTools(input.Query)
	h.logger.Info("generating components", map[string]interface{}{
		"tools": tools,
		"query": input.Query,
	})

	components := make([]models.GeneratedComponent, 0, len(tools))
	for _, tool := range tools {
		if !h.tracker.Allow(tool, normalizeQuery(input.Query)) {
			h.logger.Warn("tool call limit reached, returning warning card", map[string]interface{}{
				"tool": tool,
			})
			components = append(components, limitWarningComponent(tool))
			continue
		}

		switch tool {
		case ToolMetricCard:
			components = append(components, h.metricCard())
		case ToolComparisonChart:
			components = append(components, h.comparisonChart())
		default:
			components = append(components, h.salesTrend(input.Query))
		}
	}

	return &Output{
		Components: components,
		ToolsUsed:  tools,
	}, nil
}

// selectTools keyword-routes within this agent's tool set. A query can hit
// more than one tool; the result is capped at MaxComponents. Trend is the
// default tool: this agent only sees queries the registry already matched.
func (h *Handler) selectTools(query string) []string {
	q := strings.ToLower(query)

	var tools []string
	if containsAny(q, "metric", "kpi", "revenue", "key") {
		tools = append(tools, ToolMetricCard)
	}
	if containsAny(q, "compare", "comparison", "product", "category") {
		tools = append(tools, ToolComparisonChart)
	}
	if containsAny(q, "trend") || len(tools) == 0 {
		tools = append(tools, ToolSalesTrend)
	}

	if h.config.MaxComponents > 0 && len(tools) > h.config.MaxComponents {
		tools = tools[:h.config.MaxComponents]
	}
	return tools
}

func (h *Handler) salesTrend(query string) models.GeneratedComponent {
	period := periodFromQuery(query)
	code := fmt.Sprintf(`<Card className="chart-card">
  <CardHeader>
    <CardTitle>Sales Trend - %s</CardTitle>
  </CardHeader>
  <CardContent>
    <LineChart data={[{"month":"Jan","value":1200},{"month":"Feb","value":1350},{"month":"Mar","value":1580},{"month":"Apr","value":1420},{"month":"May","value":1650},{"month":"Jun","value":1780}]} xKey="month" yKey="value" />
  </CardContent>
</Card>`, period)

	return models.GeneratedComponent{
		ID:              uuid.NewString(),
		AgentName:       AgentName,
		ComponentType:   TypeSalesTrend,
		ComponentCode:   code,
		BusinessContext: "Sales show steady growth through June with a minor dip in April",
	}
}

func (h *Handler) metricCard() models.GeneratedComponent {
	code := `<Card className="metric-card">
  <CardContent>
    <h3>Monthly Revenue</h3>
    <p className="metric-value">$47.2K</p>
    <Badge variant="positive">+12.3% vs last month</Badge>
  </CardContent>
</Card>`

	return models.GeneratedComponent{
		ID:              uuid.NewString(),
		AgentName:       AgentName,
		ComponentType:   TypeMetricCard,
		ComponentCode:   code,
		BusinessContext: "Revenue is up 12.3% month over month, driven by +23% growth in new accounts",
	}
}

func (h *Handler) comparisonChart() models.GeneratedComponent {
	code := `<Card className="chart-card">
  <CardHeader>
    <CardTitle>Product Comparison</CardTitle>
  </CardHeader>
  <CardContent>
    <BarChart data={[{"category":"Product A","value":2400},{"category":"Product B","value":1800},{"category":"Product C","value":3200},{"category":"Product D","value":1600}]} xKey="category" yKey="value" />
  </CardContent>
</Card>`

	return models.GeneratedComponent{
		ID:              uuid.NewString(),
		AgentName:       AgentName,
		ComponentType:   TypeComparisonChart,
		ComponentCode:   code,
		BusinessContext: "Product C leads the lineup at $3.2K, double Product D's volume",
	}
}

func limitWarningComponent(tool string) models.GeneratedComponent {
	code := fmt.Sprintf(`<Card className="metric-card warning">
  <CardContent>
    <h3>Generation Paused</h3>
    <p className="metric-value">Too many identical requests</p>
    <Badge variant="outline">%s</Badge>
  </CardContent>
</Card>`, tool)

	return models.GeneratedComponent{
		ID:              uuid.NewString(),
		AgentName:       AgentName,
		ComponentType:   TypeMetricCard,
		ComponentCode:   code,
		BusinessContext: "Tool call limit reached for identical parameters, try a different query",
	}
}

func periodFromQuery(query string) string {
	q := strings.ToUpper(query)
	for _, p := range []string{"Q1", "Q2", "Q3", "Q4", "YTD"} {
		if strings.Contains(q, p) {
			return p
		}
	}
	return "Q1"
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func normalizeQuery(query string) string {
	return strings.Join(strings.Fields(strings.ToLower(query)), " ")
}
