// internal/agents/accessibility/handler.go
package accessibility

import (
	"context"
	"strings"

	"agenticbi/internal/agents/toolcall"
	"agenticbi/internal/models"

	"github.com/google/uuid"
)

const AgentName = "accessibility_agent"

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
	return "Generates WCAG-oriented variants: high contrast charts, screen reader tables, keyboard navigable layouts"
}

func (h *Handler) Tools() []string {
	return []string{ToolHighContrastChart, ToolScreenReaderTable, ToolKeyboardNavDashboard}
}

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

	tool := h.selectTool(input.Query)
	h.logger.Info("generating component", map[string]interface{}{
		"tool":  tool,
		"query": input.Query,
	})

	if !h.tracker.Allow(tool, strings.ToLower(strings.TrimSpace(input.Query))) {
		h.logger.Warn("tool call limit reached", map[string]interface{}{"tool": tool})
		return &Output{ToolsUsed: []string{tool}}, nil
	}

	var component models.GeneratedComponent
	switch tool {
	case ToolScreenReaderTable:
		component = h.screenReaderTable()
	case ToolKeyboardNavDashboard:
		component = h.keyboardNavDashboard()
	default:
		component = h.highContrastChart()
	}

	return &Output{
		Components: []models.GeneratedComponent{component},
		ToolsUsed:  []string{tool},
	}, nil
}

func (h *Handler) selectTool(query string) string {
	q := strings.ToLower(query)
	switch {
	case strings.Contains(q, "screen reader") || containsAny(q, "table", "tabular"):
		return ToolScreenReaderTable
	case containsAny(q, "keyboard", "navigation", "focus"):
		return ToolKeyboardNavDashboard
	default:
		return ToolHighContrastChart
	}
}

func (h *Handler) highContrastChart() models.GeneratedComponent {
	code := `<Card className="chart-card high-contrast" role="img" aria-label="Monthly sales, high contrast">
  <CardHeader>
    <CardTitle>Monthly Sales (High Contrast)</CardTitle>
  </CardHeader>
  <CardContent>
    <BarChart data={[{"month":"Jan","value":1200},{"month":"Feb","value":1350},{"month":"Mar","value":1580},{"month":"Apr","value":1420},{"month":"May","value":1650},{"month":"Jun","value":1780}]} xKey="month" yKey="value" palette="high-contrast" />
  </CardContent>
</Card>`

	return models.GeneratedComponent{
		ID:              uuid.NewString(),
		AgentName:       AgentName,
		ComponentType:   TypeHighContrastChart,
		ComponentCode:   code,
		BusinessContext: "WCAG AAA contrast palette applied to the monthly sales series",
	}
}

func (h *Handler) screenReaderTable() models.GeneratedComponent {
	code := `<Card className="a11y-card" role="region" aria-label="Sales data table">
  <CardHeader>
    <CardTitle>Sales Data Table</CardTitle>
  </CardHeader>
  <CardContent>
    <table role="table" aria-rowcount="6" data={[{"month":"Jan","value":1200},{"month":"Feb","value":1350},{"month":"Mar","value":1580},{"month":"Apr","value":1420},{"month":"May","value":1650},{"month":"Jun","value":1780}]}>
      <caption>Monthly sales figures, January through June</caption>
    </table>
  </CardContent>
</Card>`

	return models.GeneratedComponent{
		ID:              uuid.NewString(),
		AgentName:       AgentName,
		ComponentType:   TypeAccessibleTable,
		ComponentCode:   code,
		BusinessContext: "Tabular rendering of the sales series for screen reader users",
	}
}

func (h *Handler) keyboardNavDashboard() models.GeneratedComponent {
	code := `<Card className="a11y-card keyboard-nav" role="application" aria-label="Keyboard navigable dashboard">
  <CardHeader>
    <CardTitle>Keyboard Navigable Dashboard</CardTitle>
  </CardHeader>
  <CardContent>
    <div tabIndex="0" aria-label="Revenue summary">$47.2K monthly revenue, up 12.3%</div>
    <div tabIndex="0" aria-label="Trend summary">Sales grew from $1.2K in Jan to $1.78K in Jun</div>
  </CardContent>
</Card>`

	return models.GeneratedComponent{
		ID:              uuid.NewString(),
		AgentName:       AgentName,
		ComponentType:   TypeKeyboardNavDashboard,
		ComponentCode:   code,
		BusinessContext: "Dashboard regions are focusable in reading order with descriptive labels",
	}
}

func containsAny(s string, subs ...string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
