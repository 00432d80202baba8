// internal/agents/layout/handler.go
package layout

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"agenticbi/internal/agents/toolcall"
	"agenticbi/internal/models"

	"github.com/google/uuid"
)

const AgentName = "dashboard_layout_agent"

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
	return "Composes multi-component dashboards into a single layout with embedded metadata"
}

func (h *Handler) Tools() []string {
	return []string{ToolDashboardLayout, ToolResponsiveGrid}
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

	tool := ToolDashboardLayout
	if strings.Contains(strings.ToLower(input.Query), "grid") {
		tool = ToolResponsiveGrid
	}

	h.logger.Info("generating component", map[string]interface{}{
		"tool":  tool,
		"query": input.Query,
	})

	if !h.tracker.Allow(tool, strings.ToLower(strings.TrimSpace(input.Query))) {
		h.logger.Warn("tool call limit reached", map[string]interface{}{"tool": tool})
		return &Output{ToolsUsed: []string{tool}}, nil
	}

	component := h.dashboardLayout(tool)
	return &Output{
		Components: []models.GeneratedComponent{component},
		ToolsUsed:  []string{tool},
	}, nil
}

// layoutMetadata is the machine-readable half of a layout component. The
// rendering pipeline reads it back out of the script block.
type layoutMetadata struct {
	Title      string            `json:"title"`
	Columns    int               `json:"columns"`
	Components []layoutComponent `json:"components"`
}

type layoutComponent struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

func (h *Handler) dashboardLayout(tool string) models.GeneratedComponent {
	meta := layoutMetadata{
		Title:   "Sales Overview",
		Columns: 2,
		Components: []layoutComponent{
			{Type: "metric_card", Code: ""},
			{Type: "sales_trend", Code: ""},
			{Type: "comparison_chart", Code: ""},
		},
	}
	componentType := TypeDashboardLayout
	if tool == ToolResponsiveGrid {
		meta.Title = "Responsive Grid"
		meta.Columns = 3
		componentType = TypeResponsiveGrid
	}
	if h.config.MaxComponents > 0 && len(meta.Components) > h.config.MaxComponents {
		meta.Components = meta.Components[:h.config.MaxComponents]
	}

	raw, _ := json.Marshal(meta)
	code := fmt.Sprintf(`<Card className="dashboard-layout">
  <script type="application/json" id="layout-metadata">%s</script>
  <div className="grid grid-cols-%d" />
</Card>`, string(raw), meta.Columns)

	return models.GeneratedComponent{
		ID:              uuid.NewString(),
		AgentName:       AgentName,
		ComponentType:   componentType,
		ComponentCode:   code,
		BusinessContext: "Composite view combining revenue KPI, trend, and product comparison",
	}
}
