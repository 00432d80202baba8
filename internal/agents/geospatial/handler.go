// internal/agents/geospatial/handler.go
package geospatial

import (
	"context"
	"fmt"
	"strings"

	"agenticbi/internal/agents/toolcall"
	"agenticbi/internal/models"

	"github.com/google/uuid"
)

const AgentName = "geospatial_agent"

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
	return "Generates map-based components: regional heatmaps, location metrics, and territory analyses"
}

func (h *Handler) Tools() []string {
	return []string{ToolRegionalHeatmap, ToolLocationMetrics, ToolTerritoryAnalysis}
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
		return &Output{Components: nil, ToolsUsed: []string{tool}}, nil
	}

	var component models.GeneratedComponent
	switch tool {
	case ToolLocationMetrics:
		component = h.locationMetrics()
	case ToolTerritoryAnalysis:
		component = h.territoryAnalysis()
	default:
		component = h.regionalHeatmap()
	}

	return &Output{
		Components: []models.GeneratedComponent{component},
		ToolsUsed:  []string{tool},
	}, nil
}

func (h *Handler) selectTool(query string) string {
	q := strings.ToLower(query)
	switch {
	case containsAny(q, "territory", "area"):
		return ToolTerritoryAnalysis
	case containsAny(q, "location", "store", "branch"):
		return ToolLocationMetrics
	default:
		return ToolRegionalHeatmap
	}
}

// regionalHeatmap emits a call-tree component: a Leaflet-style map with one
// circle marker per region, radius scaled to sales volume.
func (h *Handler) regionalHeatmap() models.GeneratedComponent {
	var markers strings.Builder
	for _, r := range sampleRegions {
		markers.WriteString(fmt.Sprintf(
			",\n      React.createElement(CircleMarker, { center: [%.4f, %.4f], radius: %d, color: \"#2563eb\" }, React.createElement(Popup, null, \"%s: $%d\"))",
			r.Lat, r.Lng, r.Radius, r.Name, r.Sales,
		))
	}

	code := fmt.Sprintf(`React.createElement(Card, { className: "map-card" },
  React.createElement(CardHeader, null, React.createElement(CardTitle, null, "Regional Sales Heatmap")),
  React.createElement(CardContent, null,
    React.createElement(MapContainer, { center: [39.8283, -98.5795], zoom: 4 },
      React.createElement(TileLayer, { url: "https://tile.openstreetmap.org/{z}/{x}/{y}.png" })%s
    )
  )
)`, markers.String())

	return models.GeneratedComponent{
		ID:              uuid.NewString(),
		AgentName:       AgentName,
		ComponentType:   TypeRegionalHeatmap,
		ComponentCode:   code,
		BusinessContext: "California leads regional sales at $45K, the west coast outpaces all other territories",
	}
}

// locationMetrics emits a call-tree list of per-location KPI rows.
func (h *Handler) locationMetrics() models.GeneratedComponent {
	code := buildLocationMetricsCode()

	return models.GeneratedComponent{
		ID:              uuid.NewString(),
		AgentName:       AgentName,
		ComponentType:   TypeLocationMetrics,
		ComponentCode:   code,
		BusinessContext: "Five tracked locations, ranked by sales volume",
	}
}

func buildLocationMetricsCode() string {
	var rows strings.Builder
	for _, r := range sampleRegions {
		rows.WriteString(fmt.Sprintf(
			",\n    React.createElement(\"div\", { className: \"location-row\" }, React.createElement(MapPin, { size: 16 }), React.createElement(Text, null, \"%s\"), React.createElement(Badge, null, \"$%d\"))",
			r.Name, r.Sales,
		))
	}

	return fmt.Sprintf(`React.createElement(Card, { className: "location-card" },
  React.createElement(CardHeader, null, React.createElement(CardTitle, null, "Location Metrics")),
  React.createElement(CardContent, null%s
  )
)`, rows.String())
}

// territoryAnalysis emits a call-tree card pairing the map with a ranked
// territory summary.
func (h *Handler) territoryAnalysis() models.GeneratedComponent {
	top := sampleRegions[0]
	code := fmt.Sprintf(`React.createElement(Card, { className: "territory-card" },
  React.createElement(CardHeader, null, React.createElement(CardTitle, null, "Territory Analysis")),
  React.createElement(CardContent, null,
    React.createElement(Text, null, "Top territory: %s"),
    React.createElement(Badge, { variant: "positive" }, "$%d"),
    React.createElement(MapContainer, { center: [%.4f, %.4f], zoom: 6 },
      React.createElement(TileLayer, { url: "https://tile.openstreetmap.org/{z}/{x}/{y}.png" }),
      React.createElement(CircleMarker, { center: [%.4f, %.4f], radius: %d }, React.createElement(Popup, null, "%s"))
    )
  )
)`, top.Name, top.Sales, top.Lat, top.Lng, top.Lat, top.Lng, top.Radius, top.Name)

	return models.GeneratedComponent{
		ID:              uuid.NewString(),
		AgentName:       AgentName,
		ComponentType:   TypeTerritoryAnalysis,
		ComponentCode:   code,
		BusinessContext: "California is the strongest territory with 31% of national volume",
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
