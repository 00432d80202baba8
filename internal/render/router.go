// internal/render/router.go
package render

import (
	"strconv"
	"strings"

	"agenticbi/internal/common/config"
	"agenticbi/internal/common/logger"
	"agenticbi/internal/common/metrics"
)

// State is the router's resolution of a declared component type.
type State string

const (
	StateTrend         State = "trend"
	StateComparison    State = "comparison"
	StateMetric        State = "metric"
	StateGeographicMap State = "map"
	StateAccessibility State = "accessibility"
	StateComposite     State = "composite"
	StateUnrecognized  State = "unrecognized"
)

// defaultAliases maps every component type the agents emit, plus common
// synonyms, onto a router state. Config entries extend or override it.
var defaultAliases = map[string]State{
	"sales_trend": StateTrend,
	"trend_line":  StateTrend,
	"trend_chart": StateTrend,
	"line_chart":  StateTrend,

	"comparison_chart":     StateComparison,
	"comparison_bar":       StateComparison,
	"comparison_bar_chart": StateComparison,
	"bar_chart":            StateComparison,

	"metric_card": StateMetric,
	"kpi_card":    StateMetric,
	"metric":      StateMetric,
	// the root agent answers off-topic queries with a plain metric card
	"general_response": StateMetric,

	"regional_heatmap":   StateGeographicMap,
	"location_metrics":   StateGeographicMap,
	"territory_analysis": StateGeographicMap,
	"geo_map":            StateGeographicMap,

	"high_contrast_chart":    StateAccessibility,
	"accessible_table":       StateAccessibility,
	"keyboard_nav_dashboard": StateAccessibility,

	"dashboard_layout": StateComposite,
	"responsive_grid":  StateComposite,
}

// normalizeType canonicalizes a declared component type for table lookup.
func normalizeType(componentType string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(componentType)), "-", "_")
}

// StateForType resolves a declared component type against the default
// alias table.
func StateForType(componentType string) State {
	if state, ok := defaultAliases[normalizeType(componentType)]; ok {
		return state
	}
	return StateUnrecognized
}

// Router resolves declared component types to render states and produces a
// tree for every input. It never returns nil and never panics: failures
// inside the pipeline degrade to fallback trees.
type Router struct {
	aliases      map[string]State
	scope        *Scope
	maxCodeBytes int
	logger       logger.Logger
}

// NewRouter builds a router from config. Config aliases are merged over
// the compiled-in table.
func NewRouter(cfg config.RenderConfig, log logger.Logger) *Router {
	aliases := make(map[string]State, len(defaultAliases)+len(cfg.Aliases))
	for alias, state := range defaultAliases {
		aliases[alias] = state
	}
	for alias, state := range cfg.Aliases {
		aliases[normalizeType(alias)] = State(strings.ToLower(state))
	}

	return &Router{
		aliases:      aliases,
		scope:        NewScope().WithMaxDepth(cfg.MaxDepth),
		maxCodeBytes: cfg.MaxCodeBytes,
		logger:       log.WithFields(map[string]interface{}{"component": "render_router"}),
	}
}

// StateFor resolves a declared component type against this router's table.
func (r *Router) StateFor(componentType string) State {
	if state, ok := r.aliases[normalizeType(componentType)]; ok {
		return state
	}
	return StateUnrecognized
}

// Render produces a tree for the given declared type and component code.
func (r *Router) Render(componentType, code string) *Node {
	if r.maxCodeBytes > 0 && len(code) > r.maxCodeBytes {
		r.fallback(componentType, string(ErrReasonOversized))
		return FallbackCard(componentType, "component code exceeds the size limit")
	}

	state := r.StateFor(componentType)

	switch state {
	case StateTrend:
		return LineChartNode(Extract(code, componentType))

	case StateComparison:
		return BarChartNode(Extract(code, componentType))

	case StateMetric:
		value, label, change, context := ExtractMetric(code)
		return MetricCardNode(value, label, change, context)

	case StateGeographicMap:
		return r.renderExecutable(componentType, code, MapFallback)

	case StateAccessibility:
		return r.renderAccessible(componentType, code)

	case StateComposite:
		return r.renderComposite(componentType, code)

	default:
		r.fallback(componentType, string(ErrReasonUnrecognized))
		return FallbackCard(componentType, code)
	}
}

// ErrReason labels fallback metrics.
type ErrReason string

const (
	ErrReasonUnrecognized ErrReason = "unrecognized_type"
	ErrReasonSyntax       ErrReason = "syntax_invalid"
	ErrReasonRuntime      ErrReason = "runtime_failure"
	ErrReasonNoMetadata   ErrReason = "missing_metadata"
	ErrReasonOversized    ErrReason = "code_oversized"
)

// renderExecutable evaluates call-tree code and substitutes the static
// fallback on any failure, including non-call-tree formats.
func (r *Router) renderExecutable(componentType, code string, fallback func() *Node) *Node {
	if Classify(code) == FormatCallTree {
		node, execErr := Execute(code, r.scope)
		if execErr == nil {
			return node
		}
		r.logExecError(componentType, execErr)
	} else {
		r.fallback(componentType, string(ErrReasonSyntax))
	}
	return fallback()
}

// renderAccessible prefers evaluated call trees but degrades to a data
// table built from extraction, which is total.
func (r *Router) renderAccessible(componentType, code string) *Node {
	if Classify(code) == FormatCallTree {
		node, execErr := Execute(code, r.scope)
		if execErr == nil {
			return node
		}
		r.logExecError(componentType, execErr)
		return AccessibilityFallback()
	}

	data := Extract(code, componentType)
	title := data.Title
	if title == "" {
		title = "Accessible Data Table"
	}

	table := Element("table", map[string]interface{}{"role": "table"},
		Element("caption", nil, TextNode(title)),
	)
	for _, pt := range data.Points {
		table.AddChild(Element("tr", nil,
			Element("td", nil, TextNode(pt.Label)),
			Element("td", nil, TextNode(formatValue(pt.Value))),
		))
	}

	return Element("Card", map[string]interface{}{
		"className":  "a11y-card",
		"role":       "region",
		"aria-label": title,
	},
		Element("CardHeader", nil, Element("CardTitle", nil, TextNode(title))),
		Element("CardContent", nil, table),
	)
}

// renderComposite lays out the child components named in the embedded
// metadata block. Call-tree composites evaluate directly.
func (r *Router) renderComposite(componentType, code string) *Node {
	if Classify(code) == FormatCallTree {
		node, execErr := Execute(code, r.scope)
		if execErr == nil {
			return node
		}
		r.logExecError(componentType, execErr)
		return CompositeFallback()
	}

	meta := ExtractEmbeddedMetadata(code)
	if meta == nil {
		r.fallback(componentType, string(ErrReasonNoMetadata))
		return CompositeFallback()
	}

	grid := Element("Card", map[string]interface{}{"className": "dashboard-grid"})
	if title, ok := meta["title"].(string); ok && title != "" {
		grid.AddChild(Element("CardHeader", nil, Element("CardTitle", nil, TextNode(title))))
	}

	content := Element("CardContent", map[string]interface{}{"className": "grid"})
	children, _ := meta["components"].([]interface{})
	for _, raw := range children {
		child, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		childType, _ := child["type"].(string)
		childCode, _ := child["code"].(string)
		content.AddChild(r.Render(childType, childCode))
	}
	if len(content.Children) == 0 {
		r.fallback(componentType, string(ErrReasonNoMetadata))
		return CompositeFallback()
	}

	grid.AddChild(content)
	return grid
}

func (r *Router) renderReason(execErr *ExecError) string {
	if execErr.Kind == RuntimeFailure {
		return string(ErrReasonRuntime)
	}
	return string(ErrReasonSyntax)
}

func (r *Router) logExecError(componentType string, execErr *ExecError) {
	r.fallback(componentType, r.renderReason(execErr))
	r.logger.Warn("Component evaluation failed, substituting fallback", map[string]interface{}{
		"componentType": componentType,
		"errorKind":     string(execErr.Kind),
		"detail":        execErr.Detail,
		"offset":        execErr.Pos,
	})
}

func (r *Router) fallback(componentType, reason string) {
	metrics.RenderFallbacks.WithLabelValues(componentType, reason).Inc()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
