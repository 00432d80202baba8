// internal/agents/registry.go
package agents

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"agenticbi/internal/common/logger"
	"agenticbi/internal/models"

	"github.com/google/uuid"
)

// Agent is one specialized component generator.
type Agent interface {
	Name() string
	Description() string
	Tools() []string
	Generate(ctx context.Context, query string) ([]models.GeneratedComponent, error)
}

// Route binds a set of query keywords to a registered agent. Routes are
// evaluated in order; the first route with both a keyword hit and a
// registered agent wins.
type Route struct {
	Agent    string
	Keywords []string
}

// defaultRoutes orders agents from most to least specific so that
// accessibility and geographic intents are not swallowed by the generic
// chart keywords.
var defaultRoutes = []Route{
	{
		Agent: "accessibility_agent",
		Keywords: []string{
			"accessible", "accessibility", "contrast", "a11y", "wcag",
			"screen reader", "keyboard",
		},
	},
	{
		Agent: "geospatial_agent",
		Keywords: []string{
			"region", "regional", "map", "territory", "location", "geographic", "heatmap",
		},
	},
	{
		Agent:    "dashboard_layout_agent",
		Keywords: []string{"dashboard", "layout", "grid", "overview"},
	},
	{
		Agent: "chart_generation_agent",
		Keywords: []string{
			"trend", "sales", "performance", "growth",
			"metric", "kpi", "revenue", "key",
			"compare", "comparison", "product", "category",
		},
	},
}

// AnalyzeResult is the outcome of routing one query through the registry.
type AnalyzeResult struct {
	AgentName  string
	Components []models.GeneratedComponent
	Trace      []string
}

// Registry holds the registered agents and the routing table.
type Registry struct {
	mu     sync.RWMutex
	agents map[string]Agent
	order  []string
	routes []Route
	logger logger.Logger
}

// NewRegistry builds an empty registry with the default routing table.
func NewRegistry(log logger.Logger) *Registry {
	return &Registry{
		agents: make(map[string]Agent),
		routes: defaultRoutes,
		logger: log.WithFields(map[string]interface{}{"component": "agent_registry"}),
	}
}

// Register adds an agent. Registering the same name twice replaces the
// earlier instance.
func (r *Registry) Register(a Agent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.agents[a.Name()]; !exists {
		r.order = append(r.order, a.Name())
	}
	r.agents[a.Name()] = a

	r.logger.Info("agent registered", map[string]interface{}{
		"agent": a.Name(),
		"tools": len(a.Tools()),
	})
}

// AgentNames returns the registered agent names in registration order.
func (r *Registry) AgentNames() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]string(nil), r.order...)
}

// Agents describes every registered agent for the listing endpoint.
func (r *Registry) Agents() []models.AgentInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()

	infos := make([]models.AgentInfo, 0, len(r.order))
	for _, name := range r.order {
		a := r.agents[name]
		infos = append(infos, models.AgentInfo{
			Name:        a.Name(),
			Description: a.Description(),
			Tools:       a.Tools(),
		})
	}
	return infos
}

// Route resolves a query to an agent. The second return is false when no
// route matched and the caller should produce the general response.
func (r *Registry) Route(query string) (Agent, bool) {
	q := strings.ToLower(query)

	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, route := range r.routes {
		agent, registered := r.agents[route.Agent]
		if !registered {
			continue
		}
		for _, kw := range route.Keywords {
			if strings.Contains(q, kw) {
				return agent, true
			}
		}
	}
	return nil, false
}

// Analyze routes the query, runs the selected agent, and assembles the
// delegation trace. Queries no agent claims get the general response card,
// so the result always carries at least one component.
func (r *Registry) Analyze(ctx context.Context, query string) (*AnalyzeResult, error) {
	trace := []string{"Root agent analyzed query"}

	agent, matched := r.Route(query)
	if !matched {
		r.logger.Info("no route matched, returning general response", map[string]interface{}{
			"query": query,
		})
		trace = append(trace, "No specialized agent matched", "Returned general response card")
		return &AnalyzeResult{
			AgentName:  "root_agent",
			Components: []models.GeneratedComponent{GeneralResponse(query)},
			Trace:      trace,
		}, nil
	}

	trace = append(trace, "Delegated to "+agent.Name())

	components, err := agent.Generate(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(components) == 0 {
		components = []models.GeneratedComponent{GeneralResponse(query)}
		trace = append(trace, "Agent produced no components, returned general response card")
	} else {
		trace = append(trace, fmt.Sprintf("Generated %d UI component(s)", len(components)))
	}
	trace = append(trace, "Returned renderable component trees")

	return &AnalyzeResult{
		AgentName:  agent.Name(),
		Components: components,
		Trace:      trace,
	}, nil
}

// GeneralResponse is the card the root agent answers with when no
// specialized agent claims the query.
func GeneralResponse(query string) models.GeneratedComponent {
	code := fmt.Sprintf(`<Card className="metric-card">
  <CardContent>
    <h3>Query Processed</h3>
    <p className="metric-value">✓</p>
    <Badge variant="outline">%s</Badge>
  </CardContent>
</Card>`, query)

	return models.GeneratedComponent{
		ID:              uuid.NewString(),
		AgentName:       "root_agent",
		ComponentType:   "general_response",
		ComponentCode:   code,
		BusinessContext: "No specialized visualization matched this query",
	}
}
