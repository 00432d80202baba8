// internal/agents/chartgen/models.go
package chartgen

import "agenticbi/internal/models"

type Input struct {
	Query string `json:"query"`
}

type Output struct {
	Components []models.GeneratedComponent `json:"components"`
	ToolsUsed  []string                    `json:"toolsUsed"`
}

// Tool names exposed by this agent.
const (
	ToolSalesTrend      = "generate_sales_trend_chart"
	ToolMetricCard      = "generate_metric_card"
	ToolComparisonChart = "generate_comparison_chart"
)

// Component types emitted by the tools.
const (
	TypeSalesTrend      = "sales_trend"
	TypeMetricCard      = "metric_card"
	TypeComparisonChart = "comparison_chart"
)
