// internal/agents/layout/models.go
package layout

import "agenticbi/internal/models"

type Input struct {
	Query string `json:"query"`
}

type Output struct {
	Components []models.GeneratedComponent `json:"components"`
	ToolsUsed  []string                    `json:"toolsUsed"`
}

const (
	ToolDashboardLayout = "generate_dashboard_layout"
	ToolResponsiveGrid  = "generate_responsive_grid"
)

const (
	TypeDashboardLayout = "dashboard_layout"
	TypeResponsiveGrid  = "responsive_grid"
)
