// internal/agents/accessibility/models.go
package accessibility

import "agenticbi/internal/models"

type Input struct {
	Query string `json:"query"`
}

type Output struct {
	Components []models.GeneratedComponent `json:"components"`
	ToolsUsed  []string                    `json:"toolsUsed"`
}

const (
	ToolHighContrastChart    = "generate_high_contrast_chart"
	ToolScreenReaderTable    = "generate_screen_reader_table"
	ToolKeyboardNavDashboard = "generate_keyboard_nav_dashboard"
)

const (
	TypeHighContrastChart    = "high_contrast_chart"
	TypeAccessibleTable      = "accessible_table"
	TypeKeyboardNavDashboard = "keyboard_nav_dashboard"
)
