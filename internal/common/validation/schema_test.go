// internal/common/validation/schema_test.go
package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"agenticbi/internal/models"
)

func TestComponentValidator(t *testing.T) {
	validator, err := NewComponentValidator()
	require.NoError(t, err)

	tests := []struct {
		name      string
		component models.GeneratedComponent
		valid     bool
	}{
		{
			name: "complete envelope",
			component: models.GeneratedComponent{
				ID:              "a1",
				AgentName:       "chart_generation_agent",
				ComponentType:   "sales_trend",
				ComponentCode:   "<Card />",
				BusinessContext: "ctx",
			},
			valid: true,
		},
		{
			name: "empty component code is allowed",
			component: models.GeneratedComponent{
				ID:            "a2",
				AgentName:     "chart_generation_agent",
				ComponentType: "metric_card",
			},
			valid: true,
		},
		{
			name: "missing id",
			component: models.GeneratedComponent{
				AgentName:     "chart_generation_agent",
				ComponentType: "sales_trend",
				ComponentCode: "<Card />",
			},
			valid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := validator.Validate(tt.component)

			assert.NoError(t, err)
			assert.Equal(t, tt.valid, result.Valid)
			if !tt.valid {
				assert.NotEmpty(t, result.GetErrorMessages())
			}
		})
	}
}
