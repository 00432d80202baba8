// internal/agents/geospatial/models.go
package geospatial

import "agenticbi/internal/models"

type Input struct {
	Query string `json:"query"`
}

type Output struct {
	Components []models.GeneratedComponent `json:"components"`
	ToolsUsed  []string                    `json:"toolsUsed"`
}

const (
	ToolRegionalHeatmap   = "generate_regional_heatmap"
	ToolLocationMetrics   = "generate_location_metrics"
	ToolTerritoryAnalysis = "generate_territory_analysis"
)

const (
	TypeRegionalHeatmap   = "regional_heatmap"
	TypeLocationMetrics   = "location_metrics"
	TypeTerritoryAnalysis = "territory_analysis"
)

// region is one entry of the sample regional dataset.
type region struct {
	Name   string
	Lat    float64
	Lng    float64
	Radius int
	Sales  int
}

// sampleRegions is the sample dataset behind every geospatial tool.
var sampleRegions = []region{
	{Name: "California", Lat: 34.0522, Lng: -118.2437, Radius: 20, Sales: 45000},
	{Name: "Texas", Lat: 31.9686, Lng: -99.9018, Radius: 15, Sales: 32000},
	{Name: "New York", Lat: 40.7589, Lng: -73.9851, Radius: 13, Sales: 28000},
	{Name: "Florida", Lat: 27.7663, Lng: -82.6404, Radius: 11, Sales: 22000},
	{Name: "Illinois", Lat: 40.3363, Lng: -89.0022, Radius: 9, Sales: 18000},
}
