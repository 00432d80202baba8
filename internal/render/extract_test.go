// internal/render/extract_test.go
package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Core Functionality Tests
// ==========================

func TestExtract_DataAttribute(t *testing.T) {
	code := `<Card><CardTitle>Sales Trend - Q3 2024</CardTitle>` +
		`<LineChart data={[{"month":"Jul","sales":900},{"month":"Aug","sales":1100}]} /></Card>`

	data := Extract(code, "sales_trend")

	assert.Equal(t, "Sales Trend - Q3 2024", data.Title)
	assert.Equal(t, "Q3 2024", data.Period)
	assert.Equal(t, []ChartPoint{
		{Label: "Jul", Value: 900},
		{Label: "Aug", Value: 1100},
	}, data.Points)
}

func TestExtract_DataPointsKey(t *testing.T) {
	code := `{"title":"Regional Revenue","dataPoints":[{"region":"West","revenue":5000},{"region":"East","revenue":4200}]}`

	data := Extract(code, "comparison_chart")

	assert.Equal(t, "Regional Revenue", data.Title)
	assert.Equal(t, []ChartPoint{
		{Label: "West", Value: 5000},
		{Label: "East", Value: 4200},
	}, data.Points)
}

func TestExtract_BareArray(t *testing.T) {
	code := `some preamble [{"label":"A","value":1},{"label":"B","value":2}] trailing`

	data := Extract(code, "sales_trend")

	assert.Len(t, data.Points, 2)
	assert.Equal(t, "A", data.Points[0].Label)
	assert.Equal(t, float64(2), data.Points[1].Value)
}

func TestExtract_NestedBracketsInsideStrings(t *testing.T) {
	// Bracket characters inside string literals must not unbalance the scan.
	code := `data={[{"month":"Jan [adj]","sales":100},{"month":"Feb","sales":200}]}`

	data := Extract(code, "sales_trend")

	assert.Len(t, data.Points, 2)
	assert.Equal(t, "Jan [adj]", data.Points[0].Label)
}

// ==========================
// Default Sample Tests
// ==========================

func TestExtract_Defaults(t *testing.T) {
	tests := []struct {
		name         string
		declaredType string
		expected     []ChartPoint
	}{
		{
			name:         "trend type gets six month sample",
			declaredType: "trend_line",
			expected:     DefaultTrendPoints(),
		},
		{
			name:         "comparison type gets four category sample",
			declaredType: "comparison_bar",
			expected:     DefaultComparisonPoints(),
		},
		{
			name:         "unknown type falls back to trend sample",
			declaredType: "mystery_widget",
			expected:     DefaultTrendPoints(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := Extract("", tt.declaredType)
			assert.Equal(t, tt.expected, data.Points)
		})
	}
}

func TestDefaultTrendPoints_Shape(t *testing.T) {
	points := DefaultTrendPoints()

	assert.Len(t, points, 6)
	assert.Equal(t, ChartPoint{Label: "Jan", Value: 1200}, points[0])
	assert.Equal(t, ChartPoint{Label: "Jun", Value: 1780}, points[5])
}

func TestDefaultComparisonPoints_Shape(t *testing.T) {
	points := DefaultComparisonPoints()

	assert.Len(t, points, 4)
	assert.Equal(t, ChartPoint{Label: "Product C", Value: 3200}, points[2])
}

// ==========================
// Totality and Idempotence
// ==========================

func TestExtract_NeverFails(t *testing.T) {
	inputs := []string{
		"",
		"not json at all",
		`data={[{"month":`, // truncated
		`[1,2,3]`,          // array of non-objects
		`[{"month":"Jan"}]`, // object with no numeric value
		"\x00garbage\xff",
	}

	for _, code := range inputs {
		assert.NotPanics(t, func() {
			data := Extract(code, "sales_trend")
			assert.NotEmpty(t, data.Points, "extraction always yields points")
		})
	}
}

func TestExtract_Idempotent(t *testing.T) {
	code := `<CardTitle>Revenue</CardTitle> data={[{"month":"Jan","sales":100}]}`

	first := Extract(code, "sales_trend")
	second := Extract(code, "sales_trend")

	assert.Equal(t, first, second)
}

// ==========================
// Title and Period Tests
// ==========================

func TestExtractTitle(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected string
	}{
		{"card title element", `<CardTitle>Quarterly Sales</CardTitle>`, "Quarterly Sales"},
		{"heading element", `<h2 class="title">Revenue Overview</h2>`, "Revenue Overview"},
		{"title prop", `{"title": "KPI Summary"}`, "KPI Summary"},
		{"card title wins over heading", `<h1>Second</h1><CardTitle>First</CardTitle>`, "First"},
		{"nothing recoverable", `plain text`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractTitle(tt.code))
		})
	}
}

func TestExtractPeriod(t *testing.T) {
	tests := []struct {
		code     string
		expected string
	}{
		{"Sales for Q1 2025", "Q1 2025"},
		{"YTD performance", "YTD"},
		{"Monthly breakdown", "Monthly"},
		{"no period here", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, extractPeriod(tt.code))
	}
}

// ==========================
// Metric Extraction Tests
// ==========================

func TestExtractMetric(t *testing.T) {
	code := `<Card><CardTitle>Monthly Revenue</CardTitle>` +
		`<Text>$47.2K</Text><Badge>+12.3% vs last month</Badge></Card>`

	value, label, change, context := ExtractMetric(code)

	assert.Equal(t, "$47.2K", value)
	assert.Equal(t, "Monthly Revenue", label)
	assert.Equal(t, "+12.3%", change)
	assert.Equal(t, "vs last month", context)
}

func TestExtractMetric_Empty(t *testing.T) {
	value, label, change, context := ExtractMetric("")

	assert.Empty(t, value)
	assert.Empty(t, label)
	assert.Empty(t, change)
	assert.Empty(t, context)
}

// ==========================
// Embedded Metadata Tests
// ==========================

func TestExtractEmbeddedMetadata(t *testing.T) {
	t.Run("valid block", func(t *testing.T) {
		code := `<Card><script type="application/json" id="layout-metadata">` +
			`{"title":"Exec Dashboard","components":[{"type":"metric_card","code":""}]}` +
			`</script></Card>`

		meta := ExtractEmbeddedMetadata(code)

		assert.NotNil(t, meta)
		assert.Equal(t, "Exec Dashboard", meta["title"])
		components, ok := meta["components"].([]interface{})
		assert.True(t, ok)
		assert.Len(t, components, 1)
	})

	t.Run("no script block", func(t *testing.T) {
		assert.Nil(t, ExtractEmbeddedMetadata(`<Card>no metadata</Card>`))
	})

	t.Run("unterminated block", func(t *testing.T) {
		assert.Nil(t, ExtractEmbeddedMetadata(`<script type="application/json">{"x":1}`))
	})

	t.Run("invalid json body", func(t *testing.T) {
		assert.Nil(t, ExtractEmbeddedMetadata(`<script type="application/json">{{{</script>`))
	})
}
