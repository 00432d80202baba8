// internal/render/extract.go
package render

import (
	"encoding/json"
	"regexp"
	"strings"
)

// ChartPoint is one labeled value extracted from component code.
type ChartPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// ChartData is the structured payload the extraction layer recovers from a
// componentCode blob. Extraction is best-effort: fields that cannot be
// recovered hold their type defaults.
type ChartData struct {
	Points []ChartPoint `json:"points"`
	Title  string       `json:"title,omitempty"`
	Period string       `json:"period,omitempty"`
}

var (
	cardTitlePattern  = regexp.MustCompile(`<CardTitle[^>]*>\s*([^<]+?)\s*</CardTitle>`)
	headingPattern    = regexp.MustCompile(`<h[1-4][^>]*>\s*([^<]+?)\s*</h[1-4]>`)
	titlePropPattern  = regexp.MustCompile(`"title"\s*:\s*"([^"]+)"`)
	trendTitlePattern = regexp.MustCompile(`Sales Trend\s*-\s*([^<"\n]+)`)
	periodPattern     = regexp.MustCompile(`\bQ[1-4](?:\s?\d{4})?\b|\bYTD\b|\bH[12]\s?\d{4}\b|\bFY\d{2,4}\b|\b(?:Monthly|Weekly|Daily|Quarterly|Annual)\b`)
)

// label keys tried in order when mapping raw JSON objects to chart points.
var labelKeys = []string{"month", "category", "name", "label", "region", "location"}

// Extract recovers chart data from component code. It is pure and
// idempotent, and it never fails: anything it cannot recover is replaced
// with the default sample for declaredType.
func Extract(code string, declaredType string) ChartData {
	data := ChartData{
		Points: extractPoints(code),
		Title:  extractTitle(code),
		Period: extractPeriod(code),
	}

	if len(data.Points) == 0 {
		data.Points = DefaultPoints(declaredType)
	}
	return data
}

// extractPoints locates the first plausible JSON array in the blob and maps
// it to chart points. A data={[...]} attribute wins over a bare array.
func extractPoints(code string) []ChartPoint {
	if idx := strings.Index(code, "data={"); idx >= 0 {
		if raw, ok := scanBalancedArray(code, idx+len("data={")); ok {
			if pts := decodePoints(raw); len(pts) > 0 {
				return pts
			}
		}
	}

	// Embedded metadata blocks carry their points under "dataPoints".
	if idx := strings.Index(code, `"dataPoints"`); idx >= 0 {
		if raw, ok := scanBalancedArray(code, idx); ok {
			if pts := decodePoints(raw); len(pts) > 0 {
				return pts
			}
		}
	}

	// Last resort: first array of objects anywhere in the blob.
	if raw, ok := scanBalancedArray(code, 0); ok {
		if pts := decodePoints(raw); len(pts) > 0 {
			return pts
		}
	}
	return nil
}

// scanBalancedArray finds the first '[' at or after start and returns the
// balanced array text. Brackets inside string literals are ignored.
func scanBalancedArray(s string, start int) (string, bool) {
	if start >= len(s) {
		return "", false
	}
	open := strings.Index(s[start:], "[")
	if open < 0 {
		return "", false
	}
	open += start

	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '[':
			depth++
		case ']':
			depth--
			if depth == 0 {
				return s[open : i+1], true
			}
		}
	}
	return "", false
}

// decodePoints parses a JSON array of objects into chart points. Objects
// without a numeric value, or arrays that fail to parse, yield nil.
func decodePoints(raw string) []ChartPoint {
	var rows []map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil
	}

	points := make([]ChartPoint, 0, len(rows))
	for _, row := range rows {
		value, ok := numericValue(row)
		if !ok {
			continue
		}
		points = append(points, ChartPoint{Label: labelValue(row), Value: value})
	}
	if len(points) == 0 {
		return nil
	}
	return points
}

func numericValue(row map[string]interface{}) (float64, bool) {
	for _, key := range []string{"value", "sales", "revenue", "count", "amount"} {
		if v, ok := row[key]; ok {
			if f, ok := v.(float64); ok {
				return f, true
			}
		}
	}
	return 0, false
}

func labelValue(row map[string]interface{}) string {
	for _, key := range labelKeys {
		if v, ok := row[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

func extractTitle(code string) string {
	if m := cardTitlePattern.FindStringSubmatch(code); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := headingPattern.FindStringSubmatch(code); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := titlePropPattern.FindStringSubmatch(code); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := trendTitlePattern.FindStringSubmatch(code); m != nil {
		return "Sales Trend - " + strings.TrimSpace(m[1])
	}
	return ""
}

func extractPeriod(code string) string {
	return periodPattern.FindString(code)
}

var (
	moneyPattern   = regexp.MustCompile(`\$[\d,]+(?:\.\d+)?[KMB]?`)
	percentPattern = regexp.MustCompile(`[+-]\d+(?:\.\d+)?%`)
	contextPattern = regexp.MustCompile(`vs\.?\s+[a-zA-Z ]+`)
)

// ExtractMetric recovers KPI card fields from component code. Fields that
// cannot be recovered come back empty; the metric primitive fills in its
// own defaults.
func ExtractMetric(code string) (value, label, change, context string) {
	value = moneyPattern.FindString(code)
	label = extractTitle(code)
	change = percentPattern.FindString(code)
	context = strings.TrimSpace(contextPattern.FindString(code))
	return value, label, change, context
}

// ExtractEmbeddedMetadata parses the JSON payload of a layout-metadata
// script block. Blobs without a parsable block yield nil.
func ExtractEmbeddedMetadata(code string) map[string]interface{} {
	start := strings.Index(code, embeddedJSONOpen)
	if start < 0 {
		return nil
	}
	open := strings.Index(code[start:], ">")
	if open < 0 {
		return nil
	}
	body := code[start+open+1:]
	end := strings.Index(body, "</script>")
	if end < 0 {
		return nil
	}

	var meta map[string]interface{}
	if err := json.Unmarshal([]byte(strings.TrimSpace(body[:end])), &meta); err != nil {
		return nil
	}
	return meta
}

// DefaultTrendPoints is the six month sample used when a trend component
// carries no recoverable data.
func DefaultTrendPoints() []ChartPoint {
	return []ChartPoint{
		{Label: "Jan", Value: 1200},
		{Label: "Feb", Value: 1350},
		{Label: "Mar", Value: 1580},
		{Label: "Apr", Value: 1420},
		{Label: "May", Value: 1650},
		{Label: "Jun", Value: 1780},
	}
}

// DefaultComparisonPoints is the four category sample used when a
// comparison component carries no recoverable data.
func DefaultComparisonPoints() []ChartPoint {
	return []ChartPoint{
		{Label: "Product A", Value: 2400},
		{Label: "Product B", Value: 1800},
		{Label: "Product C", Value: 3200},
		{Label: "Product D", Value: 1600},
	}
}

// DefaultPoints selects the default sample for a declared component type.
// Types with no dedicated sample fall back to the trend series.
func DefaultPoints(declaredType string) []ChartPoint {
	switch StateForType(declaredType) {
	case StateComparison:
		return DefaultComparisonPoints()
	default:
		return DefaultTrendPoints()
	}
}
