// internal/render/executor_test.go
package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Core Functionality Tests
// ==========================

func TestExecute_SimpleCall(t *testing.T) {
	node, execErr := Execute(`React.createElement(Card, null, "hello")`, nil)

	assert.Nil(t, execErr)
	assert.Equal(t, NodeElement, node.Kind)
	assert.Equal(t, "Card", node.Component)
	assert.Nil(t, node.Props)
	assert.Len(t, node.Children, 1)
	assert.Equal(t, "hello", node.Children[0].Text)
}

func TestExecute_NestedTree(t *testing.T) {
	code := `React.createElement(Card, {className: "chart-card"},
		React.createElement(CardHeader, null,
			React.createElement(CardTitle, null, "Sales Trend")),
		React.createElement(CardContent, null,
			React.createElement(LineChart, {data: [{"month": "Jan", "sales": 1200}], xKey: "month"})))`

	node, execErr := Execute(code, nil)

	assert.Nil(t, execErr)
	assert.Equal(t, "Card", node.Component)
	assert.Equal(t, "chart-card", node.Props["className"])
	assert.Len(t, node.FindAll("CardTitle"), 1)
	assert.Len(t, node.FindAll("LineChart"), 1)

	chart := node.FindAll("LineChart")[0]
	rows, ok := chart.Props["data"].([]interface{})
	assert.True(t, ok)
	assert.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, float64(1200), row["sales"])
}

func TestExecute_PreservesMarkerCoordinates(t *testing.T) {
	code := `React.createElement(MapContainer, {center: [39.8283, -98.5795], zoom: 4},
		React.createElement(TileLayer, {url: "https://tile.openstreetmap.org/{z}/{x}/{y}.png"}),
		React.createElement(CircleMarker, {center: [34.0522, -118.2437], radius: 20},
			React.createElement(Popup, null, "California: $45,000")),
		React.createElement(CircleMarker, {center: [31.9686, -99.9018], radius: 15},
			React.createElement(Popup, null, "Texas: $32,000")),
		React.createElement(CircleMarker, {center: [40.7589, -73.9851], radius: 13},
			React.createElement(Popup, null, "New York: $28,000")))`

	node, execErr := Execute(code, nil)

	assert.Nil(t, execErr)
	markers := node.FindAll("CircleMarker")
	assert.Len(t, markers, 3)

	expected := [][]float64{
		{34.0522, -118.2437},
		{31.9686, -99.9018},
		{40.7589, -73.9851},
	}
	for i, marker := range markers {
		center := marker.Props["center"].([]interface{})
		assert.Equal(t, expected[i][0], center[0])
		assert.Equal(t, expected[i][1], center[1])
	}
}

func TestExecute_QuotedIntrinsicTag(t *testing.T) {
	node, execErr := Execute(`React.createElement("div", {className: "row"}, "text")`, nil)

	assert.Nil(t, execErr)
	assert.Equal(t, "div", node.Component)
}

func TestExecute_TrailingSemicolon(t *testing.T) {
	node, execErr := Execute(`React.createElement(Card, null);`, nil)

	assert.Nil(t, execErr)
	assert.Equal(t, "Card", node.Component)
}

// ==========================
// Child Handling Tests
// ==========================

func TestExecute_Children(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		validate func(t *testing.T, node *Node)
	}{
		{
			name: "number child becomes text",
			code: `React.createElement(Text, null, 42)`,
			validate: func(t *testing.T, node *Node) {
				assert.Equal(t, "42", node.Children[0].Text)
			},
		},
		{
			name: "null child collapses",
			code: `React.createElement(Card, null, null, "kept")`,
			validate: func(t *testing.T, node *Node) {
				assert.Len(t, node.Children, 1)
				assert.Equal(t, "kept", node.Children[0].Text)
			},
		},
		{
			name: "array child flattens",
			code: `React.createElement(Card, null, ["a", "b", "c"])`,
			validate: func(t *testing.T, node *Node) {
				assert.Len(t, node.Children, 3)
				assert.Equal(t, "b", node.Children[1].Text)
			},
		},
		{
			name: "bare identifier degrades to text",
			code: `React.createElement(Card, null, someVariable)`,
			validate: func(t *testing.T, node *Node) {
				assert.Len(t, node.Children, 1)
				assert.Equal(t, NodeText, node.Children[0].Kind)
				assert.Equal(t, "someVariable", node.Children[0].Text)
			},
		},
		{
			name: "template literal child",
			code: "React.createElement(Popup, null, `California: $45,000`)",
			validate: func(t *testing.T, node *Node) {
				assert.Equal(t, "California: $45,000", node.Children[0].Text)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, execErr := Execute(tt.code, nil)
			assert.Nil(t, execErr)
			tt.validate(t, node)
		})
	}
}

// ==========================
// Failure Mode Tests
// ==========================

func TestExecute_SyntaxInvalid(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"not a call tree", `<Card>hello</Card>`},
		{"empty input", ""},
		{"unbalanced parens", `React.createElement(Card, null`},
		{"trailing garbage", `React.createElement(Card, null) extra`},
		{"bad props argument", `React.createElement(Card, 42)`},
		{"unterminated string", `React.createElement(Card, null, "oops`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node, execErr := Execute(tt.code, nil)

			assert.Nil(t, node)
			assert.NotNil(t, execErr)
			assert.Equal(t, SyntaxInvalid, execErr.Kind)
		})
	}
}

func TestExecute_RuntimeFailure(t *testing.T) {
	t.Run("unknown component symbol", func(t *testing.T) {
		node, execErr := Execute(`React.createElement(EvilComponent, null)`, nil)

		assert.Nil(t, node)
		assert.NotNil(t, execErr)
		assert.Equal(t, RuntimeFailure, execErr.Kind)
		assert.Contains(t, execErr.Detail, "EvilComponent")
	})

	t.Run("depth bound exceeded", func(t *testing.T) {
		depth := 10
		code := strings.Repeat(`React.createElement(Card, null, `, depth+2) +
			`"leaf"` + strings.Repeat(`)`, depth+2)

		node, execErr := Execute(code, NewScope().WithMaxDepth(depth))

		assert.Nil(t, node)
		assert.NotNil(t, execErr)
		assert.Equal(t, RuntimeFailure, execErr.Kind)
	})
}

// ==========================
// Scope Tests
// ==========================

func TestScope_Allowed(t *testing.T) {
	scope := NewScope()

	assert.True(t, scope.Allowed("Card"))
	assert.True(t, scope.Allowed("CircleMarker"))
	assert.True(t, scope.Allowed("div"), "lowercase intrinsics always resolve")
	assert.False(t, scope.Allowed("Window"))
	assert.False(t, scope.Allowed(""))

	scope.Allow("CustomWidget")
	assert.True(t, scope.Allowed("CustomWidget"))
}

func TestExecute_ExtendedScope(t *testing.T) {
	scope := NewScope()
	scope.Allow("Sparkline")

	node, execErr := Execute(`React.createElement(Sparkline, {points: [1, 2, 3]})`, scope)

	assert.Nil(t, execErr)
	assert.Equal(t, "Sparkline", node.Component)
}

// ==========================
// Benchmark Tests
// ==========================

func BenchmarkExecute(b *testing.B) {
	code := `React.createElement(Card, {className: "chart-card"},
		React.createElement(CardHeader, null, React.createElement(CardTitle, null, "Sales")),
		React.createElement(CardContent, null,
			React.createElement(BarChart, {data: [{"category": "A", "value": 2400}]})))`
	scope := NewScope()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Execute(code, scope)
	}
}
