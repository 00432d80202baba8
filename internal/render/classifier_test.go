// internal/render/classifier_test.go
package render

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Core Functionality Tests
// ==========================

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		expected Format
	}{
		{
			name:     "call tree",
			code:     `React.createElement(Card, null, "hi")`,
			expected: FormatCallTree,
		},
		{
			name:     "call tree with leading whitespace",
			code:     "\n\t  React.createElement(\"div\", null)",
			expected: FormatCallTree,
		},
		{
			name:     "embedded json script block",
			code:     `<div><script type="application/json" id="layout-metadata">{"title":"x"}</script></div>`,
			expected: FormatEmbeddedJSON,
		},
		{
			name:     "markup root",
			code:     `<Card className="chart-card"><CardTitle>Sales</CardTitle></Card>`,
			expected: FormatMarkup,
		},
		{
			name:     "self closing markup root",
			code:     `<LineChart/>`,
			expected: FormatMarkup,
		},
		{
			name:     "plain text",
			code:     "hello world",
			expected: FormatUnknown,
		},
		{
			name:     "empty string",
			code:     "",
			expected: FormatUnknown,
		},
		{
			name:     "json object only",
			code:     `{"title": "Dashboard"}`,
			expected: FormatUnknown,
		},
		{
			name:     "angle bracket but not a tag",
			code:     "< 5 is less than 6",
			expected: FormatUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Classify(tt.code))
		})
	}
}

// ==========================
// Rule Precedence Tests
// ==========================

func TestClassify_Precedence(t *testing.T) {
	t.Run("embedded json wins over markup", func(t *testing.T) {
		// Layout blobs are markup wrapping a script block; the block is
		// the more specific marker.
		code := `<Card><script type="application/json">{"components":[]}</script></Card>`
		assert.Equal(t, FormatEmbeddedJSON, Classify(code))
	})

	t.Run("call tree wins over embedded json", func(t *testing.T) {
		// A call tree may carry a script block as a string child; the
		// call marker still decides the format so the code executes.
		code := `React.createElement("div", null, '<script type="application/json">{}</script>')`
		assert.Equal(t, FormatCallTree, Classify(code))
	})

	t.Run("call tree wins over markup", func(t *testing.T) {
		code := `<div>React.createElement(Card, null)</div>`
		assert.Equal(t, FormatCallTree, Classify(code))
	})
}

func TestClassify_NeverFails(t *testing.T) {
	// Garbage inputs of every shape classify without panicking.
	inputs := []string{
		strings.Repeat("<", 1000),
		"\x00\x01\x02",
		strings.Repeat("React.createElement(", 50),
		"🚀📊",
	}
	for _, code := range inputs {
		assert.NotPanics(t, func() { Classify(code) })
	}
}
