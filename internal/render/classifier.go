// internal/render/classifier.go
package render

import (
	"regexp"
	"strings"
)

// Format identifies the encoding of a componentCode blob.
type Format string

const (
	FormatCallTree     Format = "call_tree"
	FormatEmbeddedJSON Format = "embedded_json"
	FormatMarkup       Format = "markup"
	FormatUnknown      Format = "unknown"
)

const (
	callTreeMarker   = "React.createElement("
	embeddedJSONOpen = `<script type="application/json"`
)

var markupRootPattern = regexp.MustCompile(`^<[A-Za-z][A-Za-z0-9]*[\s/>]`)

// classifierRule pairs a format with its recognizer. Rules run in order;
// the first match wins, so more specific markers come first.
type classifierRule struct {
	format  Format
	matches func(code string) bool
}

var classifierRules = []classifierRule{
	{
		format: FormatCallTree,
		matches: func(code string) bool {
			return strings.Contains(code, callTreeMarker)
		},
	},
	{
		format: FormatEmbeddedJSON,
		matches: func(code string) bool {
			return strings.Contains(code, embeddedJSONOpen)
		},
	},
	{
		format: FormatMarkup,
		matches: func(code string) bool {
			return markupRootPattern.MatchString(strings.TrimSpace(code))
		},
	},
}

// Classify inspects a componentCode blob and reports its format.
// It never fails; code matching no rule is FormatUnknown.
func Classify(code string) Format {
	for _, rule := range classifierRules {
		if rule.matches(code) {
			return rule.format
		}
	}
	return FormatUnknown
}
