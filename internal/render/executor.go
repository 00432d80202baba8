// internal/render/executor.go
//
// Call-tree component code is evaluated by a restricted interpreter, not a
// script engine. The parser accepts exactly one nested createElement
// expression; symbol resolution is limited to an explicit whitelist plus
// lowercase intrinsic tags. Anything else aborts the evaluation.
package render

import (
	"fmt"
	"strconv"
	"strings"
)

// ExecErrorKind discriminates parse failures from evaluation failures.
type ExecErrorKind string

const (
	SyntaxInvalid  ExecErrorKind = "SYNTAX_INVALID"
	RuntimeFailure ExecErrorKind = "RUNTIME_FAILURE"
)

// ExecError reports why an evaluation produced no tree.
type ExecError struct {
	Kind   ExecErrorKind
	Detail string
	Pos    int
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("%s at offset %d: %s", e.Kind, e.Pos, e.Detail)
}

// defaultSymbols is the component whitelist. Lowercase identifiers are
// intrinsic tags and always resolve.
var defaultSymbols = []string{
	"Card", "CardHeader", "CardTitle", "CardContent",
	"Text", "Badge",
	"LineChart", "BarChart",
	"MapPin", "MapContainer", "TileLayer", "CircleMarker", "Popup",
	"TrendingUp", "BarChart3",
}

// Scope holds the symbols an evaluation may resolve and its depth bound.
type Scope struct {
	symbols  map[string]struct{}
	maxDepth int
}

// NewScope returns a scope with the default whitelist.
func NewScope() *Scope {
	s := &Scope{
		symbols:  make(map[string]struct{}, len(defaultSymbols)),
		maxDepth: 32,
	}
	for _, name := range defaultSymbols {
		s.symbols[name] = struct{}{}
	}
	return s
}

// WithMaxDepth overrides the recursion bound and returns the scope.
func (s *Scope) WithMaxDepth(depth int) *Scope {
	if depth > 0 {
		s.maxDepth = depth
	}
	return s
}

// Allow adds extra symbols to the whitelist.
func (s *Scope) Allow(names ...string) {
	for _, name := range names {
		s.symbols[name] = struct{}{}
	}
}

// Allowed reports whether name resolves in this scope.
func (s *Scope) Allowed(name string) bool {
	if name == "" {
		return false
	}
	if name[0] >= 'a' && name[0] <= 'z' {
		return true // intrinsic tag
	}
	_, ok := s.symbols[name]
	return ok
}

// Execute parses and evaluates call-tree component code. The input must be
// a single balanced createElement expression; a trailing semicolon is
// tolerated. On failure the returned tree is nil.
func Execute(code string, scope *Scope) (*Node, *ExecError) {
	if scope == nil {
		scope = NewScope()
	}

	trimmed := strings.TrimSpace(code)
	trimmed = strings.TrimSuffix(trimmed, ";")
	trimmed = strings.TrimSpace(trimmed)

	if !strings.HasPrefix(trimmed, callTreeMarker) {
		return nil, &ExecError{
			Kind:   SyntaxInvalid,
			Detail: "input does not begin with a createElement call",
		}
	}

	p := &parser{src: trimmed, scope: scope}
	node, err := p.parseCall(0)
	if err != nil {
		return nil, err
	}

	p.skipWS()
	if p.pos != len(p.src) {
		return nil, p.syntaxErr("unexpected trailing input")
	}
	return node, nil
}

type parser struct {
	src   string
	pos   int
	scope *Scope
}

func (p *parser) syntaxErr(detail string) *ExecError {
	return &ExecError{Kind: SyntaxInvalid, Detail: detail, Pos: p.pos}
}

func (p *parser) runtimeErr(detail string) *ExecError {
	return &ExecError{Kind: RuntimeFailure, Detail: detail, Pos: p.pos}
}

func (p *parser) skipWS() {
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case ' ', '\t', '\n', '\r':
			p.pos++
		default:
			return
		}
	}
}

func (p *parser) peek() byte {
	if p.pos >= len(p.src) {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) expect(c byte) *ExecError {
	p.skipWS()
	if p.peek() != c {
		return p.syntaxErr(fmt.Sprintf("expected %q", string(c)))
	}
	p.pos++
	return nil
}

func (p *parser) hasPrefix(s string) bool {
	return strings.HasPrefix(p.src[p.pos:], s)
}

// parseCall parses React.createElement(component, props, ...children).
func (p *parser) parseCall(depth int) (*Node, *ExecError) {
	if depth > p.scope.maxDepth {
		return nil, p.runtimeErr("call tree exceeds maximum depth")
	}

	p.skipWS()
	if !p.hasPrefix(callTreeMarker) {
		return nil, p.syntaxErr("expected createElement call")
	}
	p.pos += len(callTreeMarker)

	component, err := p.parseComponent()
	if err != nil {
		return nil, err
	}

	node := &Node{Kind: NodeElement, Component: component}

	p.skipWS()
	if p.peek() == ',' {
		p.pos++
		props, err := p.parseProps(depth)
		if err != nil {
			return nil, err
		}
		node.Props = props
	}

	for {
		p.skipWS()
		if p.peek() != ',' {
			break
		}
		p.pos++
		child, err := p.parseChild(depth + 1)
		if err != nil {
			return nil, err
		}
		if child != nil {
			node.Children = append(node.Children, child...)
		}
	}

	if err := p.expect(')'); err != nil {
		return nil, err
	}
	return node, nil
}

// parseComponent reads the first createElement argument: an identifier
// resolved against the scope, or a quoted intrinsic tag.
func (p *parser) parseComponent() (string, *ExecError) {
	p.skipWS()
	c := p.peek()

	if c == '"' || c == '\'' {
		tag, err := p.parseString()
		if err != nil {
			return "", err
		}
		if tag == "" {
			return "", p.runtimeErr("empty intrinsic tag")
		}
		return tag, nil
	}

	name := p.parseIdent()
	if name == "" {
		return "", p.syntaxErr("expected component name")
	}
	if !p.scope.Allowed(name) {
		return "", p.runtimeErr("unknown component symbol: " + name)
	}
	return name, nil
}

// parseProps reads the second argument: null or an object literal.
func (p *parser) parseProps(depth int) (map[string]interface{}, *ExecError) {
	p.skipWS()
	if p.hasPrefix("null") {
		p.pos += len("null")
		return nil, nil
	}
	if p.peek() != '{' {
		return nil, p.syntaxErr("expected props object or null")
	}
	v, err := p.parseObject(depth)
	if err != nil {
		return nil, err
	}
	return v, nil
}

// parseChild reads one child argument. String and number literals become
// text leaves, nested calls recurse, null children collapse to nothing,
// arrays flatten, and bare identifiers degrade to their raw text.
func (p *parser) parseChild(depth int) ([]*Node, *ExecError) {
	p.skipWS()
	c := p.peek()

	switch {
	case p.hasPrefix(callTreeMarker):
		node, err := p.parseCall(depth)
		if err != nil {
			return nil, err
		}
		return []*Node{node}, nil

	case c == '"' || c == '\'', c == '`':
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		return []*Node{TextNode(s)}, nil

	case c == '-' || (c >= '0' && c <= '9'):
		f, err := p.parseNumber()
		if err != nil {
			return nil, err
		}
		return []*Node{TextNode(strconv.FormatFloat(f, 'f', -1, 64))}, nil

	case p.hasPrefix("null"):
		p.pos += len("null")
		return nil, nil

	case c == '[':
		p.pos++
		var out []*Node
		for {
			p.skipWS()
			if p.peek() == ']' {
				p.pos++
				return out, nil
			}
			children, err := p.parseChild(depth)
			if err != nil {
				return nil, err
			}
			out = append(out, children...)
			p.skipWS()
			if p.peek() == ',' {
				p.pos++
			}
		}

	default:
		name := p.parseIdent()
		if name == "" {
			return nil, p.syntaxErr("expected child expression")
		}
		return []*Node{TextNode(name)}, nil
	}
}

// parseValue reads a prop value: a JSON-ish literal or a nested call.
func (p *parser) parseValue(depth int) (interface{}, *ExecError) {
	p.skipWS()
	c := p.peek()

	switch {
	case p.hasPrefix(callTreeMarker):
		return p.parseCall(depth + 1)
	case c == '"' || c == '\'' || c == '`':
		return p.parseString()
	case c == '{':
		return p.parseObject(depth)
	case c == '[':
		return p.parseArray(depth)
	case c == '-' || (c >= '0' && c <= '9'):
		return p.parseNumber()
	case p.hasPrefix("true"):
		p.pos += len("true")
		return true, nil
	case p.hasPrefix("false"):
		p.pos += len("false")
		return false, nil
	case p.hasPrefix("null"):
		p.pos += len("null")
		return nil, nil
	default:
		// Unknown value shapes degrade to their raw identifier text.
		name := p.parseIdent()
		if name == "" {
			return nil, p.syntaxErr("expected value")
		}
		return name, nil
	}
}

func (p *parser) parseObject(depth int) (map[string]interface{}, *ExecError) {
	if err := p.expect('{'); err != nil {
		return nil, err
	}
	obj := make(map[string]interface{})
	for {
		p.skipWS()
		if p.peek() == '}' {
			p.pos++
			return obj, nil
		}

		var key string
		if c := p.peek(); c == '"' || c == '\'' {
			s, err := p.parseString()
			if err != nil {
				return nil, err
			}
			key = s
		} else {
			key = p.parseIdent()
		}
		if key == "" {
			return nil, p.syntaxErr("expected object key")
		}

		if err := p.expect(':'); err != nil {
			return nil, err
		}
		val, err := p.parseValue(depth)
		if err != nil {
			return nil, err
		}
		obj[key] = val

		p.skipWS()
		if p.peek() == ',' {
			p.pos++
		}
	}
}

func (p *parser) parseArray(depth int) ([]interface{}, *ExecError) {
	if err := p.expect('['); err != nil {
		return nil, err
	}
	var arr []interface{}
	for {
		p.skipWS()
		if p.peek() == ']' {
			p.pos++
			return arr, nil
		}
		val, err := p.parseValue(depth)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)

		p.skipWS()
		if p.peek() == ',' {
			p.pos++
		}
	}
}

func (p *parser) parseString() (string, *ExecError) {
	quote := p.peek()
	if quote != '"' && quote != '\'' && quote != '`' {
		return "", p.syntaxErr("expected string literal")
	}
	p.pos++

	var b strings.Builder
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '\\':
			if p.pos+1 >= len(p.src) {
				return "", p.syntaxErr("unterminated escape")
			}
			next := p.src[p.pos+1]
			switch next {
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			default:
				b.WriteByte(next)
			}
			p.pos += 2
		case quote:
			p.pos++
			return b.String(), nil
		default:
			b.WriteByte(c)
			p.pos++
		}
	}
	return "", p.syntaxErr("unterminated string literal")
}

func (p *parser) parseNumber() (float64, *ExecError) {
	start := p.pos
	if p.peek() == '-' {
		p.pos++
	}
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= '0' && c <= '9') || c == '.' || c == 'e' || c == 'E' || c == '+' {
			p.pos++
			continue
		}
		break
	}
	f, err := strconv.ParseFloat(p.src[start:p.pos], 64)
	if err != nil {
		p.pos = start
		return 0, p.syntaxErr("invalid number literal")
	}
	return f, nil
}

func (p *parser) parseIdent() string {
	start := p.pos
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		if (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') || c == '_' || c == '$' {
			p.pos++
			continue
		}
		break
	}
	return p.src[start:p.pos]
}
