package stylemig

import (
	"bytes"
	"errors"
	"fmt"
	"iter"
	"regexp"
)

// Locator finds inline style literals in a unit of source text.
type Locator interface {
	Locate(src []byte) iter.Seq[StyleLiteral]
}

// Locator modes accepted by NewLocator.
const (
	LocatorPattern  = "pattern"
	LocatorBalanced = "balanced"
	LocatorSyntax   = "syntax"
)

// ErrUnknownLocator is returned by NewLocator for an unrecognized mode.
var ErrUnknownLocator = errors.New("unknown locator mode")

// NewLocator returns the locator for mode. An empty mode selects the pattern locator.
func NewLocator(mode string) (Locator, error) {
	switch mode {
	case "", LocatorPattern:
		return PatternLocator{}, nil
	case LocatorBalanced:
		return BalancedLocator{}, nil
	case LocatorSyntax:
		return NewSyntaxLocator(), nil
	default:
		return nil, fmt.Errorf("%w: %q (want pattern|balanced|syntax)", ErrUnknownLocator, mode)
	}
}

// ParserFor returns the property parser that pairs with a locator mode.
// The pattern locator keeps the heuristic comma rule; the other two keep
// nested values whole and need the depth-counting splitter.
func ParserFor(mode string) func(string) PropertyMap {
	if mode == LocatorBalanced || mode == LocatorSyntax {
		return ParsePropertiesBalanced
	}
	return ParseProperties
}

// styleAttrPattern matches style={{ ... }} with a single non-nested closing rule.
// A nested object value ending in "}}}" truncates at its first inner '}', and a
// nested object followed by more properties does not match at all.
var styleAttrPattern = regexp.MustCompile(`style=\{(\{[^}]+\})\}`)

// PatternLocator is the textual regex locator.
type PatternLocator struct{}

// Locate yields every style={{...}} match in source order.
func (PatternLocator) Locate(src []byte) iter.Seq[StyleLiteral] {
	return func(yield func(StyleLiteral) bool) {
		var lines lineIndex
		for _, m := range styleAttrPattern.FindAllSubmatchIndex(src, -1) {
			line, col := lines.position(src, m[0])
			lit := StyleLiteral{
				Text:   string(src[m[2]:m[3]]),
				Start:  m[0],
				End:    m[1],
				Line:   line,
				Column: col,
			}
			if !yield(lit) {
				return
			}
		}
	}
}

// BalancedLocator scans for style={{ and counts brace depth to the matching
// close, skipping quoted strings and template literals. Nested object values
// are kept whole.
type BalancedLocator struct{}

var styleMarker = []byte("style={")

// Locate yields every balanced style={{...}} attribute in source order.
func (BalancedLocator) Locate(src []byte) iter.Seq[StyleLiteral] {
	return func(yield func(StyleLiteral) bool) {
		var lines lineIndex
		pos := 0
		for pos < len(src) {
			rel := bytes.Index(src[pos:], styleMarker)
			if rel < 0 {
				return
			}
			idx := pos + rel
			objStart := idx + len(styleMarker)
			if objStart >= len(src) || src[objStart] != '{' {
				pos = objStart
				continue
			}
			objEnd := matchBrace(src, objStart)
			if objEnd < 0 || objEnd+1 >= len(src) || src[objEnd+1] != '}' {
				pos = objStart
				continue
			}
			line, col := lines.position(src, idx)
			lit := StyleLiteral{
				Text:   string(src[objStart : objEnd+1]),
				Start:  idx,
				End:    objEnd + 2,
				Line:   line,
				Column: col,
			}
			if !yield(lit) {
				return
			}
			pos = objEnd + 2
		}
	}
}

// matchBrace returns the index of the '}' closing the '{' at open, or -1.
func matchBrace(src []byte, open int) int {
	depth := 0
	for i := open; i < len(src); i++ {
		switch c := src[i]; c {
		case '\'', '"', '`':
			end := skipQuoted(src, i)
			if end < 0 {
				return -1
			}
			i = end
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// skipQuoted returns the index of the quote closing the one at start, or -1.
func skipQuoted(src []byte, start int) int {
	quote := src[start]
	for i := start + 1; i < len(src); i++ {
		switch src[i] {
		case '\\':
			i++
		case quote:
			return i
		case '\n':
			if quote != '`' {
				// Unterminated string literal; treat the quote as plain text
				return start
			}
		}
	}
	return -1
}

// lineIndex converts byte offsets to 1-based line/column, resuming from the
// last computed offset since locators yield in increasing order.
type lineIndex struct {
	offset int
	line   int
	col    int
}

func (li *lineIndex) position(src []byte, offset int) (int, int) {
	if li.line == 0 || offset < li.offset {
		li.offset, li.line, li.col = 0, 1, 1
	}
	for i := li.offset; i < offset && i < len(src); i++ {
		if src[i] == '\n' {
			li.line++
			li.col = 1
		} else {
			li.col++
		}
	}
	li.offset = offset
	return li.line, li.col
}
