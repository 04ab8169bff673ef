package stylemig

import (
	"bytes"
	"errors"
	"slices"
	"strings"
	"unicode"
)

// ErrRewriteNotImplemented is returned by rewriters that can only describe
// edits. Source files are never modified.
var ErrRewriteNotImplemented = errors.New("rewriting source files is not implemented")

// FileRewriter turns a file report into source edits.
type FileRewriter interface {
	// Plan describes the edits for report against src without applying them.
	Plan(report *FileReport, src []byte) RewritePlan
	// Apply performs a plan on disk.
	Apply(plan RewritePlan) error
}

// Edit replaces src[Start:End] with Replacement.
type Edit struct {
	Start       int
	End         int
	Line        int
	Original    string
	Replacement string
	Merged      bool // Classes were merged into an existing className
}

// SkippedEdit is a literal the plan leaves untouched.
type SkippedEdit struct {
	Line   int
	Reason string
}

// RewritePlan is the ordered list of edits for one file.
type RewritePlan struct {
	Path    string
	Edits   []Edit
	Skipped []SkippedEdit
}

// Skip reasons.
const (
	SkipDynamic             = "dynamic expression"
	SkipNoClasses           = "no utility classes"
	SkipClassNameExpression = "className expression"
	SkipUnknownElement      = "unrecognized element"
)

// DryRunRewriter plans edits but refuses to apply them.
type DryRunRewriter struct{}

var _ FileRewriter = DryRunRewriter{}

// Plan builds edits in source order. A literal with utility classes becomes
// className="..." or is merged into the element's existing string className;
// its custom residual is kept as a smaller style={{...}}. Literals that are
// dynamic, that sit on an element with a className expression, or whose
// element cannot be read are skipped.
func (DryRunRewriter) Plan(report *FileReport, src []byte) RewritePlan {
	plan := RewritePlan{Path: report.Path}
	for _, m := range report.Matches {
		lit := m.Literal
		skip := func(reason string) {
			plan.Skipped = append(plan.Skipped, SkippedEdit{Line: lit.Line, Reason: reason})
		}
		switch {
		case m.Dynamic:
			skip(SkipDynamic)
			continue
		case len(m.Classes) == 0:
			skip(SkipNoClasses)
			continue
		}
		if lit.Start < 0 || lit.End > len(src) || lit.Start >= lit.End {
			continue
		}

		before, ok := attributesBefore(src, lit.Start)
		if !ok {
			skip(SkipUnknownElement)
			continue
		}
		after, ok := attributesAfter(src, lit.End)
		if !ok {
			skip(SkipUnknownElement)
			continue
		}

		residual := ""
		if m.Custom.Len() > 0 {
			residual = "style={" + m.Custom.String() + "}"
		}

		if attr, found := findClassName(before); found {
			if !attr.quoted {
				skip(SkipClassNameExpression)
				continue
			}
			plan.Edits = append(plan.Edits, mergeBefore(src, lit, attr, m.Classes, residual))
			continue
		}
		if attr, found := findClassName(after); found {
			if !attr.quoted {
				skip(SkipClassNameExpression)
				continue
			}
			plan.Edits = append(plan.Edits, mergeAfter(src, lit, attr, m.Classes, residual))
			continue
		}

		replacement := `className="` + strings.Join(m.Classes, " ") + `"`
		if residual != "" {
			replacement += " " + residual
		}
		plan.Edits = append(plan.Edits, Edit{
			Start:       lit.Start,
			End:         lit.End,
			Line:        lit.Line,
			Original:    string(src[lit.Start:lit.End]),
			Replacement: replacement,
		})
	}
	return plan
}

// jsxAttribute is one attribute of an opening tag. Spread attributes have no
// name; boolean attributes have no value.
type jsxAttribute struct {
	name string

	// Whole attribute
	start, end int

	// Value including its quotes or braces, -1 when absent
	valStart, valEnd int

	// Value is a string literal
	quoted bool
}

func findClassName(attrs []jsxAttribute) (jsxAttribute, bool) {
	for _, a := range attrs {
		if a.name == "className" {
			return a, true
		}
	}
	return jsxAttribute{}, false
}

func isNameByte(c byte) bool {
	return c == '_' || c == '-' || c == ':' || c == '.' || c == '$' ||
		c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}

func isSpaceByte(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// attributesBefore reads the attributes between the opening "<tag" and pos,
// walking backwards. It fails when the text before pos is not a run of
// attributes ending at a tag name.
func attributesBefore(src []byte, pos int) ([]jsxAttribute, bool) {
	var attrs []jsxAttribute
	i := pos - 1
	for {
		for i >= 0 && isSpaceByte(src[i]) {
			i--
		}
		if i < 0 {
			return nil, false
		}

		attr := jsxAttribute{end: i + 1, valStart: -1, valEnd: -1}
		switch c := src[i]; {
		case c == '"' || c == '\'':
			open := bytes.LastIndexByte(src[:i], c)
			if open < 0 {
				return nil, false
			}
			attr.valStart, attr.valEnd, attr.quoted = open, i+1, true
			i = open - 1
		case c == '}':
			open := matchBraceBackward(src, i)
			if open < 0 {
				return nil, false
			}
			attr.valStart, attr.valEnd = open, i+1
			i = open - 1
		case isNameByte(c):
			nameStart := i
			for nameStart > 0 && isNameByte(src[nameStart-1]) {
				nameStart--
			}
			if nameStart > 0 && src[nameStart-1] == '<' {
				// Tag name: the start of the element
				slices.Reverse(attrs)
				return attrs, true
			}
			attr.name = string(src[nameStart : i+1])
			attr.start = nameStart
			attrs = append(attrs, attr)
			i = nameStart - 1
			continue
		default:
			return nil, false
		}

		// A value: "name=" before it, unless it is a {...spread}
		j := i
		for j >= 0 && isSpaceByte(src[j]) {
			j--
		}
		if j < 0 {
			return nil, false
		}
		if src[j] != '=' {
			if src[attr.valStart] != '{' {
				return nil, false
			}
			attr.start = attr.valStart
			attrs = append(attrs, attr)
			continue
		}
		j--
		for j >= 0 && isSpaceByte(src[j]) {
			j--
		}
		nameEnd := j + 1
		for j >= 0 && isNameByte(src[j]) {
			j--
		}
		if j+1 == nameEnd {
			return nil, false
		}
		attr.name = string(src[j+1 : nameEnd])
		attr.start = j + 1
		attrs = append(attrs, attr)
		i = j
	}
}

// matchBraceBackward returns the index of the '{' opening the '}' at end,
// or -1. Quoted text is skipped by pairing quotes right to left.
func matchBraceBackward(src []byte, end int) int {
	depth := 0
	for i := end; i >= 0; i-- {
		switch c := src[i]; c {
		case '\'', '"', '`':
			open := bytes.LastIndexByte(src[:i], c)
			if open < 0 {
				return -1
			}
			i = open
		case '}':
			depth++
		case '{':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// attributesAfter reads the attributes between pos and the end of the
// opening tag.
func attributesAfter(src []byte, pos int) ([]jsxAttribute, bool) {
	var attrs []jsxAttribute
	i := pos
	for {
		for i < len(src) && isSpaceByte(src[i]) {
			i++
		}
		if i >= len(src) {
			return nil, false
		}

		attr := jsxAttribute{start: i, valStart: -1, valEnd: -1}
		switch c := src[i]; {
		case c == '>' || c == '/' && i+1 < len(src) && src[i+1] == '>':
			return attrs, true
		case c == '{':
			end := matchBrace(src, i)
			if end < 0 {
				return nil, false
			}
			attr.valStart, attr.valEnd, attr.end = i, end+1, end+1
			attrs = append(attrs, attr)
			i = end + 1
			continue
		case isNameByte(c):
		default:
			return nil, false
		}

		for i < len(src) && isNameByte(src[i]) {
			i++
		}
		attr.name = string(src[attr.start:i])
		attr.end = i

		j := i
		for j < len(src) && isSpaceByte(src[j]) {
			j++
		}
		if j >= len(src) || src[j] != '=' {
			attrs = append(attrs, attr)
			continue
		}
		j++
		for j < len(src) && isSpaceByte(src[j]) {
			j++
		}
		if j >= len(src) {
			return nil, false
		}

		var end int
		switch src[j] {
		case '"', '\'':
			end = bytes.IndexByte(src[j+1:], src[j])
			if end < 0 {
				return nil, false
			}
			end += j + 1
		case '{':
			end = matchBrace(src, j)
			if end < 0 {
				return nil, false
			}
		default:
			return nil, false
		}
		attr.valStart, attr.valEnd, attr.end = j, end+1, end+1
		attr.quoted = src[j] != '{'
		attrs = append(attrs, attr)
		i = end + 1
	}
}

// classValue returns the classes of a string className attribute.
func classValue(src []byte, attr jsxAttribute) []string {
	return strings.Fields(string(src[attr.valStart+1 : attr.valEnd-1]))
}

// mergeBefore folds classes into a className that precedes the style
// attribute. Attributes in between are kept.
func mergeBefore(src []byte, lit StyleLiteral, attr jsxAttribute, classes []string, residual string) Edit {
	merged := mergeClasses(classValue(src, attr), classes)
	between := string(src[attr.end:lit.Start])
	replacement := `className="` + strings.Join(merged, " ") + `"`
	if residual != "" {
		replacement += between + residual
	} else {
		replacement += strings.TrimRightFunc(between, unicode.IsSpace)
	}
	return Edit{
		Start:       attr.start,
		End:         lit.End,
		Line:        lit.Line,
		Original:    string(src[attr.start:lit.End]),
		Replacement: replacement,
		Merged:      true,
	}
}

// mergeAfter folds classes into a className that follows the style
// attribute.
func mergeAfter(src []byte, lit StyleLiteral, attr jsxAttribute, classes []string, residual string) Edit {
	merged := mergeClasses(classValue(src, attr), classes)
	between := string(src[lit.End:attr.start])
	replacement := `className="` + strings.Join(merged, " ") + `"`
	if residual != "" {
		replacement = residual + between + replacement
	} else {
		replacement = strings.TrimLeftFunc(between, unicode.IsSpace) + replacement
	}
	return Edit{
		Start:       lit.Start,
		End:         attr.end,
		Line:        lit.Line,
		Original:    string(src[lit.Start:attr.end]),
		Replacement: replacement,
		Merged:      true,
	}
}

// mergeClasses appends extra to existing without duplicates.
func mergeClasses(existing, extra []string) []string {
	seen := make(map[string]bool, len(existing)+len(extra))
	out := make([]string, 0, len(existing)+len(extra))
	for _, c := range append(existing, extra...) {
		if c == "" || seen[c] {
			continue
		}
		seen[c] = true
		out = append(out, c)
	}
	return out
}

// Apply never writes: rewriting is not implemented.
func (DryRunRewriter) Apply(RewritePlan) error {
	return ErrRewriteNotImplemented
}

// Preview returns src with the plan applied in memory.
func (p RewritePlan) Preview(src []byte) []byte {
	var b strings.Builder
	last := 0
	for _, e := range p.Edits {
		if e.Start < last {
			continue
		}
		b.Write(src[last:e.Start])
		b.WriteString(e.Replacement)
		last = e.End
	}
	b.Write(src[last:])
	return []byte(b.String())
}
