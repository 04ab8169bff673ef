package stylemig

import (
	"iter"
	"runtime"
	"sync"

	ts "github.com/tree-sitter/go-tree-sitter"
	ts_javascript "github.com/tree-sitter/tree-sitter-javascript/bindings/go"
	ts_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// SyntaxLocator finds style literals by walking a tree-sitter syntax tree.
// Every `style={...}` attribute whose expression is an object literal is
// reported whole, however deeply its values nest.
//
// The zero value parses with the TSX grammar. Idle parsers are kept in a
// bounded pool, so a single SyntaxLocator is safe for concurrent use; Close
// frees them.
type SyntaxLocator struct {
	language *ts.Language

	once    sync.Once
	parsers chan *ts.Parser
}

// NewSyntaxLocator returns a locator using the TSX grammar, which also
// accepts plain JSX.
func NewSyntaxLocator() *SyntaxLocator {
	return newSyntaxLocator(ts.NewLanguage(ts_typescript.LanguageTSX()))
}

// NewJSXSyntaxLocator returns a locator using the JavaScript grammar.
func NewJSXSyntaxLocator() *SyntaxLocator {
	return newSyntaxLocator(ts.NewLanguage(ts_javascript.Language()))
}

func newSyntaxLocator(lang *ts.Language) *SyntaxLocator {
	return &SyntaxLocator{language: lang}
}

func (l *SyntaxLocator) init() {
	l.once.Do(func() {
		if l.language == nil {
			l.language = ts.NewLanguage(ts_typescript.LanguageTSX())
		}
		l.parsers = make(chan *ts.Parser, runtime.GOMAXPROCS(0))
	})
}

func (l *SyntaxLocator) acquire() *ts.Parser {
	l.init()
	select {
	case p := <-l.parsers:
		return p
	default:
	}
	p := ts.NewParser()
	if err := p.SetLanguage(l.language); err != nil {
		p.Close()
		return nil
	}
	return p
}

// release returns p to the pool, closing it when the pool is full.
func (l *SyntaxLocator) release(p *ts.Parser) {
	select {
	case l.parsers <- p:
	default:
		p.Close()
	}
}

// Close frees the pooled parsers. Parsers in use by a running Locate are
// closed when they are released to a full pool.
func (l *SyntaxLocator) Close() error {
	l.init()
	for {
		select {
		case p := <-l.parsers:
			p.Close()
		default:
			return nil
		}
	}
}

// Locate parses src and yields style object literals in document order.
// Sources that cannot be parsed yield nothing.
func (l *SyntaxLocator) Locate(src []byte) iter.Seq[StyleLiteral] {
	return func(yield func(StyleLiteral) bool) {
		parser := l.acquire()
		if parser == nil {
			return
		}
		tree := parser.Parse(src, nil)
		l.release(parser)
		if tree == nil {
			return
		}
		defer tree.Close()

		var lines lineIndex
		walkStyleAttributes(tree.RootNode(), src, func(attr, obj *ts.Node) bool {
			start := int(attr.StartByte())
			line, col := lines.position(src, start)
			return yield(StyleLiteral{
				Text:   obj.Utf8Text(src),
				Start:  start,
				End:    int(attr.EndByte()),
				Line:   line,
				Column: col,
			})
		})
	}
}

// walkStyleAttributes visits jsx_attribute nodes named "style" whose value is
// {object}. It stops early when visit returns false.
func walkStyleAttributes(node *ts.Node, src []byte, visit func(attr, obj *ts.Node) bool) bool {
	if node.Kind() == "jsx_attribute" {
		if obj := styleObject(node, src); obj != nil {
			return visit(node, obj)
		}
	}
	for i := uint(0); i < uint(node.ChildCount()); i++ {
		if !walkStyleAttributes(node.Child(i), src, visit) {
			return false
		}
	}
	return true
}

// styleObject returns the object node of style={{...}}, or nil.
func styleObject(attr *ts.Node, src []byte) *ts.Node {
	var named bool
	var expr *ts.Node
	for i := uint(0); i < uint(attr.ChildCount()); i++ {
		child := attr.Child(i)
		switch child.Kind() {
		case "property_identifier":
			named = child.Utf8Text(src) == "style"
		case "jsx_expression":
			expr = child
		}
	}
	if !named || expr == nil {
		return nil
	}
	for i := uint(0); i < uint(expr.ChildCount()); i++ {
		child := expr.Child(i)
		if child.Kind() == "object" {
			return child
		}
	}
	return nil
}
