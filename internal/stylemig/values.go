package stylemig

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
)

// valueKind classifies a raw style value by its script tokens.
type valueKind int

const (
	valueComputed valueKind = iota // Identifiers, calls, templates, operators...
	valueString                    // A single string literal
	valueNumber                    // A single (optionally negative) number
)

type valueToken struct {
	tt   js.TokenType
	text string
}

// lexValue tokenizes a raw value with the JavaScript lexer, dropping
// whitespace and comments.
func lexValue(raw string) []valueToken {
	var tokens []valueToken
	l := js.NewLexer(parse.NewInputString(raw))
	for {
		tt, text := l.Next()
		switch tt {
		case js.ErrorToken:
			return tokens
		case js.WhitespaceToken, js.LineTerminatorToken, js.CommentToken:
			continue
		}
		tokens = append(tokens, valueToken{tt: tt, text: string(text)})
	}
}

// literalValue reports the kind of raw and its plain CSS text: the unquoted
// string or the number. Computed values return raw unchanged.
func literalValue(raw string) (valueKind, string) {
	tokens := lexValue(raw)
	switch {
	case len(tokens) == 1 && tokens[0].tt == js.StringToken:
		s := tokens[0].text
		return valueString, s[1 : len(s)-1]
	case len(tokens) == 1 && js.IsNumeric(tokens[0].tt):
		return valueNumber, tokens[0].text
	case len(tokens) == 2 && tokens[0].tt == js.SubToken && js.IsNumeric(tokens[1].tt):
		return valueNumber, "-" + tokens[1].text
	}
	return valueComputed, strings.TrimSpace(raw)
}

// isDynamicValue reports whether a raw value is a computed expression:
// variable references, member access, calls, template literals, or
// conditional/logical operators.
func isDynamicValue(raw string) bool {
	for _, tok := range lexValue(raw) {
		switch tok.tt {
		case js.IdentifierToken, js.TemplateToken, js.TemplateStartToken,
			js.QuestionToken, js.OrToken, js.AndToken, js.DotToken, js.OpenParenToken:
			return true
		}
	}
	return false
}

// isDynamicLiteral reports whether any part of a style literal is computed:
// a spread or template anywhere in it, or a computed property value.
func isDynamicLiteral(text string, props PropertyMap) bool {
	for _, tok := range lexValue(text) {
		switch tok.tt {
		case js.EllipsisToken, js.TemplateToken, js.TemplateStartToken:
			return true
		}
	}
	for _, key := range props.Keys() {
		value, _ := props.Get(key)
		if isDynamicValue(value) {
			return true
		}
	}
	return false
}
