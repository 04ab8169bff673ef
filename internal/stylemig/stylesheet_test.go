package stylemig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuggestRules(t *testing.T) {
	src := `<div style={{ color: 'red', marginBottom: 16 }}>
  <p style={{ backgroundColor: "#fff", zIndex: 10, borderWidth: 0, width: size }} />
  <p style={{ display: 'flex' }} />
</div>`
	report := newTestAnalyzer(t, AnalyzerOptions{}).AnalyzeSource("components/UserCard.tsx", []byte(src))

	rules := SuggestRules(report)
	require.Len(t, rules, 2)

	assert.Equal(t, ".user-card-1", rules[0].Selector)
	assert.Equal(t, []Declaration{{Property: "color", Value: "red"}}, rules[0].Declarations)

	assert.Equal(t, ".user-card-2", rules[1].Selector)
	assert.Equal(t, []Declaration{
		{Property: "background-color", Value: "#fff"},
		{Property: "z-index", Value: "10"},
		{Property: "border-width", Value: "0"},
		{Property: "width", Value: "size", Computed: true},
	}, rules[1].Declarations)
}

func TestStylesheetRule_String(t *testing.T) {
	rule := StylesheetRule{
		Selector: ".card-1",
		Declarations: []Declaration{
			{Property: "color", Value: "red"},
			{Property: "height", Value: "48px"},
			{Property: "width", Value: "`${w}px`", Computed: true},
		},
	}

	want := ".card-1 {\n" +
		"  color: red;\n" +
		"  height: 48px;\n" +
		"  // width: `${w}px` (computed, translate manually)\n" +
		"}\n"
	assert.Equal(t, want, rule.String())
}

func TestDeclaration(t *testing.T) {
	tests := []struct {
		property string
		raw      string
		want     Declaration
	}{
		{property: "height", raw: "48", want: Declaration{Property: "height", Value: "48px"}},
		{property: "top", raw: "-4", want: Declaration{Property: "top", Value: "-4px"}},
		{property: "opacity", raw: "0.5", want: Declaration{Property: "opacity", Value: "0.5"}},
		{property: "lineHeight", raw: "1.4", want: Declaration{Property: "line-height", Value: "1.4"}},
		{property: "flex", raw: "1", want: Declaration{Property: "flex", Value: "1"}},
		{property: "border", raw: "'1px solid #ddd'", want: Declaration{Property: "border", Value: "1px solid #ddd"}},
		{property: "color", raw: "theme.primary", want: Declaration{Property: "color", Value: "theme.primary", Computed: true}},
	}

	for _, tt := range tests {
		t.Run(tt.property+"="+tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, declaration(tt.property, tt.raw))
		})
	}
}

func TestCSSPropertyName(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{key: "color", want: "color"},
		{key: "marginBottom", want: "margin-bottom"},
		{key: "borderTopLeftRadius", want: "border-top-left-radius"},
		{key: "WebkitLineClamp", want: "-webkit-line-clamp"},
		{key: "MozAppearance", want: "-moz-appearance"},
		{key: "msGridRow", want: "-ms-grid-row"},
		{key: "--accent-color", want: "--accent-color"},
		{key: "msg", want: "msg"},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.Equal(t, tt.want, cssPropertyName(tt.key))
		})
	}
}
