package stylemig

import (
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// Declaration is one CSS property in a suggested rule.
type Declaration struct {
	Property string // kebab-case CSS property
	Value    string // CSS value, or the raw expression when Computed
	Computed bool   // Needs manual translation
}

// StylesheetRule is an SCSS rule suggested for one custom-style residual.
type StylesheetRule struct {
	Selector     string
	Declarations []Declaration
}

// unitlessProperties take bare numbers without a px suffix.
var unitlessProperties = map[string]bool{
	"animationIterationCount": true,
	"aspectRatio":             true,
	"columnCount":             true,
	"flex":                    true,
	"flexGrow":                true,
	"flexShrink":              true,
	"fontWeight":              true,
	"gridColumn":              true,
	"gridRow":                 true,
	"lineHeight":              true,
	"opacity":                 true,
	"order":                   true,
	"orphans":                 true,
	"scale":                   true,
	"tabSize":                 true,
	"widows":                  true,
	"zIndex":                  true,
	"zoom":                    true,
}

// SuggestRules turns each custom-style residual of report into an SCSS rule
// named after the file: Button.tsx yields .button-1, .button-2, ...
func SuggestRules(report *FileReport) []StylesheetRule {
	stem := kebabCase(strings.TrimSuffix(filepath.Base(report.Path), filepath.Ext(report.Path)))
	if stem == "" {
		stem = "custom"
	}

	rules := make([]StylesheetRule, 0, len(report.CustomStyles))
	for i, custom := range report.CustomStyles {
		rule := StylesheetRule{Selector: fmt.Sprintf(".%s-%d", stem, i+1)}
		for _, key := range custom.Keys() {
			raw, _ := custom.Get(key)
			rule.Declarations = append(rule.Declarations, declaration(key, raw))
		}
		rules = append(rules, rule)
	}
	return rules
}

func declaration(property, raw string) Declaration {
	decl := Declaration{Property: cssPropertyName(property)}
	kind, value := literalValue(raw)
	switch kind {
	case valueString:
		decl.Value = value
	case valueNumber:
		decl.Value = value
		if value != "0" && !unitlessProperties[property] {
			decl.Value += "px"
		}
	default:
		decl.Value = value
		decl.Computed = true
	}
	return decl
}

// String renders the rule as SCSS. Computed values become comments.
func (r StylesheetRule) String() string {
	var b strings.Builder
	b.WriteString(r.Selector)
	b.WriteString(" {\n")
	for _, d := range r.Declarations {
		if d.Computed {
			fmt.Fprintf(&b, "  // %s: %s (computed, translate manually)\n", d.Property, d.Value)
			continue
		}
		fmt.Fprintf(&b, "  %s: %s;\n", d.Property, d.Value)
	}
	b.WriteString("}\n")
	return b.String()
}

// cssPropertyName converts a React style key to its CSS property name.
// Vendor-prefixed keys (WebkitTransition, MozAppearance, msGridRow) keep
// their leading dash.
func cssPropertyName(key string) string {
	if strings.HasPrefix(key, "--") {
		return key
	}
	for _, prefix := range []string{"Webkit", "Moz", "ms"} {
		if strings.HasPrefix(key, prefix) && len(key) > len(prefix) && unicode.IsUpper(rune(key[len(prefix)])) {
			return "-" + strings.ToLower(prefix) + "-" + kebabCase(key[len(prefix):])
		}
	}
	return kebabCase(key)
}

// kebabCase inserts a dash before every inner capital and lower-cases:
// marginBottom → margin-bottom.
func kebabCase(s string) string {
	var b strings.Builder
	for i, r := range s {
		if unicode.IsUpper(r) {
			if i > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(unicode.ToLower(r))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
