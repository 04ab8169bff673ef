package stylemig

import "strings"

// ParseProperties splits a style literal into an ordered PropertyMap.
//
// Algorithm:
//  1. Strip one layer of braces, or two for the "{{ ... }}" form
//  2. Split on commas, except a comma whose next brace character is '}'
//     (it is taken to sit inside a nested object)
//  3. Split each segment on its first colon into key and value
//
// This is a lookahead heuristic, not a depth counter: "{a: {b: 1, c: 2}}"
// keeps the inner comma, but "{a: {b: 1, c: {d: 2}}}" splits inside the
// nested object. Segments without a colon, or with an empty key, are
// dropped. Duplicate keys keep the last value.
func ParseProperties(literal string) PropertyMap {
	return buildPropertyMap(splitHeuristic(stripBraces(literal)))
}

// ParsePropertiesBalanced is ParseProperties with a depth-counting splitter:
// commas separate properties only at brace/bracket/paren depth zero and
// outside quoted strings. Nested object values are kept whole.
func ParsePropertiesBalanced(literal string) PropertyMap {
	return buildPropertyMap(splitBalanced(stripBraces(literal)))
}

// stripBraces removes the enclosing "{{ }}" or "{ }" of a literal.
func stripBraces(literal string) string {
	s := strings.TrimSpace(literal)
	switch {
	case strings.HasPrefix(s, "{{") && strings.HasSuffix(s, "}}") && len(s) >= 4:
		return s[2 : len(s)-2]
	case strings.HasPrefix(s, "{") && strings.HasSuffix(s, "}") && len(s) >= 2:
		return s[1 : len(s)-1]
	}
	return s
}

// splitHeuristic splits on commas that are not followed by a '}' before any '{'.
func splitHeuristic(s string) []string {
	var parts []string
	last := 0
	for i := 0; i < len(s); i++ {
		if s[i] != ',' {
			continue
		}
		if next := strings.IndexAny(s[i+1:], "{}"); next >= 0 && s[i+1+next] == '}' {
			continue
		}
		parts = append(parts, s[last:i])
		last = i + 1
	}
	return append(parts, s[last:])
}

// splitBalanced splits on commas at nesting depth zero, outside quotes.
func splitBalanced(s string) []string {
	var parts []string
	depth := 0
	last := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\'', '"', '`':
			if end := skipQuoted([]byte(s), i); end > i {
				i = end
			}
		case '{', '[', '(':
			depth++
		case '}', ']', ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[last:i])
				last = i + 1
			}
		}
	}
	return append(parts, s[last:])
}

func buildPropertyMap(segments []string) PropertyMap {
	props := NewPropertyMap()
	for _, seg := range segments {
		key, value, ok := strings.Cut(seg, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		props.Set(key, strings.Trim(strings.TrimSpace(value), ","))
	}
	return props
}
