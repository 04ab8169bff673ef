package stylemig

import (
	"regexp"
	"strings"
)

// OutcomeKind tells which rule classified a property.
type OutcomeKind int

const (
	// NoMatch means the property stays a custom style.
	NoMatch OutcomeKind = iota
	// DirectMatch is an exact utility table hit.
	DirectMatch
	// SpacingMatch is a derived margin/padding class (mb-16, p-8).
	SpacingMatch
	// GapMatch is a derived gap class (gap-12).
	GapMatch
)

func (k OutcomeKind) String() string {
	switch k {
	case DirectMatch:
		return "direct"
	case SpacingMatch:
		return "spacing"
	case GapMatch:
		return "gap"
	default:
		return "none"
	}
}

// Outcome is the classification of one property/value pair.
type Outcome struct {
	Kind  OutcomeKind
	Class string // Empty for NoMatch
}

var (
	spacingProperty = regexp.MustCompile(`^(margin|padding)(Top|Bottom|Left|Right)?$`)
	bareInteger     = regexp.MustCompile(`^\d+$`)
	bareDecimal     = regexp.MustCompile(`^\d+(?:\.\d+)?$`)
	pixelString     = regexp.MustCompile(`^(?:'(\d+)px'|"(\d+)px")$`)

	sideLetters = map[string]string{
		"Top":    "t",
		"Bottom": "b",
		"Left":   "l",
		"Right":  "r",
	}
)

// Classifier maps style properties to utility classes.
//
// Rules are tried in order, first match wins:
//  1. Exact "property: value" lookup in Table
//  2. margin/padding[Side] with a non-negative integer → {m|p}{side}-{n}
//  3. gap with a non-negative number, decimals included → gap-{n}
//
// The table cannot hold margin/padding/gap keys (NewUtilityTable rejects
// them), so at most one rule can ever apply.
type Classifier struct {
	Table UtilityTable
	// PixelStrings also accepts quoted pixel magnitudes ('16px') for rules 2 and 3.
	PixelStrings bool
}

// NewClassifier returns a classifier over table.
func NewClassifier(table UtilityTable) *Classifier {
	return &Classifier{Table: table}
}

// Classify decides the outcome for one property/value pair.
func (c *Classifier) Classify(property, value string) Outcome {
	property = strings.TrimSpace(property)
	value = strings.TrimSpace(value)

	if class, ok := c.Table.Lookup(property, value); ok {
		return Outcome{Kind: DirectMatch, Class: class}
	}

	if m := spacingProperty.FindStringSubmatch(property); m != nil {
		size, ok := c.magnitude(value)
		if !ok {
			return Outcome{Kind: NoMatch}
		}
		prefix := "m"
		if m[1] == "padding" {
			prefix = "p"
		}
		return Outcome{Kind: SpacingMatch, Class: prefix + sideLetters[m[2]] + "-" + size}
	}

	if property == "gap" {
		if bareDecimal.MatchString(value) {
			return Outcome{Kind: GapMatch, Class: "gap-" + value}
		}
		if size, ok := c.magnitude(value); ok {
			return Outcome{Kind: GapMatch, Class: "gap-" + size}
		}
	}

	return Outcome{Kind: NoMatch}
}

// magnitude extracts a non-negative integer size from a raw value.
func (c *Classifier) magnitude(value string) (string, bool) {
	if bareInteger.MatchString(value) {
		return value, true
	}
	if c.PixelStrings {
		if m := pixelString.FindStringSubmatch(value); m != nil {
			return m[1] + m[2], true
		}
	}
	return "", false
}

// ClassifyMap partitions a PropertyMap into utility classes and the custom
// residual. Classes keep property order.
func (c *Classifier) ClassifyMap(props PropertyMap) ClassificationResult {
	result := ClassificationResult{Custom: NewPropertyMap()}
	for _, key := range props.Keys() {
		value, _ := props.Get(key)
		outcome := c.Classify(key, value)
		if outcome.Kind == NoMatch {
			result.Custom.Set(key, value)
			continue
		}
		result.Classes = append(result.Classes, outcome.Class)
	}
	return result
}
