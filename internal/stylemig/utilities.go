package stylemig

import (
	"errors"
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// UtilityEntry maps one exact property/value pair to a utility class.
type UtilityEntry struct {
	Property string `toml:"property"`
	Value    string `toml:"value"`
	Class    string `toml:"class"`
}

// Key returns the lookup key "property: value".
func (e UtilityEntry) Key() string {
	return Signature(e.Property, e.Value)
}

// UtilityTable is an immutable exact-match lookup of style pairs to classes.
// It never holds margin/padding/gap properties; those are derived by rule.
type UtilityTable struct {
	entries []UtilityEntry
	lookup  map[string]string
}

// ErrTableOverlap is returned for table entries that collide with a derived rule.
var ErrTableOverlap = errors.New("utility table entry overlaps derived spacing/gap rule")

// derivedProperty matches the properties owned by the spacing and gap rules.
var derivedProperty = regexp.MustCompile(`^(?:(?:margin|padding)(?:Top|Bottom|Left|Right)?|gap)$`)

// NewUtilityTable validates entries and builds a table.
func NewUtilityTable(entries []UtilityEntry) (UtilityTable, error) {
	t := UtilityTable{
		entries: make([]UtilityEntry, 0, len(entries)),
		lookup:  make(map[string]string, len(entries)),
	}
	for _, e := range entries {
		e.Property = strings.TrimSpace(e.Property)
		e.Value = strings.TrimSpace(e.Value)
		e.Class = strings.TrimSpace(e.Class)

		if e.Property == "" || e.Value == "" || e.Class == "" {
			return UtilityTable{}, fmt.Errorf("utility entry %q: property, value and class are required", e.Key())
		}
		if derivedProperty.MatchString(e.Property) {
			return UtilityTable{}, fmt.Errorf("%w: %q", ErrTableOverlap, e.Key())
		}

		key := e.Key()
		if existing, ok := t.lookup[key]; ok {
			if existing != e.Class {
				return UtilityTable{}, fmt.Errorf("utility entry %q maps to both %q and %q", key, existing, e.Class)
			}
			continue
		}
		t.lookup[key] = e.Class
		t.entries = append(t.entries, e)
	}
	return t, nil
}

// Lookup returns the class for an exact property/value pair.
func (t UtilityTable) Lookup(property, value string) (string, bool) {
	class, ok := t.lookup[Signature(property, value)]
	return class, ok
}

// Len returns the number of entries.
func (t UtilityTable) Len() int {
	return len(t.entries)
}

// Entries returns a copy of the entries sorted by key.
func (t UtilityTable) Entries() []UtilityEntry {
	out := make([]UtilityEntry, len(t.entries))
	copy(out, t.entries)
	sort.Slice(out, func(i, j int) bool {
		return out[i].Key() < out[j].Key()
	})
	return out
}

// quoted expands a keyword into single- and double-quoted table entries.
func quoted(property, keyword, class string) []UtilityEntry {
	return []UtilityEntry{
		{Property: property, Value: "'" + keyword + "'", Class: class},
		{Property: property, Value: `"` + keyword + `"`, Class: class},
	}
}

// defaultUtilityEntries is the built-in table. Quoted keywords appear in both
// quote styles since the lookup is an exact string match.
func defaultUtilityEntries() []UtilityEntry {
	var entries []UtilityEntry
	add := func(e ...UtilityEntry) { entries = append(entries, e...) }

	// Display & layout
	add(quoted("display", "flex", "d-flex")...)
	add(quoted("display", "block", "d-block")...)
	add(quoted("display", "inline-block", "d-inline-block")...)
	add(quoted("display", "none", "d-none")...)

	// Flex
	add(quoted("alignItems", "center", "align-center")...)
	add(quoted("alignItems", "flex-start", "align-start")...)
	add(quoted("alignItems", "flex-end", "align-end")...)
	add(quoted("justifyContent", "center", "justify-center")...)
	add(quoted("justifyContent", "space-between", "justify-between")...)
	add(quoted("justifyContent", "flex-end", "justify-end")...)
	add(quoted("justifyContent", "flex-start", "justify-start")...)
	add(quoted("flexDirection", "column", "flex-column")...)
	add(quoted("flexDirection", "row", "flex-row")...)
	add(quoted("flexWrap", "wrap", "flex-wrap")...)

	// Width & height
	add(quoted("width", "100%", "w-full")...)
	add(quoted("height", "100%", "h-full")...)

	// Text
	add(quoted("textAlign", "center", "text-center")...)
	add(quoted("textAlign", "right", "text-right")...)
	add(quoted("textAlign", "left", "text-left")...)
	add(UtilityEntry{Property: "fontSize", Value: "16", Class: "text-16"})

	// Font weight
	add(quoted("fontWeight", "bold", "font-bold")...)
	add(
		UtilityEntry{Property: "fontWeight", Value: "600", Class: "font-semibold"},
		UtilityEntry{Property: "fontWeight", Value: "500", Class: "font-medium"},
	)

	// Cursor
	add(quoted("cursor", "pointer", "cursor-pointer")...)
	add(quoted("cursor", "not-allowed", "cursor-not-allowed")...)

	// Overflow
	add(quoted("overflow", "hidden", "overflow-hidden")...)
	add(quoted("overflow", "auto", "overflow-auto")...)
	add(quoted("overflowX", "auto", "overflow-x-auto")...)
	add(quoted("overflowY", "auto", "overflow-y-auto")...)

	// Position
	add(quoted("position", "relative", "position-relative")...)
	add(quoted("position", "absolute", "position-absolute")...)
	add(quoted("position", "fixed", "position-fixed")...)

	// Border radius
	add(UtilityEntry{Property: "borderRadius", Value: "12", Class: "rounded-12"})

	return entries
}

// DefaultUtilityTable returns the built-in utility table.
func DefaultUtilityTable() UtilityTable {
	t, err := NewUtilityTable(defaultUtilityEntries())
	if err != nil {
		// The built-in entries are static; failing here is a programming error.
		panic(err)
	}
	return t
}
