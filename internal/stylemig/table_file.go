package stylemig

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// TableDocument is the on-disk schema of a utility table:
//
//	inherit-defaults = true
//
//	[[utility]]
//	property = "display"
//	value = "'grid'"
//	class = "d-grid"
//
// Unknown keys are rejected. Entries override built-in defaults with the
// same key when inherit-defaults is set.
type TableDocument struct {
	InheritDefaults bool           `toml:"inherit-defaults"`
	Utility         []UtilityEntry `toml:"utility"`
}

// LoadUtilityTable reads a TOML table document from path.
func LoadUtilityTable(path string) (UtilityTable, error) {
	// #nosec G304 - path comes from trusted configuration
	f, err := os.Open(path)
	if err != nil {
		return UtilityTable{}, fmt.Errorf("open utility table: %w", err)
	}
	defer f.Close()

	table, err := DecodeUtilityTable(f)
	if err != nil {
		return UtilityTable{}, fmt.Errorf("utility table %s: %w", path, err)
	}
	return table, nil
}

// DecodeUtilityTable decodes and validates a TOML table document.
func DecodeUtilityTable(r io.Reader) (UtilityTable, error) {
	var doc TableDocument
	dec := toml.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return UtilityTable{}, fmt.Errorf("unknown keys:\n%s", strict.String())
		}
		return UtilityTable{}, fmt.Errorf("decode: %w", err)
	}

	if !doc.InheritDefaults {
		return NewUtilityTable(doc.Utility)
	}

	// Document entries win over defaults with the same key.
	overridden := make(map[string]bool, len(doc.Utility))
	for _, e := range doc.Utility {
		overridden[Signature(e.Property, e.Value)] = true
	}
	entries := make([]UtilityEntry, 0, len(doc.Utility)+64)
	for _, e := range defaultUtilityEntries() {
		if !overridden[e.Key()] {
			entries = append(entries, e)
		}
	}
	entries = append(entries, doc.Utility...)
	return NewUtilityTable(entries)
}

// EncodeUtilityTable writes t as a standalone TOML table document.
func EncodeUtilityTable(w io.Writer, t UtilityTable) error {
	doc := TableDocument{Utility: t.Entries()}
	enc := toml.NewEncoder(w)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("encode utility table: %w", err)
	}
	return nil
}
