package stylemig

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeUtilityTable(t *testing.T) {
	doc := `
[[utility]]
property = "display"
value = "'grid'"
class = "d-grid"

[[utility]]
property = "opacity"
value = "0.5"
class = "opacity-50"
`
	table, err := DecodeUtilityTable(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	class, ok := table.Lookup("display", "'grid'")
	require.True(t, ok)
	assert.Equal(t, "d-grid", class)

	// Defaults are not inherited
	_, ok = table.Lookup("display", "'flex'")
	assert.False(t, ok)
}

func TestDecodeUtilityTable_InheritDefaults(t *testing.T) {
	doc := `
inherit-defaults = true

[[utility]]
property = "display"
value = "'flex'"
class = "flex"
`
	table, err := DecodeUtilityTable(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, DefaultUtilityTable().Len(), table.Len())

	class, ok := table.Lookup("display", "'flex'")
	require.True(t, ok)
	assert.Equal(t, "flex", class, "document entries override defaults")

	class, ok = table.Lookup("cursor", "'pointer'")
	require.True(t, ok)
	assert.Equal(t, "cursor-pointer", class)
}

func TestDecodeUtilityTable_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{
			name:    "unknown top-level key",
			doc:     "inherit = true\n",
			wantErr: "unknown keys",
		},
		{
			name:    "unknown entry key",
			doc:     "[[utility]]\nproperty = \"display\"\nvalue = \"'grid'\"\nclass = \"d-grid\"\nimportant = true\n",
			wantErr: "unknown keys",
		},
		{
			name:    "syntax error",
			doc:     "[[utility]\n",
			wantErr: "decode",
		},
		{
			name:    "spacing overlap",
			doc:     "[[utility]]\nproperty = \"paddingLeft\"\nvalue = \"8\"\nclass = \"pl-8\"\n",
			wantErr: ErrTableOverlap.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeUtilityTable(strings.NewReader(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestEncodeUtilityTable_RoundTrip(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, EncodeUtilityTable(&buf, DefaultUtilityTable()))

	path := filepath.Join(t.TempDir(), "utilities.toml")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

	table, err := LoadUtilityTable(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultUtilityTable().Entries(), table.Entries())
}

func TestLoadUtilityTable_Missing(t *testing.T) {
	_, err := LoadUtilityTable(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
