package tooltips

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultContainsKnownSections(t *testing.T) {
	tbl, err := Default()
	require.NoError(t, err)
	text, ok := tbl.Lookup("shared")
	require.True(t, ok)
	require.True(t, strings.HasPrefix(text, "Shared configuration"))

	text, ok = tbl.Lookup("mobilesdk")
	require.True(t, ok)
	require.Contains(t, text, "\nActive Face Liveness:")
}

func TestLookupUnknownPath(t *testing.T) {
	tbl, err := Default()
	require.NoError(t, err)
	_, ok := tbl.Lookup("shared.timeout")
	require.False(t, ok)

	var empty Table
	_, ok = empty.Lookup("shared")
	require.False(t, ok)
}

func TestLoadLayersUserFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tips.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"shared": "mine", "shared.timeout": "seconds"}`), 0o600))

	tbl, err := Load(path)
	require.NoError(t, err)
	text, _ := tbl.Lookup("shared")
	require.Equal(t, "mine", text)
	text, _ = tbl.Lookup("shared.timeout")
	require.Equal(t, "seconds", text)
	_, ok := tbl.Lookup("bos")
	require.True(t, ok)

	base, err := Default()
	require.NoError(t, err)
	text, _ = base.Lookup("shared")
	require.NotEqual(t, "mine", text)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	require.Contains(t, err.Error(), "nope.yaml")
}
