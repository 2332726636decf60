package roster_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bancarella/revenue-tracker/internal/roster"
)

func writeDefaults(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "who_defaults.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_MissingFileYieldsEmptyTable(t *testing.T) {
	defaults, err := roster.Load(filepath.Join(t.TempDir(), "absent.json"))
	require.NoError(t, err)
	assert.Empty(t, defaults)
}

func TestLoad_InvalidJSON(t *testing.T) {
	path := writeDefaults(t, "{not json")
	_, err := roster.Load(path)
	assert.Error(t, err)
}

func TestWhoFor(t *testing.T) {
	path := writeDefaults(t, `{
		"romano di lombardia": {"Saturday": "Marco", "*": "Giulia"},
		"treviglio": {"Sunday": "Marco, Giulia"}
	}`)
	defaults, err := roster.Load(path)
	require.NoError(t, err)

	saturday := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	monday := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)

	t.Run("weekday rule wins", func(t *testing.T) {
		who, ok := defaults.WhoFor("Romano di Lombardia", saturday)
		assert.True(t, ok)
		assert.Equal(t, "Marco", who)
	})

	t.Run("wildcard fallback", func(t *testing.T) {
		who, ok := defaults.WhoFor("Romano di Lombardia", monday)
		assert.True(t, ok)
		assert.Equal(t, "Giulia", who)
	})

	t.Run("no wildcard and no weekday rule", func(t *testing.T) {
		_, ok := defaults.WhoFor("Treviglio", monday)
		assert.False(t, ok)
	})

	t.Run("unknown city", func(t *testing.T) {
		_, ok := defaults.WhoFor("Bergamo", saturday)
		assert.False(t, ok)
	})

	t.Run("city match is case and whitespace insensitive", func(t *testing.T) {
		who, ok := defaults.WhoFor("  ROMANO DI LOMBARDIA  ", saturday)
		assert.True(t, ok)
		assert.Equal(t, "Marco", who)
	})
}
