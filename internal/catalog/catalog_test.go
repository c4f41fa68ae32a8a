package catalog

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustLoad(t *testing.T) *Catalog {
	t.Helper()
	c, err := Load()
	require.NoError(t, err)
	return c
}

func TestRender_DefaultLocale(t *testing.T) {
	c := mustLoad(t)

	text, fellBack, err := c.Render("en", "name.not-defined", P("name", "cost"))
	require.NoError(t, err)
	assert.False(t, fellBack)
	assert.Equal(t, "In your program, no object with the name `cost` exists.", text)
}

func TestRender_Deterministic(t *testing.T) {
	c := mustLoad(t)

	first, _, err := c.Render("fr", "type.unsupported-operand",
		P("op", "+"), P("left", "int"), P("right", "str"))
	require.NoError(t, err)
	second, _, err := c.Render("fr", "type.unsupported-operand",
		P("op", "+"), P("left", "int"), P("right", "str"))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestRender_UnsupportedLocaleFallsBack(t *testing.T) {
	c := mustLoad(t)

	text, fellBack, err := c.Render("xx", "name.not-defined", P("name", "a"))
	require.NoError(t, err)
	assert.True(t, fellBack, "fallback must be observable")

	want, _, err := c.Render("en", "name.not-defined", P("name", "a"))
	require.NoError(t, err)
	assert.Equal(t, want, text)
}

func TestRender_RegionalVariantMatchesBase(t *testing.T) {
	c := mustLoad(t)

	name, fellBack := c.Resolve("fr-CA")
	assert.Equal(t, "fr", name)
	assert.False(t, fellBack, "matching a regional variant is not a fallback")
}

func TestRender_UntranslatedKeyFallsBackPerKey(t *testing.T) {
	c := mustLoad(t)
	// es.toml намеренно не переводит import.no-module

	require.False(t, c.Has("es", "import.no-module"))
	text, fellBack, err := c.Render("es", "import.no-module", P("module", "maths"))
	require.NoError(t, err)
	assert.True(t, fellBack)
	assert.Contains(t, text, "maths")
}

func TestRender_UnknownCauseIsConsistencyError(t *testing.T) {
	c := mustLoad(t)

	_, _, err := c.Render("en", "no.such.cause")
	var cerr *ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "no.such.cause", cerr.Key)
}

func TestRender_LeftoverPlaceholderIsConsistencyError(t *testing.T) {
	c := mustLoad(t)

	_, _, err := c.Render("en", "name.not-defined") // без параметра name
	var cerr *ConsistencyError
	require.ErrorAs(t, err, &cerr)
	assert.Equal(t, "{name}", cerr.Placeholder)
}

func TestCompleteness(t *testing.T) {
	c := mustLoad(t)

	have, total := c.Completeness(DefaultLocale)
	assert.Equal(t, total, have)

	have, total = c.Completeness("es")
	assert.Less(t, have, total)
	assert.Greater(t, have, 0)
}

func TestLocales_DefaultFirst(t *testing.T) {
	c := mustLoad(t)
	locales := c.Locales()
	require.NotEmpty(t, locales)
	assert.Equal(t, DefaultLocale, locales[0])
}

func TestLoadFS_RejectsBrokenBundles(t *testing.T) {
	tests := []struct {
		name  string
		files fstest.MapFS
	}{
		{
			name:  "missing default locale",
			files: fstest.MapFS{"locales/fr.toml": &fstest.MapFile{Data: []byte("locale = \"fr\"\n[messages]\n")}},
		},
		{
			name:  "missing locale field",
			files: fstest.MapFS{"locales/en.toml": &fstest.MapFile{Data: []byte("[messages]\n")}},
		},
		{
			name: "unknown top-level key",
			files: fstest.MapFS{"locales/en.toml": &fstest.MapFile{
				Data: []byte("locale = \"en\"\nextra = 1\n[messages]\n"),
			}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFS(tt.files, "locales")
			assert.Error(t, err)
		})
	}
}

func TestConsistencyError_Message(t *testing.T) {
	err := error(&ConsistencyError{Key: "k", Locale: "en"})
	assert.Contains(t, err.Error(), "k")
	assert.False(t, errors.Is(err, errors.New("other")))
}
