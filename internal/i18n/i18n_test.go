package i18n

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultCatalogCoversAllLanguages(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	en := c.Keys(English)
	require.NotEmpty(t, en)
	for _, l := range []Language{Arabic, French} {
		require.Equal(t, en, c.Keys(l), "lang=%s", l)
	}
}

func TestCatalogT(t *testing.T) {
	c, err := NewCatalog([]byte(`
en:
  hello: "Hello {0}, you have {1} modules"
  only_en: "english"
fr:
  hello: "Bonjour {0}"
ar:
  hello: "مرحبا {0}"
`))
	require.NoError(t, err)

	require.Equal(t, "Hello Sam, you have 3 modules", c.T(English, "hello", "Sam", 3))
	require.Equal(t, "Bonjour Sam", c.T(French, "hello", "Sam"))
	require.Equal(t, "english", c.T(Arabic, "only_en"))
	require.Equal(t, "missing_key", c.T(French, "missing_key"))
}

func TestNewCatalogRejectsBadInput(t *testing.T) {
	_, err := NewCatalog([]byte("en: [1, 2"))
	require.Error(t, err)

	_, err = NewCatalog([]byte("en:\n  a: b\nde:\n  a: b\n"))
	require.Error(t, err)

	_, err = NewCatalog([]byte("en:\n  a: b\n"))
	require.Error(t, err)
}

func TestParseLanguage(t *testing.T) {
	require.Equal(t, French, ParseLanguage("fr-FR"))
	require.Equal(t, English, ParseLanguage(" EN "))
	require.Equal(t, Arabic, ParseLanguage("de"))
	require.Equal(t, Arabic, ParseLanguage(""))
	require.Equal(t, "rtl", Arabic.Dir())
	require.Equal(t, "ltr", French.Dir())
}
