// Package i18n resolves message keys produced by the grading core into
// user-facing text for the supported interface languages.
package i18n

import (
	"embed"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

type Language string

const (
	Arabic  Language = "ar"
	English Language = "en"
	French  Language = "fr"

	DefaultLanguage = Arabic
)

//go:embed translations.yaml
var translationsFS embed.FS

var supported = []Language{Arabic, English, French}

func Supported() []Language {
	out := make([]Language, len(supported))
	copy(out, supported)
	return out
}

func (l Language) Valid() bool {
	for _, s := range supported {
		if s == l {
			return true
		}
	}
	return false
}

// Dir reports the text direction used when rendering l.
func (l Language) Dir() string {
	if l == Arabic {
		return "rtl"
	}
	return "ltr"
}

// ParseLanguage normalises tags like "fr-FR" or " EN " and falls back to
// DefaultLanguage for anything unsupported.
func ParseLanguage(s string) Language {
	s = strings.ToLower(strings.TrimSpace(s))
	if i := strings.IndexAny(s, "-_"); i > 0 {
		s = s[:i]
	}
	l := Language(s)
	if l.Valid() {
		return l
	}
	return DefaultLanguage
}

type Catalog struct {
	messages map[Language]map[string]string
}

// NewCatalog parses a YAML document of the form lang -> key -> text.
func NewCatalog(data []byte) (*Catalog, error) {
	raw := map[string]map[string]string{}
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("i18n: parse translations: %w", err)
	}
	c := &Catalog{messages: make(map[Language]map[string]string, len(raw))}
	for lang, msgs := range raw {
		l := Language(strings.ToLower(strings.TrimSpace(lang)))
		if !l.Valid() {
			return nil, fmt.Errorf("i18n: unsupported language %q", lang)
		}
		c.messages[l] = msgs
	}
	for _, l := range supported {
		if len(c.messages[l]) == 0 {
			return nil, fmt.Errorf("i18n: missing translations for %q", l)
		}
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog built from the embedded translations.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		data, err := translationsFS.ReadFile("translations.yaml")
		if err != nil {
			defaultErr = err
			return
		}
		defaultCatalog, defaultErr = NewCatalog(data)
	})
	return defaultCatalog, defaultErr
}

// T looks up key in lang, then English, and finally returns the key itself.
// Positional placeholders {0}, {1}... are replaced by args.
func (c *Catalog) T(lang Language, key string, args ...any) string {
	msg, ok := c.lookup(lang, key)
	if !ok {
		msg, ok = c.lookup(English, key)
	}
	if !ok {
		msg = key
	}
	for i, a := range args {
		msg = strings.ReplaceAll(msg, "{"+strconv.Itoa(i)+"}", fmt.Sprint(a))
	}
	return msg
}

func (c *Catalog) Has(lang Language, key string) bool {
	_, ok := c.lookup(lang, key)
	return ok
}

func (c *Catalog) lookup(lang Language, key string) (string, bool) {
	if c == nil {
		return "", false
	}
	msgs := c.messages[lang]
	if msgs == nil {
		return "", false
	}
	msg, ok := msgs[key]
	return msg, ok && msg != ""
}

// Keys lists every key known for lang in sorted order.
func (c *Catalog) Keys(lang Language) []string {
	msgs := c.messages[lang]
	keys := make([]string, 0, len(msgs))
	for k := range msgs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
