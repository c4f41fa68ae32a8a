// Package catalog maps (cause identifier, locale) pairs to parameterized
// message templates and renders the final prose fragments of a report.
//
// The template store is loaded once from assets bundled with the binary
// and never mutated afterwards, so a single Catalog is safe for
// concurrent readers without locking. The default locale ships a
// complete template set; other locales may lag behind and fall back to
// the default per key, which stays observable to the caller.
package catalog

import (
	"embed"
	"fmt"
	"io/fs"
	"regexp"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"golang.org/x/text/language"
)

//go:embed locales/*.toml
var localeFS embed.FS

// DefaultLocale is the locale guaranteed to carry every template.
const DefaultLocale = "en"

// Param is one named, already-stringified template parameter. Params
// are ordered; ordering matters for diagnostics, not for rendering.
type Param struct {
	Name  string
	Value string
}

// P is a shorthand constructor for a Param.
func P(name, value string) Param {
	return Param{Name: name, Value: value}
}

type localeFile struct {
	Locale   string            `toml:"locale"`
	Messages map[string]string `toml:"messages"`
}

// Catalog is the immutable template store.
type Catalog struct {
	locales map[string]map[string]string // locale -> key -> шаблон
	tags    []language.Tag               // default первым
	names   []string                     // имя локали для tags[i]
	matcher language.Matcher
}

// Load builds the catalog from the embedded locale assets.
func Load() (*Catalog, error) {
	return LoadFS(localeFS, "locales")
}

// LoadFS builds a catalog from *.toml locale files in dir of fsys.
// Exposed for tests and for hosts that bundle extra locales.
func LoadFS(fsys fs.FS, dir string) (*Catalog, error) {
	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: read locale dir: %w", err)
	}

	c := &Catalog{locales: make(map[string]map[string]string)}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".toml") {
			continue
		}
		data, err := fs.ReadFile(fsys, dir+"/"+entry.Name())
		if err != nil {
			return nil, fmt.Errorf("catalog: read %s: %w", entry.Name(), err)
		}
		var lf localeFile
		meta, err := toml.Decode(string(data), &lf)
		if err != nil {
			return nil, fmt.Errorf("catalog: parse %s: %w", entry.Name(), err)
		}
		if len(meta.Undecoded()) > 0 {
			return nil, fmt.Errorf("catalog: %s: unknown keys %v", entry.Name(), meta.Undecoded())
		}
		if lf.Locale == "" {
			return nil, fmt.Errorf("catalog: %s: missing locale field", entry.Name())
		}
		if _, dup := c.locales[lf.Locale]; dup {
			return nil, fmt.Errorf("catalog: duplicate locale %q", lf.Locale)
		}
		c.locales[lf.Locale] = lf.Messages
	}

	if _, ok := c.locales[DefaultLocale]; !ok {
		return nil, fmt.Errorf("catalog: default locale %q not bundled", DefaultLocale)
	}

	// default первым, остальные по алфавиту - порядок важен для matcher
	c.names = append(c.names, DefaultLocale)
	rest := make([]string, 0, len(c.locales)-1)
	for name := range c.locales {
		if name != DefaultLocale {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	c.names = append(c.names, rest...)

	for _, name := range c.names {
		tag, err := language.Parse(name)
		if err != nil {
			return nil, fmt.Errorf("catalog: locale %q: %w", name, err)
		}
		c.tags = append(c.tags, tag)
	}
	c.matcher = language.NewMatcher(c.tags)
	return c, nil
}

// Locales returns the bundled locale names, default first.
func (c *Catalog) Locales() []string {
	out := make([]string, len(c.names))
	copy(out, c.names)
	return out
}

// Has reports whether the locale carries its own template for key.
func (c *Catalog) Has(locale, key string) bool {
	msgs, ok := c.locales[locale]
	if !ok {
		return false
	}
	_, ok = msgs[key]
	return ok
}

// Completeness returns how many of the default locale's keys the given
// locale translates, and the total. Lets callers detect incomplete
// translations.
func (c *Catalog) Completeness(locale string) (have, total int) {
	def := c.locales[DefaultLocale]
	msgs := c.locales[locale]
	for key := range def {
		total++
		if _, ok := msgs[key]; ok {
			have++
		}
	}
	return have, total
}

// Resolve maps a requested locale code to a bundled locale name.
// Unsupported or malformed locales resolve to the default; the second
// result reports whether that fallback happened.
func (c *Catalog) Resolve(locale string) (string, bool) {
	if locale == "" || locale == DefaultLocale {
		return DefaultLocale, false
	}
	if _, ok := c.locales[locale]; ok {
		return locale, false
	}
	tag, err := language.Parse(locale)
	if err != nil {
		return DefaultLocale, true
	}
	_, idx, conf := c.matcher.Match(tag)
	if conf < language.High {
		return DefaultLocale, true
	}
	return c.names[idx], false
}

var placeholderRe = regexp.MustCompile(`\{[a-zA-Z0-9_.-]+\}`)

// Render produces the final text for a template key in the requested
// locale. The returned flag reports whether any fallback to the default
// locale happened (unsupported locale or untranslated key). A key
// missing even from the default locale, or a parameter left unrendered,
// is a ConsistencyError: the handler table and the catalog drifted out
// of sync, which is an engine bug rather than a user-input condition.
func (c *Catalog) Render(locale, key string, params ...Param) (string, bool, error) {
	name, fellBack := c.Resolve(locale)

	tmpl, ok := c.locales[name][key]
	if !ok && name != DefaultLocale {
		tmpl, ok = c.locales[DefaultLocale][key]
		fellBack = true
	}
	if !ok {
		return "", fellBack, &ConsistencyError{Key: key, Locale: name}
	}

	text := tmpl
	for _, p := range params {
		text = strings.ReplaceAll(text, "{"+p.Name+"}", p.Value)
	}
	if left := placeholderRe.FindString(text); left != "" {
		return "", fellBack, &ConsistencyError{Key: key, Locale: name, Placeholder: left}
	}
	return text, fellBack, nil
}
