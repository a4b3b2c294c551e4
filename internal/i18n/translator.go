package i18n

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
	"golang.org/x/text/message"
)

// Supported lists the catalog languages in preference order.
var Supported = []language.Tag{language.English, language.Turkish}

var matcher = language.NewMatcher(Supported)

// Match maps a language code, locale string ("tr_TR.UTF-8") or display name
// ("Türkçe") to a supported language, falling back to English.
func Match(value string) language.Tag {
	value = strings.TrimSpace(value)
	if value == "" {
		return language.English
	}
	for _, tag := range Supported {
		if strings.EqualFold(value, display.Self.Name(tag)) || strings.EqualFold(value, display.English.Tags().Name(tag)) {
			return tag
		}
	}
	if idx := strings.IndexAny(value, ".@"); idx >= 0 {
		value = value[:idx]
	}
	value = strings.ReplaceAll(value, "_", "-")
	parsed, err := language.Parse(value)
	if err != nil {
		return language.English
	}
	_, index, confidence := matcher.Match(parsed)
	if confidence == language.No {
		return language.English
	}
	return Supported[index]
}

// Translator renders catalog messages in one language.
type Translator struct {
	tag     language.Tag
	printer *message.Printer
	upper   cases.Caser
}

// New returns a Translator for the language that best matches lang.
func New(lang string) (*Translator, error) {
	cat, err := newCatalog()
	if err != nil {
		return nil, fmt.Errorf("build message catalog: %w", err)
	}
	tag := Match(lang)
	return &Translator{
		tag:     tag,
		printer: message.NewPrinter(tag, message.Catalog(cat)),
		upper:   cases.Upper(tag),
	}, nil
}

// MustNew is like New but panics if the catalog cannot be built.
func MustNew(lang string) *Translator {
	t, err := New(lang)
	if err != nil {
		panic(err)
	}
	return t
}

// Tag returns the selected language.
func (t *Translator) Tag() language.Tag {
	return t.tag
}

// Name returns the language's name in that language.
func (t *Translator) Name() string {
	return display.Self.Name(t.tag)
}

// T renders key with args.
func (t *Translator) T(key Key, args ...any) string {
	return t.printer.Sprintf(string(key), args...)
}

// Upper upper-cases s with the language's casing rules.
func (t *Translator) Upper(s string) string {
	return t.upper.String(s)
}

// Number formats n with the language's digit grouping.
func (t *Translator) Number(n int64) string {
	return t.printer.Sprint(n)
}
