// Package i18n resolves user-facing labels per locale. Locales are plain
// value objects passed explicitly into every lookup; there is no mutable
// process-wide "current language", so concurrent sends in different
// languages cannot race.
package i18n

import "strings"

// Locale is an immutable label catalog for one language.
type Locale struct {
	code    string
	catalog map[string]string
}

// Code returns the normalized locale code, e.g. "fr".
func (l *Locale) Code() string {
	return l.code
}

// Tr returns the translation for key. Keys are the English label text;
// missing entries fall back to the key itself.
func (l *Locale) Tr(key string) string {
	if msg, ok := l.catalog[key]; ok {
		return msg
	}
	return key
}

// Translator hands out locales by code with a configured default.
type Translator struct {
	def     *Locale
	locales map[string]*Locale
}

// New builds a Translator with the given default locale code. An unknown
// default falls back to English.
func New(defaultCode string) *Translator {
	t := &Translator{locales: make(map[string]*Locale, len(catalogs))}
	for code, catalog := range catalogs {
		t.locales[code] = &Locale{code: code, catalog: catalog}
	}
	t.def = t.locales[normalize(defaultCode)]
	if t.def == nil {
		t.def = t.locales["en"]
	}
	return t
}

// Default returns the application default locale.
func (t *Translator) Default() *Locale {
	return t.def
}

// Locale resolves a locale by code. Empty or unknown codes resolve to the
// default, so a user without a language preference is never an error.
func (t *Translator) Locale(code string) *Locale {
	if l, ok := t.locales[normalize(code)]; ok {
		return l
	}
	return t.def
}

// normalize maps region-qualified codes like "fr_FR" or "pt-BR" onto the
// base language.
func normalize(code string) string {
	code = strings.ToLower(code)
	if i := strings.IndexAny(code, "_-"); i > 0 {
		code = code[:i]
	}
	return code
}

// catalogs indexes every shipped locale. English is the identity catalog:
// keys are already the English text.
var catalogs = map[string]map[string]string{
	"en": {},
	"fr": frCatalog,
	"es": esCatalog,
	"de": deCatalog,
}
