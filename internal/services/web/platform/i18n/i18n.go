// Package i18n resolves the request language and exposes localized copy for
// web handlers.
package i18n

import (
	"net/http"
	"strings"

	"github.com/louisbranch/lastro/internal/platform/i18n/catalog"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// LangQueryParam overrides Accept-Language when present.
const LangQueryParam = "lang"

// Localizer formats catalog messages for one language.
type Localizer interface {
	Sprintf(key message.Reference, args ...any) string
}

var matcher = language.NewMatcher(catalog.Default().Tags())

// ResolveLanguage picks the best supported language for r: the lang query
// parameter first, then Accept-Language, then the base locale.
func ResolveLanguage(r *http.Request) language.Tag {
	base := language.MustParse(catalog.BaseLocale)
	if r == nil {
		return base
	}
	var preferences []string
	if lang := strings.TrimSpace(r.URL.Query().Get(LangQueryParam)); lang != "" {
		preferences = append(preferences, lang)
	}
	if header := strings.TrimSpace(r.Header.Get("Accept-Language")); header != "" {
		preferences = append(preferences, header)
	}
	if len(preferences) == 0 {
		return base
	}
	tag, _ := language.MatchStrings(matcher, preferences...)
	return supported(tag)
}

// ResolveLocalizer returns a printer and the language it prints in.
func ResolveLocalizer(r *http.Request) (*message.Printer, language.Tag) {
	tag := ResolveLanguage(r)
	return message.NewPrinter(tag), tag
}

// supported strips matcher extensions (such as -u-rg-) so the tag names a
// catalog locale.
func supported(tag language.Tag) language.Tag {
	bundle := catalog.Default()
	for _, candidate := range bundle.Tags() {
		if candidate == tag {
			return candidate
		}
	}
	base, _ := tag.Base()
	for _, candidate := range bundle.Tags() {
		if candidateBase, _ := candidate.Base(); candidateBase == base {
			return candidate
		}
	}
	return language.MustParse(catalog.BaseLocale)
}
