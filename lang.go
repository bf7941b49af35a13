package cfp

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Lang is a supported document language.
type Lang string

// Supported languages.
const (
	LangDE Lang = "de"
	LangEN Lang = "en"
)

// Order matches supportedTags.
var supportedLangs = []Lang{LangDE, LangEN}

var (
	supportedTags = []language.Tag{language.German, language.English}
	matcher       = language.NewMatcher(supportedTags)
)

// Languages returns the supported languages in their canonical order.
func Languages() []Lang {
	out := make([]Lang, len(supportedLangs))
	copy(out, supportedLangs)
	return out
}

// String returns the language code.
func (l Lang) String() string {
	return string(l)
}

// Valid reports whether l is a supported language.
func (l Lang) Valid() bool {
	for _, s := range supportedLangs {
		if l == s {
			return true
		}
	}
	return false
}

// ParseLang parses a BCP 47 tag and returns its base language.
// "de-AT" and "DE" parse to LangDE. Other languages are rejected.
func ParseLang(s string) (Lang, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", fmt.Errorf("%w: empty tag", ErrUnsupportedLanguage)
	}

	tag, err := language.Parse(s)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrUnsupportedLanguage, s, err)
	}

	base, _ := tag.Base()
	l := Lang(base.String())
	if !l.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedLanguage, s)
	}
	return l, nil
}

// MatchLang picks the best supported language for an Accept-Language header
// value. Returns fallback when the header is empty, malformed, or names no
// supported language.
func MatchLang(acceptLanguage string, fallback Lang) Lang {
	if strings.TrimSpace(acceptLanguage) == "" {
		return fallback
	}

	tags, _, err := language.ParseAcceptLanguage(acceptLanguage)
	if err != nil || len(tags) == 0 {
		return fallback
	}

	_, index, confidence := matcher.Match(tags...)
	if confidence == language.No {
		return fallback
	}
	return supportedLangs[index]
}
