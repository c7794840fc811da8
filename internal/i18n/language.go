// Package i18n resolves UI strings and localized content for the
// supported languages.
package i18n

import (
	"errors"
	"fmt"
	"strings"
)

// Language is one of the closed set of supported UI languages.
type Language string

const (
	EN Language = "en"
	HI Language = "hi"
	BN Language = "bn"
)

// ErrUnknownLanguage is returned when a language code is outside the
// supported set.
var ErrUnknownLanguage = errors.New("unknown language")

var nativeNames = map[Language]string{
	EN: "English",
	HI: "हिंदी",
	BN: "বাংলা",
}

// All returns the supported languages in display order.
func All() []Language {
	return []Language{EN, HI, BN}
}

// ParseLanguage parses a language code such as "hi" or "BN".
func ParseLanguage(s string) (Language, error) {
	l := Language(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := nativeNames[l]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownLanguage, s)
	}
	return l, nil
}

// Valid reports whether l is a supported language.
func (l Language) Valid() bool {
	_, ok := nativeNames[l]
	return ok
}

// NativeName returns the language's name written in that language.
func (l Language) NativeName() string {
	if n, ok := nativeNames[l]; ok {
		return n
	}
	return string(l)
}

func (l Language) String() string { return string(l) }

// Text is a localized string record keyed by language.
type Text map[Language]string

// In returns the value for lang, falling back to English and then "".
func (t Text) In(lang Language) string {
	if s, ok := t[lang]; ok && s != "" {
		return s
	}
	return t[EN]
}
