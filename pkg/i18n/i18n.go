// Package i18n negocia el idioma de los nombres visibles entre los soportados (en, fr, nl).
package i18n

import (
	"strings"

	"golang.org/x/text/language"
)

// Supported idiomas con traducción en la base (name, name_fr, name_nl).
var Supported = []string{"en", "fr", "nl"}

// Negotiator elige el locale a partir de ?locale= o Accept-Language.
type Negotiator struct {
	locales []string
	matcher language.Matcher
}

// NewNegotiator crea un negociador; defaultLocale se usa cuando nada coincide.
// Si defaultLocale no está soportado se usa "en".
func NewNegotiator(defaultLocale string) *Negotiator {
	def := strings.ToLower(strings.TrimSpace(defaultLocale))
	if !IsSupported(def) {
		def = "en"
	}
	// El primer tag del matcher es el valor por defecto.
	locales := []string{def}
	for _, l := range Supported {
		if l != def {
			locales = append(locales, l)
		}
	}
	tags := make([]language.Tag, 0, len(locales))
	for _, l := range locales {
		tags = append(tags, language.MustParse(l))
	}
	return &Negotiator{locales: locales, matcher: language.NewMatcher(tags)}
}

// Default locale usado cuando el cliente no pide uno soportado.
func (n *Negotiator) Default() string { return n.locales[0] }

// Resolve devuelve el locale soportado más adecuado. explicit (query ?locale=) tiene prioridad
// sobre acceptLanguage (cabecera Accept-Language).
func (n *Negotiator) Resolve(explicit, acceptLanguage string) string {
	if explicit = strings.TrimSpace(explicit); explicit != "" {
		if l, ok := n.match(explicit); ok {
			return l
		}
	}
	if acceptLanguage = strings.TrimSpace(acceptLanguage); acceptLanguage != "" {
		if l, ok := n.match(acceptLanguage); ok {
			return l
		}
	}
	return n.Default()
}

func (n *Negotiator) match(s string) (string, bool) {
	_, idx, conf := n.matcher.Match(parse(s)...)
	if conf == language.No {
		return "", false
	}
	return n.locales[idx], true
}

func parse(s string) []language.Tag {
	tags, _, err := language.ParseAcceptLanguage(s)
	if err != nil || len(tags) == 0 {
		if t, err := language.Parse(s); err == nil {
			return []language.Tag{t}
		}
		return nil
	}
	return tags
}

// IsSupported indica si locale es uno de los idiomas soportados.
func IsSupported(locale string) bool {
	for _, l := range Supported {
		if l == locale {
			return true
		}
	}
	return false
}
