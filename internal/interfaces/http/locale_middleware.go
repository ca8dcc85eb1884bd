package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendor-directory/pkg/i18n"
)

// LocalLocale key del locale negociado en c.Locals.
const LocalLocale = "locale"

// LocaleMiddleware resuelve el idioma de los nombres: ?locale= y luego Accept-Language.
func LocaleMiddleware(n *i18n.Negotiator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		locale := n.Resolve(c.Query("locale"), c.Get(fiber.HeaderAcceptLanguage))
		c.Locals(LocalLocale, locale)
		c.Set(fiber.HeaderContentLanguage, locale)
		return c.Next()
	}
}

// GetLocale devuelve el locale negociado; fallback si el middleware no se ejecutó.
func GetLocale(c *fiber.Ctx, fallback string) string {
	if s := localString(c, LocalLocale); s != "" {
		return s
	}
	return fallback
}
