package entity

// Locales soportados por el directorio.
const (
	LocaleEN = "en"
	LocaleFR = "fr"
	LocaleNL = "nl"
)

// LocalizedName nombre visible en hasta tres idiomas. Default es obligatorio (columna name);
// FR y NL son opcionales (name_fr, name_nl).
type LocalizedName struct {
	Default string
	FR      string
	NL      string
}

// For devuelve el nombre para el locale pedido; si no hay traducción usa Default.
func (n LocalizedName) For(locale string) string {
	switch locale {
	case LocaleFR:
		if n.FR != "" {
			return n.FR
		}
	case LocaleNL:
		if n.NL != "" {
			return n.NL
		}
	}
	return n.Default
}
