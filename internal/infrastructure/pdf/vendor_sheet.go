// Package pdf genera la ficha imprimible de un proveedor del directorio.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del proveedor     │  Ubicación + Fecha       │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTACTO: e-mail                 │  QR mailto:              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CATEGORÍAS / SUBCATEGORÍAS                                  │
//	│  PRODUCTOS POR CATEGORÍA (solo grupos con productos)        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/vendor-directory/internal/application/dto"
	"github.com/jhoicas/vendor-directory/internal/application/usecase"
)

var _ usecase.SheetGenerator = (*VendorSheetGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 68}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Etiquetas por idioma ──────────────────────────────────────────────────────

type labels struct {
	title, contact, categories, subcategories, products, none, generated string
}

var labelsByLocale = map[string]labels{
	"en": {"VENDOR SHEET", "CONTACT", "Categories", "Subcategories", "PRODUCTS BY CATEGORY", "None", "Generated on"},
	"fr": {"FICHE FOURNISSEUR", "CONTACT", "Catégories", "Sous-catégories", "PRODUITS PAR CATÉGORIE", "Aucun", "Généré le"},
	"nl": {"LEVERANCIERSFICHE", "CONTACT", "Categorieën", "Subcategorieën", "PRODUCTEN PER CATEGORIE", "Geen", "Aangemaakt op"},
}

func labelsFor(locale string) labels {
	if l, ok := labelsByLocale[locale]; ok {
		return l
	}
	return labelsByLocale["en"]
}

// ── Generator ─────────────────────────────────────────────────────────────────

// VendorSheetGenerator implementa usecase.SheetGenerator usando Maroto v2.
type VendorSheetGenerator struct {
	now func() time.Time
}

// NewVendorSheetGenerator construye el generador.
func NewVendorSheetGenerator() *VendorSheetGenerator {
	return &VendorSheetGenerator{now: time.Now}
}

// VendorSheet genera el PDF y devuelve sus bytes.
func (g *VendorSheetGenerator) VendorSheet(detail *dto.VendorDetailResponse) ([]byte, error) {
	if detail == nil {
		return nil, fmt.Errorf("pdf: ficha vacía")
	}
	l := labelsFor(detail.Locale)

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(detail.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(detail, l, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contactRow(detail, l))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(taxonomyRows(detail, l)...)
	m.AddRows(line.NewRow(3))
	m.AddRows(productRows(detail, l)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del proveedor (izq) y ubicación + fecha (der).
func headerRow(d *dto.VendorDetailResponse, l labels, now time.Time) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(l.title, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(d.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
		),
		col.New(5).Add(
			text.New(d.Location, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 6,
			}),
			text.New(l.generated+" "+now.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// contactRow: e-mail de contacto y QR con el enlace mailto.
func contactRow(d *dto.VendorDetailResponse, l labels) core.Row {
	return row.New(28).Add(
		col.New(9).Add(
			text.New(l.contact, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(d.ContactEmail, props.Text{Size: 10, Top: 7}),
		),
		col.New(3).Add(code.NewQr("mailto:"+d.ContactEmail, props.Rect{
			Percent: 90,
			Center:  true,
		})),
	)
}

// taxonomyRows: categorías y subcategorías asociadas, separadas por comas.
func taxonomyRows(d *dto.VendorDetailResponse, l labels) []core.Row {
	return []core.Row{
		labeledListRow(l.categories, joinNames(d.Categories, l.none)),
		labeledListRow(l.subcategories, joinNames(d.Subcategories, l.none)),
	}
}

func labeledListRow(label, value string) core.Row {
	return row.New(8).Add(
		col.New(3).Add(text.New(label+":", props.Text{
			Style: fontstyle.Bold, Size: 9, Top: 1,
		})),
		col.New(9).Add(text.New(value, props.Text{Size: 9, Top: 1})),
	)
}

// productRows: un bloque por categoría con productos.
func productRows(d *dto.VendorDetailResponse, l labels) []core.Row {
	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New(l.products, props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	if len(d.ProductsByCategory) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New(l.none, props.Text{Size: 9, Color: colorGray, Top: 1}),
		)))
	}
	for _, g := range d.ProductsByCategory {
		rows = append(rows, row.New(6).Add(col.New(12).Add(
			text.New(g.Category.Name, props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
		)))
		for _, p := range g.Products {
			rows = append(rows, row.New(5).Add(col.New(12).Add(
				text.New("• "+p.Name, props.Text{Size: 8.5, Left: 4, Top: 0.5}),
			)))
		}
	}
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func joinNames(refs []dto.NamedRef, fallback string) string {
	if len(refs) == 0 {
		return fallback
	}
	names := make([]string, 0, len(refs))
	for _, r := range refs {
		names = append(names, r.Name)
	}
	return strings.Join(names, ", ")
}
