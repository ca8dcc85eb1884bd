package usecase

import (
	"context"

	"github.com/jhoicas/vendor-directory/internal/application/dto"
	"github.com/jhoicas/vendor-directory/internal/domain/repository"
	"github.com/jhoicas/vendor-directory/internal/domain/taxonomy"
)

// VendorTxRunner ejecuta fn dentro de una transacción con un VendorRepository atado a ella.
// El proveedor y sus asociaciones se escriben juntos o no se escriben.
type VendorTxRunner interface {
	RunVendor(ctx context.Context, fn func(repo repository.VendorRepository) error) error
}

// TaxonomyCache guarda el árbol ya construido entre peticiones.
type TaxonomyCache interface {
	Get() (*taxonomy.Tree, bool)
	Set(tree *taxonomy.Tree)
	Invalidate()
}

// SheetGenerator genera la ficha imprimible (PDF) de un proveedor.
type SheetGenerator interface {
	VendorSheet(detail *dto.VendorDetailResponse) ([]byte, error)
}

// Metrics contadores de negocio.
type Metrics interface {
	SelectionToggled(level string)
	VendorsFiltered(matched int)
}

type nopMetrics struct{}

func (nopMetrics) SelectionToggled(string) {}
func (nopMetrics) VendorsFiltered(int)     {}
