package repository

import (
	"context"

	"github.com/jhoicas/vendor-directory/internal/domain/entity"
)

// VendorRepository define el puerto de persistencia para Vendor y sus asociaciones (DIP).
// GetByID y GetWithAssociations devuelven (nil, nil) si el proveedor no existe.
type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByID(ctx context.Context, id string) (*entity.Vendor, error)
	GetWithAssociations(ctx context.Context, id string) (*entity.Vendor, error)
	Update(ctx context.Context, vendor *entity.Vendor) error
	Delete(ctx context.Context, id string) error
	ListWithCategories(ctx context.Context) ([]*entity.Vendor, error)
	GetAssignment(ctx context.Context, vendorID string) (entity.Assignment, error)
	ReplaceAssignment(ctx context.Context, vendorID string, a entity.Assignment) error
}
