package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/vendor-directory/internal/application/usecase"
	"github.com/jhoicas/vendor-directory/internal/domain/repository"
)

var _ usecase.VendorTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunVendor inicia una transacción, ejecuta fn con un VendorRepository atado a la tx y hace Commit o Rollback.
// El alta del proveedor y sus tres conjuntos de asociaciones se confirman juntos o no se confirman.
func (r *TxRunner) RunVendor(ctx context.Context, fn func(repo repository.VendorRepository) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(NewVendorRepository(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
