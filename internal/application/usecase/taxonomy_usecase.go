package usecase

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/jhoicas/vendor-directory/internal/application/dto"
	"github.com/jhoicas/vendor-directory/internal/domain"
	"github.com/jhoicas/vendor-directory/internal/domain/entity"
	"github.com/jhoicas/vendor-directory/internal/domain/repository"
	"github.com/jhoicas/vendor-directory/internal/domain/taxonomy"
	"github.com/jhoicas/vendor-directory/pkg/logger"
	"github.com/jhoicas/vendor-directory/pkg/validation"
)

// TaxonomyUseCase expone el árbol de la taxonomía y las reglas de selección/expansión.
type TaxonomyUseCase struct {
	repo    repository.TaxonomyRepository
	cache   TaxonomyCache
	metrics Metrics
	log     *logger.Logger
	group   singleflight.Group
}

// NewTaxonomyUseCase construye el caso de uso. metrics puede ser nil.
func NewTaxonomyUseCase(repo repository.TaxonomyRepository, cache TaxonomyCache, metrics Metrics, log *logger.Logger) *TaxonomyUseCase {
	if metrics == nil {
		metrics = nopMetrics{}
	}
	return &TaxonomyUseCase{repo: repo, cache: cache, metrics: metrics, log: log.Component("taxonomy")}
}

// Tree devuelve el árbol desde la caché o lo reconstruye desde el repositorio.
// Las violaciones de integridad se registran como warning y no hacen fallar la carga.
func (uc *TaxonomyUseCase) Tree(ctx context.Context) (*taxonomy.Tree, error) {
	if tree, ok := uc.cache.Get(); ok {
		return tree, nil
	}
	// La carga es compartida: la cancelación de quien la inició no alcanza a los demás.
	v, err, _ := uc.group.Do("tree", func() (interface{}, error) {
		return uc.load(context.WithoutCancel(ctx))
	})
	if err != nil {
		return nil, err
	}
	return v.(*taxonomy.Tree), nil
}

func (uc *TaxonomyUseCase) load(ctx context.Context) (*taxonomy.Tree, error) {
	var (
		categories    []entity.Category
		subcategories []entity.Subcategory
		products      []entity.Product
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		categories, err = uc.repo.ListCategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		subcategories, err = uc.repo.ListSubcategories(gctx)
		return err
	})
	g.Go(func() (err error) {
		products, err = uc.repo.ListProducts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("cargar taxonomía: %w", err)
	}

	tree := taxonomy.NewTree(categories, subcategories, products)
	for _, v := range tree.Violations() {
		uc.log.Warn().Str("kind", v.Kind).Str("id", v.ID).Str("parent_id", v.ParentID).Msg("nodo huérfano excluido del árbol")
	}
	uc.cache.Set(tree)
	uc.log.Info().
		Int("categories", len(categories)).
		Int("subcategories", len(subcategories)).
		Int("products", len(products)).
		Int("violations", len(tree.Violations())).
		Msg("árbol de taxonomía reconstruido")
	return tree, nil
}

// Invalidate descarta el árbol en caché; la siguiente lectura lo reconstruye.
func (uc *TaxonomyUseCase) Invalidate() {
	uc.cache.Invalidate()
	uc.log.Info().Msg("caché de taxonomía invalidada")
}

// GetTree devuelve el árbol con los nombres en el locale indicado.
func (uc *TaxonomyUseCase) GetTree(ctx context.Context, locale string) (*dto.TaxonomyTreeResponse, error) {
	tree, err := uc.Tree(ctx)
	if err != nil {
		return nil, err
	}
	return toTreeResponse(tree, locale), nil
}

// ApplyToggle aplica una marca/desmarca sobre la selección recibida y devuelve el nuevo triple.
// Los ids de la selección de entrada que no existen en el árbol se descartan.
func (uc *TaxonomyUseCase) ApplyToggle(ctx context.Context, in dto.ToggleSelectionRequest) (*dto.Selection, error) {
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	tree, err := uc.Tree(ctx)
	if err != nil {
		return nil, err
	}
	sel := tree.SelectionFrom(toAssignment(in.Selection))
	switch in.Level {
	case dto.LevelCategory:
		sel = tree.ToggleCategory(sel, in.ID, in.Checked)
	case dto.LevelSubcategory:
		sel = tree.ToggleSubcategory(sel, in.ID, in.Checked)
	case dto.LevelProduct:
		sel = tree.ToggleProduct(sel, in.ID, in.Checked)
	default:
		return nil, domain.ErrUnknownSelectionLevel
	}
	uc.metrics.SelectionToggled(in.Level)
	return toSelectionDTO(tree.Assignment(sel)), nil
}

// ToggleExpansion abre o cierra un nodo. No consulta ni modifica la selección.
func (uc *TaxonomyUseCase) ToggleExpansion(in dto.ToggleExpansionRequest) (*dto.ExpansionResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidInput, err.Error())
	}
	e := taxonomy.NewExpansion(in.Expanded...).Toggle(in.NodeID)
	return &dto.ExpansionResponse{Expanded: nonNil(e.IDs())}, nil
}
