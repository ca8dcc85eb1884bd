package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendor-directory/internal/application/dto"
	"github.com/jhoicas/vendor-directory/internal/application/usecase"
)

// TaxonomyHandler expone el árbol y las reglas de selección (público).
type TaxonomyHandler struct {
	uc            *usecase.TaxonomyUseCase
	defaultLocale string
}

// NewTaxonomyHandler construye el handler. defaultLocale se usa si no hubo negociación.
func NewTaxonomyHandler(uc *usecase.TaxonomyUseCase, defaultLocale string) *TaxonomyHandler {
	return &TaxonomyHandler{uc: uc, defaultLocale: defaultLocale}
}

// Tree godoc
// @Summary      Árbol de la taxonomía
// @Tags         taxonomy
// @Produce      json
// @Param        locale  query  string  false  "Idioma (en, fr, nl)"
// @Success      200     {object}  dto.TaxonomyTreeResponse
// @Failure      500     {object}  dto.ErrorResponse
// @Router       /api/taxonomy [get]
func (h *TaxonomyHandler) Tree(c *fiber.Ctx) error {
	out, err := h.uc.GetTree(c.Context(), GetLocale(c, h.defaultLocale))
	if err != nil {
		return writeError(c, err, "taxonomía no encontrada")
	}
	return c.JSON(out)
}

// ToggleSelection godoc
// @Summary      Marcar o desmarcar un nodo de la taxonomía
// @Description  Aplica las reglas de cascada (categoría, subcategoría, producto) sobre la selección enviada.
// @Tags         taxonomy
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ToggleSelectionRequest  true  "Selección actual y nodo"
// @Success      200   {object}  dto.Selection
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/taxonomy/selection/toggle [post]
func (h *TaxonomyHandler) ToggleSelection(c *fiber.Ctx) error {
	var in dto.ToggleSelectionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ApplyToggle(c.Context(), in)
	if err != nil {
		return writeError(c, err, "taxonomía no encontrada")
	}
	return c.JSON(out)
}

// ToggleExpansion godoc
// @Summary      Abrir o cerrar un nodo del árbol
// @Tags         taxonomy
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ToggleExpansionRequest  true  "Nodos expandidos y nodo"
// @Success      200   {object}  dto.ExpansionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/taxonomy/expansion/toggle [post]
func (h *TaxonomyHandler) ToggleExpansion(c *fiber.Ctx) error {
	var in dto.ToggleExpansionRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ToggleExpansion(in)
	if err != nil {
		return writeError(c, err, "")
	}
	return c.JSON(out)
}

// InvalidateCache godoc
// @Summary      Descartar el árbol en caché
// @Description  Tras cargar o migrar la taxonomía; la siguiente lectura la reconstruye desde la base de datos.
// @Tags         taxonomy
// @Security     Bearer
// @Success      204
// @Failure      401  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /api/taxonomy/cache/invalidate [post]
func (h *TaxonomyHandler) InvalidateCache(c *fiber.Ctx) error {
	h.uc.Invalidate()
	return c.SendStatus(fiber.StatusNoContent)
}
