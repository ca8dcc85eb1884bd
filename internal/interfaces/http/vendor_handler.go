package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendor-directory/internal/application/dto"
	"github.com/jhoicas/vendor-directory/internal/application/usecase"
	"github.com/jhoicas/vendor-directory/pkg/logger"
)

const vendorNotFound = "proveedor no encontrado"

// VendorHandler maneja las peticiones HTTP del directorio de proveedores.
type VendorHandler struct {
	uc            *usecase.VendorUseCase
	log           *logger.Logger
	defaultLocale string
}

// NewVendorHandler construye el handler. defaultLocale se usa si no hubo negociación.
func NewVendorHandler(uc *usecase.VendorUseCase, log *logger.Logger, defaultLocale string) *VendorHandler {
	return &VendorHandler{uc: uc, log: log.Component("vendor_handler"), defaultLocale: defaultLocale}
}

// List godoc
// @Summary      Buscar proveedores
// @Description  Filtra por nombre (sin distinguir mayúsculas) y por categorías (cualquiera de las indicadas).
// @Tags         vendors
// @Produce      json
// @Param        q            query  string    false  "Texto contenido en el nombre"
// @Param        category_id  query  []string  false  "Ids de categoría (repetido o separado por comas)"  collectionFormat(multi)
// @Param        locale       query  string    false  "Idioma (en, fr, nl)"
// @Success      200          {object}  dto.VendorListResponse
// @Failure      500          {object}  dto.ErrorResponse
// @Router       /api/vendors [get]
func (h *VendorHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.List(c.Context(), c.Query("q"), categoryIDsFromQuery(c), GetLocale(c, h.defaultLocale))
	if err != nil {
		return h.fail(c, err, "listar proveedores")
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Ficha de un proveedor
// @Tags         vendors
// @Produce      json
// @Param        id      path   string  true   "ID del proveedor"
// @Param        locale  query  string  false  "Idioma (en, fr, nl)"
// @Success      200     {object}  dto.VendorDetailResponse
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/vendors/{id} [get]
func (h *VendorHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetDetail(c.Context(), c.Params("id"), GetLocale(c, h.defaultLocale))
	if err != nil {
		return h.fail(c, err, "obtener proveedor")
	}
	return c.JSON(out)
}

// GetSelection godoc
// @Summary      Selección de taxonomía de un proveedor
// @Tags         vendors
// @Produce      json
// @Param        id   path  string  true  "ID del proveedor"
// @Success      200  {object}  dto.Selection
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendors/{id}/selection [get]
func (h *VendorHandler) GetSelection(c *fiber.Ctx) error {
	out, err := h.uc.GetSelection(c.Context(), c.Params("id"))
	if err != nil {
		return h.fail(c, err, "obtener selección")
	}
	return c.JSON(out)
}

// Sheet godoc
// @Summary      Ficha PDF de un proveedor
// @Tags         vendors
// @Produce      application/pdf
// @Param        id      path   string  true   "ID del proveedor"
// @Param        locale  query  string  false  "Idioma (en, fr, nl)"
// @Success      200     {file}    binary
// @Failure      404     {object}  dto.ErrorResponse
// @Router       /api/vendors/{id}/sheet.pdf [get]
func (h *VendorHandler) Sheet(c *fiber.Ctx) error {
	id := c.Params("id")
	pdf, err := h.uc.Sheet(c.Context(), id, GetLocale(c, h.defaultLocale))
	if err != nil {
		return h.fail(c, err, "generar ficha PDF")
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="vendor-`+id+`.pdf"`)
	return c.Send(pdf)
}

// Create godoc
// @Summary      Crear proveedor
// @Tags         vendors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateVendorRequest  true  "Datos del proveedor y su selección"
// @Success      201   {object}  dto.VendorDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/vendors [post]
func (h *VendorHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateVendorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.Context(), in, GetLocale(c, h.defaultLocale))
	if err != nil {
		return h.fail(c, err, "crear proveedor")
	}
	h.log.Info().Str("vendor_id", out.ID).Str("user_id", GetUserID(c)).Str("email", GetEmail(c)).Msg("alta de proveedor")
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar proveedor
// @Tags         vendors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID del proveedor"
// @Param        body  body  dto.UpdateVendorRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.VendorDetailResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vendors/{id} [put]
func (h *VendorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateVendorRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.Context(), c.Params("id"), in, GetLocale(c, h.defaultLocale))
	if err != nil {
		return h.fail(c, err, "actualizar proveedor")
	}
	return c.JSON(out)
}

// ReplaceSelection godoc
// @Summary      Reemplazar la selección de taxonomía de un proveedor
// @Description  Reemplaza categorías, subcategorías y productos en una sola transacción.
// @Tags         vendors
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string         true  "ID del proveedor"
// @Param        body  body  dto.Selection  true  "Nueva selección"
// @Success      200   {object}  dto.Selection
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/vendors/{id}/selection [put]
func (h *VendorHandler) ReplaceSelection(c *fiber.Ctx) error {
	var in dto.Selection
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ReplaceSelection(c.Context(), c.Params("id"), in)
	if err != nil {
		return h.fail(c, err, "reemplazar selección")
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar proveedor
// @Tags         vendors
// @Security     Bearer
// @Param        id   path  string  true  "ID del proveedor"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/vendors/{id} [delete]
func (h *VendorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return h.fail(c, err, "eliminar proveedor")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// fail registra los errores inesperados y responde según el tipo de error.
func (h *VendorHandler) fail(c *fiber.Ctx, err error, op string) error {
	if werr := writeError(c, err, vendorNotFound); werr != nil {
		return werr
	}
	if c.Response().StatusCode() >= fiber.StatusInternalServerError {
		h.log.Error().Err(err).Str("op", op).Msg("error en operación de proveedor")
	}
	return nil
}

// categoryIDsFromQuery acepta ?category_id=a&category_id=b y ?category_id=a,b.
func categoryIDsFromQuery(c *fiber.Ctx) []string {
	var ids []string
	for _, raw := range c.Context().QueryArgs().PeekMulti("category_id") {
		for _, id := range strings.Split(string(raw), ",") {
			if id = strings.TrimSpace(id); id != "" {
				ids = append(ids, id)
			}
		}
	}
	return ids
}
