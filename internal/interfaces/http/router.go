package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/vendor-directory/internal/application/usecase"
	"github.com/jhoicas/vendor-directory/internal/domain/entity"
	"github.com/jhoicas/vendor-directory/pkg/i18n"
	"github.com/jhoicas/vendor-directory/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	TaxonomyUC *usecase.TaxonomyUseCase
	VendorUC   *usecase.VendorUseCase
	Verifier   TokenVerifier
	Negotiator *i18n.Negotiator
	Log        *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", LocaleMiddleware(deps.Negotiator))

	// Taxonomía (público)
	defaultLocale := deps.Negotiator.Default()
	taxonomyHandler := NewTaxonomyHandler(deps.TaxonomyUC, defaultLocale)
	tax := api.Group("/taxonomy")
	tax.Get("", taxonomyHandler.Tree)
	tax.Post("/selection/toggle", taxonomyHandler.ToggleSelection)
	tax.Post("/expansion/toggle", taxonomyHandler.ToggleExpansion)
	// La taxonomía se carga por migraciones; solo service_role puede forzar la recarga.
	tax.Post("/cache/invalidate",
		AuthMiddleware(deps.Verifier), RequireRole(entity.RoleServiceRole), taxonomyHandler.InvalidateCache)

	// Proveedores: lectura pública
	vendorHandler := NewVendorHandler(deps.VendorUC, deps.Log, defaultLocale)
	vendors := api.Group("/vendors")
	vendors.Get("", vendorHandler.List)
	vendors.Get("/:id", vendorHandler.GetByID)
	vendors.Get("/:id/selection", vendorHandler.GetSelection)
	vendors.Get("/:id/sheet.pdf", vendorHandler.Sheet)

	// Proveedores: escritura protegida (Bearer Token de Supabase, rol authenticated)
	auth := []fiber.Handler{AuthMiddleware(deps.Verifier), RequireRole(entity.RoleAuthenticated, entity.RoleServiceRole)}
	vendors.Post("", append(auth, vendorHandler.Create)...)
	vendors.Put("/:id", append(auth, vendorHandler.Update)...)
	vendors.Put("/:id/selection", append(auth, vendorHandler.ReplaceSelection)...)
	vendors.Delete("/:id", append(auth, vendorHandler.Delete)...)
}
