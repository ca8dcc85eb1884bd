package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vendor-directory/internal/application/dto"
	"github.com/jhoicas/vendor-directory/internal/application/usecase"
	"github.com/jhoicas/vendor-directory/internal/domain/entity"
	"github.com/jhoicas/vendor-directory/internal/infrastructure/observability"
	apphttp "github.com/jhoicas/vendor-directory/internal/interfaces/http"
	tu "github.com/jhoicas/vendor-directory/internal/testutil"
	"github.com/jhoicas/vendor-directory/pkg/i18n"
	"github.com/jhoicas/vendor-directory/pkg/logger"
)

type apiFixture struct {
	app       *fiber.App
	store     *tu.Store
	collector *observability.Collector
}

func newAPI(t *testing.T) *apiFixture {
	t.Helper()
	return newAPIWithLocale(t, "en")
}

func newAPIWithLocale(t *testing.T, defaultLocale string) *apiFixture {
	t.Helper()
	store := tu.NewFixtureStore()
	collector := observability.NewCollector("test")
	log := logger.Nop()
	taxUC := usecase.NewTaxonomyUseCase(store, &tu.TreeCache{}, collector, log)
	vendorUC := usecase.NewVendorUseCase(store, store, taxUC, &tu.SheetStub{}, collector, log)

	app := fiber.New()
	app.Use(apphttp.ObserveMiddleware(log, collector))
	apphttp.Router(app, apphttp.RouterDeps{
		TaxonomyUC: taxUC,
		VendorUC:   vendorUC,
		Verifier:   testVerifier(t),
		Negotiator: i18n.NewNegotiator(defaultLocale),
		Log:        log,
	})
	return &apiFixture{app: app, store: store, collector: collector}
}

func (f *apiFixture) do(t *testing.T, method, target string, body any, headers ...string) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (f *apiFixture) createVendor(t *testing.T, name string, sel dto.Selection) dto.VendorDetailResponse {
	t.Helper()
	resp := f.do(t, http.MethodPost, "/api/vendors", dto.CreateVendorRequest{
		Name: name, Location: "Leuven", ContactEmail: "hallo@example.be", Selection: sel,
	}, "Authorization", tokenForRole(t, entity.RoleAuthenticated))
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	return decode[dto.VendorDetailResponse](t, resp)
}

// ──────────────────────────────────────────────────────────────────────────────
// Taxonomía
// ──────────────────────────────────────────────────────────────────────────────

func TestTaxonomy_TreeLocalizadoPorQuery(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/taxonomy?locale=nl", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nl", resp.Header.Get("Content-Language"))

	out := decode[dto.TaxonomyTreeResponse](t, resp)
	require.Len(t, out.Categories, 3)
	assert.Equal(t, "Bakkerij", out.Categories[0].Name)
	assert.Equal(t, "Fruit", out.Categories[2].Name, "Fruit no tiene nombre NL")
}

func TestTaxonomy_TreeLocalizadoPorAcceptLanguage(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodGet, "/api/taxonomy", nil, "Accept-Language", "fr-BE,fr;q=0.9")

	out := decode[dto.TaxonomyTreeResponse](t, resp)
	assert.Equal(t, "fr", out.Locale)
	assert.Equal(t, "Produits laitiers", out.Categories[1].Name)
}

func TestTaxonomy_TreeUsaLocalePorDefectoConfigurado(t *testing.T) {
	f := newAPIWithLocale(t, "nl")
	resp := f.do(t, http.MethodGet, "/api/taxonomy", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "nl", resp.Header.Get("Content-Language"))

	out := decode[dto.TaxonomyTreeResponse](t, resp)
	assert.Equal(t, "nl", out.Locale)
	assert.Equal(t, "Zuivel", out.Categories[1].Name)
}

func TestGetLocale_SinMiddlewareUsaFallback(t *testing.T) {
	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error {
		return c.SendString(apphttp.GetLocale(c, "fr"))
	})
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/", nil), -1)
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, "fr", string(body))
}

func TestTaxonomy_InvalidarCacheSoloServiceRole(t *testing.T) {
	f := newAPI(t)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/taxonomy", nil).StatusCode)
	require.Equal(t, 1, f.store.TaxonomyLoads)

	resp := f.do(t, http.MethodPost, "/api/taxonomy/cache/invalidate", nil)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	resp = f.do(t, http.MethodPost, "/api/taxonomy/cache/invalidate", nil,
		"Authorization", tokenForRole(t, entity.RoleAuthenticated))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = f.do(t, http.MethodPost, "/api/taxonomy/cache/invalidate", nil,
		"Authorization", tokenForRole(t, entity.RoleServiceRole))
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	require.Equal(t, http.StatusOK, f.do(t, http.MethodGet, "/api/taxonomy", nil).StatusCode)
	assert.Equal(t, 2, f.store.TaxonomyLoads, "la siguiente lectura reconstruye el árbol")
}

func TestTaxonomy_ToggleSelection(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/taxonomy/selection/toggle", dto.ToggleSelectionRequest{
		Selection: dto.Selection{
			CategoryIDs:    []string{tu.CatFruit},
			SubcategoryIDs: []string{tu.SubApples, tu.SubBerries},
			ProductIDs:     []string{tu.ProdElstar, tu.ProdJonagold, tu.ProdStrawberry},
		},
		Level:   dto.LevelSubcategory,
		ID:      tu.SubBerries,
		Checked: false,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[dto.Selection](t, resp)
	assert.Equal(t, []string{}, out.CategoryIDs, "desmarcar una subcategoría quita la categoría")
	assert.Equal(t, []string{tu.SubApples}, out.SubcategoryIDs)
	assert.Equal(t, []string{tu.ProdElstar, tu.ProdJonagold}, out.ProductIDs)
	assert.Equal(t, 1.0, testutil.ToFloat64(f.collector.SelectionToggles.WithLabelValues("subcategory")))
}

func TestTaxonomy_ToggleSelectionErrores(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/taxonomy/selection/toggle", "{no-json")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", decode[dto.ErrorResponse](t, resp).Code)

	resp = f.do(t, http.MethodPost, "/api/taxonomy/selection/toggle", map[string]any{"level": "vendor", "id": "x"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Contains(t, errBody.Message, "level")
}

func TestTaxonomy_ToggleExpansion(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/taxonomy/expansion/toggle", dto.ToggleExpansionRequest{
		Expanded: []string{tu.CatFruit},
		NodeID:   tu.SubApples,
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decode[dto.ExpansionResponse](t, resp)
	assert.ElementsMatch(t, []string{tu.CatFruit, tu.SubApples}, out.Expanded)
}

// ──────────────────────────────────────────────────────────────────────────────
// Proveedores
// ──────────────────────────────────────────────────────────────────────────────

func TestVendors_EscrituraRequiereToken(t *testing.T) {
	f := newAPI(t)

	resp := f.do(t, http.MethodPost, "/api/vendors", dto.CreateVendorRequest{Name: "X"})
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, "/api/vendors/6ba7b810-9dad-11d1-80b4-00c04fd430c8", nil,
		"Authorization", tokenForRole(t, "anon"))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, f.store.VendorCount())
}

func TestVendors_CreateValidacion(t *testing.T) {
	f := newAPI(t)
	resp := f.do(t, http.MethodPost, "/api/vendors", dto.CreateVendorRequest{Name: "Sin contacto", Location: "Gent"},
		"Authorization", tokenForRole(t, entity.RoleAuthenticated))

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	errBody := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "VALIDATION", errBody.Code)
	assert.Contains(t, errBody.Message, "contact_email es requerido")
}

func TestVendors_CreateYDetalle(t *testing.T) {
	f := newAPI(t)
	created := f.createVendor(t, "Kaasboerderij", dto.Selection{
		CategoryIDs:    []string{tu.CatDairy},
		SubcategoryIDs: []string{tu.SubCheese},
		ProductIDs:     []string{tu.ProdPassendale},
	})

	resp := f.do(t, http.MethodGet, "/api/vendors/"+created.ID+"?locale=nl", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	out := decode[dto.VendorDetailResponse](t, resp)
	assert.Equal(t, "Kaasboerderij", out.Name)
	assert.Equal(t, "Zuivel", out.Categories[0].Name)
	assert.Equal(t, "Kaas", out.Subcategories[0].Name)
	require.Len(t, out.ProductsByCategory, 1)
	assert.Equal(t, "Passendale", out.ProductsByCategory[0].Products[0].Name)
}

func TestVendors_DetalleNoEncontrado(t *testing.T) {
	f := newAPI(t)

	for _, id := range []string{"6ba7b810-9dad-11d1-80b4-00c04fd430c8", "no-es-uuid"} {
		resp := f.do(t, http.MethodGet, "/api/vendors/"+id, nil)
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decode[dto.ErrorResponse](t, resp).Code)
	}
}

func TestVendors_ListFiltros(t *testing.T) {
	f := newAPI(t)
	f.createVendor(t, "Ferme Bio des Chênes", dto.Selection{CategoryIDs: []string{tu.CatFruit}})
	f.createVendor(t, "BioMarkt", dto.Selection{CategoryIDs: []string{tu.CatDairy}})
	f.createVendor(t, "Bakkerij Peeters", dto.Selection{CategoryIDs: []string{tu.CatBakery}})

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{name: "sin filtros", query: "", want: []string{"Bakkerij Peeters", "BioMarkt", "Ferme Bio des Chênes"}},
		{name: "nombre", query: "?q=bio", want: []string{"BioMarkt", "Ferme Bio des Chênes"}},
		{name: "mayúsculas acentuadas", query: "?q=CH%C3%8ANES", want: []string{"Ferme Bio des Chênes"}},
		{name: "categorías repetidas", query: "?category_id=" + tu.CatDairy + "&category_id=" + tu.CatBakery, want: []string{"Bakkerij Peeters", "BioMarkt"}},
		{name: "categorías separadas por coma", query: "?category_id=" + tu.CatDairy + "," + tu.CatFruit, want: []string{"BioMarkt", "Ferme Bio des Chênes"}},
		{name: "nombre y categoría", query: "?q=bio&category_id=" + tu.CatDairy, want: []string{"BioMarkt"}},
		{name: "sin resultados", query: "?q=zzz", want: []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := f.do(t, http.MethodGet, "/api/vendors"+tt.query, nil)
			require.Equal(t, http.StatusOK, resp.StatusCode)
			out := decode[dto.VendorListResponse](t, resp)
			names := make([]string, 0, len(out.Items))
			for _, v := range out.Items {
				names = append(names, v.Name)
			}
			assert.Equal(t, tt.want, names)
			assert.Equal(t, len(tt.want), out.Total)
		})
	}
}

func TestVendors_UpdateYSeleccion(t *testing.T) {
	f := newAPI(t)
	created := f.createVendor(t, "Boomgaard", dto.Selection{CategoryIDs: []string{tu.CatFruit}})
	auth := tokenForRole(t, entity.RoleAuthenticated)

	resp := f.do(t, http.MethodPut, "/api/vendors/"+created.ID, map[string]string{"location": "Sint-Truiden"}, "Authorization", auth)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "Sint-Truiden", decode[dto.VendorDetailResponse](t, resp).Location)

	resp = f.do(t, http.MethodPut, "/api/vendors/"+created.ID+"/selection", dto.Selection{
		SubcategoryIDs: []string{tu.SubBerries},
		ProductIDs:     []string{tu.ProdStrawberry},
	}, "Authorization", auth)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = f.do(t, http.MethodGet, "/api/vendors/"+created.ID+"/selection", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	sel := decode[dto.Selection](t, resp)
	assert.Equal(t, []string{}, sel.CategoryIDs)
	assert.Equal(t, []string{tu.SubBerries}, sel.SubcategoryIDs)
	assert.Equal(t, []string{tu.ProdStrawberry}, sel.ProductIDs)
}

func TestVendors_Delete(t *testing.T) {
	f := newAPI(t)
	created := f.createVendor(t, "Tijdelijk", dto.Selection{})
	auth := tokenForRole(t, entity.RoleAuthenticated)

	resp := f.do(t, http.MethodDelete, "/api/vendors/"+created.ID, nil, "Authorization", auth)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = f.do(t, http.MethodDelete, "/api/vendors/"+created.ID, nil, "Authorization", auth)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestVendors_SheetPDF(t *testing.T) {
	f := newAPI(t)
	created := f.createVendor(t, "Drukbaar", dto.Selection{})

	resp := f.do(t, http.MethodGet, "/api/vendors/"+created.ID+"/sheet.pdf", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))
}

func TestObserveMiddleware_RegistraRuta(t *testing.T) {
	f := newAPI(t)
	f.do(t, http.MethodGet, "/api/taxonomy", nil)

	assert.Equal(t, 1.0, testutil.ToFloat64(f.collector.HTTPRequests.WithLabelValues("GET", "/api/taxonomy", "200")))
}
