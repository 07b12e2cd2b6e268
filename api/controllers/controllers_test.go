package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/angelmondragon/storefront-backend/internal/auth"
	checkoutsvc "github.com/angelmondragon/storefront-backend/internal/checkout"
	ordersvc "github.com/angelmondragon/storefront-backend/internal/orders"
	productsvc "github.com/angelmondragon/storefront-backend/internal/products"
	"github.com/angelmondragon/storefront-backend/internal/repo"
	tagsvc "github.com/angelmondragon/storefront-backend/internal/tags"
	tipsvc "github.com/angelmondragon/storefront-backend/internal/tips"
	"github.com/angelmondragon/storefront-backend/pkg/db/models"
	"github.com/angelmondragon/storefront-backend/pkg/enums"
	pkgerrors "github.com/angelmondragon/storefront-backend/pkg/errors"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: logger.ParseLevel("debug"), Output: io.Discard})
}

func withParams(req *http.Request, params map[string]string) *http.Request {
	routeCtx := chi.NewRouteContext()
	for k, v := range params {
		routeCtx.URLParams.Add(k, v)
	}
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, routeCtx))
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return env
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealth(t *testing.T) {
	logg := testLogger()

	rec := httptest.NewRecorder()
	Health(stubPinger{}, logg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	Health(stubPinger{err: errors.New("down")}, logg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when database is down, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	HealthReady(stubPinger{}, stubPinger{err: errors.New("down")}, logg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 when redis is down, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	HealthReady(stubPinger{}, nil, logg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 without redis, got %d", rec.Code)
	}
}

type stubAuthService struct {
	got auth.LoginRequest
	err error
}

func (s *stubAuthService) AdminLogin(_ context.Context, req auth.LoginRequest) (*auth.LoginResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &auth.LoginResponse{Token: "signed"}, nil
}

func TestAdminLogin(t *testing.T) {
	logg := testLogger()

	t.Run("success", func(t *testing.T) {
		stub := &stubAuthService{}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(`{"password":"secret"}`))
		rec := httptest.NewRecorder()
		AdminLogin(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if stub.got.Password != "secret" {
			t.Fatalf("password not forwarded: %q", stub.got.Password)
		}
		var data auth.LoginResponse
		if err := json.Unmarshal(decode(t, rec).Data, &data); err != nil {
			t.Fatalf("decode login: %v", err)
		}
		if data.Token != "signed" {
			t.Fatalf("unexpected token %q", data.Token)
		}
	})

	t.Run("missing password", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		AdminLogin(&stubAuthService{}, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		stub := &stubAuthService{err: pkgerrors.New(pkgerrors.CodeUnauthorized, "invalid credentials")}
		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/login", strings.NewReader(`{"password":"nope"}`))
		rec := httptest.NewRecorder()
		AdminLogin(stub, logg).ServeHTTP(rec, req)
		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d", rec.Code)
		}
	})
}

type stubProductService struct {
	productsvc.Service
	listFilter  productsvc.ListFilter
	reordered   []repo.OrderUpdate
	created     productsvc.Input
	varUpdate   productsvc.VariationUpdateInput
	deletedLang string
	product     *models.Product
	err         error
}

func (s *stubProductService) List(_ context.Context, filter productsvc.ListFilter) ([]models.Product, error) {
	s.listFilter = filter
	if s.err != nil {
		return nil, s.err
	}
	return []models.Product{*s.product}, nil
}

func (s *stubProductService) GetActive(context.Context, uint) (*models.Product, error) {
	return s.product, s.err
}

func (s *stubProductService) Create(_ context.Context, input productsvc.Input) (*models.Product, error) {
	s.created = input
	return s.product, s.err
}

func (s *stubProductService) Reorder(_ context.Context, updates []repo.OrderUpdate) error {
	s.reordered = updates
	return s.err
}

func (s *stubProductService) UpdateVariation(_ context.Context, _, _ uint, input productsvc.VariationUpdateInput) (*models.Product, error) {
	s.varUpdate = input
	return s.product, s.err
}

func (s *stubProductService) DeleteTranslation(_ context.Context, _ uint, language string) (*models.Product, error) {
	s.deletedLang = language
	return s.product, s.err
}

func sampleProduct() *models.Product {
	return &models.Product{
		ID:       3,
		Name:     "Deep clean",
		Price:    decimal.RequireFromString("12.5"),
		IsActive: true,
		Type:     enums.ProductTypeService,
		Translations: []models.ProductTranslation{
			{Language: "es", Name: "Limpieza profunda"},
		},
	}
}

func TestPublicListProducts(t *testing.T) {
	logg := testLogger()
	stub := &stubProductService{product: sampleProduct()}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?type=service&search=clean&tag_ids=1,2&language=ES", nil)
	rec := httptest.NewRecorder()
	PublicListProducts(stub, logg).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !stub.listFilter.ActiveOnly {
		t.Fatal("public listing must be restricted to active products")
	}
	if stub.listFilter.Type == nil || *stub.listFilter.Type != enums.ProductTypeService {
		t.Fatalf("type filter not parsed: %+v", stub.listFilter.Type)
	}
	if stub.listFilter.Search != "clean" || len(stub.listFilter.TagIDs) != 2 {
		t.Fatalf("unexpected filter %+v", stub.listFilter)
	}

	var rows []productsvc.ProductDTO
	if err := json.Unmarshal(decode(t, rec).Data, &rows); err != nil {
		t.Fatalf("decode products: %v", err)
	}
	if len(rows) != 1 || rows[0].Name != "Limpieza profunda" || rows[0].Price != "12.50" {
		t.Fatalf("unexpected products %+v", rows)
	}
	if rows[0].Translations != nil {
		t.Fatal("public products must not expose translations")
	}
}

func TestPublicListProductsRejectsUnknownType(t *testing.T) {
	stub := &stubProductService{product: sampleProduct()}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/products?type=gadget", nil)
	rec := httptest.NewRecorder()
	PublicListProducts(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestPublicGetProductNotFound(t *testing.T) {
	stub := &stubProductService{err: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	req := withParams(httptest.NewRequest(http.MethodGet, "/api/v1/products/9", nil), map[string]string{"id": "9"})
	rec := httptest.NewRecorder()
	PublicGetProduct(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}

	req = withParams(httptest.NewRequest(http.MethodGet, "/api/v1/products/abc", nil), map[string]string{"id": "abc"})
	rec = httptest.NewRecorder()
	PublicGetProduct(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for a non-numeric id, got %d", rec.Code)
	}
}

func TestAdminCreateProduct(t *testing.T) {
	stub := &stubProductService{product: sampleProduct()}
	body := `{"name":"Deep clean","price":"12.50","type":"service"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", strings.NewReader(body))
	rec := httptest.NewRecorder()
	AdminCreateProduct(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}
	if !stub.created.Price.Equal(decimal.RequireFromString("12.5")) || stub.created.Type != enums.ProductTypeService {
		t.Fatalf("unexpected input %+v", stub.created)
	}

	var dto productsvc.ProductDTO
	if err := json.Unmarshal(decode(t, rec).Data, &dto); err != nil {
		t.Fatalf("decode product: %v", err)
	}
	if dto.Name != "Deep clean" || len(dto.Translations) != 1 {
		t.Fatalf("admin product should keep base name and translations: %+v", dto)
	}
}

func TestAdminCreateProductRejectsBadType(t *testing.T) {
	stub := &stubProductService{product: sampleProduct()}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/products", strings.NewReader(`{"name":"x","price":"1","type":"gadget"}`))
	rec := httptest.NewRecorder()
	AdminCreateProduct(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminReorderProducts(t *testing.T) {
	stub := &stubProductService{product: sampleProduct()}
	body := `{"items":[{"id":3,"order":1},{"id":4,"order":0}]}`
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/admin/products/reorder", strings.NewReader(body))
	rec := httptest.NewRecorder()
	AdminReorderProducts(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if len(stub.reordered) != 2 || stub.reordered[0].ID != 3 || stub.reordered[0].Order != 1 {
		t.Fatalf("unexpected updates %+v", stub.reordered)
	}
	if stub.listFilter.ActiveOnly {
		t.Fatal("reorder response must list inactive products too")
	}
}

func TestAdminUpdateVariationPriceNull(t *testing.T) {
	stub := &stubProductService{product: sampleProduct()}
	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/products/3/variations/5", strings.NewReader(`{"price":null}`))
	req = withParams(req, map[string]string{"id": "3", "vid": "5"})
	rec := httptest.NewRecorder()
	AdminUpdateVariation(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !stub.varUpdate.Price.Set || stub.varUpdate.Price.Price.Valid {
		t.Fatalf("explicit null should clear the override: %+v", stub.varUpdate.Price)
	}
}

func TestAdminDeleteProductTranslationLanguage(t *testing.T) {
	stub := &stubProductService{product: sampleProduct()}
	req := httptest.NewRequest(http.MethodDelete, "/api/v1/admin/products/3/translations/ES", nil)
	req = withParams(req, map[string]string{"id": "3", "language": "ES"})
	rec := httptest.NewRecorder()
	AdminDeleteProductTranslation(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.deletedLang != "es" {
		t.Fatalf("language should be normalized, got %q", stub.deletedLang)
	}
}

type stubTagService struct {
	tagsvc.Service
	filter   tagsvc.ListFilter
	assigned []uint
	kind     enums.EntityKind
	err      error
}

func (s *stubTagService) List(_ context.Context, filter tagsvc.ListFilter) ([]models.Tag, error) {
	s.filter = filter
	return []models.Tag{{ID: 1, Label: "Eco", Translations: []models.TagTranslation{{Language: "es", Label: "Ecológico"}}}}, nil
}

func (s *stubTagService) Assign(_ context.Context, kind enums.EntityKind, entityID, tagID uint) error {
	s.kind = kind
	s.assigned = []uint{entityID, tagID}
	return s.err
}

func (s *stubTagService) EntityTags(context.Context, enums.EntityKind, uint) ([]models.Tag, error) {
	return []models.Tag{{ID: 1, Label: "Eco"}}, nil
}

func TestPublicListTags(t *testing.T) {
	stub := &stubTagService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tags?type=product&language=es", nil)
	rec := httptest.NewRecorder()
	PublicListTags(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.filter.ProductType == nil || *stub.filter.ProductType != enums.ProductTypeProduct {
		t.Fatalf("product type filter missing: %+v", stub.filter)
	}
	var rows []tagsvc.TagDTO
	if err := json.Unmarshal(decode(t, rec).Data, &rows); err != nil {
		t.Fatalf("decode tags: %v", err)
	}
	if len(rows) != 1 || rows[0].Label != "Ecológico" {
		t.Fatalf("unexpected tags %+v", rows)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/v1/tags?type=product&tip_type=business", nil)
	rec = httptest.NewRecorder()
	PublicListTags(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for combined filters, got %d", rec.Code)
	}
}

func TestAdminAssignTag(t *testing.T) {
	stub := &stubTagService{}
	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/tags/tips/4", strings.NewReader(`{"tag_id":1}`))
	req = withParams(req, map[string]string{"id": "4"})
	rec := httptest.NewRecorder()
	AdminAssignTag(stub, enums.EntityKindTip, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.kind != enums.EntityKindTip || stub.assigned[0] != 4 || stub.assigned[1] != 1 {
		t.Fatalf("unexpected assignment %s %v", stub.kind, stub.assigned)
	}

	stub = &stubTagService{err: pkgerrors.New(pkgerrors.CodeNotFound, "tag not found")}
	req = httptest.NewRequest(http.MethodPost, "/api/v1/admin/tags/tips/4", strings.NewReader(`{"tag_id":99}`))
	req = withParams(req, map[string]string{"id": "4"})
	rec = httptest.NewRecorder()
	AdminAssignTag(stub, enums.EntityKindTip, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

type stubTipService struct {
	tipsvc.Service
	filter tipsvc.ListFilter
}

func (s *stubTipService) List(_ context.Context, filter tipsvc.ListFilter) ([]models.Tip, error) {
	s.filter = filter
	return nil, nil
}

func TestListTipsActiveScope(t *testing.T) {
	stub := &stubTipService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/tips?tip_type=business&tag_ids=3", nil)
	rec := httptest.NewRecorder()
	PublicListTips(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !stub.filter.ActiveOnly || stub.filter.TipType == nil || len(stub.filter.TagIDs) != 1 {
		t.Fatalf("unexpected public filter %+v", stub.filter)
	}

	rec = httptest.NewRecorder()
	AdminListTips(stub, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/tips", nil))
	if stub.filter.ActiveOnly {
		t.Fatal("admin listing must include inactive tips")
	}
}

type stubCheckoutService struct {
	input checkoutsvc.Input
	order *models.Order
	err   error
}

func (s *stubCheckoutService) Checkout(_ context.Context, input checkoutsvc.Input) (*models.Order, error) {
	s.input = input
	return s.order, s.err
}

func TestCheckout(t *testing.T) {
	order := &models.Order{
		ID:     "01JA2B3C4D5E6F7G8H9J0KMNPQ",
		Status: enums.OrderStatusConfirmed,
		Total:  decimal.RequireFromString("27.48"),
	}

	t.Run("created", func(t *testing.T) {
		stub := &stubCheckoutService{order: order}
		body := `{"cart_token":"01JA2B3C4D5E6F7G8H9J0KMNPQ","notes":"  ring twice  "}`
		rec := httptest.NewRecorder()
		Checkout(stub, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(body)))
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
		}
		if stub.input.Notes == nil || *stub.input.Notes != "ring twice" {
			t.Fatalf("notes not sanitized: %v", stub.input.Notes)
		}
		var dto ordersvc.OrderDTO
		if err := json.Unmarshal(decode(t, rec).Data, &dto); err != nil {
			t.Fatalf("decode order: %v", err)
		}
		if dto.ID != order.ID || dto.Total != "27.48" || dto.Status != enums.OrderStatusConfirmed {
			t.Fatalf("unexpected order %+v", dto)
		}
	})

	t.Run("empty cart", func(t *testing.T) {
		stub := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeInvalidInput, "cart is empty")}
		rec := httptest.NewRecorder()
		Checkout(stub, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{"cart_token":"x"}`)))
		if rec.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rec.Code)
		}
		if msg := decode(t, rec).Error.Message; msg != "cart is empty" {
			t.Fatalf("unexpected message %q", msg)
		}
	})

	t.Run("missing token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		Checkout(&stubCheckoutService{}, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/orders", strings.NewReader(`{}`)))
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", rec.Code)
		}
	})
}

type stubOrderService struct {
	ordersvc.Service
	filter ordersvc.ListFilter
	status enums.OrderStatus
	label  string
	err    error
}

func (s *stubOrderService) List(_ context.Context, filter ordersvc.ListFilter) ([]models.Order, error) {
	s.filter = filter
	return nil, s.err
}

func (s *stubOrderService) UpdateStatus(_ context.Context, id string, next enums.OrderStatus) (*models.Order, error) {
	s.status = next
	if s.err != nil {
		return nil, s.err
	}
	return &models.Order{ID: id, Status: next}, nil
}

func (s *stubOrderService) SetLabel(_ context.Context, id, label string) (*models.Order, error) {
	s.label = label
	return &models.Order{ID: id}, s.err
}

func TestAdminListOrdersStatusFilter(t *testing.T) {
	stub := &stubOrderService{}
	rec := httptest.NewRecorder()
	AdminListOrders(stub, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders?status=processed", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.filter.Status == nil || *stub.filter.Status != enums.OrderStatusProcessed {
		t.Fatalf("status filter not parsed: %+v", stub.filter)
	}
	var rows []ordersvc.OrderDTO
	if err := json.Unmarshal(decode(t, rec).Data, &rows); err != nil {
		t.Fatalf("decode orders: %v", err)
	}
	if rows == nil {
		t.Fatal("empty listing should encode as an array")
	}

	rec = httptest.NewRecorder()
	AdminListOrders(stub, testLogger()).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/admin/orders?status=shipped", nil))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAdminUpdateOrderStatus(t *testing.T) {
	id := "01JA2B3C4D5E6F7G8H9J0KMNPQ"

	stub := &stubOrderService{}
	req := withParams(httptest.NewRequest(http.MethodPatch, "/api/v1/admin/orders/"+id+"/status", strings.NewReader(`{"status":"processed"}`)), map[string]string{"id": id})
	rec := httptest.NewRecorder()
	AdminUpdateOrderStatus(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if stub.status != enums.OrderStatusProcessed {
		t.Fatalf("unexpected status %q", stub.status)
	}

	stub = &stubOrderService{err: pkgerrors.New(pkgerrors.CodeInvalidInput, "invalid status transition")}
	req = withParams(httptest.NewRequest(http.MethodPatch, "/api/v1/admin/orders/"+id+"/status", strings.NewReader(`{"status":"confirmed"}`)), map[string]string{"id": id})
	rec = httptest.NewRecorder()
	AdminUpdateOrderStatus(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
}

func TestAdminUpdateOrderLabelNullClears(t *testing.T) {
	id := "01JA2B3C4D5E6F7G8H9J0KMNPQ"
	stub := &stubOrderService{label: "unchanged"}
	req := withParams(httptest.NewRequest(http.MethodPatch, "/api/v1/admin/orders/"+id, strings.NewReader(`{"label":null}`)), map[string]string{"id": id})
	rec := httptest.NewRecorder()
	AdminUpdateOrder(stub, testLogger()).ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if stub.label != "" {
		t.Fatalf("null label should clear, got %q", stub.label)
	}
}
