package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"dermayooth-storefront/internal/domain"
	"dermayooth-storefront/internal/order"
	cartrepo "dermayooth-storefront/internal/repository/cart"
	cartsvc "dermayooth-storefront/internal/service/cart"
	sessionsvc "dermayooth-storefront/internal/service/session"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubProductService struct {
	products []domain.Product
	err      error
	filter   domain.ProductFilter
}

func (s *stubProductService) List(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	s.filter = filter
	return s.products, s.err
}

func (s *stubProductService) Get(_ context.Context, id string) (*domain.Product, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, p := range s.products {
		if p.ID == id {
			p := p
			return &p, nil
		}
	}
	return nil, domain.ErrNotFound
}

type stubCategoryService struct {
	categories []domain.Category
	err        error
}

func (s *stubCategoryService) List(context.Context) ([]domain.Category, error) {
	return s.categories, s.err
}

func testProducts() []domain.Product {
	return []domain.Product{
		{ID: "serum", Name: "Vitamin C Serum", Price: "₹1,499", Category: "Serums", Status: domain.ProductStatusActive, Images: []string{"/serum.jpg"}, Featured: true},
		{ID: "toner", Name: "Rose Toner", Price: "₹899", Category: "Toners", Status: domain.ProductStatusActive},
	}
}

type testEnv struct {
	router   *gin.Engine
	products *stubProductService
	storage  *cartrepo.Memory
	cookie   *http.Cookie
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	products := &stubProductService{products: testProducts()}
	storage := cartrepo.NewMemory()
	router, err := buildRouter(zap.NewNop(), Deps{
		ProductSvc:  products,
		CategorySvc: &stubCategoryService{categories: []domain.Category{{Name: "Serums", Slug: "serums", ProductCount: 1}}},
		CartSvc:     cartsvc.New(storage, "", products, nil),
		OrderSvc:    order.NewService(order.Config{OrdersPhone: "918169290667", ProductPhone: "918655072352"}, nil),
		SessionSvc:  sessionsvc.New(0),
	}, Options{})
	if err != nil {
		t.Fatalf("build router: %v", err)
	}
	return &testEnv{router: router, products: products, storage: storage}
}

// do sends a request, carrying the session cookie between calls like a browser.
func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if e.cookie != nil {
		req.AddCookie(e.cookie)
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)

	for _, c := range rec.Result().Cookies() {
		if c.Name == sessionCookieName {
			e.cookie = c
		}
	}
	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(rec.Body.Bytes(), &out); err != nil {
		t.Fatalf("unmarshal body %s: %v", rec.Body.String(), err)
	}
	return out
}

func TestBuildRouter_RequiresServices(t *testing.T) {
	gin.SetMode(gin.TestMode)
	if _, err := buildRouter(zap.NewNop(), Deps{}, Options{}); err == nil {
		t.Fatalf("expected error for missing services")
	}
}

func TestHealthAndReady(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodGet, "/readyz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ready without checks, got %d", rec.Code)
	}
}

func TestReadyHandler_FailingCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/readyz", readyHandler(map[string]ReadinessCheck{
		"redis": func(context.Context) error { return errors.New("connection refused") },
	}, zap.NewNop()))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "redis not reachable") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodGet, "/products", "")

	rec := env.do(t, http.MethodGet, "/metrics", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `http_requests_total{method="GET",path="/products",status="200"}`) {
		t.Fatalf("request counter missing from metrics output")
	}
}

func TestSessionCookie_IssuedAndReused(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, http.MethodGet, "/cart", "")
	if env.cookie == nil {
		t.Fatalf("expected session cookie")
	}
	first := env.cookie.Value
	if !env.cookie.HttpOnly {
		t.Fatalf("session cookie must be HttpOnly")
	}

	env.do(t, http.MethodGet, "/cart", "")
	if env.cookie.Value != first {
		t.Fatalf("session should be reused, got %s then %s", first, env.cookie.Value)
	}

	env.cookie = &http.Cookie{Name: sessionCookieName, Value: "not-a-uuid"}
	env.do(t, http.MethodGet, "/cart", "")
	if env.cookie.Value == "not-a-uuid" || env.cookie.Value == first {
		t.Fatalf("invalid session should be replaced, got %s", env.cookie.Value)
	}
}

func TestCORSPreflight(t *testing.T) {
	env := newTestEnv(t)

	req := httptest.NewRequest(http.MethodOptions, "/cart/items", nil)
	req.Header.Set("Origin", "https://dermayooth.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("unexpected allow origin %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}
}
