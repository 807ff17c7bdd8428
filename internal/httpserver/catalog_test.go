package httpserver

import (
	"errors"
	"net/http"
	"testing"

	"dermayooth-storefront/internal/catalog"
	"dermayooth-storefront/internal/domain"
)

func TestListProducts_ParsesFilter(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/products?category=Serums&featured=true&limit=5", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	f := env.products.filter
	if f.Category != "Serums" || f.Featured == nil || !*f.Featured || f.Limit != 5 {
		t.Fatalf("unexpected filter %+v", f)
	}
	list := decodeBody[[]domain.Product](t, rec)
	if len(list) != 2 {
		t.Fatalf("expected 2 products, got %d", len(list))
	}
}

func TestListProducts_BadQuery(t *testing.T) {
	env := newTestEnv(t)

	for _, q := range []string{"?featured=maybe", "?limit=-1", "?limit=ten"} {
		rec := env.do(t, http.MethodGet, "/products"+q, "")
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("%s: expected 400, got %d", q, rec.Code)
		}
	}
}

func TestListProducts_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t)
	env.products.products = nil

	rec := env.do(t, http.MethodGet, "/products", "")
	if rec.Body.String() != "[]" {
		t.Fatalf("expected empty array, got %s", rec.Body.String())
	}
}

func TestGetProduct(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/products/serum", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	p := decodeBody[domain.Product](t, rec)
	if p.Name != "Vitamin C Serum" {
		t.Fatalf("unexpected product %+v", p)
	}

	rec = env.do(t, http.MethodGet, "/products/missing", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestGetProduct_CatalogDown(t *testing.T) {
	env := newTestEnv(t)
	env.products.err = catalog.ErrUnavailable

	rec := env.do(t, http.MethodGet, "/products/serum", "")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}

func TestListProducts_InternalError(t *testing.T) {
	env := newTestEnv(t)
	env.products.err = errors.New("db down")

	rec := env.do(t, http.MethodGet, "/products", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestListCategories(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/categories", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	list := decodeBody[[]domain.Category](t, rec)
	if len(list) != 1 || list[0].Slug != "serums" {
		t.Fatalf("unexpected categories %+v", list)
	}
}

func TestCartWorksWhileCatalogDown(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, http.MethodPost, "/products/serum/cart", "")
	env.products.err = catalog.ErrUnavailable

	rec := env.do(t, http.MethodPost, "/cart/items/serum/increment", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec = env.do(t, http.MethodPost, "/cart/items", `{"productId":"mask","name":"Clay Mask","price":"₹650"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("adding a known line should not need the catalog, got %d", rec.Code)
	}
	view := decodeBody[cartView](t, rec)
	if len(view.Items) != 2 || view.Items[0].Quantity != 2 {
		t.Fatalf("unexpected cart %+v", view.Items)
	}
}
