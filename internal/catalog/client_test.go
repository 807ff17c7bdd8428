package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"dermayooth-storefront/internal/domain"
	"github.com/sony/gobreaker/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:         name,
		MaxRequests:  1,
		Interval:     60 * time.Second,
		Timeout:      time.Second,
		FailureRatio: 0.5,
		MinRequests:  3,
	}
}

func TestList_BareArray(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"1","name":"Serum","price":"₹1,499","category":"Serums","status":"active","featured":true},
			{"id":"2","name":"Old Toner","price":"₹499","category":"Toners","status":"inactive"},
			{"id":"3","name":"Mask","price":"₹650","category":"Masks"}
		]`))
	}))
	defer server.Close()

	c := New(server.URL+"/api/", nil, testBreakerConfig("test-list"), nil)
	list, err := c.List(context.Background(), domain.ProductFilter{})
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "1", list[0].ID)
	assert.Equal(t, "3", list[1].ID)
	assert.Equal(t, domain.ProductStatusActive, list[1].Status)
}

func TestList_WrappedAndFiltered(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"products":[
			{"id":"1","name":"Serum","category":"Serums","status":"active","featured":true},
			{"id":"2","name":"Night Serum","category":"serums","status":"active"},
			{"id":"3","name":"Mask","category":"Masks","status":"active","featured":true}
		]}`))
	}))
	defer server.Close()

	c := New(server.URL, nil, testBreakerConfig("test-filter"), nil)
	featured := true
	list, err := c.List(context.Background(), domain.ProductFilter{Category: "Serums", Featured: &featured})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "1", list[0].ID)

	list, err = c.List(context.Background(), domain.ProductFilter{Category: "SERUMS", Limit: 1})
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestGet(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/products/42":
			_, _ = w.Write([]byte(`{"id":"42","name":"Sunscreen","price":"₹799","images":["/spf.jpg"],"status":"active"}`))
		case "/products/draft":
			_, _ = w.Write([]byte(`{"id":"draft","name":"Soon","status":"draft"}`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	c := New(server.URL, nil, testBreakerConfig("test-get"), nil)

	p, err := c.Get(context.Background(), "42")
	require.NoError(t, err)
	assert.Equal(t, "Sunscreen", p.Name)
	assert.Equal(t, "/spf.jpg", p.PrimaryImage())

	_, err = c.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = c.Get(context.Background(), "draft")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNotFoundDoesNotTripBreaker(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	c := New(server.URL, nil, testBreakerConfig("test-404"), nil)
	for i := 0; i < 5; i++ {
		_, err := c.Get(context.Background(), "nope")
		require.ErrorIs(t, err, domain.ErrNotFound)
	}
	assert.Equal(t, gobreaker.StateClosed, c.State())
}

func TestBreakerOpensOnServerErrors(t *testing.T) {
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	c := New(server.URL, nil, testBreakerConfig("test-trip"), nil)
	for i := 0; i < 3; i++ {
		_, err := c.Get(context.Background(), "1")
		require.Error(t, err)
	}
	assert.Equal(t, gobreaker.StateOpen, c.State())

	_, err := c.Get(context.Background(), "1")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, int32(3), hits.Load())
}

func TestList_MalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<html>`))
	}))
	defer server.Close()

	c := New(server.URL, nil, testBreakerConfig("test-malformed"), nil)
	_, err := c.List(context.Background(), domain.ProductFilter{})
	assert.Error(t, err)
}
