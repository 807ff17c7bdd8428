package product

import (
	"context"
	"errors"
	"testing"

	"dermayooth-storefront/internal/domain"
)

type stubRepo struct {
	product *domain.Product
	list    []domain.Product
	filter  domain.ProductFilter
	err     error
}

func (s *stubRepo) ListActive(_ context.Context, filter domain.ProductFilter) ([]domain.Product, error) {
	s.filter = filter
	return s.list, s.err
}

func (s *stubRepo) GetByID(_ context.Context, _ string) (*domain.Product, error) {
	return s.product, s.err
}

func (s *stubRepo) Upsert(_ context.Context, p domain.Product) (*domain.Product, error) {
	return &p, s.err
}

func TestGet_ActiveOnly(t *testing.T) {
	cases := map[string]error{
		domain.ProductStatusActive:   nil,
		domain.ProductStatusInactive: domain.ErrNotFound,
		domain.ProductStatusDraft:    domain.ErrNotFound,
	}
	for status, want := range cases {
		svc := New(&stubRepo{product: &domain.Product{ID: "p1", Status: status}})
		_, err := svc.Get(context.Background(), "p1")
		if !errors.Is(err, want) {
			t.Fatalf("status %s: expected %v, got %v", status, want, err)
		}
	}
}

func TestGet_PropagatesErrors(t *testing.T) {
	svc := New(&stubRepo{err: domain.ErrNotFound})
	if _, err := svc.Get(context.Background(), "missing"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestList_PassesFilter(t *testing.T) {
	repo := &stubRepo{list: []domain.Product{{ID: "p1"}}}
	svc := New(repo)
	featured := true
	list, err := svc.List(context.Background(), domain.ProductFilter{Category: "Serums", Featured: &featured})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 || repo.filter.Category != "Serums" || repo.filter.Featured == nil {
		t.Fatalf("unexpected list=%+v filter=%+v", list, repo.filter)
	}
}
