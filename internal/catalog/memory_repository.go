package catalog

import (
	"context"
	"sort"
	"sync"
)

type memoryRepository struct {
	mu       sync.RWMutex
	products map[int64]Product
}

// NewMemoryRepository builds an in-memory catalog for development and testing.
func NewMemoryRepository(products ...Product) Repository {
	m := make(map[int64]Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &memoryRepository{products: m}
}

func (r *memoryRepository) ListAvailable(_ context.Context, limit, offset int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sortedAvailable(func(p Product) bool { return p.Available })
	return page(all, limit, offset), nil
}

func (r *memoryRepository) ListFeatured(_ context.Context, limit int) ([]Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	all := r.sortedAvailable(func(p Product) bool { return p.Available && p.StockLevel > 0 })
	return page(all, limit, 0), nil
}

func (r *memoryRepository) GetByID(_ context.Context, id int64) (Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.products[id]
	if !ok || !p.Available {
		return Product{}, ErrNotFound
	}
	return p, nil
}

// sortedAvailable returns matching products newest first, ties broken by id
// so ordering stays deterministic.
func (r *memoryRepository) sortedAvailable(match func(Product) bool) []Product {
	out := make([]Product, 0, len(r.products))
	for _, p := range r.products {
		if match(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func page(all []Product, limit, offset int) []Product {
	if offset >= len(all) {
		return []Product{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}
