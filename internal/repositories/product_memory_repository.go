package repositories

import (
	"fmt"
	"sort"
	"sync"

	"catalog/internal/models"
)

// InMemoryProductRepository is an in-memory implementation of ProductRepository.
type InMemoryProductRepository struct {
	products map[int64]models.Product
	nextID   int64
	mu       sync.RWMutex
}

// NewInMemoryProductRepository creates a new instance of InMemoryProductRepository.
func NewInMemoryProductRepository() *InMemoryProductRepository {
	return &InMemoryProductRepository{
		products: make(map[int64]models.Product),
		nextID:   1,
	}
}

// GetAll returns all products ordered by ID.
func (r *InMemoryProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, 0, len(r.products))
	for _, p := range r.products {
		productList = append(productList, p)
	}
	sort.Slice(productList, func(i, j int) bool {
		return productList[i].ID < productList[j].ID
	})
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *InMemoryProductRepository) GetByID(id int64) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	product, ok := r.products[id]
	if !ok {
		return nil, fmt.Errorf("product with ID %d: %w", id, ErrProductNotFound)
	}
	return &product, nil
}

// Save stores a copy of product, assigning the next ID to new products.
// The caller's value is left untouched.
func (r *InMemoryProductRepository) Save(product *models.Product) (*models.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *product
	if stored.ID == 0 {
		stored.ID = r.nextID
	}
	if stored.ID >= r.nextID {
		r.nextID = stored.ID + 1
	}
	r.products[stored.ID] = stored
	return &stored, nil
}

// Delete removes a product by its ID.
func (r *InMemoryProductRepository) Delete(id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.products[id]; !ok {
		return fmt.Errorf("product with ID %d not deleted: %w", id, ErrProductNotFound)
	}
	delete(r.products, id)
	return nil
}
