package repositories

import (
	"errors"

	"catalog/internal/models"
)

// ErrProductNotFound is returned when no product has the requested ID.
var ErrProductNotFound = errors.New("product not found")

// ProductRepository defines the interface for product data access.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id int64) (*models.Product, error)
	// Save inserts the product when its ID is zero and replaces it otherwise.
	// It returns the persisted representation.
	Save(product *models.Product) (*models.Product, error)
	Delete(id int64) error
}
