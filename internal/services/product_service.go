package services

import (
	"encoding/json"
	"errors"
	"fmt"

	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/validation"

	"go.uber.org/zap"
)

// ErrMissingID is returned when an update is requested for a product without an ID.
var ErrMissingID = errors.New("product ID is required")

const (
	productExchange      = "product"
	productSavedRouteKey = "product.saved"
)

// EventPublisher delivers domain events to a message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// ProductService handles business logic related to products.
type ProductService struct {
	repo      repositories.ProductRepository
	validator *validation.ProductValidator
	publisher EventPublisher
	log       *zap.Logger
}

// ProductServiceOption configures a ProductService.
type ProductServiceOption func(*ProductService)

// WithValidator replaces the default product validator.
func WithValidator(v *validation.ProductValidator) ProductServiceOption {
	return func(s *ProductService) {
		s.validator = v
	}
}

// WithPublisher enables product.saved events.
func WithPublisher(p EventPublisher) ProductServiceOption {
	return func(s *ProductService) {
		s.publisher = p
	}
}

// WithLogger sets the service logger.
func WithLogger(l *zap.Logger) ProductServiceOption {
	return func(s *ProductService) {
		s.log = l
	}
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository, opts ...ProductServiceOption) *ProductService {
	s := &ProductService{
		repo:      repo,
		validator: validation.New(),
		log:       zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id int64) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// Save validates product and, when it has no violations, persists it and
// returns exactly what the repository returned. On violations it returns a
// *validation.Error and the repository is not called. Timestamps are taken
// as supplied.
func (s *ProductService) Save(product *models.Product) (*models.Product, error) {
	violations, err := s.validator.Validate(product)
	if err != nil {
		return nil, fmt.Errorf("save product: %w", err)
	}
	if len(violations) > 0 {
		s.log.Debug("product rejected",
			zap.Int64("id", product.ID),
			zap.Strings("fields", violations.Fields()),
		)
		return nil, &validation.Error{Violations: violations}
	}

	saved, err := s.repo.Save(product)
	if err != nil {
		return nil, err
	}

	s.log.Info("product saved", zap.Int64("id", saved.ID))
	s.publishSaved(saved)
	return saved, nil
}

// UpdateProduct saves an existing product. It fails with ErrMissingID when
// the product has no ID and with repositories.ErrProductNotFound when the ID
// is unknown.
func (s *ProductService) UpdateProduct(product *models.Product) (*models.Product, error) {
	if product == nil {
		return nil, fmt.Errorf("update product: %w", validation.ErrInvalidArgument)
	}
	if product.ID == 0 {
		return nil, ErrMissingID
	}
	if _, err := s.repo.GetByID(product.ID); err != nil {
		return nil, err
	}
	return s.Save(product)
}

// DeleteProduct deletes a product by its ID.
func (s *ProductService) DeleteProduct(id int64) error {
	if err := s.repo.Delete(id); err != nil {
		return err
	}
	s.log.Info("product deleted", zap.Int64("id", id))
	return nil
}

type productSavedEvent struct {
	Event  string               `json:"event"`
	ID     int64                `json:"id"`
	Title  string               `json:"title"`
	Status models.ProductStatus `json:"status"`
}

// publishSaved is best effort; a broker failure never undoes a save.
func (s *ProductService) publishSaved(p *models.Product) {
	if s.publisher == nil {
		return
	}

	body, err := json.Marshal(productSavedEvent{
		Event:  productSavedRouteKey,
		ID:     p.ID,
		Title:  p.Title,
		Status: p.Status,
	})
	if err != nil {
		s.log.Warn("failed to marshal product event", zap.Int64("id", p.ID), zap.Error(err))
		return
	}
	if err := s.publisher.Publish(productExchange, productSavedRouteKey, body); err != nil {
		s.log.Warn("failed to publish product event", zap.Int64("id", p.ID), zap.Error(err))
	}
}
