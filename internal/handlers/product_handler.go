package handlers

import (
	"errors"
	"strconv"

	"catalog/internal/middleware"
	"catalog/internal/models"
	"catalog/internal/repositories"
	"catalog/internal/services"
	"catalog/internal/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProductHandler handles HTTP requests for products.
type ProductHandler struct {
	service *services.ProductService
	log     *zap.Logger
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService, log *zap.Logger) *ProductHandler {
	return &ProductHandler{
		service: service,
		log:     log,
	}
}

// RegisterRoutes registers the product routes. Mutating routes run behind
// the given middleware (for example AuthRequired).
func (h *ProductHandler) RegisterRoutes(router fiber.Router, writeGuards ...fiber.Handler) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)

	guarded := func(handler fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, writeGuards...), handler)
	}
	productRoutes.Post("/", guarded(h.HandleCreateProduct)...)
	productRoutes.Put("/:id", guarded(h.HandleUpdateProduct)...)
	productRoutes.Delete("/:id", guarded(h.HandleDeleteProduct)...)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(products)
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	product, err := h.service.GetProductByID(id)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(product)
}

// HandleCreateProduct validates and stores a new product.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if product.ID != 0 {
		return badRequest(c, "A new product cannot already have an ID")
	}

	saved, err := h.service.Save(&product)
	if err != nil {
		return h.errorResponse(c, err)
	}
	c.Location("/api/v1/products/" + strconv.FormatInt(saved.ID, 10))
	return c.Status(fiber.StatusCreated).JSON(saved)
}

// HandleUpdateProduct replaces an existing product.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if product.ID != 0 && product.ID != id {
		return badRequest(c, "Product ID in body does not match the path")
	}
	product.ID = id

	updated, err := h.service.UpdateProduct(&product)
	if err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(updated)
}

// HandleDeleteProduct deletes a product by its ID.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	id, err := parseID(c)
	if err != nil {
		return badRequest(c, "Invalid product ID")
	}

	if err := h.service.DeleteProduct(id); err != nil {
		return h.errorResponse(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Product " + strconv.FormatInt(id, 10) + " deleted successfully",
	})
}

func (h *ProductHandler) errorResponse(c *fiber.Ctx, err error) error {
	var verr *validation.Error
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message":    "Validation failed",
			"violations": verr.Violations,
		})
	case errors.Is(err, repositories.ErrProductNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Product not found",
		})
	case errors.Is(err, services.ErrMissingID), errors.Is(err, validation.ErrInvalidArgument):
		return badRequest(c, err.Error())
	}

	h.log.Error("product request failed",
		zap.String("request_id", middleware.RequestID(c)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Internal server error",
	})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
	})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}
