package service

import (
	"context"
	"strings"

	"github.com/cartloom/cartloom/internal/models"
	"github.com/cartloom/cartloom/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ProductService manages the product catalog.
type ProductService struct {
	productRepo repository.ProductRepository
}

// NewProductService creates a product service.
func NewProductService(productRepo repository.ProductRepository) *ProductService {
	return &ProductService{productRepo: productRepo}
}

// ProductInput carries the full field set used by create and replace.
type ProductInput struct {
	Name        string
	Description string
	Price       *models.Money
	Stock       *int
	CategoryID  *primitive.ObjectID
	Images      string
}

func (s *ProductService) validateInput(input ProductInput) error {
	if strings.TrimSpace(input.Name) == "" {
		return requiredError("name")
	}
	if input.Price == nil {
		return requiredError("price")
	}
	if input.Price.Sign() < 0 {
		return newValidationError("price", "must not be negative")
	}
	if input.Stock == nil {
		return requiredError("stock")
	}
	if *input.Stock < 0 {
		return newValidationError("stock", "must not be negative")
	}
	return nil
}

// List returns every product.
func (s *ProductService) List(ctx context.Context) ([]models.Product, error) {
	return s.productRepo.List(ctx)
}

// Get returns one product.
func (s *ProductService) Get(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Create inserts a product. Name, price and stock are required.
func (s *ProductService) Create(ctx context.Context, input ProductInput) (*models.Product, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	product := models.Product{
		Name:        input.Name,
		Description: input.Description,
		Price:       *input.Price,
		Stock:       *input.Stock,
		CategoryID:  input.CategoryID,
		Images:      input.Images,
	}
	if err := s.productRepo.Create(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Replace overwrites the full field set of a product. Fields omitted from the
// request are reset, not preserved.
func (s *ProductService) Replace(ctx context.Context, id primitive.ObjectID, input ProductInput) (*models.Product, error) {
	if err := s.validateInput(input); err != nil {
		return nil, err
	}
	product, err := s.productRepo.Replace(ctx, id, repository.ProductReplace{
		Name:        input.Name,
		Description: input.Description,
		Price:       *input.Price,
		Stock:       *input.Stock,
		CategoryID:  input.CategoryID,
		Images:      input.Images,
	})
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}

// Patch applies only the present fields of a partial update.
func (s *ProductService) Patch(ctx context.Context, id primitive.ObjectID, patch repository.ProductPatch) (*models.Product, error) {
	if patch.IsEmpty() {
		return nil, newValidationError("body", "at least one field must be provided")
	}
	if patch.Price != nil && patch.Price.Sign() < 0 {
		return nil, newValidationError("price", "must not be negative")
	}
	if patch.Stock != nil && *patch.Stock < 0 {
		return nil, newValidationError("stock", "must not be negative")
	}
	product, err := s.productRepo.Patch(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, ErrNotFound
	}
	return product, nil
}
