package services

import (
	"strings"

	"shop/internal/models"
	"shop/internal/repositories"

	"github.com/shopspring/decimal"
)

// Limits applied to every product write going through the admin API.
const (
	maxNameLen        = 255
	maxDescriptionLen = 2000
	maxStock          = 10_000

	defaultProductName = "Untitled"
)

var maxPrice = decimal.RequireFromString("10000000000")

// ProductService handles catalog reads and admin-only mutation.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{repo: repo}
}

// GetAllProducts retrieves all products.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetProductByID retrieves a single product by its ID.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct normalizes the draft and persists it as a new product.
// Any client-supplied id is discarded.
func (s *ProductService) CreateProduct(product *models.Product) error {
	product.ID = ""
	applyLimits(product)
	return s.repo.Create(product)
}

// UpdateProduct copies the draft's fields onto the stored product,
// re-applies normalization and persists the result. Normalization runs on
// every write path, so limits hold even for out-of-range input.
func (s *ProductService) UpdateProduct(id string, draft *models.Product) (*models.Product, error) {
	existing, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	existing.Name = draft.Name
	existing.Description = draft.Description
	existing.Price = draft.Price
	existing.ImageURL = draft.ImageURL
	existing.Stock = draft.Stock
	applyLimits(existing)
	if err := s.repo.Update(existing); err != nil {
		return nil, err
	}
	return existing, nil
}

// DeleteProduct deletes a product by its ID. The delete is unconditional;
// live cart rows referencing the product are not checked.
func (s *ProductService) DeleteProduct(id string) error {
	return s.repo.Delete(id)
}

// applyLimits clamps a product draft into its documented bounds: name
// trimmed, capped at 255 chars and never blank; description trimmed and
// capped at 2000 chars; price in [0, maxPrice]; stock in [0, maxStock].
func applyLimits(p *models.Product) {
	name := strings.TrimSpace(p.Name)
	if r := []rune(name); len(r) > maxNameLen {
		name = string(r[:maxNameLen])
	}
	if name == "" {
		name = defaultProductName
	}
	p.Name = name

	description := strings.TrimSpace(p.Description)
	if r := []rune(description); len(r) > maxDescriptionLen {
		description = string(r[:maxDescriptionLen])
	}
	p.Description = description

	if p.Price.IsNegative() {
		p.Price = decimal.Zero
	}
	if p.Price.GreaterThan(maxPrice) {
		p.Price = maxPrice
	}

	stock := 0
	if p.Stock != nil && *p.Stock > 0 {
		stock = *p.Stock
	}
	if stock > maxStock {
		stock = maxStock
	}
	p.Stock = &stock
}
