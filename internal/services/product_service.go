package services

import (
	"context"

	"github.com/google/uuid"

	dbm "mealtrip/internal/models/db_models"
	"mealtrip/internal/models/request_models"
	"mealtrip/internal/models/response_models"
	"mealtrip/internal/repositories"
	"mealtrip/pkg/utils"
)

type ProductServiceInterface interface {
	CreateProduct(ctx context.Context, req request_models.ProductRequest) (*response_models.ProductResponse, error)
	UpdateProduct(ctx context.Context, productID uuid.UUID, req request_models.ProductRequest) (*response_models.ProductResponse, error)
	ListProducts(ctx context.Context, p Principal, includeArchived bool) ([]response_models.ProductResponse, error)
	SetArchived(ctx context.Context, productID uuid.UUID, p Principal, archived bool) error
}

type ProductService struct {
	productRepo repositories.ProductRepository
}

func NewProductService(productRepo repositories.ProductRepository) ProductServiceInterface {
	return &ProductService{productRepo: productRepo}
}

func buildProductResponse(product *dbm.Product) *response_models.ProductResponse {
	return &response_models.ProductResponse{
		ID:            product.ID.String(),
		Name:          product.Name,
		Calories:      product.Calories,
		Proteins:      product.Proteins,
		Fats:          product.Fats,
		Carbs:         product.Carbs,
		GramsPerPiece: product.GramsPerPiece,
		Archived:      product.Archived,
	}
}

func validateProduct(req request_models.ProductRequest) error {
	if req.Name == "" || req.Calories < 0 || req.Proteins < 0 || req.Fats < 0 || req.Carbs < 0 {
		return utils.ErrInvalidInput
	}
	if req.GramsPerPiece != nil && *req.GramsPerPiece <= 0 {
		return utils.ErrInvalidInput
	}
	return nil
}

func (s *ProductService) CreateProduct(ctx context.Context, req request_models.ProductRequest) (*response_models.ProductResponse, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	product := dbm.Product{
		Name:          req.Name,
		Calories:      req.Calories,
		Proteins:      req.Proteins,
		Fats:          req.Fats,
		Carbs:         req.Carbs,
		GramsPerPiece: req.GramsPerPiece,
	}
	if err := s.productRepo.CreateProduct(ctx, &product); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return buildProductResponse(&product), nil
}

func (s *ProductService) UpdateProduct(ctx context.Context, productID uuid.UUID, req request_models.ProductRequest) (*response_models.ProductResponse, error) {
	if err := validateProduct(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetProductByID(ctx, productID)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}
	if product == nil {
		return nil, utils.ErrProductNotFound
	}

	product.Name = req.Name
	product.Calories = req.Calories
	product.Proteins = req.Proteins
	product.Fats = req.Fats
	product.Carbs = req.Carbs
	product.GramsPerPiece = req.GramsPerPiece
	if err := s.productRepo.UpdateProduct(ctx, product); err != nil {
		return nil, utils.ErrDatabaseError
	}
	return buildProductResponse(product), nil
}

// ListProducts hides archived entries unless an administrator asks for
// everything.
func (s *ProductService) ListProducts(ctx context.Context, p Principal, includeArchived bool) ([]response_models.ProductResponse, error) {
	if includeArchived && !p.IsAdmin {
		includeArchived = false
	}
	products, err := s.productRepo.ListProducts(ctx, includeArchived)
	if err != nil {
		return nil, utils.ErrDatabaseError
	}

	out := make([]response_models.ProductResponse, 0, len(products))
	for i := range products {
		out = append(out, *buildProductResponse(&products[i]))
	}
	return out, nil
}

func (s *ProductService) SetArchived(ctx context.Context, productID uuid.UUID, p Principal, archived bool) error {
	if !p.IsAdmin {
		return utils.ErrForbidden
	}
	found, err := s.productRepo.SetProductArchived(ctx, productID, archived)
	if err != nil {
		return utils.ErrDatabaseError
	}
	if !found {
		return utils.ErrProductNotFound
	}
	return nil
}
