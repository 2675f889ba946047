package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	dbm "mealtrip/internal/models/db_models"
)

type ProductRepository interface {
	CreateProduct(ctx context.Context, product *dbm.Product) error
	UpdateProduct(ctx context.Context, product *dbm.Product) error
	GetProductByID(ctx context.Context, productID uuid.UUID) (*dbm.Product, error)
	ListProducts(ctx context.Context, includeArchived bool) ([]dbm.Product, error)
	SetProductArchived(ctx context.Context, productID uuid.UUID, archived bool) (bool, error)
}

type productRepository struct {
	db *gorm.DB
}

func NewProductRepository(db *gorm.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r *productRepository) CreateProduct(ctx context.Context, product *dbm.Product) error {
	return r.db.WithContext(ctx).Create(product).Error
}

func (r *productRepository) UpdateProduct(ctx context.Context, product *dbm.Product) error {
	return r.db.WithContext(ctx).Model(&dbm.Product{}).
		Where("id = ?", product.ID).
		Updates(map[string]interface{}{
			"name":            product.Name,
			"calories":        product.Calories,
			"proteins":        product.Proteins,
			"fats":            product.Fats,
			"carbs":           product.Carbs,
			"grams_per_piece": product.GramsPerPiece,
		}).Error
}

func (r *productRepository) GetProductByID(ctx context.Context, productID uuid.UUID) (*dbm.Product, error) {
	var product dbm.Product
	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) ListProducts(ctx context.Context, includeArchived bool) ([]dbm.Product, error) {
	var products []dbm.Product
	q := r.db.WithContext(ctx).Order("name ASC")
	if !includeArchived {
		q = q.Where("archived = ?", false)
	}
	if err := q.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepository) SetProductArchived(ctx context.Context, productID uuid.UUID, archived bool) (bool, error) {
	res := r.db.WithContext(ctx).Model(&dbm.Product{}).
		Where("id = ?", productID).
		Update("archived", archived)
	return res.RowsAffected > 0, res.Error
}
