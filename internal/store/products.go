package store

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"backend/internal/models"
)

type gormProductStore struct {
	db *gorm.DB
}

// NewProductStore returns the GORM-backed ProductStore.
func NewProductStore(db *gorm.DB) ProductStore {
	return &gormProductStore{db: db}
}

func (s *gormProductStore) ListActive(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list active products: %w", err)
	}
	return products, nil
}

func (s *gormProductStore) ListAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := s.db.WithContext(ctx).
		Preload("Sizes", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, id ASC")
		}).
		Order("name ASC").
		Find(&products).Error
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (s *gormProductStore) Get(ctx context.Context, id uint) (models.Product, error) {
	var product models.Product
	err := s.db.WithContext(ctx).Preload("Sizes").First(&product, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Product{}, ErrProductNotFound
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("get product %d: %w", id, err)
	}
	return product, nil
}

func (s *gormProductStore) GetSize(ctx context.Context, productID, sizeID uint) (models.Product, models.ProductSize, error) {
	product, err := s.Get(ctx, productID)
	if err != nil {
		return models.Product{}, models.ProductSize{}, err
	}
	if !product.IsActive {
		return models.Product{}, models.ProductSize{}, ErrProductNotFound
	}
	for _, size := range product.Sizes {
		if size.ID == sizeID {
			return product, size, nil
		}
	}
	return models.Product{}, models.ProductSize{}, ErrProductNotFound
}

func (s *gormProductStore) Create(ctx context.Context, product *models.Product) error {
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return fmt.Errorf("create product: %w", err)
	}
	return nil
}

func (s *gormProductStore) Update(ctx context.Context, product *models.Product) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Sizes are replaced wholesale so removed variants disappear.
		if err := tx.Where("product_id = ?", product.ID).Delete(&models.ProductSize{}).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(product).Error
	})
	if err != nil {
		return fmt.Errorf("update product %d: %w", product.ID, err)
	}
	return nil
}

func (s *gormProductStore) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Select("Sizes").Delete(&models.Product{ID: id})
	if result.Error != nil {
		return fmt.Errorf("delete product %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrProductNotFound
	}
	return nil
}
