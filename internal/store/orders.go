package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"backend/internal/models"
)

type gormOrderStore struct {
	db *gorm.DB
}

// NewOrderStore returns the GORM-backed OrderStore.
func NewOrderStore(db *gorm.DB) OrderStore {
	return &gormOrderStore{db: db}
}

func (s *gormOrderStore) Insert(ctx context.Context, order *models.Order) error {
	err := s.db.WithContext(ctx).Create(order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: %s", ErrDuplicateReference, order.OrderReference)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (s *gormOrderStore) Get(ctx context.Context, id uint) (models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).First(&order, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("get order %d: %w", id, err)
	}
	return order, nil
}

func (s *gormOrderStore) FindByReference(ctx context.Context, reference string) (models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Where("order_reference = ?", reference).First(&order).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.Order{}, ErrOrderNotFound
	}
	if err != nil {
		return models.Order{}, fmt.Errorf("find order by reference: %w", err)
	}
	return order, nil
}

func (s *gormOrderStore) SumPendingQuantity(ctx context.Context, from, to time.Time) (int, error) {
	var sum *int64
	err := s.db.WithContext(ctx).
		Model(&models.Order{}).
		Select("SUM(quantity)").
		Where("status = ?", models.StatusPending).
		Where("created_at BETWEEN ? AND ?", from, to).
		Scan(&sum).Error
	if err != nil {
		return 0, fmt.Errorf("sum pending quantity: %w", err)
	}
	if sum == nil {
		return 0, nil
	}
	return int(*sum), nil
}

func (s *gormOrderStore) UpdateStatus(ctx context.Context, id uint, to models.OrderStatus, notes *string) (models.Order, error) {
	var updated models.Order
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.First(&order, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if !models.CanTransition(order.Status, to) {
			return models.IllegalTransitionError{From: order.Status, To: to}
		}

		order.Status = to
		order.UpdatedAt = time.Now()
		updates := map[string]interface{}{
			"status":     to,
			"updated_at": order.UpdatedAt,
		}
		if notes != nil {
			order.Notes = *notes
			updates["notes"] = *notes
		}
		if err := tx.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
			return fmt.Errorf("update order status: %w", err)
		}
		updated = order
		return nil
	})
	if err != nil {
		return models.Order{}, err
	}

	log.Info().Uint("order_id", id).Str("status", to.String()).Msg("order status updated")
	return updated, nil
}

func (s *gormOrderStore) UpdateNotes(ctx context.Context, id uint, notes string) (models.Order, error) {
	var order models.Order
	if err := s.db.WithContext(ctx).First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, fmt.Errorf("get order %d: %w", id, err)
	}

	order.Notes = notes
	order.UpdatedAt = time.Now()
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).Updates(map[string]interface{}{
		"notes":      notes,
		"updated_at": order.UpdatedAt,
	}).Error; err != nil {
		return models.Order{}, fmt.Errorf("update order notes: %w", err)
	}
	return order, nil
}

func (s *gormOrderStore) List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Order{})
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	limit := filter.Limit
	if limit < 1 {
		limit = 20
	}

	var orders []models.Order
	err := query.
		Order("created_at DESC").
		Offset(int((page - 1) * limit)).
		Limit(int(limit)).
		Find(&orders).Error
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	return orders, total, nil
}

func (s *gormOrderStore) Delete(ctx context.Context, id uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Order{}, id)
	if result.Error != nil {
		return fmt.Errorf("delete order %d: %w", id, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}
	return nil
}
