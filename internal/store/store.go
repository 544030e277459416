// Package store holds the persistence contracts the ordering core depends on
// and their GORM-backed implementations.
package store

import (
	"context"
	"errors"
	"time"

	"backend/internal/models"
)

var (
	ErrOrderNotFound      = errors.New("order not found")
	ErrProductNotFound    = errors.New("product not found")
	ErrStaffNotFound      = errors.New("staff not found")
	ErrDuplicateReference = errors.New("order reference already exists")
)

// SettingsStore reads and mutates the singleton settings row.
type SettingsStore interface {
	Get(ctx context.Context) (models.Settings, error)
	Patch(ctx context.Context, fields map[string]interface{}) (models.Settings, error)
}

// OrderStore is the order persistence surface the intake orchestrator and the
// admin panel require.
type OrderStore interface {
	Insert(ctx context.Context, order *models.Order) error
	Get(ctx context.Context, id uint) (models.Order, error)
	FindByReference(ctx context.Context, reference string) (models.Order, error)
	// SumPendingQuantity totals the Quantity column over pending orders
	// created within [from, to].
	SumPendingQuantity(ctx context.Context, from, to time.Time) (int, error)
	// UpdateStatus applies a lifecycle transition. It is the only sanctioned
	// status mutation path and returns models.IllegalTransitionError for a
	// pair outside the adjacency table.
	UpdateStatus(ctx context.Context, id uint, to models.OrderStatus, notes *string) (models.Order, error)
	UpdateNotes(ctx context.Context, id uint, notes string) (models.Order, error)
	List(ctx context.Context, filter OrderFilter) ([]models.Order, int64, error)
	Delete(ctx context.Context, id uint) error
}

// OrderFilter narrows admin order listings.
type OrderFilter struct {
	Status *models.OrderStatus
	Page   int64
	Limit  int64
}

// ProductStore is the catalog surface.
type ProductStore interface {
	ListActive(ctx context.Context) ([]models.Product, error)
	ListAll(ctx context.Context) ([]models.Product, error)
	Get(ctx context.Context, id uint) (models.Product, error)
	GetSize(ctx context.Context, productID, sizeID uint) (models.Product, models.ProductSize, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, product *models.Product) error
	Delete(ctx context.Context, id uint) error
}

// StaffStore authenticates admin-panel accounts.
type StaffStore interface {
	FindByEmail(ctx context.Context, email string) (models.Staff, error)
}
