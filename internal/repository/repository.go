package repository

import (
	"context"
	"errors"

	"github.com/vaidashi/dessert-order-tracker/internal/models"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("record already exists")
	ErrStorage   = errors.New("storage error")
	// ErrLocked is returned when the backing file stays locked by another
	// program after every write attempt
	ErrLocked = errors.New("storage file is locked by another program")
)

// OrderRepository persists orders. Implementations keep insertion order in GetAll.
type OrderRepository interface {
	Create(ctx context.Context, order *models.Order) error
	GetByID(ctx context.Context, orderNo string) (*models.Order, error)
	GetAll(ctx context.Context) ([]*models.Order, error)
	Update(ctx context.Context, order *models.Order) error
	Delete(ctx context.Context, orderNo string) error
}

// PriceRepository loads and saves the price list as a whole.
// Get returns the default price list, and stores it, when nothing is saved yet.
type PriceRepository interface {
	Get(ctx context.Context) (*models.PriceList, error)
	Save(ctx context.Context, prices *models.PriceList) error
}
