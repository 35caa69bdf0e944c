package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vaidashi/dessert-order-tracker/internal/models"
	"github.com/vaidashi/dessert-order-tracker/internal/repository"
	apperrors "github.com/vaidashi/dessert-order-tracker/pkg/errors"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

// attempts at drawing an unused order number before giving up
const maxOrderNoAttempts = 3

// OrderService handles order-related operations
type OrderService struct {
	orderRepo repository.OrderRepository
	priceRepo repository.PriceRepository
	logger    logger.Logger
	now       func() time.Time
}

// NewOrderService creates a new OrderService
func NewOrderService(
	orderRepo repository.OrderRepository,
	priceRepo repository.PriceRepository,
	logger logger.Logger,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		priceRepo: priceRepo,
		logger:    logger.With("service", "orders"),
		now:       time.Now,
	}
}

// DateRange is an inclusive calendar-day filter. Both bounds are empty or both are set.
type DateRange struct {
	From string
	To   string
}

// IsZero reports whether no filter was requested
func (r DateRange) IsZero() bool {
	return r.From == "" && r.To == ""
}

// CreateOrder prices and stores a new order dated today
func (s *OrderService) CreateOrder(ctx context.Context, details models.OrderDetails) (*models.Order, error) {
	prices, err := s.priceRepo.Get(ctx)

	if err != nil {
		return nil, translateError(err, "")
	}

	for attempt := 1; ; attempt++ {
		order, err := models.NewOrder(details, prices, s.now())

		if err != nil {
			return nil, translateError(err, "")
		}

		err = s.orderRepo.Create(ctx, order)

		if errors.Is(err, repository.ErrDuplicate) && attempt < maxOrderNoAttempts {
			s.logger.Warn("Order number collision, drawing a new one", "orderNo", order.OrderNo)
			continue
		}

		if err != nil {
			return nil, translateError(err, "")
		}

		s.logger.Info("Order created", "orderNo", order.OrderNo, "total", order.Total.StringFixed(2))
		return order, nil
	}
}

// GetOrder retrieves an order by its order number
func (s *OrderService) GetOrder(ctx context.Context, orderNo string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, orderNo)

	if err != nil {
		return nil, translateError(err, fmt.Sprintf("order %s not found", orderNo))
	}

	return order, nil
}

// ListOrders returns all orders in file order, optionally limited to a date range
func (s *OrderService) ListOrders(ctx context.Context, dates DateRange) ([]*models.Order, error) {
	var from, to time.Time

	if !dates.IsZero() {
		if dates.From == "" || dates.To == "" {
			return nil, apperrors.NewInvalidInputError("please enter both start and end dates")
		}

		var err error

		if from, err = models.ParseDate(dates.From); err != nil {
			return nil, translateError(err, "")
		}

		if to, err = models.ParseDate(dates.To); err != nil {
			return nil, translateError(err, "")
		}

		if from.After(to) {
			return nil, apperrors.NewInvalidInputError("start date must not be after end date")
		}
	}

	orders, err := s.orderRepo.GetAll(ctx)

	if err != nil {
		return nil, translateError(err, "")
	}

	if dates.IsZero() {
		return orders, nil
	}

	filtered := make([]*models.Order, 0, len(orders))

	for _, o := range orders {
		day, err := models.ParseDate(o.Date)

		if err != nil {
			s.logger.Debug("Skipping order with unreadable date", "orderNo", o.OrderNo, "date", o.Date)
			continue
		}

		if !day.Before(from) && !day.After(to) {
			filtered = append(filtered, o)
		}
	}

	return filtered, nil
}

// UpdateOrder replaces the editable fields of an order and recomputes its
// total from the current prices. The order date is kept.
func (s *OrderService) UpdateOrder(ctx context.Context, orderNo string, details models.OrderDetails) (*models.Order, error) {
	order, err := s.GetOrder(ctx, orderNo)

	if err != nil {
		return nil, err
	}

	prices, err := s.priceRepo.Get(ctx)

	if err != nil {
		return nil, translateError(err, "")
	}

	if err := order.Apply(details, prices); err != nil {
		return nil, translateError(err, "")
	}

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, translateError(err, fmt.Sprintf("order %s not found", orderNo))
	}

	s.logger.Info("Order updated", "orderNo", order.OrderNo, "total", order.Total.StringFixed(2))
	return order, nil
}

// UpdateOrderStatus moves an order to another status without touching the rest
func (s *OrderService) UpdateOrderStatus(ctx context.Context, orderNo, status string) (*models.Order, error) {
	newStatus, err := models.ParseOrderStatus(status)

	if err != nil {
		return nil, translateError(err, "")
	}

	order, err := s.GetOrder(ctx, orderNo)

	if err != nil {
		return nil, err
	}

	if order.Status == newStatus {
		return order, nil
	}

	oldStatus := order.Status
	order.Status = newStatus

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, translateError(err, fmt.Sprintf("order %s not found", orderNo))
	}

	s.logger.Info("Order status updated",
		"orderNo", order.OrderNo,
		"oldStatus", oldStatus,
		"newStatus", newStatus)

	return order, nil
}

// DeleteOrder deletes an order
func (s *OrderService) DeleteOrder(ctx context.Context, orderNo string) error {
	if err := s.orderRepo.Delete(ctx, orderNo); err != nil {
		return translateError(err, fmt.Sprintf("order %s not found", orderNo))
	}

	s.logger.Info("Order deleted", "orderNo", orderNo)
	return nil
}
