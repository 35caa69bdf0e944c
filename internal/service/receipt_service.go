package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/vaidashi/dessert-order-tracker/internal/models"
	"github.com/vaidashi/dessert-order-tracker/internal/receipt"
	"github.com/vaidashi/dessert-order-tracker/internal/repository"
	apperrors "github.com/vaidashi/dessert-order-tracker/pkg/errors"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

// ReceiptService renders order receipts and files them in the receipt folder
type ReceiptService struct {
	orderRepo repository.OrderRepository
	priceRepo repository.PriceRepository
	renderer  *receipt.Renderer
	dir       string
	logger    logger.Logger
}

// NewReceiptService creates a new ReceiptService writing into dir
func NewReceiptService(
	orderRepo repository.OrderRepository,
	priceRepo repository.PriceRepository,
	renderer *receipt.Renderer,
	dir string,
	logger logger.Logger,
) *ReceiptService {
	return &ReceiptService{
		orderRepo: orderRepo,
		priceRepo: priceRepo,
		renderer:  renderer,
		dir:       dir,
		logger:    logger.With("service", "receipts"),
	}
}

// Path returns where the receipt for orderNo is saved
func (s *ReceiptService) Path(orderNo string) string {
	return filepath.Join(s.dir, orderNo+"_receipt.png")
}

// Generate renders the receipt for orderNo and saves it, returning the file path
func (s *ReceiptService) Generate(ctx context.Context, orderNo string) (string, error) {
	order, prices, err := s.load(ctx, orderNo)

	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		s.logger.Error("Failed to create receipt folder", "path", s.dir, "error", err)
		return "", apperrors.NewInternalError("failed to create receipt folder").WithCause(err)
	}

	path := s.Path(order.OrderNo)

	if err := s.write(path, order, prices); err != nil {
		s.logger.Error("Failed to save receipt", "orderNo", orderNo, "path", path, "error", err)
		return "", apperrors.NewInternalError("failed to save receipt").WithCause(err).WithContext("path", path)
	}

	s.logger.Info("Receipt generated", "orderNo", order.OrderNo, "path", path)
	return path, nil
}

// Render writes the receipt for orderNo to w as PNG without saving it
func (s *ReceiptService) Render(ctx context.Context, orderNo string, w io.Writer) error {
	order, prices, err := s.load(ctx, orderNo)

	if err != nil {
		return err
	}

	return s.renderer.Encode(w, order, prices)
}

func (s *ReceiptService) load(ctx context.Context, orderNo string) (*models.Order, *models.PriceList, error) {
	order, err := s.orderRepo.GetByID(ctx, orderNo)

	if err != nil {
		return nil, nil, translateError(err, fmt.Sprintf("order %s not found", orderNo))
	}

	prices, err := s.priceRepo.Get(ctx)

	if err != nil {
		return nil, nil, translateError(err, "")
	}

	return order, prices, nil
}

func (s *ReceiptService) write(path string, order *models.Order, prices *models.PriceList) error {
	f, err := os.Create(path)

	if err != nil {
		return err
	}

	if err := s.renderer.Encode(f, order, prices); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}

	return f.Close()
}
