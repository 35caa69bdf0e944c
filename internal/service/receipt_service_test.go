package service

import (
	"bytes"
	"context"
	"image/png"
	"net/http"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaidashi/dessert-order-tracker/internal/models"
	"github.com/vaidashi/dessert-order-tracker/internal/receipt"
	"github.com/vaidashi/dessert-order-tracker/internal/repository"
	apperrors "github.com/vaidashi/dessert-order-tracker/pkg/errors"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

func newReceiptService(t *testing.T, dir string) *ReceiptService {
	t.Helper()

	ctx := context.Background()
	orders := &mockOrderRepository{}
	orders.On("GetByID", ctx, "a1b2c3d4").Return(storedOrder("a1b2c3d4", "2024-05-01"), nil)
	orders.On("GetByID", ctx, "missing1").Return(nil, repository.ErrNotFound)

	prices := &mockPriceRepository{}
	prices.On("Get", ctx).Return(models.DefaultPriceList(), nil)

	renderer, err := receipt.NewRenderer(receipt.Assets{}, receipt.Business{Product: "Watalappam"}, logger.NewNop())
	require.NoError(t, err)

	return NewReceiptService(orders, prices, renderer, dir, logger.NewNop())
}

func TestReceiptService_Generate(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "receipts")
	s := newReceiptService(t, dir)

	path, err := s.Generate(context.Background(), "a1b2c3d4")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "a1b2c3d4_receipt.png"), path)

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, receipt.Width, cfg.Width)
}

func TestReceiptService_Render(t *testing.T) {
	dir := t.TempDir()
	s := newReceiptService(t, dir)

	var buf bytes.Buffer
	require.NoError(t, s.Render(context.Background(), "a1b2c3d4", &buf))
	assert.NotZero(t, buf.Len())

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestReceiptService_UnknownOrder(t *testing.T) {
	s := newReceiptService(t, t.TempDir())

	_, err := s.Generate(context.Background(), "missing1")
	assert.Equal(t, http.StatusNotFound, apperrors.StatusCode(err))
}
