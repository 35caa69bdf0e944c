package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vaidashi/dessert-order-tracker/internal/config"
	"github.com/vaidashi/dessert-order-tracker/internal/models"
	"github.com/vaidashi/dessert-order-tracker/internal/service"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()

	return &config.Config{
		Store: config.StoreConfig{
			Driver:     config.DriverXLSX,
			OrdersFile: filepath.Join(dir, "orders.xlsx"),
			PricesFile: filepath.Join(dir, "prices.json"),
		},
		Receipt:  config.ReceiptConfig{Dir: filepath.Join(dir, "receipts")},
		Business: config.BusinessConfig{Product: "Watalappam", Currency: "Rs"},
	}
}

func TestNew_WorkbookStore(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := New(ctx, cfg, logger.NewNop())
	require.NoError(t, err)
	defer a.Close()

	require.NoError(t, a.Ping(ctx))
	assert.FileExists(t, cfg.Store.OrdersFile)

	order, err := a.Orders.CreateOrder(ctx, models.OrderDetails{
		CustomerName: "Kamal",
		PhoneNumber:  "0712345678",
		Address:      "Kandy",
		Qty1kg:       1,
	})
	require.NoError(t, err)

	orders, err := a.Orders.ListOrders(ctx, service.DateRange{})
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.OrderNo, orders[0].OrderNo)

	path, err := a.Receipts.Generate(ctx, order.OrderNo)
	require.NoError(t, err)
	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestNew_UnknownDriver(t *testing.T) {
	cfg := testConfig(t)
	cfg.Store.Driver = "csv"

	_, err := New(context.Background(), cfg, logger.NewNop())
	assert.Error(t, err)
}
