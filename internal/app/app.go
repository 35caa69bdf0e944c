// Package app assembles the configured store, services and renderers shared
// by the HTTP server and the command line tool.
package app

import (
	"context"
	"fmt"

	"github.com/vaidashi/dessert-order-tracker/internal/config"
	"github.com/vaidashi/dessert-order-tracker/internal/database"
	"github.com/vaidashi/dessert-order-tracker/internal/receipt"
	"github.com/vaidashi/dessert-order-tracker/internal/repository"
	"github.com/vaidashi/dessert-order-tracker/internal/service"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
)

// App holds the services for one store backend
type App struct {
	Orders   *service.OrderService
	Prices   *service.PriceService
	Reports  *service.ReportService
	Receipts *service.ReceiptService

	db     *database.Database
	logger logger.Logger
}

// New opens the store selected by cfg.Store.Driver and builds the services on top of it
func New(ctx context.Context, cfg *config.Config, logger logger.Logger) (*App, error) {
	a := &App{logger: logger}

	orderRepo, priceRepo, err := a.openStore(ctx, cfg)

	if err != nil {
		return nil, err
	}

	renderer, err := receipt.NewRenderer(
		receipt.Assets{
			LogoPath:     cfg.Receipt.LogoPath,
			WhatsAppIcon: cfg.Receipt.WhatsAppIcon,
			EmailIcon:    cfg.Receipt.EmailIcon,
			FontPath:     cfg.Receipt.FontPath,
		},
		receipt.Business{
			Name:     cfg.Business.Name,
			Product:  cfg.Business.Product,
			WhatsApp: cfg.Business.WhatsApp,
			Email:    cfg.Business.Email,
		},
		logger,
	)

	if err != nil {
		a.Close()
		return nil, err
	}

	a.Orders = service.NewOrderService(orderRepo, priceRepo, logger)
	a.Prices = service.NewPriceService(priceRepo, logger)
	a.Reports = service.NewReportService(orderRepo, priceRepo, cfg.Business.Currency, logger)
	a.Receipts = service.NewReceiptService(orderRepo, priceRepo, renderer, cfg.Receipt.Dir, logger)

	return a, nil
}

func (a *App) openStore(ctx context.Context, cfg *config.Config) (repository.OrderRepository, repository.PriceRepository, error) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		db, err := database.New(cfg, a.logger)

		if err != nil {
			return nil, nil, err
		}

		if err := db.EnsureSchema(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}

		a.db = db
		a.logger.Info("Using PostgreSQL store", "host", cfg.DB.Host, "database", cfg.DB.Name)

		return repository.NewPGOrderRepository(db, a.logger), repository.NewPGPriceRepository(db, a.logger), nil

	case config.DriverXLSX:
		orderRepo, err := repository.NewXLSXOrderRepository(ctx, cfg.Store.OrdersFile, a.logger)

		if err != nil {
			return nil, nil, err
		}

		a.logger.Info("Using workbook store", "orders", cfg.Store.OrdersFile, "prices", cfg.Store.PricesFile)

		return orderRepo, repository.NewJSONPriceRepository(cfg.Store.PricesFile, a.logger), nil
	}

	return nil, nil, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
}

// Ping checks that the store is reachable
func (a *App) Ping(ctx context.Context) error {
	if a.db == nil {
		return nil
	}

	return a.db.Ping(ctx)
}

// Close releases the database connection, if any
func (a *App) Close() error {
	if a.db == nil {
		return nil
	}

	if err := a.db.Close(); err != nil {
		a.logger.Error("Error closing database connection", "error", err)
		return err
	}

	return nil
}
