package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/vaidashi/dessert-order-tracker/internal/models"
	"github.com/vaidashi/dessert-order-tracker/pkg/logger"
	"github.com/vaidashi/dessert-order-tracker/pkg/retry"
)

const defaultSheet = "Sheet1"

// Column titles of the orders workbook, in file order
const (
	colOrderNo  = "Order No"
	colDate     = "Date"
	colCustomer = "Customer Name"
	colPhone    = "Phone Number"
	colAddress  = "Address"
	colQty500g  = "500g Quantity"
	colQty1kg   = "1kg Quantity"
	colTotal    = "Total"
	colStatus   = "Status"
)

var orderColumns = []string{
	colOrderNo, colDate, colCustomer, colPhone, colAddress,
	colQty500g, colQty1kg, colTotal, colStatus,
}

// XLSXOrderRepository keeps orders in the first sheet of a single workbook.
// Every mutation loads the whole sheet and rewrites the whole file.
type XLSXOrderRepository struct {
	path   string
	logger logger.Logger
	retry  *retry.Config
	mu     sync.Mutex
}

// NewXLSXOrderRepository opens the workbook at path, creating it with only
// the header row when it does not exist yet.
func NewXLSXOrderRepository(ctx context.Context, path string, logger logger.Logger) (*XLSXOrderRepository, error) {
	r := &XLSXOrderRepository{
		path:   path,
		logger: logger,
		retry: &retry.Config{
			Operation:       "save orders workbook",
			MaxAttempts:     5,
			BackoffStrategy: retry.NewFileLockBackoff(),
			Logger:          logger,
			RetryableErrors: []error{fs.ErrPermission},
		},
	}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := r.save(ctx, nil); err != nil {
			return nil, err
		}
		logger.Info("Created orders workbook", "path", path)
	} else if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return r, nil
}

// Create appends order to the workbook
func (r *XLSXOrderRepository) Create(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)

	if err != nil {
		return err
	}

	if indexOf(orders, order.OrderNo) >= 0 {
		return ErrDuplicate
	}

	return r.save(ctx, append(orders, order))
}

// GetByID returns the order with the given order number
func (r *XLSXOrderRepository) GetByID(ctx context.Context, orderNo string) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)

	if err != nil {
		return nil, err
	}

	i := indexOf(orders, orderNo)

	if i < 0 {
		return nil, ErrNotFound
	}

	return orders[i], nil
}

// GetAll returns every order in file order
func (r *XLSXOrderRepository) GetAll(ctx context.Context) ([]*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	return r.load(ctx)
}

// Update replaces the row of order in place
func (r *XLSXOrderRepository) Update(ctx context.Context, order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)

	if err != nil {
		return err
	}

	i := indexOf(orders, order.OrderNo)

	if i < 0 {
		return ErrNotFound
	}

	orders[i] = order

	return r.save(ctx, orders)
}

// Delete removes the row of the given order number
func (r *XLSXOrderRepository) Delete(ctx context.Context, orderNo string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	orders, err := r.load(ctx)

	if err != nil {
		return err
	}

	i := indexOf(orders, orderNo)

	if i < 0 {
		return ErrNotFound
	}

	return r.save(ctx, append(orders[:i], orders[i+1:]...))
}

func indexOf(orders []*models.Order, orderNo string) int {
	for i, o := range orders {
		if o.OrderNo == orderNo {
			return i
		}
	}
	return -1
}

func (r *XLSXOrderRepository) load(ctx context.Context) ([]*models.Order, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := excelize.OpenFile(r.path)

	if err != nil {
		r.logger.Error("Failed to open orders workbook", "error", err, "path", r.path)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	defer f.Close()

	sheets := f.GetSheetList()

	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook %s has no sheets", ErrStorage, r.path)
	}

	rows, err := f.GetRows(sheets[0], excelize.Options{RawCellValue: true})

	if err != nil {
		r.logger.Error("Failed to read orders sheet", "error", err, "path", r.path)
		return nil, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if len(rows) == 0 {
		return []*models.Order{}, nil
	}

	index, err := headerIndex(rows[0])

	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrStorage, r.path, err)
	}

	orders := make([]*models.Order, 0, len(rows)-1)

	for n, row := range rows[1:] {
		if isBlankRow(row) {
			continue
		}

		order, err := parseOrderRow(row, index)

		if err != nil {
			// row numbers are 1-based and the header is row 1
			return nil, fmt.Errorf("%w: %s row %d: %v", ErrStorage, r.path, n+2, err)
		}

		orders = append(orders, order)
	}

	return orders, nil
}

func (r *XLSXOrderRepository) save(ctx context.Context, orders []*models.Order) error {
	f := excelize.NewFile()
	defer f.Close()

	header := make([]interface{}, len(orderColumns))
	for i, c := range orderColumns {
		header[i] = c
	}

	if err := f.SetSheetRow(defaultSheet, "A1", &header); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	if style, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(defaultSheet, "A1", "I1", style)
	}

	_ = f.SetColWidth(defaultSheet, "A", "I", 16)

	for i, o := range orders {
		cell, err := excelize.CoordinatesToCellName(1, i+2)

		if err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}

		row := []interface{}{
			o.OrderNo,
			o.Date,
			o.CustomerName,
			o.PhoneNumber,
			o.Address,
			o.Qty500g,
			o.Qty1kg,
			o.Total.InexactFloat64(),
			string(o.Status),
		}

		if err := f.SetSheetRow(defaultSheet, cell, &row); err != nil {
			return fmt.Errorf("%w: %v", ErrStorage, err)
		}
	}

	buf, err := f.WriteToBuffer()

	if err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	err = retry.Do(ctx, func() error {
		return writeFileAtomic(r.path, buf.Bytes())
	}, r.retry)

	if err != nil {
		r.logger.Error("Failed to save orders workbook", "error", err, "path", r.path)

		if errors.Is(err, fs.ErrPermission) {
			return fmt.Errorf("%w: %v", ErrLocked, err)
		}
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	r.logger.Debug("Saved orders workbook", "path", r.path, "orders", len(orders))

	return nil
}

// writeFileAtomic writes data next to path and renames it over path, so a
// crash mid-write never leaves a truncated file behind.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")

	if err != nil {
		return err
	}

	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return err
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func headerIndex(header []string) (map[string]int, error) {
	index := make(map[string]int, len(header))

	for i, h := range header {
		index[strings.TrimSpace(h)] = i
	}

	for _, c := range orderColumns {
		if _, ok := index[c]; !ok {
			return nil, fmt.Errorf("missing column %q", c)
		}
	}

	return index, nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

func parseOrderRow(row []string, index map[string]int) (*models.Order, error) {
	cell := func(col string) string {
		i := index[col]
		if i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	qty500g, err := parseQuantity(cell(colQty500g))

	if err != nil {
		return nil, fmt.Errorf("%s: %w", colQty500g, err)
	}

	qty1kg, err := parseQuantity(cell(colQty1kg))

	if err != nil {
		return nil, fmt.Errorf("%s: %w", colQty1kg, err)
	}

	total := decimal.Zero

	if raw := cell(colTotal); raw != "" {
		if total, err = decimal.NewFromString(raw); err != nil {
			return nil, fmt.Errorf("%s: %w", colTotal, err)
		}
	}

	return &models.Order{
		OrderNo:      cell(colOrderNo),
		Date:         parseDateCell(cell(colDate)),
		CustomerName: cell(colCustomer),
		PhoneNumber:  parsePhoneCell(cell(colPhone)),
		Address:      cell(colAddress),
		Qty500g:      qty500g,
		Qty1kg:       qty1kg,
		Total:        total.Round(2),
		Status:       parseStatusCell(cell(colStatus)),
	}, nil
}

// parseQuantity accepts "2" as well as "2.0", which other tools write for integers
func parseQuantity(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	if n, err := strconv.Atoi(raw); err == nil {
		return n, nil
	}

	d, err := decimal.NewFromString(raw)

	if err != nil || !d.Equal(d.Truncate(0)) {
		return 0, fmt.Errorf("not a whole number: %q", raw)
	}

	return int(d.IntPart()), nil
}

// parseDateCell keeps text dates as they are and converts date serials
// written by spreadsheet programs back to YYYY-MM-DD.
func parseDateCell(raw string) string {
	if len(raw) >= 10 {
		if _, err := models.ParseDate(raw[:10]); err == nil {
			return raw[:10]
		}
	}

	if serial, err := strconv.ParseFloat(raw, 64); err == nil {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return models.FormatDate(t)
		}
	}

	return raw
}

// parsePhoneCell undoes numeric storage of phone numbers ("705081870.0").
// Digit strings are kept exactly as written; padding is a display concern.
func parsePhoneCell(raw string) string {
	if raw == "" || strings.Trim(raw, "0123456789") == "" {
		return raw
	}

	d, err := decimal.NewFromString(raw)

	if err == nil && d.Equal(d.Truncate(0)) && !d.IsNegative() {
		return d.String()
	}

	return raw
}

func parseStatusCell(raw string) models.OrderStatus {
	if status, err := models.ParseOrderStatus(raw); err == nil {
		return status
	}
	return models.OrderStatus(raw)
}
