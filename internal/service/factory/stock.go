package factory

import (
	"context"
	"slices"
	"strings"

	"github.com/mamadbah2/factory/internal/domain/models"
	"github.com/mamadbah2/factory/internal/ledger"
)

// ReceiveStock adds delivered bags to the warehouse.
func (s *Service) ReceiveStock(ctx context.Context, d StockReceiptDraft) (models.WarehouseLog, error) {
	key, err := d.key("")
	if err != nil {
		return models.WarehouseLog{}, err
	}
	var entry models.WarehouseLog
	id := s.newID()
	err = s.change(ctx, "stock.receive", id, func(st *models.State) error {
		e, err := ledger.ReceiveStock(st, key, d.Quantity, id, s.dateOr(d.Date))
		entry = e
		return err
	})
	return entry, err
}

// SetStockCount reconciles a row with a physical count. The returned bool is
// false when the count already matched and nothing was logged.
func (s *Service) SetStockCount(ctx context.Context, d StockCountDraft) (models.WarehouseLog, bool, error) {
	key, err := d.key("")
	if err != nil {
		return models.WarehouseLog{}, false, err
	}
	var (
		entry  models.WarehouseLog
		logged bool
	)
	id := s.newID()
	err = s.change(ctx, "stock.set_count", id, func(st *models.State) error {
		e, ok, err := ledger.SetCount(st, key, d.Count, id, s.dateOr(d.Date))
		entry, logged = e, ok
		return err
	})
	return entry, logged, err
}

// DeleteWarehouseLog removes a log entry and takes its quantity back out of stock.
func (s *Service) DeleteWarehouseLog(ctx context.Context, id string) error {
	return s.change(ctx, "stock.delete_log", id, func(st *models.State) error {
		_, err := ledger.RemoveLog(st, id)
		return err
	})
}

// Stocks returns the raw stock table in key order.
func (s *Service) Stocks() []models.RawStockEntry {
	var rows []models.RawStockEntry
	s.store.Read(func(st *models.State) {
		rows = ledger.NewStockTable(&st.Stocks).Rows()
	})
	return rows
}

// WarehouseLogs returns the stock change log, newest first.
func (s *Service) WarehouseLogs() []models.WarehouseLog {
	var logs []models.WarehouseLog
	s.store.Read(func(st *models.State) {
		logs = slices.Clone(st.WarehouseLogs)
	})
	slices.Reverse(logs)
	slices.SortStableFunc(logs, func(a, b models.WarehouseLog) int {
		return strings.Compare(b.Date, a.Date)
	})
	return logs
}
