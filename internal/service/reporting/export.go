package reporting

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const (
	modelsRange  = "Models!A:E"
	stockRange   = "Stock!A:E"
	exportsRange = "Exports!A:A"
)

// ErrExportDisabled is returned when no spreadsheet is configured.
var ErrExportDisabled = errors.New("sheets export is not configured")

// ExportDaily appends today's model counters and stock rows to the
// spreadsheet. It reports false when today's export already exists.
func (s *Service) ExportDaily(ctx context.Context) (bool, error) {
	if s.sheets == nil {
		return false, ErrExportDisabled
	}

	sum := s.Summary()

	done, err := s.sheets.ReadRange(ctx, exportsRange)
	if err != nil {
		return false, fmt.Errorf("load exports range: %w", err)
	}
	for _, row := range done {
		if len(row) > 0 && fmt.Sprint(row[0]) == sum.Date {
			s.logger.Info("daily export already done", zap.String("date", sum.Date))
			return false, nil
		}
	}

	modelRows := make([][]interface{}, 0, len(sum.Models))
	for _, m := range sum.Models {
		modelRows = append(modelRows, []interface{}{sum.Date, m.Code, m.Name, m.InProduction, m.Finished})
	}
	if err := s.sheets.AppendRows(ctx, modelsRange, modelRows); err != nil {
		return false, fmt.Errorf("export models: %w", err)
	}

	stockRows := make([][]interface{}, 0, len(sum.Stocks))
	for _, row := range sum.Stocks {
		stockRows = append(stockRows, []interface{}{sum.Date, row.Type.Name(), int(row.Size), row.Color, row.Count})
	}
	if err := s.sheets.AppendRows(ctx, stockRange, stockRows); err != nil {
		return false, fmt.Errorf("export stock: %w", err)
	}

	if err := s.sheets.AppendRows(ctx, exportsRange, [][]interface{}{{sum.Date}}); err != nil {
		return false, fmt.Errorf("mark export: %w", err)
	}

	s.logger.Info("daily export written",
		zap.String("date", sum.Date),
		zap.Int("models", len(modelRows)),
		zap.Int("stock_rows", len(stockRows)),
	)
	return true, nil
}
