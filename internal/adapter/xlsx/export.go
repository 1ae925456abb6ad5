// Package xlsx mirrors the ledger into a spreadsheet for visual inspection.
// It is purely presentational: nothing here feeds back into the ledger.
package xlsx

import (
	"fmt"
	"log/slog"
	"strconv"

	"github.com/xuri/excelize/v2"

	"github.com/javimendezpy/control-emails/internal/ledger"
)

// Fill colors matching the usual received/missing convention: soft green for
// 1, soft red for 0.
const (
	fillReceived = "C6EFCE"
	fillMissing  = "FFC7CE"
)

// Exporter writes the ledger to one .xlsx file, overwriting it each time.
// It implements pipeline.Exporter.
type Exporter struct {
	path   string
	logger *slog.Logger
}

func NewExporter(path string, logger *slog.Logger) *Exporter {
	return &Exporter{path: path, logger: logger}
}

// Export writes the full ledger with green/red conditional fills on every
// date column.
func (e *Exporter) Export(l *ledger.Ledger) error {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)

	columns := l.Columns()
	if err := setCell(f, sheet, 1, 1, ledger.KeyColumn); err != nil {
		return err
	}
	for i, col := range columns {
		if err := setCell(f, sheet, i+2, 1, col); err != nil {
			return err
		}
	}

	for r, row := range l.Rows() {
		if err := setCell(f, sheet, 1, r+2, row.Station); err != nil {
			return err
		}
		for i, col := range columns {
			value := row.Cells[col]
			// Date cells become numbers so the conditional rules compare
			// numerically.
			var v any = value
			if ledger.IsDateColumn(col) {
				if n, err := strconv.Atoi(value); err == nil {
					v = n
				}
			}
			if err := setCell(f, sheet, i+2, r+2, v); err != nil {
				return err
			}
		}
	}

	if err := e.applyConditionalFills(f, sheet, columns, len(l.Rows())); err != nil {
		return err
	}
	if err := f.SaveAs(e.path); err != nil {
		return fmt.Errorf("save spreadsheet %s: %w", e.path, err)
	}
	e.logger.Info("spreadsheet exported", "path", e.path, "rows", len(l.Rows()))
	return nil
}

func (e *Exporter) applyConditionalFills(f *excelize.File, sheet string, columns []string, rows int) error {
	if rows == 0 {
		return nil
	}
	green, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{fillReceived}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create received style: %w", err)
	}
	red, err := f.NewConditionalStyle(&excelize.Style{
		Fill: excelize.Fill{Type: "pattern", Color: []string{fillMissing}, Pattern: 1},
	})
	if err != nil {
		return fmt.Errorf("create missing style: %w", err)
	}

	for i, col := range columns {
		if !ledger.IsDateColumn(col) {
			continue
		}
		name, err := excelize.ColumnNumberToName(i + 2)
		if err != nil {
			return fmt.Errorf("column name for %s: %w", col, err)
		}
		area := fmt.Sprintf("%s2:%s%d", name, name, rows+1)
		err = f.SetConditionalFormat(sheet, area, []excelize.ConditionalFormatOptions{
			{Type: "cell", Criteria: "==", Value: "1", Format: &green, StopIfTrue: true},
			{Type: "cell", Criteria: "==", Value: "0", Format: &red, StopIfTrue: true},
		})
		if err != nil {
			return fmt.Errorf("conditional format %s: %w", area, err)
		}
	}
	return nil
}

func setCell(f *excelize.File, sheet string, col, row int, v any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("cell (%d,%d): %w", col, row, err)
	}
	if err := f.SetCellValue(sheet, cell, v); err != nil {
		return fmt.Errorf("set %s: %w", cell, err)
	}
	return nil
}
