package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/xuri/excelize/v2"

	"facebook-data-reader/internal/dataset"
)

// defaultSheet - лист, который excelize создает в новой книге.
const defaultSheet = "Sheet1"

// XLSXExporter сохраняет таблицы в книгу Excel: лист на таблицу.
type XLSXExporter struct{}

// NewXLSXExporter создает новый экземпляр XLSXExporter.
func NewXLSXExporter() *XLSXExporter {
	return &XLSXExporter{}
}

// Export записывает книгу в файл dest.
func (e *XLSXExporter) Export(ctx context.Context, data *dataset.ExportData, dest string) error {
	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("failed to close excel file", slog.String("error", err.Error()))
		}
	}()

	for i, s := range schemas {
		if err := ctx.Err(); err != nil {
			return err
		}
		sheet := string(s.table)
		if i == 0 {
			if err := f.SetSheetName(defaultSheet, sheet); err != nil {
				return fmt.Errorf("не удалось переименовать лист: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return fmt.Errorf("не удалось создать лист %s: %w", sheet, err)
		}
		if err := writeSheet(f, sheet, s, data); err != nil {
			return fmt.Errorf("не удалось заполнить лист %s: %w", sheet, err)
		}
	}
	f.SetActiveSheet(0)

	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return fmt.Errorf("не удалось создать каталог для %s: %w", dest, err)
	}
	if err := f.SaveAs(dest); err != nil {
		return fmt.Errorf("не удалось сохранить %s: %w", dest, err)
	}
	slog.Info("Книга сохранена", "path", dest, "sheets", len(schemas))
	return nil
}

func writeSheet(f *excelize.File, sheet string, s schema, data *dataset.ExportData) error {
	sw, err := f.NewStreamWriter(sheet)
	if err != nil {
		return err
	}

	header := make([]interface{}, len(s.columns))
	for i, c := range s.columns {
		header[i] = c.name
	}
	if err := sw.SetRow("A1", header); err != nil {
		return err
	}

	for i, row := range s.values(data) {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		values := make([]interface{}, len(row))
		for j, v := range row {
			if t, ok := v.(time.Time); ok {
				v = t.UTC().Format(TimeLayout)
			}
			values[j] = v
		}
		if err := sw.SetRow(cell, values); err != nil {
			return err
		}
	}
	return sw.Flush()
}
