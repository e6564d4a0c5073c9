// Package exporter сохраняет загруженные таблицы в разных форматах.
package exporter

import (
	"fmt"
	"io"

	"facebook-data-reader/internal/ports"
)

// Format - формат сохранения.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatXLSX    Format = "xlsx"
	FormatSQLite  Format = "sqlite"
	FormatConsole Format = "console"
)

// Formats перечисляет поддерживаемые форматы.
var Formats = []Format{FormatCSV, FormatXLSX, FormatSQLite, FormatConsole}

// New возвращает Exporter для формата. Сводка формата console пишется в out.
func New(format Format, out io.Writer) (ports.Exporter, error) {
	switch format {
	case FormatCSV:
		return NewCSVExporter(), nil
	case FormatXLSX:
		return NewXLSXExporter(), nil
	case FormatSQLite:
		return NewSQLiteExporter(), nil
	case FormatConsole:
		return NewConsoleExporterTo(out), nil
	}
	return nil, fmt.Errorf("неизвестный формат: %s", format)
}

// DefaultFileName возвращает имя файла результата для форматов, пишущих один файл.
// Для csv и console результат - каталог или stdout, имя пустое.
func DefaultFileName(format Format) string {
	switch format {
	case FormatXLSX:
		return "export.xlsx"
	case FormatSQLite:
		return "export.sqlite"
	}
	return ""
}
