package exporter

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"facebook-data-reader/internal/dataset"
	"facebook-data-reader/internal/domain"
	"facebook-data-reader/internal/ports"
)

// Расширения файлов таблиц.
const (
	ExtDelimited = ".csv"
	ExtPlain     = ".txt"
)

// maxParallelWrites ограничивает число одновременно записываемых файлов.
const maxParallelWrites = 4

// CSVExporter сохраняет таблицы в каталог: по файлу на таблицу.
// Также восстанавливает их обратно (реализует ports.Restorer).
type CSVExporter struct{}

// NewCSVExporter создает новый экземпляр CSVExporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

var (
	_ ports.Exporter = (*CSVExporter)(nil)
	_ ports.Restorer = (*CSVExporter)(nil)
)

// Export записывает все таблицы в каталог dest.
func (e *CSVExporter) Export(ctx context.Context, data *dataset.ExportData, dest string) error {
	if err := os.MkdirAll(dest, 0o755); err != nil {
		return fmt.Errorf("не удалось создать каталог %s: %w", dest, err)
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxParallelWrites)
	for _, s := range schemas {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return writeTable(dest, s, data)
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	slog.Info("Таблицы сохранены", "dir", dest, "tables", len(schemas))
	return nil
}

func tableFileName(s schema) string {
	if s.plain {
		return string(s.table) + ExtPlain
	}
	return string(s.table) + ExtDelimited
}

func writeTable(dir string, s schema, data *dataset.ExportData) (err error) {
	path := filepath.Join(dir, tableFileName(s))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("не удалось создать файл %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("не удалось закрыть файл %s: %w", path, cerr)
		}
	}()

	rows := s.values(data)
	if s.plain {
		err = writeLines(f, rows)
	} else {
		err = writeDelimited(f, s.header(), rows)
	}
	if err != nil {
		return fmt.Errorf("не удалось записать %s: %w", path, err)
	}
	return nil
}

// Restore читает таблицы из каталога src. Файлы выбираются по расширению,
// неизвестные таблицы пропускаются, отсутствующие остаются пустыми.
func (e *CSVExporter) Restore(ctx context.Context, src string) (*dataset.ExportData, error) {
	entries, err := os.ReadDir(src)
	if err != nil {
		return nil, fmt.Errorf("не удалось прочитать каталог %s: %w", src, err)
	}

	data := &dataset.ExportData{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		name := entry.Name()
		ext := strings.ToLower(filepath.Ext(name))
		if ext != ExtDelimited && ext != ExtPlain {
			continue
		}
		s, ok := schemaFor(domain.Table(strings.TrimSuffix(name, filepath.Ext(name))))
		if !ok || s.plain != (ext == ExtPlain) {
			slog.Debug("Пропущен файл", "path", filepath.Join(src, name))
			continue
		}

		path := filepath.Join(src, name)
		rows, err := readTable(path, s)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		s.restore(data, rows)
	}
	return data, nil
}

func readTable(path string, s schema) ([][]any, error) {
	if s.plain {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()

		lines, err := readLines(f)
		if err != nil {
			return nil, err
		}
		rows := make([][]any, 0, len(lines))
		for _, l := range lines {
			rows = append(rows, []any{l})
		}
		return rows, nil
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	records, err := parseDelimited(raw)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	header := records[0]
	if strings.Join(header, ",") != strings.Join(s.header(), ",") {
		return nil, fmt.Errorf("неожиданный заголовок %v", header)
	}

	rows := make([][]any, 0, len(records)-1)
	for i, rec := range records[1:] {
		row, err := decodeRow(s.columns, rec)
		if err != nil {
			return nil, fmt.Errorf("строка %d: %w", i+2, err)
		}
		rows = append(rows, row)
	}
	return rows, nil
}
