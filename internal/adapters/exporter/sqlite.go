package exporter

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"facebook-data-reader/internal/dataset"
)

// SQLiteExporter сохраняет таблицы в базу SQLite. Таблицы пересоздаются при каждом экспорте.
type SQLiteExporter struct{}

// NewSQLiteExporter создает новый экземпляр SQLiteExporter.
func NewSQLiteExporter() *SQLiteExporter {
	return &SQLiteExporter{}
}

// OpenSQLite открывает (или создает) базу по пути path.
func OpenSQLite(path string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	dsn, err := sqliteDSN(path)
	if err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

// sqliteDSN строит URI базы: путь абсолютный и экранирован, параметры задают pragma.
func sqliteDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("не удалось получить абсолютный путь %s: %w", path, err)
	}
	abs = filepath.ToSlash(abs)
	if !strings.HasPrefix(abs, "/") {
		abs = "/" + abs
	}

	query := url.Values{}
	query.Add("_pragma", "journal_mode(WAL)")
	query.Add("_pragma", "busy_timeout(5000)")

	u := url.URL{Scheme: "file", Path: abs, RawQuery: query.Encode()}
	return u.String(), nil
}

// Export записывает все таблицы в одной транзакции.
func (e *SQLiteExporter) Export(ctx context.Context, data *dataset.ExportData, dest string) error {
	db, err := OpenSQLite(dest)
	if err != nil {
		return fmt.Errorf("не удалось открыть базу %s: %w", dest, err)
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("не удалось начать транзакцию: %w", err)
	}
	for _, s := range schemas {
		if err := insertTable(ctx, tx, s, data); err != nil {
			tx.Rollback()
			return fmt.Errorf("таблица %s: %w", s.table, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("не удалось завершить транзакцию: %w", err)
	}

	slog.Info("База сохранена", "path", dest, "tables", len(schemas))
	return nil
}

func insertTable(ctx context.Context, tx *sql.Tx, s schema, data *dataset.ExportData) error {
	name := quoteIdent(string(s.table))
	if _, err := tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+name); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, createTableSQL(s)); err != nil {
		return err
	}

	cols := make([]string, len(s.columns))
	marks := make([]string, len(s.columns))
	for i, c := range s.columns {
		cols[i] = quoteIdent(c.name)
		marks[i] = "?"
	}
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		name, strings.Join(cols, ", "), strings.Join(marks, ", ")))
	if err != nil {
		return err
	}
	defer stmt.Close()

	for _, row := range s.values(data) {
		args := make([]any, len(row))
		for i, v := range row {
			if t, ok := v.(time.Time); ok {
				v = t.UTC().Format(TimeLayout)
			}
			args[i] = v
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			return err
		}
	}
	return nil
}

func createTableSQL(s schema) string {
	defs := make([]string, len(s.columns))
	for i, c := range s.columns {
		typ := "TEXT"
		if c.kind == colInt {
			typ = "INTEGER"
		}
		defs[i] = quoteIdent(c.name) + " " + typ + " NOT NULL"
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", quoteIdent(string(s.table)), strings.Join(defs, ", "))
}

func quoteIdent(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}
