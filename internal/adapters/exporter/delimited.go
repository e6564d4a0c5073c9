package exporter

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// Параметры текстового формата таблиц.
const (
	Separator = ';'
	Quote     = '`'
)

// ErrUnterminatedQuote - поле в кавычках не закрыто до конца файла.
var ErrUnterminatedQuote = errors.New("незакрытая кавычка")

// writeDelimited пишет заголовок и строки. Нечисловые поля всегда в кавычках,
// кавычка внутри поля удваивается.
func writeDelimited(w io.Writer, header []string, rows [][]any) error {
	bw := bufio.NewWriter(w)

	names := make([]any, len(header))
	for i, h := range header {
		names[i] = h
	}
	if err := writeRecord(bw, names); err != nil {
		return err
	}
	for _, row := range rows {
		if err := writeRecord(bw, row); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func writeRecord(w *bufio.Writer, values []any) error {
	for i, v := range values {
		if i > 0 {
			if err := w.WriteByte(Separator); err != nil {
				return err
			}
		}
		if _, err := w.WriteString(formatField(v)); err != nil {
			return err
		}
	}
	return w.WriteByte('\n')
}

func formatField(v any) string {
	switch x := v.(type) {
	case int64:
		return strconv.FormatInt(x, 10)
	case int:
		return strconv.Itoa(x)
	case time.Time:
		return quote(x.UTC().Format(TimeLayout))
	case string:
		return quote(x)
	}
	return quote(fmt.Sprint(v))
}

func quote(s string) string {
	q := string(Quote)
	return q + strings.ReplaceAll(s, q, q+q) + q
}

// parseDelimited разбирает содержимое файла на записи.
// Поля в кавычках могут содержать разделитель и перевод строки. Пустые строки пропускаются.
func parseDelimited(data []byte) ([][]string, error) {
	var (
		records  [][]string
		record   []string
		field    []byte
		inQuotes bool
		quoted   bool
	)

	endField := func() {
		record = append(record, string(field))
		field = field[:0]
		quoted = false
	}

	for i := 0; i < len(data); i++ {
		c := data[i]
		if inQuotes {
			if c == Quote {
				if i+1 < len(data) && data[i+1] == Quote {
					field = append(field, Quote)
					i++
					continue
				}
				inQuotes = false
				continue
			}
			field = append(field, c)
			continue
		}

		switch c {
		case Quote:
			inQuotes = true
			quoted = true
		case Separator:
			endField()
		case '\r':
			if i+1 < len(data) && data[i+1] == '\n' {
				continue
			}
			field = append(field, c)
		case '\n':
			if record == nil && len(field) == 0 && !quoted {
				continue
			}
			endField()
			records = append(records, record)
			record = nil
		default:
			field = append(field, c)
		}
	}

	if inQuotes {
		return nil, ErrUnterminatedQuote
	}
	if record != nil || len(field) > 0 || quoted {
		endField()
		records = append(records, record)
	}
	return records, nil
}

// writeLines пишет значения по одному на строку.
func writeLines(w io.Writer, rows [][]any) error {
	bw := bufio.NewWriter(w)
	for _, row := range rows {
		if _, err := bw.WriteString(fmt.Sprint(row[0])); err != nil {
			return err
		}
		if err := bw.WriteByte('\n'); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// readLines читает строки, включая пустые.
func readLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		out = append(out, strings.TrimSuffix(sc.Text(), "\r"))
	}
	return out, sc.Err()
}
