package exporter

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"facebook-data-reader/internal/dataset"
)

// ConsoleExporter выводит сводку по таблицам.
type ConsoleExporter struct {
	out io.Writer
}

// NewConsoleExporterTo создает ConsoleExporter, пишущий в w.
func NewConsoleExporterTo(w io.Writer) *ConsoleExporter {
	return &ConsoleExporter{out: w}
}

// Export выводит число строк и пропусков по каждой таблице. dest не используется.
func (e *ConsoleExporter) Export(_ context.Context, data *dataset.ExportData, _ string) error {
	fmt.Fprintln(e.out, "--- Export Summary ---")

	var total int
	for _, s := range data.Summary() {
		total += s.Rows
		line := fmt.Sprintf("%-22s %10s", s.Table, humanize.Comma(int64(s.Rows)))
		if skipped := s.Skipped.Total(); skipped > 0 {
			line += fmt.Sprintf("  (пропущено %s: %s)", humanize.Comma(int64(skipped)), reasons(s.Skipped))
		}
		fmt.Fprintln(e.out, line)
	}

	fmt.Fprintf(e.out, "Всего строк: %s\n", humanize.Comma(int64(total)))
	return nil
}

func reasons(s dataset.SkipCounts) string {
	keys := make([]string, 0, len(s))
	for k := range s {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, s[k]))
	}
	return strings.Join(parts, ", ")
}
