package services

import (
	"strings"

	"facebook-data-reader/internal/dataset"
	"facebook-data-reader/internal/domain"
	"facebook-data-reader/internal/ports"
)

// SearchHistoryExtractor извлекает историю поиска.
type SearchHistoryExtractor struct {
	fixer ports.TextRepairer
}

// NewSearchHistoryExtractor создает новый экземпляр SearchHistoryExtractor.
func NewSearchHistoryExtractor(fixer ports.TextRepairer) *SearchHistoryExtractor {
	return &SearchHistoryExtractor{fixer: fixer}
}

// Extract добавляет поисковые запросы в таблицу.
func (e *SearchHistoryExtractor) Extract(f *domain.SearchHistoryFile, b *dataset.Builder[domain.Search]) {
	for _, entry := range f.Searches {
		text, ok := searchText(entry)
		if !ok {
			b.Skip(ErrNoText)
			continue
		}
		b.Add(domain.Search{
			Timestamp: domain.FromUnix(entry.Timestamp),
			Text:      strings.ReplaceAll(e.fixer.Repair(text), `"`, ""),
		})
	}
}

// searchText ищет текст сначала в data, затем во вложениях.
func searchText(entry domain.SearchEntry) (string, bool) {
	if len(entry.Data) > 0 && entry.Data[0].Text != nil {
		return *entry.Data[0].Text, true
	}
	if len(entry.Attachments) > 0 {
		data := entry.Attachments[0].Data
		if len(data) > 0 && data[0].Text != nil {
			return *data[0].Text, true
		}
	}
	return "", false
}
