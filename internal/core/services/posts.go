package services

import (
	"strings"

	"facebook-data-reader/internal/core/patterns"
	"facebook-data-reader/internal/dataset"
	"facebook-data-reader/internal/domain"
	"facebook-data-reader/internal/ports"
)

// PostExtractor извлекает посты и место их публикации.
type PostExtractor struct {
	patterns *patterns.Table
	fixer    ports.TextRepairer
}

// NewPostExtractor создает новый экземпляр PostExtractor.
func NewPostExtractor(p *patterns.Table, fixer ports.TextRepairer) *PostExtractor {
	return &PostExtractor{patterns: p, fixer: fixer}
}

// Extract добавляет посты одного файла в таблицу. Вызывается для каждого файла каталога posts.
func (e *PostExtractor) Extract(posts []domain.PostEntry, b *dataset.Builder[domain.Post]) {
	for _, entry := range posts {
		p, err := e.post(entry)
		if err != nil {
			b.Skip(err)
			continue
		}
		b.Add(p)
	}
}

func (e *PostExtractor) post(entry domain.PostEntry) (domain.Post, error) {
	text, ok := postText(entry.Data)
	if !ok {
		return domain.Post{}, ErrMissingPayload
	}
	if entry.Timestamp == nil {
		return domain.Post{}, ErrMissingKey
	}
	if entry.Title == nil {
		return domain.Post{}, ErrAuthorUnmatched
	}

	title := e.fixer.Repair(*entry.Title)
	author, ok := e.patterns.PostAuthor(title)
	if !ok {
		return domain.Post{}, ErrAuthorUnmatched
	}

	p := domain.Post{
		Timestamp: domain.FromUnix(*entry.Timestamp),
		Text:      e.fixer.Repair(text),
		Author:    author,
	}
	if d, ok := e.patterns.Destination(title); ok {
		name := strings.TrimSuffix(d.Name, ".")
		if e.patterns.IsOwnStatus(title) {
			name = author
		}
		p.In = name
		p.Kind = d.Kind
	}
	return p, nil
}

// postText возвращает текст из первого элемента data, в котором он есть.
// В части экспортов первым идет элемент только с update_timestamp.
func postText(data []domain.PostData) (string, bool) {
	for _, d := range data {
		if d.Post != nil {
			return *d.Post, true
		}
	}
	return "", false
}
