package services

import (
	"facebook-data-reader/internal/core/patterns"
	"facebook-data-reader/internal/dataset"
	"facebook-data-reader/internal/domain"
	"facebook-data-reader/internal/ports"
)

// CommentExtractor извлекает комментарии и определяет, кому адресован ответ.
type CommentExtractor struct {
	patterns *patterns.Table
	fixer    ports.TextRepairer
}

// NewCommentExtractor создает новый экземпляр CommentExtractor.
func NewCommentExtractor(p *patterns.Table, fixer ports.TextRepairer) *CommentExtractor {
	return &CommentExtractor{patterns: p, fixer: fixer}
}

// Extract добавляет комментарии в таблицу. Некорректные записи пропускаются.
func (e *CommentExtractor) Extract(f *domain.CommentsFile, b *dataset.Builder[domain.Comment]) {
	for _, entry := range f.Comments {
		c, err := e.comment(entry)
		if err != nil {
			b.Skip(err)
			continue
		}
		b.Add(c)
	}
}

func (e *CommentExtractor) comment(entry domain.CommentEntry) (domain.Comment, error) {
	if len(entry.Data) == 0 || entry.Data[0].Comment == nil {
		return domain.Comment{}, ErrMissingPayload
	}
	if entry.Title == nil {
		return domain.Comment{}, ErrAuthorUnmatched
	}

	title := e.fixer.Repair(*entry.Title)
	name, ok := e.patterns.CommentAuthor(title)
	if !ok {
		return domain.Comment{}, ErrAuthorUnmatched
	}

	var answerFor string
	if addressee, ok := e.patterns.Addressee(title); ok {
		answerFor = addressee
	} else if e.patterns.IsOwnComment(title) {
		answerFor = name
	}

	payload := entry.Data[0].Comment
	ts := payload.Timestamp
	if ts == nil {
		ts = entry.Timestamp
	}
	if ts == nil {
		return domain.Comment{}, ErrMissingKey
	}
	author := e.fixer.Repair(payload.Author)
	if author == "" {
		author = name
	}

	return domain.Comment{
		Timestamp: domain.FromUnix(*ts),
		Author:    author,
		Text:      e.fixer.Repair(payload.Comment),
		Group:     e.fixer.Repair(payload.Group),
		AnswerFor: answerFor,
	}, nil
}
