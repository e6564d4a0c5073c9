package services

import (
	"errors"

	"facebook-data-reader/internal/core/patterns"
	"facebook-data-reader/internal/ports"
)

// Причины пропуска отдельных записей. Текст ошибки служит ключом счетчика в таблице.
var (
	// ErrMissingPayload - нет вложенного содержимого (пустой или отсутствующий data).
	ErrMissingPayload = errors.New("missing_payload")
	// ErrAuthorUnmatched - подпись не совпала с выражением автора.
	ErrAuthorUnmatched = errors.New("author_unmatched")
	// ErrMissingKey - нет обязательного ключа записи.
	ErrMissingKey = errors.New("missing_key")
	// ErrNoText - в записи нет текста.
	ErrNoText = errors.New("no_text")
)

// Extractors объединяет извлекатели всех источников экспорта.
type Extractors struct {
	Friends       *FriendsExtractor
	Contacts      *ContactsExtractor
	Comments      *CommentExtractor
	SearchHistory *SearchHistoryExtractor
	Posts         *PostExtractor
	Messages      *MessageExtractor
	Interests     *InterestsExtractor
}

// NewExtractors создает извлекатели с общей таблицей выражений и исправителем текста.
func NewExtractors(p *patterns.Table, fixer ports.TextRepairer) *Extractors {
	return &Extractors{
		Friends:       NewFriendsExtractor(fixer),
		Contacts:      NewContactsExtractor(fixer),
		Comments:      NewCommentExtractor(p, fixer),
		SearchHistory: NewSearchHistoryExtractor(fixer),
		Posts:         NewPostExtractor(p, fixer),
		Messages:      NewMessageExtractor(fixer),
		Interests:     NewInterestsExtractor(fixer),
	}
}
