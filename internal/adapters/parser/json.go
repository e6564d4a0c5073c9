package parser

import (
	"encoding/json"
	"errors"
	"fmt"

	"facebook-data-reader/internal/domain"
	"facebook-data-reader/internal/ports"
)

// ErrMissingKey - в файле нет обязательного ключа верхнего уровня.
var ErrMissingKey = errors.New("отсутствует обязательный ключ")

// JsonParser реализует интерфейс Parser для разбора JSON данных экспорта.
type JsonParser struct{}

// NewJsonParser создает новый экземпляр JsonParser.
func NewJsonParser() ports.Parser {
	return &JsonParser{}
}

func decode[T any](data []byte, v *T) error {
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to unmarshal json: %w", err)
	}
	return nil
}

func missing(key string) error {
	return fmt.Errorf("%w %q", ErrMissingKey, key)
}

// ParseFriends разбирает friends/friends.json.
func (p *JsonParser) ParseFriends(data []byte) (*domain.FriendsFile, error) {
	var f domain.FriendsFile
	if err := decode(data, &f); err != nil {
		return nil, err
	}
	if f.Friends == nil {
		return nil, missing("friends")
	}
	return &f, nil
}

// ParseAddressBook разбирает about_you/your_address_books.json.
func (p *JsonParser) ParseAddressBook(data []byte) (*domain.AddressBookFile, error) {
	var f domain.AddressBookFile
	if err := decode(data, &f); err != nil {
		return nil, err
	}
	if f.AddressBook == nil || f.AddressBook.AddressBook == nil {
		return nil, missing("address_book.address_book")
	}
	return &f, nil
}

// ParseComments разбирает comments/comments.json.
func (p *JsonParser) ParseComments(data []byte) (*domain.CommentsFile, error) {
	var f domain.CommentsFile
	if err := decode(data, &f); err != nil {
		return nil, err
	}
	if f.Comments == nil {
		return nil, missing("comments")
	}
	return &f, nil
}

// ParseInterests разбирает ads_and_businesses/ads_interests.json.
func (p *JsonParser) ParseInterests(data []byte) (*domain.InterestsFile, error) {
	var f domain.InterestsFile
	if err := decode(data, &f); err != nil {
		return nil, err
	}
	if f.Topics == nil {
		return nil, missing("topics")
	}
	return &f, nil
}

// ParseSearchHistory разбирает search_history/your_search_history.json.
func (p *JsonParser) ParseSearchHistory(data []byte) (*domain.SearchHistoryFile, error) {
	var f domain.SearchHistoryFile
	if err := decode(data, &f); err != nil {
		return nil, err
	}
	if f.Searches == nil {
		return nil, missing("searches")
	}
	return &f, nil
}

// ParsePosts разбирает один файл из каталога posts. Файл - массив постов.
func (p *JsonParser) ParsePosts(data []byte) ([]domain.PostEntry, error) {
	var posts []domain.PostEntry
	if err := decode(data, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		return nil, fmt.Errorf("ожидался массив постов, получен null")
	}
	return posts, nil
}

// ParseThread разбирает один шард переписки.
func (p *JsonParser) ParseThread(data []byte) (*domain.ThreadFile, error) {
	var f domain.ThreadFile
	if err := decode(data, &f); err != nil {
		return nil, err
	}
	switch {
	case f.Participants == nil:
		return nil, missing("participants")
	case f.Messages == nil:
		return nil, missing("messages")
	case f.ThreadPath == "":
		return nil, missing("thread_path")
	}
	return &f, nil
}
