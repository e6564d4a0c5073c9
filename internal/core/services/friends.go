package services

import (
	"facebook-data-reader/internal/dataset"
	"facebook-data-reader/internal/domain"
	"facebook-data-reader/internal/ports"
)

// FriendsExtractor извлекает список друзей.
type FriendsExtractor struct {
	fixer ports.TextRepairer
}

// NewFriendsExtractor создает новый экземпляр FriendsExtractor.
func NewFriendsExtractor(fixer ports.TextRepairer) *FriendsExtractor {
	return &FriendsExtractor{fixer: fixer}
}

// Extract добавляет друзей в таблицу friends_and_contacts.
func (e *FriendsExtractor) Extract(f *domain.FriendsFile, b *dataset.Builder[domain.FriendContact]) {
	for _, entry := range f.Friends {
		if entry.Name == "" {
			b.Skip(ErrMissingKey)
			continue
		}
		b.Add(domain.FriendContact{
			Timestamp: domain.FromUnix(entry.Timestamp),
			Name:      e.fixer.Repair(entry.Name),
			Kind:      domain.KindFriend,
		})
	}
}

// ContactsExtractor извлекает контакты из адресной книги.
type ContactsExtractor struct {
	fixer ports.TextRepairer
}

// NewContactsExtractor создает новый экземпляр ContactsExtractor.
func NewContactsExtractor(fixer ports.TextRepairer) *ContactsExtractor {
	return &ContactsExtractor{fixer: fixer}
}

// Extract добавляет контакты в таблицу friends_and_contacts.
func (e *ContactsExtractor) Extract(f *domain.AddressBookFile, b *dataset.Builder[domain.FriendContact]) {
	if f.AddressBook == nil {
		return
	}
	for _, entry := range f.AddressBook.AddressBook {
		if entry.Name == "" {
			b.Skip(ErrMissingKey)
			continue
		}
		b.Add(domain.FriendContact{
			Timestamp: domain.FromUnix(entry.CreatedTimestamp),
			Name:      e.fixer.Repair(entry.Name),
			Kind:      domain.KindContact,
		})
	}
}

// InterestsExtractor извлекает список интересов. Порядок сохраняется.
type InterestsExtractor struct {
	fixer ports.TextRepairer
}

// NewInterestsExtractor создает новый экземпляр InterestsExtractor.
func NewInterestsExtractor(fixer ports.TextRepairer) *InterestsExtractor {
	return &InterestsExtractor{fixer: fixer}
}

// Extract добавляет интересы в таблицу interests. Пустые значения сохраняются.
func (e *InterestsExtractor) Extract(f *domain.InterestsFile, b *dataset.Builder[string]) {
	for _, topic := range f.Topics {
		b.Add(e.fixer.Repair(topic))
	}
}
