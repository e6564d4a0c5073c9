package services

import (
	"testing"
	"time"

	"facebook-data-reader/internal/core/patterns"
	"facebook-data-reader/internal/core/textfix"
	"facebook-data-reader/internal/dataset"
	"facebook-data-reader/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func commentEntry(ts int64, title string, payload *domain.CommentPayload) domain.CommentEntry {
	e := domain.CommentEntry{Timestamp: int64Ptr(ts), Title: strPtr(title)}
	if payload != nil {
		e.Data = []domain.CommentData{{Comment: payload}}
	}
	return e
}

func TestCommentExtractor(t *testing.T) {
	ex := NewCommentExtractor(patterns.Polish(), textfix.New())

	t.Run("ответ другому пользователю", func(t *testing.T) {
		b := dataset.NewBuilder[domain.Comment]()
		ex.Extract(&domain.CommentsFile{Comments: []domain.CommentEntry{
			commentEntry(100, "Jan Kowalski skomentował status użytkownika Anna Nowak.",
				&domain.CommentPayload{Timestamp: int64Ptr(100), Comment: "Super!"}),
		}}, b)

		table := b.Freeze(nil)
		require.Equal(t, 1, table.Len())
		c := table.At(0)
		assert.Equal(t, "Jan Kowalski", c.Author)
		assert.Equal(t, "Anna Nowak", c.AnswerFor)
		assert.Equal(t, "Super!", c.Text)
		assert.Equal(t, time.Unix(100, 0).UTC(), c.Timestamp)
	})

	t.Run("ответ самому себе", func(t *testing.T) {
		b := dataset.NewBuilder[domain.Comment]()
		ex.Extract(&domain.CommentsFile{Comments: []domain.CommentEntry{
			commentEntry(5, "Jan Kowalski skomentował swój post.", &domain.CommentPayload{Comment: "ok"}),
		}}, b)

		table := b.Freeze(nil)
		require.Equal(t, 1, table.Len())
		assert.Equal(t, "Jan Kowalski", table.At(0).AnswerFor)
		assert.Equal(t, time.Unix(5, 0).UTC(), table.At(0).Timestamp, "время берется из записи, если его нет в комментарии")
	})

	t.Run("обычный комментарий без адресата", func(t *testing.T) {
		b := dataset.NewBuilder[domain.Comment]()
		ex.Extract(&domain.CommentsFile{Comments: []domain.CommentEntry{
			commentEntry(1, "Jan Kowalski skomentował zdjęcie.", &domain.CommentPayload{Comment: "ładne", Group: "Koty"}),
		}}, b)

		table := b.Freeze(nil)
		require.Equal(t, 1, table.Len())
		assert.Empty(t, table.At(0).AnswerFor)
		assert.Equal(t, "Koty", table.At(0).Group)
	})

	t.Run("автор из содержимого важнее подписи", func(t *testing.T) {
		b := dataset.NewBuilder[domain.Comment]()
		ex.Extract(&domain.CommentsFile{Comments: []domain.CommentEntry{
			commentEntry(1, "Jan Kowalski skomentował zdjęcie.", &domain.CommentPayload{Comment: "x", Author: "Jan K."}),
		}}, b)

		assert.Equal(t, "Jan K.", b.Freeze(nil).At(0).Author)
	})

	t.Run("некорректные записи пропускаются", func(t *testing.T) {
		b := dataset.NewBuilder[domain.Comment]()
		ex.Extract(&domain.CommentsFile{Comments: []domain.CommentEntry{
			commentEntry(1, "Jan Kowalski skomentował zdjęcie.", nil),
			commentEntry(2, "Jan Kowalski skomentował zdjęcie.", &domain.CommentPayload{Comment: "valid"}),
			commentEntry(3, "Ktoś polubił zdjęcie.", &domain.CommentPayload{Comment: "x"}),
			{Timestamp: int64Ptr(4), Data: []domain.CommentData{{Comment: &domain.CommentPayload{Comment: "x"}}}},
		}}, b)

		table := b.Freeze(nil)
		require.Equal(t, 1, table.Len())
		assert.Equal(t, "valid", table.At(0).Text)
		assert.Equal(t, dataset.SkipCounts{
			ErrMissingPayload.Error():  1,
			ErrAuthorUnmatched.Error(): 2,
		}, table.Skipped())
	})

	t.Run("комментарий без времени пропускается", func(t *testing.T) {
		b := dataset.NewBuilder[domain.Comment]()
		ex.Extract(&domain.CommentsFile{Comments: []domain.CommentEntry{
			{
				Title: strPtr("Jan Kowalski skomentował zdjęcie."),
				Data:  []domain.CommentData{{Comment: &domain.CommentPayload{Comment: "bez czasu"}}},
			},
			{
				Title: strPtr("Jan Kowalski skomentował zdjęcie."),
				Data:  []domain.CommentData{{Comment: &domain.CommentPayload{Timestamp: int64Ptr(7), Comment: "czas w treści"}}},
			},
		}}, b)

		table := b.Freeze(nil)
		require.Equal(t, 1, table.Len())
		assert.Equal(t, "czas w treści", table.At(0).Text)
		assert.Equal(t, time.Unix(7, 0).UTC(), table.At(0).Timestamp)
		assert.Equal(t, dataset.SkipCounts{ErrMissingKey.Error(): 1}, table.Skipped())
	})
}

func TestPostExtractor(t *testing.T) {
	ex := NewPostExtractor(patterns.Polish(), textfix.New())

	post := func(ts int64, title string, texts ...*string) domain.PostEntry {
		e := domain.PostEntry{Timestamp: int64Ptr(ts), Title: strPtr(title)}
		for _, text := range texts {
			e.Data = append(e.Data, domain.PostData{Post: text})
		}
		return e
	}

	t.Run("пост в событии", func(t *testing.T) {
		b := dataset.NewBuilder[domain.Post]()
		ex.Extract([]domain.PostEntry{
			post(10, "Jan Kowalski dodał zdjęcie do wydarzenia: Impreza.", strPtr("Zapraszam")),
		}, b)

		table := b.Freeze(nil)
		require.Equal(t, 1, table.Len())
		p := table.At(0)
		assert.Equal(t, domain.PostInEvent, p.Kind)
		assert.Equal(t, "Impreza", p.In)
		assert.Equal(t, "Jan Kowalski", p.Author)
		assert.Equal(t, "Zapraszam", p.Text)
	})

	t.Run("пост в группе без завершающей точки", func(t *testing.T) {
		b := dataset.NewBuilder[domain.Post]()
		ex.Extract([]domain.PostEntry{
			post(10, "Jan Kowalski napisał w grupie Miłośnicy kotów.", strPtr("Miau")),
		}, b)

		p := b.Freeze(nil).At(0)
		assert.Equal(t, domain.PostInGroup, p.Kind)
		assert.Equal(t, "Miłośnicy kotów", p.In)
	})

	t.Run("собственный статус", func(t *testing.T) {
		b := dataset.NewBuilder[domain.Post]()
		ex.Extract([]domain.PostEntry{
			post(10, "Jan Kowalski zmienił swój status. użytkownika Anna Nowak.", strPtr("Nowy status")),
		}, b)

		p := b.Freeze(nil).At(0)
		assert.Equal(t, domain.PostInUser, p.Kind)
		assert.Equal(t, "Jan Kowalski", p.In)
	})

	t.Run("подпись без места публикации", func(t *testing.T) {
		b := dataset.NewBuilder[domain.Post]()
		ex.Extract([]domain.PostEntry{post(10, "Jan Kowalski dodał nowe zdjęcie.", strPtr("x"))}, b)

		p := b.Freeze(nil).At(0)
		assert.Empty(t, p.In)
		assert.Empty(t, p.Kind)
	})

	t.Run("текст берется из первого элемента с post", func(t *testing.T) {
		b := dataset.NewBuilder[domain.Post]()
		ex.Extract([]domain.PostEntry{post(10, "Jan Kowalski dodał wpis.", nil, strPtr("drugi"))}, b)

		assert.Equal(t, "drugi", b.Freeze(nil).At(0).Text)
	})

	t.Run("пропуск без текста и без автора", func(t *testing.T) {
		b := dataset.NewBuilder[domain.Post]()
		ex.Extract([]domain.PostEntry{
			post(1, "Jan Kowalski dodał wpis."),
			post(2, "Jan Kowalski dodał wpis.", nil),
			post(3, "Coś się stało.", strPtr("x")),
		}, b)

		table := b.Freeze(nil)
		assert.Equal(t, 0, table.Len())
		assert.Equal(t, dataset.SkipCounts{
			ErrMissingPayload.Error():  2,
			ErrAuthorUnmatched.Error(): 1,
		}, table.Skipped())
	})

	t.Run("пост без времени пропускается", func(t *testing.T) {
		b := dataset.NewBuilder[domain.Post]()
		ex.Extract([]domain.PostEntry{
			{
				Title: strPtr("Jan Kowalski dodał zdjęcie do wydarzenia: Impreza."),
				Data:  []domain.PostData{{Post: strPtr("hej")}},
			},
			post(10, "Jan Kowalski dodał zdjęcie do wydarzenia: Impreza.", strPtr("Zapraszam")),
		}, b)

		table := b.Freeze(nil)
		require.Equal(t, 1, table.Len())
		assert.Equal(t, "Zapraszam", table.At(0).Text)
		assert.Equal(t, dataset.SkipCounts{ErrMissingKey.Error(): 1}, table.Skipped())
	})
}

func TestSearchHistoryExtractor(t *testing.T) {
	ex := NewSearchHistoryExtractor(identity{})
	b := dataset.NewBuilder[domain.Search]()

	ex.Extract(&domain.SearchHistoryFile{Searches: []domain.SearchEntry{
		{Timestamp: 3, Data: []domain.TextData{{Text: strPtr(`"koty"`)}}},
		{Timestamp: 1, Attachments: []domain.SearchAttachment{{Data: []domain.TextData{{Text: strPtr(`"psy"`)}}}}},
		{Timestamp: 2},
	}}, b)

	table := b.Freeze(dataset.ByTimestamp(func(s domain.Search) time.Time { return s.Timestamp }))
	require.Equal(t, 2, table.Len())
	assert.Equal(t, "psy", table.At(0).Text)
	assert.Equal(t, "koty", table.At(1).Text)
	assert.Equal(t, 1, table.Skipped()[ErrNoText.Error()])
}

func TestFriendsAndContacts(t *testing.T) {
	fixer := new(mockRepairer)
	fixer.On("Repair", "JÃ³zef").Return("Józef")
	fixer.On("Repair", mock.Anything).Return("Anna")

	b := dataset.NewBuilder[domain.FriendContact]()
	NewFriendsExtractor(fixer).Extract(&domain.FriendsFile{Friends: []domain.FriendEntry{
		{Name: "JÃ³zef", Timestamp: 20},
		{Name: "", Timestamp: 30},
	}}, b)
	NewContactsExtractor(fixer).Extract(&domain.AddressBookFile{AddressBook: &domain.AddressBook{
		AddressBook: []domain.ContactEntry{{Name: "Anna", CreatedTimestamp: 10}},
	}}, b)

	table := b.Freeze(dataset.ByTimestamp(func(f domain.FriendContact) time.Time { return f.Timestamp }))
	require.Equal(t, 2, table.Len())
	assert.Equal(t, domain.FriendContact{Timestamp: time.Unix(10, 0).UTC(), Name: "Anna", Kind: domain.KindContact}, table.At(0))
	assert.Equal(t, domain.FriendContact{Timestamp: time.Unix(20, 0).UTC(), Name: "Józef", Kind: domain.KindFriend}, table.At(1))
	assert.Equal(t, 1, table.Skipped().Total())
	fixer.AssertNumberOfCalls(t, "Repair", 2)
}

func TestInterestsExtractor(t *testing.T) {
	b := dataset.NewBuilder[string]()
	NewInterestsExtractor(identity{}).Extract(&domain.InterestsFile{Topics: []string{"Koty", "", "Astronomia"}}, b)

	table := b.Freeze(nil)
	assert.Equal(t, []string{"Koty", "", "Astronomia"}, table.Rows())
	assert.Zero(t, table.Skipped().Total())
}

func TestNewExtractors(t *testing.T) {
	ex := NewExtractors(patterns.Polish(), identity{})
	assert.NotNil(t, ex.Friends)
	assert.NotNil(t, ex.Contacts)
	assert.NotNil(t, ex.Comments)
	assert.NotNil(t, ex.SearchHistory)
	assert.NotNil(t, ex.Posts)
	assert.NotNil(t, ex.Messages)
	assert.NotNil(t, ex.Interests)
}
