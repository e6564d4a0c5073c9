package dataset

import (
	"time"

	"facebook-data-reader/internal/domain"
)

// ExportData - результат загрузки экспорта: по одной таблице на каждую физическую таблицу.
// Незапрошенные наборы данных остаются пустыми таблицами.
type ExportData struct {
	FriendsAndContacts Table[domain.FriendContact]
	Comments           Table[domain.Comment]
	SearchHistory      Table[domain.Search]
	Posts              Table[domain.Post]
	Messages           Table[domain.Message]
	Reactions          Table[domain.Reaction]
	OtherMessages      Table[domain.OtherMessage]
	Calls              Table[domain.Call]
	Participants       Table[domain.Participant]
	Groups             Table[domain.Group]
	Interests          Table[string]
}

// TableSummary - краткая информация о таблице.
type TableSummary struct {
	Table   domain.Table `json:"table"`
	Rows    int          `json:"rows"`
	Skipped SkipCounts   `json:"skipped,omitempty"`
}

// Summary возвращает сводку по всем таблицам в порядке domain.AllTables.
func (d *ExportData) Summary() []TableSummary {
	out := make([]TableSummary, 0, len(domain.AllTables))
	for _, name := range domain.AllTables {
		rows, skipped := d.stats(name)
		out = append(out, TableSummary{Table: name, Rows: rows, Skipped: skipped})
	}
	return out
}

func (d *ExportData) stats(name domain.Table) (int, SkipCounts) {
	switch name {
	case domain.TableFriendsAndContacts:
		return d.FriendsAndContacts.Len(), d.FriendsAndContacts.Skipped()
	case domain.TableComments:
		return d.Comments.Len(), d.Comments.Skipped()
	case domain.TableSearchHistory:
		return d.SearchHistory.Len(), d.SearchHistory.Skipped()
	case domain.TablePosts:
		return d.Posts.Len(), d.Posts.Skipped()
	case domain.TableMessages:
		return d.Messages.Len(), d.Messages.Skipped()
	case domain.TableReactions:
		return d.Reactions.Len(), d.Reactions.Skipped()
	case domain.TableOtherMessages:
		return d.OtherMessages.Len(), d.OtherMessages.Skipped()
	case domain.TableCalls:
		return d.Calls.Len(), d.Calls.Skipped()
	case domain.TableParticipants:
		return d.Participants.Len(), d.Participants.Skipped()
	case domain.TableGroups:
		return d.Groups.Len(), d.Groups.Skipped()
	case domain.TableInterests:
		return d.Interests.Len(), d.Interests.Skipped()
	}
	return 0, nil
}

// Rows возвращает строки таблицы по имени как срез any (для сериализации в JSON).
func (d *ExportData) Rows(name domain.Table) ([]any, bool) {
	switch name {
	case domain.TableFriendsAndContacts:
		return anyRows(d.FriendsAndContacts), true
	case domain.TableComments:
		return anyRows(d.Comments), true
	case domain.TableSearchHistory:
		return anyRows(d.SearchHistory), true
	case domain.TablePosts:
		return anyRows(d.Posts), true
	case domain.TableMessages:
		return anyRows(d.Messages), true
	case domain.TableReactions:
		return anyRows(d.Reactions), true
	case domain.TableOtherMessages:
		return anyRows(d.OtherMessages), true
	case domain.TableCalls:
		return anyRows(d.Calls), true
	case domain.TableParticipants:
		return anyRows(d.Participants), true
	case domain.TableGroups:
		return anyRows(d.Groups), true
	case domain.TableInterests:
		return anyRows(d.Interests), true
	}
	return nil, false
}

func anyRows[T any](t Table[T]) []any {
	out := make([]any, 0, t.Len())
	t.Each(func(_ int, row T) bool {
		out = append(out, row)
		return true
	})
	return out
}

// ByTimestamp возвращает функцию сравнения по времени для Builder.Freeze.
func ByTimestamp[T any](ts func(T) time.Time) func(a, b T) bool {
	return func(a, b T) bool { return ts(a).Before(ts(b)) }
}

// ByThreadID возвращает функцию сравнения по идентификатору переписки для Builder.Freeze.
func ByThreadID[T any](id func(T) string) func(a, b T) bool {
	return func(a, b T) bool { return id(a) < id(b) }
}
