package exporter

import (
	"fmt"
	"strconv"
	"time"

	"facebook-data-reader/internal/dataset"
	"facebook-data-reader/internal/domain"
)

// TimeLayout - формат времени в сохраненных таблицах (всегда UTC).
const TimeLayout = "2006-01-02 15:04:05.999999999"

type columnKind int

const (
	colText columnKind = iota
	colInt
	colTime
)

type column struct {
	name string
	kind columnKind
}

// schema описывает одну таблицу: колонки (первая служит индексом),
// преобразование строк в значения и обратно.
type schema struct {
	table   domain.Table
	columns []column
	// plain - таблица-список, сохраняется как текст по строке на значение.
	plain   bool
	values  func(d *dataset.ExportData) [][]any
	restore func(d *dataset.ExportData, rows [][]any)
}

func (s schema) header() []string {
	out := make([]string, len(s.columns))
	for i, c := range s.columns {
		out[i] = c.name
	}
	return out
}

func rowsOf[T any](t dataset.Table[T], fn func(T) []any) [][]any {
	out := make([][]any, 0, t.Len())
	t.Each(func(_ int, row T) bool {
		out = append(out, fn(row))
		return true
	})
	return out
}

func restoreRows[T any](rows [][]any, fn func([]any) T) dataset.Table[T] {
	out := make([]T, 0, len(rows))
	for _, r := range rows {
		out = append(out, fn(r))
	}
	return dataset.NewTable(out)
}

var (
	tsCol      = column{"timestamp", colTime}
	authorCol  = column{"author", colText}
	threadCol  = column{"thread_id", colText}
	threadKind = column{"thread_kind", colText}
)

// schemas перечисляет таблицы в порядке domain.AllTables.
var schemas = []schema{
	{
		table:   domain.TableFriendsAndContacts,
		columns: []column{tsCol, {"name", colText}, {"kind", colText}},
		values: func(d *dataset.ExportData) [][]any {
			return rowsOf(d.FriendsAndContacts, func(r domain.FriendContact) []any {
				return []any{r.Timestamp, r.Name, string(r.Kind)}
			})
		},
		restore: func(d *dataset.ExportData, rows [][]any) {
			d.FriendsAndContacts = restoreRows(rows, func(v []any) domain.FriendContact {
				return domain.FriendContact{Timestamp: v[0].(time.Time), Name: v[1].(string), Kind: domain.ContactKind(v[2].(string))}
			})
		},
	},
	{
		table:   domain.TableComments,
		columns: []column{tsCol, authorCol, {"comment", colText}, {"group", colText}, {"answer_for", colText}},
		values: func(d *dataset.ExportData) [][]any {
			return rowsOf(d.Comments, func(r domain.Comment) []any {
				return []any{r.Timestamp, r.Author, r.Text, r.Group, r.AnswerFor}
			})
		},
		restore: func(d *dataset.ExportData, rows [][]any) {
			d.Comments = restoreRows(rows, func(v []any) domain.Comment {
				return domain.Comment{
					Timestamp: v[0].(time.Time),
					Author:    v[1].(string),
					Text:      v[2].(string),
					Group:     v[3].(string),
					AnswerFor: v[4].(string),
				}
			})
		},
	},
	{
		table:   domain.TableSearchHistory,
		columns: []column{tsCol, {"text", colText}},
		values: func(d *dataset.ExportData) [][]any {
			return rowsOf(d.SearchHistory, func(r domain.Search) []any {
				return []any{r.Timestamp, r.Text}
			})
		},
		restore: func(d *dataset.ExportData, rows [][]any) {
			d.SearchHistory = restoreRows(rows, func(v []any) domain.Search {
				return domain.Search{Timestamp: v[0].(time.Time), Text: v[1].(string)}
			})
		},
	},
	{
		table:   domain.TablePosts,
		columns: []column{tsCol, {"text", colText}, authorCol, {"in", colText}, {"kind", colText}},
		values: func(d *dataset.ExportData) [][]any {
			return rowsOf(d.Posts, func(r domain.Post) []any {
				return []any{r.Timestamp, r.Text, r.Author, r.In, string(r.Kind)}
			})
		},
		restore: func(d *dataset.ExportData, rows [][]any) {
			d.Posts = restoreRows(rows, func(v []any) domain.Post {
				return domain.Post{
					Timestamp: v[0].(time.Time),
					Text:      v[1].(string),
					Author:    v[2].(string),
					In:        v[3].(string),
					Kind:      domain.PostKind(v[4].(string)),
				}
			})
		},
	},
	{
		table:   domain.TableMessages,
		columns: []column{tsCol, authorCol, threadCol, threadKind, {"text", colText}, {"reactions", colInt}},
		values: func(d *dataset.ExportData) [][]any {
			return rowsOf(d.Messages, func(r domain.Message) []any {
				return []any{r.Timestamp, r.Author, r.ThreadID, string(r.ThreadKind), r.Text, int64(r.Reactions)}
			})
		},
		restore: func(d *dataset.ExportData, rows [][]any) {
			d.Messages = restoreRows(rows, func(v []any) domain.Message {
				return domain.Message{
					Timestamp:  v[0].(time.Time),
					Author:     v[1].(string),
					ThreadID:   v[2].(string),
					ThreadKind: domain.ThreadKind(v[3].(string)),
					Text:       v[4].(string),
					Reactions:  int(v[5].(int64)),
				}
			})
		},
	},
	{
		table:   domain.TableReactions,
		columns: []column{tsCol, authorCol, threadCol, threadKind, {"reaction", colText}},
		values: func(d *dataset.ExportData) [][]any {
			return rowsOf(d.Reactions, func(r domain.Reaction) []any {
				return []any{r.Timestamp, r.Author, r.ThreadID, string(r.ThreadKind), r.Reaction}
			})
		},
		restore: func(d *dataset.ExportData, rows [][]any) {
			d.Reactions = restoreRows(rows, func(v []any) domain.Reaction {
				return domain.Reaction{
					Timestamp:  v[0].(time.Time),
					Author:     v[1].(string),
					ThreadID:   v[2].(string),
					ThreadKind: domain.ThreadKind(v[3].(string)),
					Reaction:   v[4].(string),
				}
			})
		},
	},
	{
		table: domain.TableOtherMessages,
		columns: []column{tsCol, authorCol, threadCol, threadKind,
			{"kind", colText}, {"count", colInt}, {"reactions", colInt}},
		values: func(d *dataset.ExportData) [][]any {
			return rowsOf(d.OtherMessages, func(r domain.OtherMessage) []any {
				return []any{r.Timestamp, r.Author, r.ThreadID, string(r.ThreadKind), string(r.Kind), int64(r.Count), int64(r.Reactions)}
			})
		},
		restore: func(d *dataset.ExportData, rows [][]any) {
			d.OtherMessages = restoreRows(rows, func(v []any) domain.OtherMessage {
				return domain.OtherMessage{
					Timestamp:  v[0].(time.Time),
					Author:     v[1].(string),
					ThreadID:   v[2].(string),
					ThreadKind: domain.ThreadKind(v[3].(string)),
					Kind:       domain.AttachmentKind(v[4].(string)),
					Count:      int(v[5].(int64)),
					Reactions:  int(v[6].(int64)),
				}
			})
		},
	},
	{
		table:   domain.TableCalls,
		columns: []column{tsCol, authorCol, threadCol, threadKind, {"call_duration", colInt}},
		values: func(d *dataset.ExportData) [][]any {
			return rowsOf(d.Calls, func(r domain.Call) []any {
				return []any{r.Timestamp, r.Author, r.ThreadID, string(r.ThreadKind), r.Duration}
			})
		},
		restore: func(d *dataset.ExportData, rows [][]any) {
			d.Calls = restoreRows(rows, func(v []any) domain.Call {
				return domain.Call{
					Timestamp:  v[0].(time.Time),
					Author:     v[1].(string),
					ThreadID:   v[2].(string),
					ThreadKind: domain.ThreadKind(v[3].(string)),
					Duration:   v[4].(int64),
				}
			})
		},
	},
	{
		table:   domain.TableParticipants,
		columns: []column{threadCol, {"name", colText}},
		values: func(d *dataset.ExportData) [][]any {
			return rowsOf(d.Participants, func(r domain.Participant) []any {
				return []any{r.ThreadID, r.Name}
			})
		},
		restore: func(d *dataset.ExportData, rows [][]any) {
			d.Participants = restoreRows(rows, func(v []any) domain.Participant {
				return domain.Participant{ThreadID: v[0].(string), Name: v[1].(string)}
			})
		},
	},
	{
		table:   domain.TableGroups,
		columns: []column{threadCol, {"title", colText}, {"participants", colInt}},
		values: func(d *dataset.ExportData) [][]any {
			return rowsOf(d.Groups, func(r domain.Group) []any {
				return []any{r.ThreadID, r.Title, int64(r.Participants)}
			})
		},
		restore: func(d *dataset.ExportData, rows [][]any) {
			d.Groups = restoreRows(rows, func(v []any) domain.Group {
				return domain.Group{ThreadID: v[0].(string), Title: v[1].(string), Participants: int(v[2].(int64))}
			})
		},
	},
	{
		table:   domain.TableInterests,
		columns: []column{{"interest", colText}},
		plain:   true,
		values: func(d *dataset.ExportData) [][]any {
			return rowsOf(d.Interests, func(r string) []any { return []any{r} })
		},
		restore: func(d *dataset.ExportData, rows [][]any) {
			d.Interests = restoreRows(rows, func(v []any) string { return v[0].(string) })
		},
	},
}

func schemaFor(table domain.Table) (schema, bool) {
	for _, s := range schemas {
		if s.table == table {
			return s, true
		}
	}
	return schema{}, false
}

// decodeRow приводит текстовые поля к типам колонок.
func decodeRow(columns []column, fields []string) ([]any, error) {
	if len(fields) != len(columns) {
		return nil, fmt.Errorf("ожидалось %d полей, получено %d", len(columns), len(fields))
	}
	out := make([]any, len(columns))
	for i, c := range columns {
		switch c.kind {
		case colInt:
			v, err := strconv.ParseInt(fields[i], 10, 64)
			if err != nil {
				return nil, fmt.Errorf("колонка %s: %w", c.name, err)
			}
			out[i] = v
		case colTime:
			v, err := time.ParseInLocation(TimeLayout, fields[i], time.UTC)
			if err != nil {
				return nil, fmt.Errorf("колонка %s: %w", c.name, err)
			}
			out[i] = v
		default:
			out[i] = fields[i]
		}
	}
	return out, nil
}
