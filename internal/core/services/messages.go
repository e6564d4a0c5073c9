package services

import (
	"bytes"
	"encoding/json"
	"math"
	"time"

	"facebook-data-reader/internal/dataset"
	"facebook-data-reader/internal/domain"
	"facebook-data-reader/internal/ports"
)

// Типы сообщений в экспорте.
const (
	messageTypeGeneric = "Generic"
	messageTypeShare   = "Share"
	messageTypeCall    = "Call"
)

// MessageTables - строители пяти таблиц, получаемых из переписок.
type MessageTables struct {
	Messages      *dataset.Builder[domain.Message]
	Reactions     *dataset.Builder[domain.Reaction]
	OtherMessages *dataset.Builder[domain.OtherMessage]
	Calls         *dataset.Builder[domain.Call]
	Participants  *dataset.Builder[domain.Participant]
	Groups        *dataset.Builder[domain.Group]
}

// NewMessageTables создает пустые строители.
func NewMessageTables() *MessageTables {
	return &MessageTables{
		Messages:      dataset.NewBuilder[domain.Message](),
		Reactions:     dataset.NewBuilder[domain.Reaction](),
		OtherMessages: dataset.NewBuilder[domain.OtherMessage](),
		Calls:         dataset.NewBuilder[domain.Call](),
		Participants:  dataset.NewBuilder[domain.Participant](),
		Groups:        dataset.NewBuilder[domain.Group](),
	}
}

// Freeze сортирует таблицы и записывает их в data.
func (t *MessageTables) Freeze(data *dataset.ExportData) {
	data.Messages = t.Messages.Freeze(dataset.ByTimestamp(func(m domain.Message) time.Time { return m.Timestamp }))
	data.Reactions = t.Reactions.Freeze(dataset.ByTimestamp(func(r domain.Reaction) time.Time { return r.Timestamp }))
	data.OtherMessages = t.OtherMessages.Freeze(dataset.ByTimestamp(func(o domain.OtherMessage) time.Time { return o.Timestamp }))
	data.Calls = t.Calls.Freeze(dataset.ByTimestamp(func(c domain.Call) time.Time { return c.Timestamp }))
	data.Participants = t.Participants.Freeze(dataset.ByThreadID(func(p domain.Participant) string { return p.ThreadID }))
	data.Groups = t.Groups.Freeze(dataset.ByThreadID(func(g domain.Group) string { return g.ThreadID }))
}

// MessageExtractor раскладывает шарды переписок по таблицам.
type MessageExtractor struct {
	fixer ports.TextRepairer
}

// NewMessageExtractor создает новый экземпляр MessageExtractor.
func NewMessageExtractor(fixer ports.TextRepairer) *MessageExtractor {
	return &MessageExtractor{fixer: fixer}
}

// Extract обрабатывает один шард. Участники и группа переписки добавляются
// только при первой встрече thread_path в state.
func (e *MessageExtractor) Extract(thread *domain.ThreadFile, state *ThreadState, out *MessageTables) {
	threadID := thread.ThreadPath

	names := make([]string, 0, len(thread.Participants))
	for _, p := range thread.Participants {
		names = append(names, e.fixer.Repair(p.Name))
	}

	kind, first := state.Observe(threadID, len(names))
	if first {
		for _, name := range names {
			out.Participants.Add(domain.Participant{ThreadID: threadID, Name: name})
		}
		if kind == domain.ThreadGroup {
			out.Groups.Add(domain.Group{
				ThreadID:     threadID,
				Title:        e.fixer.Repair(thread.Title),
				Participants: len(names),
			})
		}
	}

	for i := range thread.Messages {
		e.message(&thread.Messages[i], threadID, kind, out)
	}
}

type baseRecord struct {
	author     string
	timestamp  time.Time
	threadID   string
	threadKind domain.ThreadKind
}

func (e *MessageExtractor) message(m *domain.MessageEntry, threadID string, kind domain.ThreadKind, out *MessageTables) {
	if m.SenderName == nil || m.TimestampMs == nil {
		out.Messages.Skip(ErrMissingKey)
		return
	}
	base := baseRecord{
		author:     e.fixer.Repair(*m.SenderName),
		timestamp:  domain.FromUnixMilli(*m.TimestampMs),
		threadID:   threadID,
		threadKind: kind,
	}
	reactions := len(m.Reactions)

	if m.Content != nil && (m.Type == messageTypeGeneric || m.Type == messageTypeShare) {
		out.Messages.Add(domain.Message{
			Timestamp:  base.timestamp,
			Author:     base.author,
			ThreadID:   base.threadID,
			ThreadKind: base.threadKind,
			Text:       e.fixer.Repair(*m.Content),
			Reactions:  reactions,
		})
	}

	if m.Type == messageTypeCall {
		if call, ok := callRecord(m, base); ok {
			out.Calls.Add(call)
		}
	}

	for _, r := range m.Reactions {
		out.Reactions.Add(domain.Reaction{
			Timestamp:  base.timestamp,
			Author:     e.fixer.Repair(r.Actor),
			ThreadID:   base.threadID,
			ThreadKind: base.threadKind,
			Reaction:   e.fixer.Repair(r.Reaction),
		})
	}

	for _, ak := range domain.AttachmentKinds {
		raw := m.Attachment(ak)
		if raw == nil {
			continue
		}
		out.OtherMessages.Add(domain.OtherMessage{
			Timestamp:  base.timestamp,
			Author:     base.author,
			ThreadID:   base.threadID,
			ThreadKind: base.threadKind,
			Kind:       ak,
			Count:      attachmentCount(raw),
			Reactions:  reactions,
		})
	}
}

// callRecord строит звонок: при положительной длительности или с признаком пропущенного.
// Дробная длительность округляется вверх до целых секунд.
func callRecord(m *domain.MessageEntry, base baseRecord) (domain.Call, bool) {
	var duration float64
	if m.CallDuration != nil {
		duration = *m.CallDuration
	}
	if duration <= 0 {
		if !m.IsMissed() {
			return domain.Call{}, false
		}
		duration = 0
	}
	return domain.Call{
		Timestamp:  base.timestamp,
		Author:     base.author,
		ThreadID:   base.threadID,
		ThreadKind: base.threadKind,
		Duration:   int64(math.Ceil(duration)),
	}, true
}

// attachmentCount возвращает длину списка вложений, 1 для одиночного объекта и 0 для null.
func attachmentCount(raw json.RawMessage) int {
	trimmed := bytes.TrimSpace(raw)
	switch {
	case len(trimmed) == 0, bytes.Equal(trimmed, []byte("null")):
		return 0
	case trimmed[0] == '[':
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return 0
		}
		return len(items)
	}
	return 1
}
