package domain

import "time"

// Dataset - логический набор данных, который можно запросить при загрузке экспорта.
type Dataset string

const (
	DatasetFriendsAndContacts Dataset = "friends_and_contacts"
	DatasetInterests          Dataset = "interests"
	DatasetComments           Dataset = "comments"
	DatasetSearchHistory      Dataset = "search_history"
	DatasetPosts              Dataset = "posts"
	DatasetMessages           Dataset = "messages"
)

// AllDatasets перечисляет наборы данных в каноническом порядке загрузки.
var AllDatasets = []Dataset{
	DatasetFriendsAndContacts,
	DatasetInterests,
	DatasetComments,
	DatasetSearchHistory,
	DatasetPosts,
	DatasetMessages,
}

// ParseDataset проверяет имя набора данных.
func ParseDataset(name string) (Dataset, bool) {
	for _, d := range AllDatasets {
		if string(d) == name {
			return d, true
		}
	}
	return "", false
}

// Table - имя физической таблицы результата. Набор messages раскрывается в шесть таблиц.
type Table string

const (
	TableFriendsAndContacts Table = "friends_and_contacts"
	TableComments           Table = "comments"
	TableSearchHistory      Table = "search_history"
	TablePosts              Table = "posts"
	TableMessages           Table = "messages"
	TableReactions          Table = "reactions"
	TableOtherMessages      Table = "other_messages"
	TableCalls              Table = "calls"
	TableParticipants       Table = "participants"
	TableGroups             Table = "groups"
	TableInterests          Table = "interests"
)

// AllTables перечисляет все физические таблицы в порядке сохранения.
var AllTables = []Table{
	TableFriendsAndContacts,
	TableComments,
	TableSearchHistory,
	TablePosts,
	TableMessages,
	TableReactions,
	TableOtherMessages,
	TableCalls,
	TableParticipants,
	TableGroups,
	TableInterests,
}

// ContactKind различает друзей и контакты из адресной книги.
type ContactKind string

const (
	KindFriend  ContactKind = "friend"
	KindContact ContactKind = "contact"
)

// ThreadKind - тип переписки: диалог (не более двух участников) или группа.
type ThreadKind string

const (
	ThreadDialog ThreadKind = "dialog"
	ThreadGroup  ThreadKind = "group"
)

// PostKind - место публикации поста, распознанное по подписи.
type PostKind string

const (
	PostInGroup PostKind = "group"
	PostInEvent PostKind = "event"
	PostInUser  PostKind = "user"
)

// AttachmentKind - вид нетекстового содержимого сообщения.
type AttachmentKind string

const (
	AttachmentPhotos  AttachmentKind = "photos"
	AttachmentAudio   AttachmentKind = "audio"
	AttachmentGifs    AttachmentKind = "gifs"
	AttachmentFiles   AttachmentKind = "files"
	AttachmentShare   AttachmentKind = "share"
	AttachmentSticker AttachmentKind = "sticker"
	AttachmentVideos  AttachmentKind = "videos"
)

// AttachmentKinds - фиксированный порядок проверки вложений.
var AttachmentKinds = []AttachmentKind{
	AttachmentPhotos,
	AttachmentAudio,
	AttachmentGifs,
	AttachmentFiles,
	AttachmentShare,
	AttachmentSticker,
	AttachmentVideos,
}

// FriendContact - строка таблицы friends_and_contacts.
type FriendContact struct {
	Timestamp time.Time   `json:"timestamp"`
	Name      string      `json:"name"`
	Kind      ContactKind `json:"kind"`
}

// Comment - строка таблицы comments.
// AnswerFor пуст для обычного комментария, содержит автора при ответе самому себе
// или имя адресата.
type Comment struct {
	Timestamp time.Time `json:"timestamp"`
	Author    string    `json:"author"`
	Text      string    `json:"comment"`
	Group     string    `json:"group"`
	AnswerFor string    `json:"answer_for"`
}

// Search - строка таблицы search_history.
type Search struct {
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
}

// Post - строка таблицы posts. In и Kind пусты, если подпись не распознана.
type Post struct {
	Timestamp time.Time `json:"timestamp"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	In        string    `json:"in"`
	Kind      PostKind  `json:"kind"`
}

// Message - текстовое сообщение.
type Message struct {
	Timestamp  time.Time  `json:"timestamp"`
	Author     string     `json:"author"`
	ThreadID   string     `json:"thread_id"`
	ThreadKind ThreadKind `json:"thread_kind"`
	Text       string     `json:"text"`
	Reactions  int        `json:"reactions"`
}

// OtherMessage - вложение одного вида в сообщении.
type OtherMessage struct {
	Timestamp  time.Time      `json:"timestamp"`
	Author     string         `json:"author"`
	ThreadID   string         `json:"thread_id"`
	ThreadKind ThreadKind     `json:"thread_kind"`
	Kind       AttachmentKind `json:"kind"`
	Count      int            `json:"count"`
	Reactions  int            `json:"reactions"`
}

// Call - звонок. Duration в секундах, 0 для пропущенного.
type Call struct {
	Timestamp  time.Time  `json:"timestamp"`
	Author     string     `json:"author"`
	ThreadID   string     `json:"thread_id"`
	ThreadKind ThreadKind `json:"thread_kind"`
	Duration   int64      `json:"call_duration"`
}

// Reaction - реакция на сообщение; время совпадает со временем сообщения.
type Reaction struct {
	Timestamp  time.Time  `json:"timestamp"`
	Author     string     `json:"author"`
	ThreadID   string     `json:"thread_id"`
	ThreadKind ThreadKind `json:"thread_kind"`
	Reaction   string     `json:"reaction"`
}

// Participant - участник переписки.
type Participant struct {
	ThreadID string `json:"thread_id"`
	Name     string `json:"name"`
}

// Group - групповая переписка.
type Group struct {
	ThreadID     string `json:"thread_id"`
	Title        string `json:"title"`
	Participants int    `json:"participants"`
}

// FromUnix переводит секунды эпохи во время UTC.
func FromUnix(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// FromUnixMilli переводит миллисекунды эпохи во время UTC.
func FromUnixMilli(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

