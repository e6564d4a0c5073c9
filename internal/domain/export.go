package domain

import "encoding/json"

// Ниже описаны "сырые" структуры файлов экспорта в том виде, в каком они лежат на диске.
// Срез равен nil, только если ключ отсутствовал в JSON (или был null): пустой массив
// декодируется в непустой срез нулевой длины. На этом построены структурные проверки парсера.

// FriendsFile - friends/friends.json.
type FriendsFile struct {
	Friends []FriendEntry `json:"friends"`
}

// FriendEntry - один друг.
type FriendEntry struct {
	Name      string `json:"name"`
	Timestamp int64  `json:"timestamp"`
}

// AddressBookFile - about_you/your_address_books.json.
type AddressBookFile struct {
	AddressBook *AddressBook `json:"address_book"`
}

// AddressBook - вложенный объект адресной книги.
type AddressBook struct {
	AddressBook []ContactEntry `json:"address_book"`
}

// ContactEntry - один контакт.
type ContactEntry struct {
	Name             string `json:"name"`
	CreatedTimestamp int64  `json:"created_timestamp"`
}

// CommentsFile - comments/comments.json.
type CommentsFile struct {
	Comments []CommentEntry `json:"comments"`
}

// CommentEntry - элемент списка комментариев. Сам комментарий лежит в Data[0].Comment.
type CommentEntry struct {
	Timestamp *int64        `json:"timestamp"`
	Title     *string       `json:"title"`
	Data      []CommentData `json:"data"`
}

// CommentData - обертка вокруг комментария.
type CommentData struct {
	Comment *CommentPayload `json:"comment"`
}

// CommentPayload - содержимое комментария.
type CommentPayload struct {
	Timestamp *int64 `json:"timestamp"`
	Comment   string `json:"comment"`
	Author    string `json:"author"`
	Group     string `json:"group"`
}

// InterestsFile - ads_and_businesses/ads_interests.json.
type InterestsFile struct {
	Topics []string `json:"topics"`
}

// SearchHistoryFile - search_history/your_search_history.json.
type SearchHistoryFile struct {
	Searches []SearchEntry `json:"searches"`
}

// SearchEntry - один поисковый запрос. Текст лежит либо в Data, либо в Attachments.
type SearchEntry struct {
	Timestamp   int64              `json:"timestamp"`
	Data        []TextData         `json:"data"`
	Attachments []SearchAttachment `json:"attachments"`
}

// TextData - элемент с текстом.
type TextData struct {
	Text *string `json:"text"`
}

// SearchAttachment - вложение поискового запроса.
type SearchAttachment struct {
	Data []TextData `json:"data"`
}

// PostEntry - элемент файла из каталога posts.
type PostEntry struct {
	Timestamp *int64     `json:"timestamp"`
	Title     *string    `json:"title"`
	Data      []PostData `json:"data"`
}

// PostData - элемент data поста; текст есть не в каждом элементе.
type PostData struct {
	Post *string `json:"post"`
}

// ThreadFile - один файл (шард) переписки из каталога messages.
type ThreadFile struct {
	Participants []ParticipantEntry `json:"participants"`
	Messages     []MessageEntry     `json:"messages"`
	Title        string             `json:"title"`
	ThreadPath   string             `json:"thread_path"`
}

// ParticipantEntry - участник переписки.
type ParticipantEntry struct {
	Name string `json:"name"`
}

// MessageEntry - одно сообщение переписки.
// Поля вложений хранятся как json.RawMessage: важен сам факт наличия ключа.
type MessageEntry struct {
	SenderName   *string         `json:"sender_name"`
	TimestampMs  *int64          `json:"timestamp_ms"`
	Type         string          `json:"type"`
	Content      *string         `json:"content"`
	CallDuration *float64        `json:"call_duration"`
	Missed       json.RawMessage `json:"missed"`
	Missing      json.RawMessage `json:"missing"` // старые экспорты
	Reactions    []ReactionEntry `json:"reactions"`

	Photos     json.RawMessage `json:"photos"`
	Audio      json.RawMessage `json:"audio"`
	AudioFiles json.RawMessage `json:"audio_files"`
	Gifs       json.RawMessage `json:"gifs"`
	Files      json.RawMessage `json:"files"`
	Share      json.RawMessage `json:"share"`
	Sticker    json.RawMessage `json:"sticker"`
	Videos     json.RawMessage `json:"videos"`
}

// ReactionEntry - реакция на сообщение.
type ReactionEntry struct {
	Reaction string `json:"reaction"`
	Actor    string `json:"actor"`
}

// Attachment возвращает сырое вложение указанного вида или nil, если ключа нет.
func (m *MessageEntry) Attachment(kind AttachmentKind) json.RawMessage {
	switch kind {
	case AttachmentPhotos:
		return m.Photos
	case AttachmentAudio:
		if m.Audio != nil {
			return m.Audio
		}
		return m.AudioFiles
	case AttachmentGifs:
		return m.Gifs
	case AttachmentFiles:
		return m.Files
	case AttachmentShare:
		return m.Share
	case AttachmentSticker:
		return m.Sticker
	case AttachmentVideos:
		return m.Videos
	}
	return nil
}

// IsMissed сообщает, есть ли у звонка признак пропущенного.
func (m *MessageEntry) IsMissed() bool {
	return m.Missed != nil || m.Missing != nil
}
