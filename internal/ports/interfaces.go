package ports

import (
	"context"

	"facebook-data-reader/internal/dataset"
	"facebook-data-reader/internal/domain"
)

// DataSource определяет интерфейс для получения содержимого одного файла экспорта.
type DataSource interface {
	// Fetch загружает данные из источника и возвращает их в виде байтового среза.
	Fetch() ([]byte, error)
}

// Parser определяет интерфейс для разбора файлов экспорта.
// Каждый метод проверяет наличие обязательных ключей верхнего уровня.
type Parser interface {
	ParseFriends(data []byte) (*domain.FriendsFile, error)
	ParseAddressBook(data []byte) (*domain.AddressBookFile, error)
	ParseComments(data []byte) (*domain.CommentsFile, error)
	ParseInterests(data []byte) (*domain.InterestsFile, error)
	ParseSearchHistory(data []byte) (*domain.SearchHistoryFile, error)
	ParsePosts(data []byte) ([]domain.PostEntry, error)
	ParseThread(data []byte) (*domain.ThreadFile, error)
}

// TextRepairer исправляет испорченную кодировку текста. Должен быть идемпотентным.
type TextRepairer interface {
	Repair(text string) string
}

// ExportLoader загружает экспорт из корневого каталога.
// Пустой subset означает загрузку всех наборов данных.
type ExportLoader interface {
	Load(ctx context.Context, root string, subset ...domain.Dataset) (*dataset.ExportData, error)
}

// Exporter определяет интерфейс для сохранения результата.
type Exporter interface {
	// Export сохраняет все таблицы в dest (каталог или файл, в зависимости от формата).
	Export(ctx context.Context, data *dataset.ExportData, dest string) error
}

// Restorer восстанавливает ранее сохраненные таблицы.
type Restorer interface {
	Restore(ctx context.Context, src string) (*dataset.ExportData, error)
}
