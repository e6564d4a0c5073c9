package source

import (
	"fmt"

	"facebook-data-reader/internal/ports"
)

// Factory создает источник данных для пути к файлу экспорта.
type Factory func(path string) ports.DataSource

// MemorySource реализует интерфейс DataSource для чтения данных из памяти.
type MemorySource struct {
	path string
	data []byte
}

// NewMemorySource создает новый экземпляр MemorySource.
func NewMemorySource(data []byte) ports.DataSource {
	return &MemorySource{data: data}
}

// MemoryFactory возвращает фабрику, которая отдает содержимое файлов из карты path -> data.
// Для отсутствующего пути Fetch вернет ошибку.
func MemoryFactory(files map[string][]byte) Factory {
	return func(path string) ports.DataSource {
		return &MemorySource{path: path, data: files[path]}
	}
}

// Fetch возвращает данные из памяти.
func (s *MemorySource) Fetch() ([]byte, error) {
	if s.data == nil {
		if s.path != "" {
			return nil, fmt.Errorf("данные не установлены для %s", s.path)
		}
		return nil, fmt.Errorf("данные не установлены")
	}

	// Возвращаем копию данных, чтобы избежать изменений оригинальных данных
	dataCopy := make([]byte, len(s.data))
	copy(dataCopy, s.data)

	return dataCopy, nil
}
