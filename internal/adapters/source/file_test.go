package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileSource(t *testing.T) {
	t.Run("NewFileSource создает корректный экземпляр", func(t *testing.T) {
		source := NewFileSource("friends.json")
		if source == nil {
			t.Error("Ожидался экземпляр FileSource, получен nil")
		}
	})

	t.Run("Fetch возвращает ошибку для пустого пути к файлу", func(t *testing.T) {
		source := &FileSource{filePath: ""}

		data, err := source.Fetch()
		if err == nil {
			t.Fatal("Ожидалась ошибка для пустого пути к файлу, получено nil")
		}

		if data != nil {
			t.Error("Ожидались nil данные для пустого пути к файлу, получены данные")
		}

		if err.Error() != "не указан путь к файлу" {
			t.Errorf("Ожидалось сообщение об ошибке 'не указан путь к файлу', получено '%s'", err.Error())
		}
	})

	t.Run("Fetch возвращает ошибку для несуществующего файла", func(t *testing.T) {
		source := &FileSource{filePath: filepath.Join(t.TempDir(), "non_existing_file.json")}

		data, err := source.Fetch()
		if err == nil {
			t.Error("Ожидалась ошибка для несуществующего файла, получено nil")
		}

		if data != nil {
			t.Error("Ожидались nil данные для несуществующего файла, получены данные")
		}
	})

	t.Run("Fetch возвращает данные для существующего файла", func(t *testing.T) {
		testData := []byte(`{"friends": [{"name": "Anna Nowak", "timestamp": 1500000000}]}`)
		path := filepath.Join(t.TempDir(), "friends.json")
		if err := os.WriteFile(path, testData, 0644); err != nil {
			t.Fatal("Не удалось записать временный файл")
		}

		source := &FileSource{filePath: path}

		data, err := source.Fetch()
		if err != nil {
			t.Errorf("Неожиданная ошибка: %v", err)
		}

		if string(data) != string(testData) {
			t.Errorf("Ожидались данные '%s', получено '%s'", string(testData), string(data))
		}
	})
}
