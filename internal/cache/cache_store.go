package cache

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"facebook-data-reader/internal/dataset"
	"facebook-data-reader/internal/domain"
)

// CacheItem представляет кэшированный результат загрузки
type CacheItem struct {
	Data      *dataset.ExportData
	ExpiresAt time.Time
}

// CacheStore управляет хранением и извлечением кэшированных результатов
type CacheStore struct {
	cache *gocache.Cache
}

// NewCacheStore создает новый экземпляр CacheStore.
// Просроченные элементы удаляются через StartCleanupTicker.
func NewCacheStore() *CacheStore {
	return &CacheStore{
		cache: gocache.New(gocache.NoExpiration, 0),
	}
}

// Get извлекает кэшированный элемент по его ключу (хешу)
func (cs *CacheStore) Get(key string) (*CacheItem, bool) {
	v, expiresAt, found := cs.cache.GetWithExpiration(key)
	if !found {
		return nil, false
	}
	data, ok := v.(*dataset.ExportData)
	if !ok {
		return nil, false
	}
	return &CacheItem{Data: data, ExpiresAt: expiresAt}, true
}

// Put сохраняет элемент в кэш с указанным сроком действия.
// Неположительный ttl означает, что элемент уже просрочен.
func (cs *CacheStore) Put(key string, data *dataset.ExportData, ttl time.Duration) {
	if ttl <= 0 {
		cs.cache.Delete(key)
		return
	}
	cs.cache.Set(key, data, ttl)
}

// Len возвращает число элементов, включая еще не удаленные просроченные.
func (cs *CacheStore) Len() int {
	return cs.cache.ItemCount()
}

// CleanupExpired удаляет просроченные элементы из кэша
func (cs *CacheStore) CleanupExpired() {
	cs.cache.DeleteExpired()
}

// StartCleanupTicker запускает таймер для периодической очистки просроченных элементов
func (cs *CacheStore) StartCleanupTicker(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				cs.CleanupExpired()
			}
		}
	}()
}

// CalculateFileHash вычисляет хеш SHA256 содержимого файла
func CalculateFileHash(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("не удалось открыть файл: %w", err)
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", fmt.Errorf("не удалось прочитать файл: %w", err)
	}

	hash := fmt.Sprintf("%x", hasher.Sum(nil))
	return hash, nil
}

// CalculateHashFromString вычисляет хеш SHA256 строки
func CalculateHashFromString(s string) string {
	return fmt.Sprintf("%x", sha256.Sum256([]byte(s)))
}

// ExportKey вычисляет ключ кэша для каталога экспорта: хеш всех JSON-файлов
// (относительный путь и содержимое) и запрошенного набора данных.
func ExportKey(root string, subset []domain.Dataset) (string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".json") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("не удалось обойти каталог %s: %w", root, err)
	}
	sort.Strings(paths)

	var b strings.Builder
	for _, path := range paths {
		hash, err := CalculateFileHash(path)
		if err != nil {
			return "", fmt.Errorf("не удалось вычислить хеш файла %s: %w", path, err)
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return "", err
		}
		fmt.Fprintf(&b, "%s=%s\n", filepath.ToSlash(rel), hash)
	}

	names := make([]string, 0, len(subset))
	for _, d := range subset {
		names = append(names, string(d))
	}
	sort.Strings(names)
	fmt.Fprintf(&b, "datasets=%s", strings.Join(names, ","))

	return CalculateHashFromString(b.String()), nil
}
