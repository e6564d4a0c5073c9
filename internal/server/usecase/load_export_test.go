package usecase

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"facebook-data-reader/internal/cache"
	"facebook-data-reader/internal/dataset"
	"facebook-data-reader/internal/domain"
	"facebook-data-reader/internal/pkg/config"
)

type mockLoader struct{ mock.Mock }

func (m *mockLoader) Load(ctx context.Context, root string, subset ...domain.Dataset) (*dataset.ExportData, error) {
	args := m.Called(ctx, root, subset)
	if res := args.Get(0); res != nil {
		return res.(*dataset.ExportData), args.Error(1)
	}
	return nil, args.Error(1)
}

func writeExport(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, rel)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

func TestLoadExportUseCase(t *testing.T) {
	ctx := context.Background()
	cfg := &config.Config{Processing: config.Processing{CacheTTL: 10 * time.Minute}}
	result := &dataset.ExportData{Interests: dataset.NewTable([]string{"Kolarstwo"})}

	t.Run("Загрузка и кэширование результата", func(t *testing.T) {
		root := writeExport(t, map[string]string{"friends/friends.json": `{"friends": []}`})
		loader := new(mockLoader)
		cacheStore := cache.NewCacheStore()
		uc := NewLoadExportUseCase(cfg, loader, cacheStore)

		loader.On("Load", ctx, root, domain.AllDatasets).Return(result, nil).Once()

		data, err := uc.Load(ctx, root, nil)
		require.NoError(t, err)
		assert.Same(t, result, data)

		key, err := cache.ExportKey(root, domain.AllDatasets)
		require.NoError(t, err)
		cached, found := cacheStore.Get(key)
		require.True(t, found)
		assert.Same(t, result, cached.Data)

		loader.AssertExpectations(t)
	})

	t.Run("Повторная загрузка того же экспорта берется из кэша", func(t *testing.T) {
		root := writeExport(t, map[string]string{"friends/friends.json": `{"friends": []}`})
		loader := new(mockLoader)
		uc := NewLoadExportUseCase(cfg, loader, cache.NewCacheStore())

		subset := []domain.Dataset{domain.DatasetInterests}
		loader.On("Load", ctx, root, subset).Return(result, nil).Once()

		first, err := uc.Load(ctx, root, subset)
		require.NoError(t, err)
		second, err := uc.Load(ctx, root, subset)
		require.NoError(t, err)

		assert.Same(t, first, second)
		loader.AssertNumberOfCalls(t, "Load", 1)
	})

	t.Run("Изменение файла сбрасывает кэш", func(t *testing.T) {
		root := writeExport(t, map[string]string{"friends/friends.json": `{"friends": []}`})
		loader := new(mockLoader)
		uc := NewLoadExportUseCase(cfg, loader, cache.NewCacheStore())

		loader.On("Load", ctx, root, domain.AllDatasets).Return(result, nil).Twice()

		_, err := uc.Load(ctx, root, nil)
		require.NoError(t, err)

		path := filepath.Join(root, "friends", "friends.json")
		require.NoError(t, os.WriteFile(path, []byte(`{"friends": [{"name": "Jan", "timestamp": 1}]}`), 0o644))

		_, err = uc.Load(ctx, root, nil)
		require.NoError(t, err)
		loader.AssertExpectations(t)
	})

	t.Run("Ошибка загрузки не кэшируется", func(t *testing.T) {
		root := writeExport(t, map[string]string{"posts/a.json": `[]`})
		loader := new(mockLoader)
		cacheStore := cache.NewCacheStore()
		uc := NewLoadExportUseCase(cfg, loader, cacheStore)

		loader.On("Load", ctx, root, domain.AllDatasets).Return(nil, errors.New("boom")).Once()

		data, err := uc.Load(ctx, root, nil)
		assert.Nil(t, data)
		assert.ErrorContains(t, err, "boom")
		assert.Zero(t, cacheStore.Len())
	})

	t.Run("Несуществующий каталог", func(t *testing.T) {
		loader := new(mockLoader)
		uc := NewLoadExportUseCase(cfg, loader, cache.NewCacheStore())

		_, err := uc.Load(ctx, filepath.Join(t.TempDir(), "missing"), nil)
		assert.Error(t, err)
		loader.AssertNotCalled(t, "Load", mock.Anything, mock.Anything, mock.Anything)
	})
}
