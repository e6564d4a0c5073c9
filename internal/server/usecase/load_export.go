package usecase

import (
	"context"
	"fmt"
	"log/slog"

	"facebook-data-reader/internal/cache"
	"facebook-data-reader/internal/dataset"
	"facebook-data-reader/internal/domain"
	"facebook-data-reader/internal/pkg/config"
	"facebook-data-reader/internal/pkg/pathutil"
	"facebook-data-reader/internal/ports"
)

// LoadExportUseCase загружает экспорт и кэширует результат по содержимому файлов.
type LoadExportUseCase struct {
	cfg        *config.Config
	loader     ports.ExportLoader
	cacheStore *cache.CacheStore
}

// NewLoadExportUseCase создает новый экземпляр LoadExportUseCase.
func NewLoadExportUseCase(cfg *config.Config, loader ports.ExportLoader, cacheStore *cache.CacheStore) *LoadExportUseCase {
	return &LoadExportUseCase{
		cfg:        cfg,
		loader:     loader,
		cacheStore: cacheStore,
	}
}

// Load возвращает таблицы экспорта из кэша или загружает их заново.
// Пустой список наборов данных равнозначен полному списку.
func (uc *LoadExportUseCase) Load(ctx context.Context, root string, datasets []domain.Dataset) (*dataset.ExportData, error) {
	resolved, err := pathutil.Resolve(root)
	if err != nil {
		return nil, err
	}
	if len(datasets) == 0 {
		datasets = domain.AllDatasets
	}

	key, err := cache.ExportKey(resolved, datasets)
	if err != nil {
		return nil, fmt.Errorf("не удалось вычислить ключ кэша: %w", err)
	}

	if cachedItem, found := uc.cacheStore.Get(key); found {
		slog.Info("Попадание в кэш для экспорта", "root", resolved, "hash", key)
		return cachedItem.Data, nil
	}

	slog.Info("Загрузка экспорта", "root", resolved, "datasets", datasets)
	data, err := uc.loader.Load(ctx, resolved, datasets...)
	if err != nil {
		return nil, fmt.Errorf("не удалось загрузить экспорт %s: %w", resolved, err)
	}

	ttl := uc.cfg.Processing.CacheTTL
	uc.cacheStore.Put(key, data, ttl)
	slog.Info("Результат кэширован", "hash", key, "ttl", ttl.String())

	return data, nil
}
