// Package reader загружает каталог экспорта в набор таблиц.
package reader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"facebook-data-reader/internal/adapters/parser"
	"facebook-data-reader/internal/adapters/source"
	"facebook-data-reader/internal/core/patterns"
	"facebook-data-reader/internal/core/services"
	"facebook-data-reader/internal/core/textfix"
	"facebook-data-reader/internal/dataset"
	"facebook-data-reader/internal/domain"
	"facebook-data-reader/internal/pkg/pathutil"
	"facebook-data-reader/internal/ports"
)

// ErrUnknownDataset возвращается для неизвестного имени набора данных.
var ErrUnknownDataset = errors.New("неизвестный набор данных")

// Reader реализует ports.ExportLoader.
type Reader struct {
	layout     Layout
	patterns   *patterns.Table
	fixer      ports.TextRepairer
	parser     ports.Parser
	newSource  source.Factory
	extractors *services.Extractors
}

// Option настраивает Reader.
type Option func(*Reader)

// WithLayout задает раскладку файлов экспорта.
func WithLayout(l Layout) Option {
	return func(r *Reader) { r.layout = l.withDefaults() }
}

// WithPatterns задает таблицу выражений для подписей.
func WithPatterns(p *patterns.Table) Option {
	return func(r *Reader) { r.patterns = p }
}

// WithTextRepairer задает исправитель текста.
func WithTextRepairer(f ports.TextRepairer) Option {
	return func(r *Reader) { r.fixer = f }
}

// WithParser задает парсер файлов.
func WithParser(p ports.Parser) Option {
	return func(r *Reader) { r.parser = p }
}

// WithSourceFactory задает способ чтения файлов.
func WithSourceFactory(f source.Factory) Option {
	return func(r *Reader) { r.newSource = f }
}

// New создает Reader. Без опций используется польская локаль и чтение с диска.
func New(opts ...Option) *Reader {
	r := &Reader{
		layout:    DefaultLayout(),
		patterns:  patterns.Polish(),
		fixer:     textfix.New(),
		parser:    parser.NewJsonParser(),
		newSource: source.FileFactory,
	}
	for _, opt := range opts {
		opt(r)
	}
	r.extractors = services.NewExtractors(r.patterns, r.fixer)
	return r
}

// ParseDatasets проверяет имена наборов данных.
func ParseDatasets(names []string) ([]domain.Dataset, error) {
	out := make([]domain.Dataset, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		d, ok := domain.ParseDataset(name)
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, name)
		}
		out = append(out, d)
	}
	return out, nil
}

// Load загружает экспорт из root. Пустой subset означает все наборы данных.
// Незапрошенные таблицы остаются пустыми. Ошибка структуры любого файла прерывает загрузку.
func (r *Reader) Load(ctx context.Context, root string, subset ...domain.Dataset) (*dataset.ExportData, error) {
	dir, err := pathutil.Resolve(root)
	if err != nil {
		return nil, fmt.Errorf("не удалось определить каталог экспорта: %w", err)
	}

	wanted, err := selectDatasets(subset)
	if err != nil {
		return nil, err
	}

	data := &dataset.ExportData{}
	for _, ds := range domain.AllDatasets {
		if !wanted[ds] {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		if err := r.load(ctx, dir, ds, data); err != nil {
			return nil, fmt.Errorf("не удалось загрузить %s: %w", ds, err)
		}
		slog.Info("Загружен набор данных", "dataset", ds, "duration", time.Since(start).String())
	}

	for _, s := range data.Summary() {
		if total := s.Skipped.Total(); total > 0 {
			slog.Debug("Пропущены записи", "table", s.Table, "count", total, "reasons", s.Skipped)
		}
	}
	return data, nil
}

func selectDatasets(subset []domain.Dataset) (map[domain.Dataset]bool, error) {
	wanted := make(map[domain.Dataset]bool, len(domain.AllDatasets))
	if len(subset) == 0 {
		for _, d := range domain.AllDatasets {
			wanted[d] = true
		}
		return wanted, nil
	}
	for _, d := range subset {
		if _, ok := domain.ParseDataset(string(d)); !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownDataset, d)
		}
		wanted[d] = true
	}
	return wanted, nil
}

func (r *Reader) load(ctx context.Context, root string, ds domain.Dataset, data *dataset.ExportData) error {
	switch ds {
	case domain.DatasetFriendsAndContacts:
		return r.loadFriendsAndContacts(root, data)
	case domain.DatasetInterests:
		return r.loadInterests(root, data)
	case domain.DatasetComments:
		return r.loadComments(root, data)
	case domain.DatasetSearchHistory:
		return r.loadSearchHistory(root, data)
	case domain.DatasetPosts:
		return r.loadPosts(ctx, root, data)
	case domain.DatasetMessages:
		return r.loadMessages(ctx, root, data)
	}
	return fmt.Errorf("%w: %s", ErrUnknownDataset, ds)
}

// readFile читает и разбирает один файл. Ошибка содержит путь к файлу.
func readFile[T any](r *Reader, path string, parse func([]byte) (T, error)) (T, error) {
	var zero T
	raw, err := r.newSource(path).Fetch()
	if err != nil {
		return zero, err
	}
	v, err := parse(raw)
	if err != nil {
		return zero, fmt.Errorf("%s: %w", path, err)
	}
	slog.Debug("Прочитан файл", "path", path, "bytes", len(raw))
	return v, nil
}

func (r *Reader) path(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(rel))
}

func (r *Reader) loadFriendsAndContacts(root string, data *dataset.ExportData) error {
	friends, err := readFile(r, r.path(root, r.layout.Friends), r.parser.ParseFriends)
	if err != nil {
		return err
	}
	contacts, err := readFile(r, r.path(root, r.layout.AddressBook), r.parser.ParseAddressBook)
	if err != nil {
		return err
	}

	b := dataset.NewBuilder[domain.FriendContact]()
	r.extractors.Friends.Extract(friends, b)
	r.extractors.Contacts.Extract(contacts, b)
	data.FriendsAndContacts = b.Freeze(dataset.ByTimestamp(func(f domain.FriendContact) time.Time { return f.Timestamp }))
	return nil
}

func (r *Reader) loadInterests(root string, data *dataset.ExportData) error {
	f, err := readFile(r, r.path(root, r.layout.Interests), r.parser.ParseInterests)
	if err != nil {
		return err
	}
	b := dataset.NewBuilder[string]()
	r.extractors.Interests.Extract(f, b)
	data.Interests = b.Freeze(nil)
	return nil
}

func (r *Reader) loadComments(root string, data *dataset.ExportData) error {
	f, err := readFile(r, r.path(root, r.layout.Comments), r.parser.ParseComments)
	if err != nil {
		return err
	}
	b := dataset.NewBuilder[domain.Comment]()
	r.extractors.Comments.Extract(f, b)
	data.Comments = b.Freeze(dataset.ByTimestamp(func(c domain.Comment) time.Time { return c.Timestamp }))
	return nil
}

func (r *Reader) loadSearchHistory(root string, data *dataset.ExportData) error {
	f, err := readFile(r, r.path(root, r.layout.SearchHistory), r.parser.ParseSearchHistory)
	if err != nil {
		return err
	}
	b := dataset.NewBuilder[domain.Search]()
	r.extractors.SearchHistory.Extract(f, b)
	data.SearchHistory = b.Freeze(dataset.ByTimestamp(func(s domain.Search) time.Time { return s.Timestamp }))
	return nil
}

func (r *Reader) loadPosts(ctx context.Context, root string, data *dataset.ExportData) error {
	files, err := listPosts(r.path(root, r.layout.PostsDir))
	if err != nil {
		return err
	}

	b := dataset.NewBuilder[domain.Post]()
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		posts, err := readFile(r, path, r.parser.ParsePosts)
		if err != nil {
			return err
		}
		r.extractors.Posts.Extract(posts, b)
	}
	data.Posts = b.Freeze(dataset.ByTimestamp(func(p domain.Post) time.Time { return p.Timestamp }))
	return nil
}

func (r *Reader) loadMessages(ctx context.Context, root string, data *dataset.ExportData) error {
	files, err := listShards(r.path(root, r.layout.MessagesDir))
	if err != nil {
		return err
	}

	state := services.NewThreadState()
	tables := services.NewMessageTables()
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		thread, err := readFile(r, path, r.parser.ParseThread)
		if err != nil {
			return err
		}
		r.extractors.Messages.Extract(thread, state, tables)
	}
	tables.Freeze(data)
	slog.Info("Обработаны переписки", "shards", len(files), "threads", state.Len())
	return nil
}

// listPosts возвращает *.json непосредственно в каталоге постов в лексическом порядке.
func listPosts(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || !isJSON(e.Name()) {
			continue
		}
		files = append(files, filepath.Join(dir, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}

// listShards рекурсивно собирает *.json в каталоге переписок, отсортированные по пути.
func listShards(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && isJSON(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk directory %s: %w", dir, err)
	}
	sort.Strings(files)
	return files, nil
}

func isJSON(name string) bool {
	return strings.EqualFold(filepath.Ext(name), ".json")
}
