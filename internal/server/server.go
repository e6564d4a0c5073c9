package server

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"facebook-data-reader/internal/cache"
	"facebook-data-reader/internal/dataset"
	"facebook-data-reader/internal/domain"
	"facebook-data-reader/internal/pkg/config"
)

const (
	defaultPage     = 1
	defaultPageSize = 50
	maxPageSize     = 1000
)

// Loader определяет интерфейс для варианта использования, который загружает экспорт.
type Loader interface {
	Load(ctx context.Context, root string, datasets []domain.Dataset) (*dataset.ExportData, error)
}

// LoadRequest - тело запроса на загрузку экспорта
type LoadRequest struct {
	Root     string   `json:"root"`
	Datasets []string `json:"datasets,omitempty"`
}

// Pagination содержит метаданные страницы результата
type Pagination struct {
	CurrentPage int `json:"current_page"`
	PageSize    int `json:"page_size"`
	TotalItems  int `json:"total_items"`
	TotalPages  int `json:"total_pages"`
}

// TableResponse - страница строк одной таблицы
type TableResponse struct {
	Table      domain.Table `json:"table"`
	Pagination Pagination   `json:"pagination"`
	Data       []any        `json:"data"`
}

// Server представляет HTTP-сервер
type Server struct {
	HTTPServer *http.Server
	cfg        *config.Config
	taskStore  *TaskStore
	cacheStore *cache.CacheStore
	loader     Loader
	stop       context.CancelFunc
}

// New создает новый экземпляр Server и запускает очистку просроченных задач и кэша.
func New(cfg *config.Config, loader Loader, taskStore *TaskStore, cacheStore *cache.CacheStore) (*Server, error) {
	s := &Server{
		cfg:        cfg,
		taskStore:  taskStore,
		cacheStore: cacheStore,
		loader:     loader,
	}

	chiRouter := chi.NewRouter()

	// Промежуточное ПО
	chiRouter.Use(middleware.RequestID)
	chiRouter.Use(middleware.Logger)
	chiRouter.Use(middleware.Recoverer)

	chiRouter.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	chiRouter.Route("/api/v1", func(r chi.Router) {
		r.Post("/load", s.handleLoad)
		r.Get("/tasks/{taskID}", s.handleTaskStatus)
		r.Get("/tasks/{taskID}/result", s.handleTaskResult)
		r.Get("/tasks/{taskID}/tables/{table}", s.handleTaskTable)
	})

	s.HTTPServer = &http.Server{
		Addr:         cfg.Address(),
		Handler:      chiRouter,
		ReadTimeout:  orDefault(cfg.Server.ReadTimeout, config.DefaultReadTimeout),
		WriteTimeout: orDefault(cfg.Server.WriteTimeout, config.DefaultWriteTimeout),
		IdleTimeout:  orDefault(cfg.Server.IdleTimeout, config.DefaultIdleTimeout),
	}

	// Тикеры останавливаются в Shutdown
	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	interval := orDefault(cfg.Server.CleanupInterval, config.DefaultCleanupInterval)
	s.taskStore.StartCleanupTicker(ctx, interval)
	s.cacheStore.StartCleanupTicker(ctx, interval)

	return s, nil
}

// handleLoad запускает новую задачу загрузки экспорта
func (s *Server) handleLoad(w http.ResponseWriter, r *http.Request) {
	var req LoadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Не удалось декодировать тело запроса", http.StatusBadRequest)
		return
	}
	if req.Root == "" {
		http.Error(w, "Требуется root", http.StatusBadRequest)
		return
	}

	datasets := make([]domain.Dataset, 0, len(req.Datasets))
	for _, name := range req.Datasets {
		d, ok := domain.ParseDataset(name)
		if !ok {
			http.Error(w, "Неизвестный набор данных: "+name, http.StatusBadRequest)
			return
		}
		datasets = append(datasets, d)
	}

	taskID := uuid.NewString()
	s.taskStore.CreateTask(taskID, req.Root, orDefault(s.cfg.Processing.TaskTTL, config.DefaultTaskTTL))

	go s.runTask(taskID, req.Root, datasets)

	writeJSON(w, http.StatusAccepted, map[string]string{"task_id": taskID})
}

// runTask выполняет загрузку в отдельной горутине со своим экземпляром состояния
func (s *Server) runTask(taskID, root string, datasets []domain.Dataset) {
	s.taskStore.UpdateTaskStatus(taskID, TaskStatusProcessing)

	taskCtx := context.Background()
	if s.cfg.Processing.TaskTimeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(taskCtx, s.cfg.Processing.TaskTimeout)
		defer cancel()
	}

	result, err := s.loader.Load(taskCtx, root, datasets)
	if err != nil {
		slog.Error("Задача завершилась с ошибкой", "task_id", taskID, "error", err)
		s.taskStore.UpdateTaskError(taskID, err.Error())
		return
	}

	s.taskStore.UpdateTaskResult(taskID, result)
	slog.Info("Задача завершена", "task_id", taskID)
}

// handleTaskStatus возвращает статус задачи
func (s *Server) handleTaskStatus(w http.ResponseWriter, r *http.Request) {
	task, ok := s.lookupTask(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"task_id":       task.ID,
		"root":          task.Root,
		"status":        task.Status,
		"error_message": task.ErrorMessage,
	})
}

// handleTaskResult возвращает сводку по таблицам завершенной задачи
func (s *Server) handleTaskResult(w http.ResponseWriter, r *http.Request) {
	task, ok := s.completedTask(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"task_id": task.ID,
		"tables":  task.Result.Summary(),
	})
}

// handleTaskTable возвращает строки одной таблицы с пагинацией
func (s *Server) handleTaskTable(w http.ResponseWriter, r *http.Request) {
	task, ok := s.completedTask(w, r)
	if !ok {
		return
	}

	table := domain.Table(chi.URLParam(r, "table"))
	rows, found := task.Result.Rows(table)
	if !found {
		http.Error(w, "Таблица не найдена", http.StatusNotFound)
		return
	}

	page, err := queryInt(r, "page", defaultPage)
	if err != nil || page < 1 {
		http.Error(w, "Некорректный параметр page", http.StatusBadRequest)
		return
	}
	pageSize, err := queryInt(r, "page_size", defaultPageSize)
	if err != nil || pageSize < 1 || pageSize > maxPageSize {
		http.Error(w, "Некорректный параметр page_size", http.StatusBadRequest)
		return
	}

	totalItems := len(rows)
	totalPages := (totalItems + pageSize - 1) / pageSize
	// Страницы за последней пустые.
	startIndex := totalItems
	if page <= totalPages {
		startIndex = (page - 1) * pageSize
	}
	endIndex := min(startIndex+pageSize, totalItems)

	writeJSON(w, http.StatusOK, TableResponse{
		Table: table,
		Pagination: Pagination{
			CurrentPage: page,
			PageSize:    pageSize,
			TotalItems:  totalItems,
			TotalPages:  totalPages,
		},
		Data: rows[startIndex:endIndex],
	})
}

func (s *Server) lookupTask(w http.ResponseWriter, r *http.Request) (*Task, bool) {
	task, err := s.taskStore.GetTask(chi.URLParam(r, "taskID"))
	if err != nil {
		http.Error(w, "Задача не найдена", http.StatusNotFound)
		return nil, false
	}
	return task, true
}

func (s *Server) completedTask(w http.ResponseWriter, r *http.Request) (*Task, bool) {
	task, ok := s.lookupTask(w, r)
	if !ok {
		return nil, false
	}
	if task.Status != TaskStatusCompleted {
		http.Error(w, "Задача не завершена", http.StatusBadRequest)
		return nil, false
	}
	return task, true
}

// ListenAndServe запускает HTTP-сервер
func (s *Server) ListenAndServe() error {
	return s.HTTPServer.ListenAndServe()
}

// Shutdown корректно завершает работу HTTP-сервера и останавливает очистку
func (s *Server) Shutdown(ctx context.Context) error {
	slog.Info("Завершение работы HTTP-сервера")
	s.stop()
	return s.HTTPServer.Shutdown(ctx)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Не удалось записать ответ", "error", err)
	}
}

func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return strconv.Atoi(raw)
}

func orDefault(d, def time.Duration) time.Duration {
	if d <= 0 {
		return def
	}
	return d
}
