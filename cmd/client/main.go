package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"facebook-data-reader/internal/dataset"
	"facebook-data-reader/internal/pkg/config"
)

// TaskStatusResponse - ответ сервера о статусе задачи
type TaskStatusResponse struct {
	TaskID       string `json:"task_id"`
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message,omitempty"`
}

// TaskResultResponse - сводка по таблицам завершенной задачи
type TaskResultResponse struct {
	TaskID string                 `json:"task_id"`
	Tables []dataset.TableSummary `json:"tables"`
}

var errStillRunning = errors.New("задача еще выполняется")

// Client - HTTP-клиент сервера загрузки
type Client struct {
	baseURL      string
	http         *http.Client
	pollInterval time.Duration
	pollTimeout  time.Duration
}

func main() {
	cfg, err := config.LoadConfig("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	var datasets []string
	c := &Client{http: &http.Client{Timeout: 30 * time.Second}}

	cmd := &cobra.Command{
		Use:          "client [flags] <root>",
		Short:        "Отправляет экспорт на сервер и ждет результата",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			taskID, err := c.Submit(ctx, args[0], datasets)
			if err != nil {
				return err
			}
			fmt.Printf("Задача создана с идентификатором: %s\n", taskID)

			result, err := c.Wait(ctx, taskID)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVar(&c.baseURL, "server", cfg.Client.ServerURL, "адрес сервера")
	cmd.Flags().StringSliceVar(&datasets, "datasets", nil, "наборы данных через запятую (по умолчанию все)")
	cmd.Flags().DurationVar(&c.pollInterval, "poll-interval", cfg.Client.PollInterval, "начальный интервал опроса")
	cmd.Flags().DurationVar(&c.pollTimeout, "timeout", cfg.Client.PollTimeout, "максимальное время ожидания")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Submit создает задачу загрузки и возвращает ее идентификатор.
func (c *Client) Submit(ctx context.Context, root string, datasets []string) (string, error) {
	body, err := json.Marshal(map[string]any{"root": root, "datasets": datasets})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/v1/load"), bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("не удалось отправить запрос: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusAccepted {
		msg, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("сервер вернул статус %d: %s", resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var taskResp map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&taskResp); err != nil {
		return "", fmt.Errorf("не удалось декодировать ответ: %w", err)
	}
	if taskResp["task_id"] == "" {
		return "", errors.New("идентификатор задачи не найден в ответе")
	}
	return taskResp["task_id"], nil
}

// Wait опрашивает статус задачи с экспоненциальной задержкой и возвращает сводку.
func (c *Client) Wait(ctx context.Context, taskID string) (*TaskResultResponse, error) {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = c.pollInterval
	policy.MaxInterval = 10 * c.pollInterval
	policy.MaxElapsedTime = c.pollTimeout

	operation := func() error {
		var status TaskStatusResponse
		if err := c.getJSON(ctx, "/api/v1/tasks/"+taskID, &status); err != nil {
			return backoff.Permanent(err)
		}

		switch status.Status {
		case "completed":
			return nil
		case "failed":
			return backoff.Permanent(fmt.Errorf("задача не выполнена: %s", status.ErrorMessage))
		case "pending", "processing":
			return errStillRunning
		default:
			return backoff.Permanent(fmt.Errorf("неизвестный статус задачи: %s", status.Status))
		}
	}

	if err := backoff.Retry(operation, backoff.WithContext(policy, ctx)); err != nil {
		return nil, err
	}

	var result TaskResultResponse
	if err := c.getJSON(ctx, "/api/v1/tasks/"+taskID+"/result", &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (c *Client) getJSON(ctx context.Context, path string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("не удалось выполнить запрос %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("сервер вернул статус %d для %s", resp.StatusCode, path)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("не удалось декодировать ответ %s: %w", path, err)
	}
	return nil
}

func (c *Client) url(path string) string {
	return strings.TrimRight(c.baseURL, "/") + path
}

func printSummary(w io.Writer, result *TaskResultResponse) {
	total := 0
	for _, t := range result.Tables {
		fmt.Fprintf(w, "%-22s %10s", t.Table, humanize.Comma(int64(t.Rows)))
		if n := t.Skipped.Total(); n > 0 {
			fmt.Fprintf(w, "  (пропущено %s)", humanize.Comma(int64(n)))
		}
		fmt.Fprintln(w)
		total += t.Rows
	}
	fmt.Fprintf(w, "Всего строк: %s\n", humanize.Comma(int64(total)))
}
