package main

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facebook-data-reader/internal/dataset"
	"facebook-data-reader/internal/domain"
)

func newTestClient(url string) *Client {
	return &Client{
		baseURL:      url,
		http:         http.DefaultClient,
		pollInterval: 5 * time.Millisecond,
		pollTimeout:  time.Second,
	}
}

func TestClient(t *testing.T) {
	t.Run("Отправка и ожидание результата", func(t *testing.T) {
		var polls atomic.Int32
		mux := http.NewServeMux()
		mux.HandleFunc("POST /api/v1/load", func(w http.ResponseWriter, r *http.Request) {
			var body map[string]any
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "/exports/jan", body["root"])
			w.WriteHeader(http.StatusAccepted)
			json.NewEncoder(w).Encode(map[string]string{"task_id": "t1"})
		})
		mux.HandleFunc("GET /api/v1/tasks/t1", func(w http.ResponseWriter, r *http.Request) {
			status := "processing"
			if polls.Add(1) >= 3 {
				status = "completed"
			}
			json.NewEncoder(w).Encode(TaskStatusResponse{TaskID: "t1", Status: status})
		})
		mux.HandleFunc("GET /api/v1/tasks/t1/result", func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(TaskResultResponse{
				TaskID: "t1",
				Tables: []dataset.TableSummary{
					{Table: domain.TableMessages, Rows: 12500, Skipped: dataset.SkipCounts{"missing_key": 2}},
					{Table: domain.TableInterests, Rows: 3},
				},
			})
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		c := newTestClient(srv.URL + "/")
		taskID, err := c.Submit(context.Background(), "/exports/jan", nil)
		require.NoError(t, err)
		assert.Equal(t, "t1", taskID)

		result, err := c.Wait(context.Background(), taskID)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, polls.Load(), int32(3))
		require.Len(t, result.Tables, 2)

		var out bytes.Buffer
		printSummary(&out, result)
		assert.Contains(t, out.String(), "12,500")
		assert.Contains(t, out.String(), "(пропущено 2)")
		assert.Contains(t, out.String(), "Всего строк: 12,503")
	})

	t.Run("Ошибка задачи прекращает опрос", func(t *testing.T) {
		var polls atomic.Int32
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			polls.Add(1)
			json.NewEncoder(w).Encode(TaskStatusResponse{TaskID: "t2", Status: "failed", ErrorMessage: "нет каталога"})
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Wait(context.Background(), "t2")
		assert.ErrorContains(t, err, "нет каталога")
		assert.Equal(t, int32(1), polls.Load())
	})

	t.Run("Сервер отклонил запрос", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "Неизвестный набор данных: likes", http.StatusBadRequest)
		}))
		defer srv.Close()

		_, err := newTestClient(srv.URL).Submit(context.Background(), "/x", []string{"likes"})
		assert.ErrorContains(t, err, "400")
		assert.ErrorContains(t, err, "likes")
	})
}
