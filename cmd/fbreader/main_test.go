package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"facebook-data-reader/internal/pkg/term"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append(args, "--config", filepath.Join(t.TempDir(), "missing.yml")))
	err := cmd.Execute()
	return out.String(), err
}

func TestLoadCommand(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ads_and_businesses", "ads_interests.json"),
		`{"topics": ["Kolarstwo", "Fotografia"]}`)

	t.Run("Сохранение в csv", func(t *testing.T) {
		out := filepath.Join(t.TempDir(), "result")

		stdout, err := execute(t, "load", root, "--datasets", "interests", "--out", out, "--format", "csv")
		require.NoError(t, err)

		content, err := os.ReadFile(filepath.Join(out, "interests.txt"))
		require.NoError(t, err)
		assert.Equal(t, "Kolarstwo\nFotografia\n", string(content))
		assert.FileExists(t, filepath.Join(out, "messages.csv"))
		assert.Contains(t, stdout, "--- Export Summary ---")
	})

	t.Run("Вывод сводки в консоль", func(t *testing.T) {
		stdout, err := execute(t, "load", root, "--datasets", "interests", "--format", "console")
		require.NoError(t, err)
		assert.Contains(t, stdout, "Всего строк: 2")
	})

	t.Run("Неизвестный набор данных", func(t *testing.T) {
		_, err := execute(t, "load", root, "--datasets", "likes", "--format", "console")
		assert.Error(t, err)
	})

	t.Run("Неизвестный формат", func(t *testing.T) {
		_, err := execute(t, "load", root, "--format", "parquet")
		assert.Error(t, err)
	})

	t.Run("Повторная загрузка с --force", func(t *testing.T) {
		out := t.TempDir()
		writeFile(t, filepath.Join(out, "old.csv"), "x")

		_, err := execute(t, "load", root, "--datasets", "interests", "--out", out, "--format", "csv", "--force")
		require.NoError(t, err)
		assert.FileExists(t, filepath.Join(out, "interests.txt"))
	})
}

func TestRestoreCommand(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "ads_and_businesses", "ads_interests.json"), `{"topics": ["Kolarstwo"]}`)
	out := filepath.Join(t.TempDir(), "result")

	_, err := execute(t, "load", root, "--datasets", "interests", "--out", out, "--format", "csv")
	require.NoError(t, err)

	stdout, err := execute(t, "restore", out)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Всего строк: 1")
}

func TestPatternsCommand(t *testing.T) {
	stdout, err := execute(t, "patterns")
	require.NoError(t, err)
	assert.Contains(t, stdout, "locale:")
	assert.Contains(t, stdout, "own_status_marker:")

	_, err = execute(t, "patterns", "--locale", filepath.Join(t.TempDir(), "none.yml"))
	assert.Error(t, err)
}

func TestConfirmOverwrite(t *testing.T) {
	full := t.TempDir()
	writeFile(t, filepath.Join(full, "a.csv"), "x")

	cases := []struct {
		name    string
		dest    string
		force   bool
		answer  string
		wantErr error
	}{
		{name: "Каталог не существует", dest: filepath.Join(full, "none")},
		{name: "Пустой каталог", dest: t.TempDir()},
		{name: "Флаг force", dest: full, force: true},
		{name: "Пользователь согласился", dest: full, answer: "y\n"},
		{name: "Пользователь отказался", dest: full, answer: "n\n", wantErr: ErrOutputExists},
		{name: "Существующий файл", dest: filepath.Join(full, "a.csv"), answer: "\n", wantErr: ErrOutputExists},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			tty := term.NewTerminalWith(strings.NewReader(tc.answer), &bytes.Buffer{})
			err := confirmOverwrite(tc.dest, tc.force, tty)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
				return
			}
			assert.NoError(t, err)
		})
	}
}
