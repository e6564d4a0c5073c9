package main

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"facebook-data-reader/internal/adapters/exporter"
	"facebook-data-reader/internal/core/reader"
	"facebook-data-reader/internal/pkg/term"
)

// ErrOutputExists возвращается, если результат уже существует, а перезапись не подтверждена.
var ErrOutputExists = errors.New("результат уже существует, используйте --force")

type loadOptions struct {
	datasets     []string
	out          string
	format       string
	force        bool
	patternsFile string
}

func (a *app) newLoadCmd() *cobra.Command {
	var opts loadOptions

	cmd := &cobra.Command{
		Use:   "load [root]",
		Short: "Загрузить экспорт и сохранить таблицы",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := a.cfg.Export.Root
			if len(args) == 1 {
				root = args[0]
			}
			return a.runLoad(cmd, root, opts)
		},
	}
	cmd.Flags().StringSliceVar(&opts.datasets, "datasets", nil, "наборы данных через запятую (по умолчанию все)")
	cmd.Flags().StringVarP(&opts.out, "out", "o", "", "каталог результата")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "", "формат: csv, xlsx, sqlite, console")
	cmd.Flags().BoolVar(&opts.force, "force", false, "перезаписать существующий результат")
	cmd.Flags().StringVar(&opts.patternsFile, "patterns", "", "YAML-файл шаблонов подписей")
	return cmd
}

func (a *app) runLoad(cmd *cobra.Command, root string, opts loadOptions) error {
	if len(opts.datasets) == 0 {
		opts.datasets = a.cfg.Export.Datasets
	}
	if opts.out == "" {
		opts.out = a.cfg.Output.Dir
	}
	if opts.format == "" {
		opts.format = a.cfg.Output.Format
	}
	opts.force = opts.force || a.cfg.Output.Force

	subset, err := reader.ParseDatasets(opts.datasets)
	if err != nil {
		return err
	}
	format := exporter.Format(opts.format)
	sink, err := exporter.New(format, cmd.OutOrStdout())
	if err != nil {
		return err
	}

	dest := opts.out
	if name := exporter.DefaultFileName(format); name != "" {
		dest = filepath.Join(opts.out, name)
	}
	if format != exporter.FormatConsole {
		if err := confirmOverwrite(dest, opts.force, term.NewTerminal()); err != nil {
			return err
		}
		if err := os.MkdirAll(opts.out, 0o755); err != nil {
			return fmt.Errorf("не удалось создать каталог %s: %w", opts.out, err)
		}
	}

	r, err := a.newReader(opts.patternsFile)
	if err != nil {
		return err
	}
	data, err := r.Load(cmd.Context(), root, subset...)
	if err != nil {
		return err
	}

	if err := sink.Export(cmd.Context(), data, dest); err != nil {
		return err
	}
	if format != exporter.FormatConsole {
		slog.Info("Результат сохранен", "format", format, "dest", dest)
		return exporter.NewConsoleExporterTo(cmd.OutOrStdout()).Export(cmd.Context(), data, "")
	}
	return nil
}

// confirmOverwrite разрешает запись в dest, если он пуст, задан --force или пользователь подтвердил.
func confirmOverwrite(dest string, force bool, t *term.Terminal) error {
	exists, err := nonEmpty(dest)
	if err != nil {
		return err
	}
	if !exists || force {
		return nil
	}
	if !t.IsInteractive() {
		return ErrOutputExists
	}
	ok, err := t.Confirm(fmt.Sprintf("%s не пуст. Перезаписать?", dest))
	if err != nil {
		return err
	}
	if !ok {
		return ErrOutputExists
	}
	return nil
}

// nonEmpty сообщает, существует ли файл или непустой каталог.
func nonEmpty(path string) (bool, error) {
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return true, nil
	}
	entries, err := os.ReadDir(path)
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}
