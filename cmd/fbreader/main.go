// Команда fbreader загружает экспорт данных Facebook и сохраняет нормализованные таблицы.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"facebook-data-reader/internal/core/patterns"
	"facebook-data-reader/internal/core/reader"
	applog "facebook-data-reader/internal/log"
	"facebook-data-reader/internal/pkg/config"
)

// app хранит состояние, общее для подкоманд.
type app struct {
	configPath string
	cfg        *config.Config
}

func main() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// NewRootCmd собирает корневую команду CLI.
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "fbreader",
		Short:         "Нормализация экспорта данных Facebook в плоские таблицы",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadConfig(a.configPath)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("config validation failed: %w", err)
			}
			logger, err := applog.NewLogger(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			a.cfg = cfg
			return nil
		},
	}
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", config.DefaultConfigFile, "путь к файлу конфигурации")

	rootCmd.AddCommand(a.newLoadCmd())
	rootCmd.AddCommand(a.newRestoreCmd())
	rootCmd.AddCommand(a.newPatternsCmd())
	return rootCmd
}

// patterns возвращает таблицу шаблонов: из файла, если он задан, иначе встроенную.
func (a *app) patterns(file string) (*patterns.Table, error) {
	if file == "" {
		file = a.cfg.Export.PatternsFile
	}
	if file == "" {
		return patterns.Polish(), nil
	}
	return patterns.LoadFile(file)
}

func (a *app) newReader(patternsFile string) (*reader.Reader, error) {
	table, err := a.patterns(patternsFile)
	if err != nil {
		return nil, err
	}
	return reader.New(
		reader.WithLayout(reader.Layout(a.cfg.Layout)),
		reader.WithPatterns(table),
	), nil
}
