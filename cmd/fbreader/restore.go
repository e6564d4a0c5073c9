package main

import (
	"github.com/spf13/cobra"

	"facebook-data-reader/internal/adapters/exporter"
)

func (a *app) newRestoreCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "restore <dir>",
		Short: "Прочитать сохраненные таблицы и вывести сводку",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := exporter.NewCSVExporter().Restore(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return exporter.NewConsoleExporterTo(cmd.OutOrStdout()).Export(cmd.Context(), data, "")
		},
	}
}
