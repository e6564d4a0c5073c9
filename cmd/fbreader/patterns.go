package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"
)

func (a *app) newPatternsCmd() *cobra.Command {
	var locale string

	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Показать активную таблицу шаблонов подписей",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := a.patterns(locale)
			if err != nil {
				return err
			}
			out, err := yaml.Marshal(table.Definition())
			if err != nil {
				return fmt.Errorf("не удалось сериализовать шаблоны: %w", err)
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	cmd.Flags().StringVar(&locale, "locale", "", "YAML-файл локали")
	return cmd
}
