// Package commands содержит команды консольного отчета
package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/Ultrahd-dev/student-roster/internal/config"
	"github.com/Ultrahd-dev/student-roster/internal/console"
	"github.com/Ultrahd-dev/student-roster/internal/database"
	"github.com/Ultrahd-dev/student-roster/internal/roster"
)

var (
	configPath string
	year       int
	verbose    bool
)

// Execute выполняет корневую команду
func Execute() error {
	return NewRootCmd().Execute()
}

// NewRootCmd создает корневую команду roster
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "roster",
		Short:         "Список студентов выпускных групп в виде текстовой таблицы",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !verbose {
				log.SetOutput(io.Discard)
			}

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(cmd.OutOrStdout(), "Ошибка загрузки конфигурации: %v\n", err)
				return err
			}
			if year > 0 {
				cfg.Report.CurrentYear = year
			}

			return run(cmd.Context(), cmd, cfg)
		},
	}

	root.Flags().StringVarP(&configPath, "config", "c", "./configs/config.yaml", "путь к файлу конфигурации")
	root.Flags().IntVar(&year, "year", 0, "год отчета (по умолчанию текущий)")
	root.Flags().BoolVarP(&verbose, "verbose", "v", false, "выводить журнал работы")

	return root
}

func run(ctx context.Context, cmd *cobra.Command, cfg *config.Config) error {
	if ctx == nil {
		ctx = context.Background()
	}
	out := cmd.OutOrStdout()

	store, err := database.Open(ctx, cfg.Database)
	if err != nil {
		fmt.Fprintf(out, "Database connection failed: %v\n", err)
		return err
	}
	defer store.Close()

	conn, err := store.Session(ctx)
	if err != nil {
		fmt.Fprintf(out, "Database connection failed: %v\n", err)
		return err
	}
	defer conn.Close()

	svc := roster.NewService(roster.NewRepository(conn, store.Placeholder()))
	cli := console.New(cmd.InOrStdin(), out, cfg.Report.Year(time.Now()))

	err = cli.Run(ctx, svc)
	switch {
	case err == nil:
		return nil
	case errors.Is(err, roster.ErrValidation):
		// сообщение уже выведено, сеанс завершается штатно
		return nil
	default:
		fmt.Fprintf(out, "Ошибка: %v\n", err)
		return err
	}
}
