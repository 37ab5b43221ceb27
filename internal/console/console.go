// Package console реализует консольную версию отчета по студентам
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/Ultrahd-dev/student-roster/internal/roster"
	"github.com/Ultrahd-dev/student-roster/internal/table"
)

// RosterColumns колонки консольной таблицы студентов
var RosterColumns = []table.Column{
	{Title: "Группа", MinWidth: 12},
	{Title: "Направление", MinWidth: 40},
	{Title: "ФИО", MinWidth: 30},
	{Title: "Пол", MinWidth: 10},
	{Title: "Дата рождения", MinWidth: 12},
	{Title: "Студ. билет", MinWidth: 20},
}

// Reports источник данных отчета
type Reports interface {
	ListEligibleGroups(ctx context.Context, currentYear int) ([]roster.Group, error)
	FetchRoster(ctx context.Context, currentYear int, filter roster.Filter) ([]roster.Row, error)
}

// CLI диалог с оператором: выбор группы и вывод таблицы
type CLI struct {
	in       *bufio.Reader
	out      io.Writer
	year     int
	renderer *table.Renderer
}

// New создает CLI, читающий ввод из in и пишущий в out
func New(in io.Reader, out io.Writer, currentYear int) *CLI {
	return &CLI{
		in:       bufio.NewReader(in),
		out:      out,
		year:     currentYear,
		renderer: table.New(RosterColumns),
	}
}

// Run выполняет один сеанс отчета.
// Ввод группы, которой нет среди активных, возвращает *roster.ValidationError
// без запроса списка студентов.
func (c *CLI) Run(ctx context.Context, reports Reports) error {
	c.printBanner()

	groups, err := reports.ListEligibleGroups(ctx, c.year)
	if err != nil {
		return err
	}

	active := roster.GroupNumbers(groups)
	if len(active) == 0 {
		fmt.Fprintln(c.out, "Нет активных групп.")
		return nil
	}

	fmt.Fprintln(c.out, "Доступные группы:")
	for _, g := range active {
		fmt.Fprintf(c.out, "  • %s\n", g)
	}

	fmt.Fprint(c.out, "\nВведите номер группы для фильтрации (или нажмите Enter для всех групп): ")
	input, err := c.readLine()
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	if !roster.IsValidGroup(input, active) {
		fmt.Fprintf(c.out, "Ошибка: Группа '%s' не найдена или не является активной.\n", input)
		return &roster.ValidationError{Group: input}
	}

	rows, err := reports.FetchRoster(ctx, c.year, roster.ByNumber(input))
	if err != nil {
		return err
	}

	fmt.Fprintln(c.out)
	if input != "" {
		fmt.Fprintf(c.out, "Студенты группы %s:\n", input)
	} else {
		fmt.Fprintln(c.out, "Все студенты (все активные группы):")
	}
	fmt.Fprintf(c.out, "%s\n\n", strings.Repeat("=", 80))

	cells := make([][]string, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, r.Cells())
	}

	_, err = c.renderer.Render(c.out, cells)
	return err
}

func (c *CLI) printBanner() {
	fmt.Fprintln(c.out, "=========================================")
	fmt.Fprintln(c.out, "   СИСТЕМА УЧЕТА СТУДЕНТОВ (CLI ВЕРСИЯ)   ")
	fmt.Fprintln(c.out, "=========================================")
	fmt.Fprintln(c.out)
}

// readLine читает одну строку; конец ввода без данных означает пустой выбор
func (c *CLI) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimSpace(line), nil
}
