// Package table рисует текстовые таблицы с рамкой из символов псевдографики.
//
// Ширина колонки считается в экранных ячейках, а не в байтах, поэтому строки
// на кириллице выравниваются так же, как латиница.
package table

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/mattn/go-runewidth"
)

const (
	DefaultNoDataMessage = "Нет данных для отображения."
	DefaultCountLabel    = "Всего студентов"
)

// ширина символов фиксирована и не зависит от локали терминала
var widthCondition = &runewidth.Condition{EastAsianWidth: false, StrictEmojiNeutral: true}

// DisplayWidth возвращает число экранных ячеек, занимаемых строкой
func DisplayWidth(s string) int {
	return widthCondition.StringWidth(s)
}

// cleanCell заменяет управляющие символы пробелом: ячейка всегда занимает одну строку
func cleanCell(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return ' '
		}
		return r
	}, s)
}

// Column описывает колонку: заголовок и минимальную ширину
type Column struct {
	Title    string
	MinWidth int
}

// Renderer рисует таблицу по заданному набору колонок
type Renderer struct {
	columns    []Column
	noData     string
	countLabel string
}

// Option настраивает Renderer
type Option func(*Renderer)

// WithNoDataMessage задает сообщение для пустой выборки
func WithNoDataMessage(msg string) Option {
	return func(r *Renderer) { r.noData = msg }
}

// WithCountLabel задает подпись строки с количеством записей
func WithCountLabel(label string) Option {
	return func(r *Renderer) { r.countLabel = label }
}

// New создает Renderer
func New(columns []Column, opts ...Option) *Renderer {
	r := &Renderer{
		columns:    columns,
		noData:     DefaultNoDataMessage,
		countLabel: DefaultCountLabel,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Widths вычисляет ширину каждой колонки по заголовкам и содержимому
func (r *Renderer) Widths(rows [][]string) []int {
	widths := make([]int, len(r.columns))
	for i, c := range r.columns {
		widths[i] = max(c.MinWidth, DisplayWidth(c.Title))
	}
	for _, row := range rows {
		for i := range widths {
			if i < len(row) {
				widths[i] = max(widths[i], DisplayWidth(cleanCell(row[i])))
			}
		}
	}
	return widths
}

// Render пишет таблицу в w и возвращает число выведенных строк данных.
// Для пустой выборки выводится только сообщение об отсутствии данных.
func (r *Renderer) Render(w io.Writer, rows [][]string) (int, error) {
	var b strings.Builder

	if len(rows) == 0 {
		b.WriteString(r.noData)
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return 0, fmt.Errorf("failed to write table: %w", err)
		}
		return 0, nil
	}

	widths := r.Widths(rows)
	titles := make([]string, len(r.columns))
	for i, c := range r.columns {
		titles[i] = c.Title
	}

	writeBorder(&b, widths, '┌', '┬', '┐')
	writeRow(&b, widths, titles)
	writeBorder(&b, widths, '├', '┼', '┤')
	for _, row := range rows {
		writeRow(&b, widths, row)
	}
	writeBorder(&b, widths, '└', '┴', '┘')

	fmt.Fprintf(&b, "\n%s: %d\n", r.countLabel, len(rows))

	if _, err := io.WriteString(w, b.String()); err != nil {
		return 0, fmt.Errorf("failed to write table: %w", err)
	}
	return len(rows), nil
}

func writeBorder(b *strings.Builder, widths []int, left, junction, right rune) {
	b.WriteRune(left)
	for i, w := range widths {
		if i > 0 {
			b.WriteRune(junction)
		}
		b.WriteString(strings.Repeat("─", w+2))
	}
	b.WriteRune(right)
	b.WriteByte('\n')
}

func writeRow(b *strings.Builder, widths []int, cells []string) {
	b.WriteString("│")
	for i, w := range widths {
		cell := ""
		if i < len(cells) {
			cell = cleanCell(cells[i])
		}
		b.WriteByte(' ')
		b.WriteString(cell)
		b.WriteString(strings.Repeat(" ", w-DisplayWidth(cell)))
		b.WriteString(" │")
	}
	b.WriteByte('\n')
}
