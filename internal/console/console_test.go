package console_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ultrahd-dev/student-roster/internal/console"
	"github.com/Ultrahd-dev/student-roster/internal/database/dbtest"
	"github.com/Ultrahd-dev/student-roster/internal/roster"
)

// spyReports считает обращения к хранилищу
type spyReports struct {
	console.Reports
	groupCalls  int
	rosterCalls int
	filters     []roster.Filter
}

func (s *spyReports) ListEligibleGroups(ctx context.Context, year int) ([]roster.Group, error) {
	s.groupCalls++
	return s.Reports.ListEligibleGroups(ctx, year)
}

func (s *spyReports) FetchRoster(ctx context.Context, year int, f roster.Filter) ([]roster.Row, error) {
	s.rosterCalls++
	s.filters = append(s.filters, f)
	return s.Reports.FetchRoster(ctx, year, f)
}

func newReports(t *testing.T) *spyReports {
	t.Helper()
	store := dbtest.NewStore(t)
	dbtest.Seed(t, store,
		[]dbtest.Group{
			{ID: 1, Number: "ИС-21", StudyDirection: "Информационные системы", GraduationYear: 2024},
			{ID: 2, Number: "ПИ-20", StudyDirection: "Прикладная информатика", GraduationYear: 2023},
			{ID: 3, Number: "БИ-25", StudyDirection: "Бизнес-информатика", GraduationYear: 2025},
		},
		[]dbtest.Student{
			{ID: 1, GroupID: 1, LastName: "Иванов", FirstName: "Иван", MiddleName: "Сергеевич", Gender: "M", BirthDate: "2003-05-01", StudentCard: "12345"},
			{ID: 2, GroupID: 2, LastName: "Петрова", FirstName: "Анна", Gender: "F", BirthDate: "2002-04-12", StudentCard: "20001"},
		},
	)
	svc := roster.NewService(roster.NewRepository(store.DB(), store.Placeholder()))
	return &spyReports{Reports: svc}
}

func TestRun_AllGroups(t *testing.T) {
	reports := newReports(t)
	var out strings.Builder

	err := console.New(strings.NewReader("\n"), &out, 2024).Run(context.Background(), reports)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "СИСТЕМА УЧЕТА СТУДЕНТОВ (CLI ВЕРСИЯ)")
	assert.Contains(t, text, "  • ИС-21\n  • ПИ-20\n")
	assert.NotContains(t, text, "БИ-25")
	assert.Contains(t, text, "Все студенты (все активные группы):")
	assert.Contains(t, text, strings.Repeat("=", 80))
	assert.Contains(t, text, "Иванов Иван Сергеевич")
	assert.Contains(t, text, "Петрова Анна ")
	assert.Contains(t, text, "Всего студентов: 2")

	assert.Equal(t, 1, reports.rosterCalls)
	assert.True(t, reports.filters[0].IsEmpty())
}

func TestRun_ExactGroupMatch(t *testing.T) {
	reports := newReports(t)
	var out strings.Builder

	err := console.New(strings.NewReader("  ИС-21  \n"), &out, 2024).Run(context.Background(), reports)
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Студенты группы ИС-21:")
	assert.Contains(t, text, "│ ИС-21 ")
	assert.Contains(t, text, "Мужской")
	assert.NotContains(t, text, "Петрова")
	assert.Contains(t, text, "Всего студентов: 1")
	assert.Equal(t, roster.ByNumber("ИС-21"), reports.filters[0])
}

func TestRun_UnknownGroupIsRejectedBeforeQuery(t *testing.T) {
	reports := newReports(t)
	var out strings.Builder

	err := console.New(strings.NewReader("БИ-25\n"), &out, 2024).Run(context.Background(), reports)

	var vErr *roster.ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "БИ-25", vErr.Group)
	assert.ErrorIs(t, err, roster.ErrValidation)

	assert.Contains(t, out.String(), "Ошибка: Группа 'БИ-25' не найдена или не является активной.")
	assert.NotContains(t, out.String(), "┌")
	assert.Equal(t, 1, reports.groupCalls)
	assert.Equal(t, 0, reports.rosterCalls)
}

func TestRun_EOFMeansAllGroups(t *testing.T) {
	reports := newReports(t)
	var out strings.Builder

	err := console.New(strings.NewReader(""), &out, 2024).Run(context.Background(), reports)
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Всего студентов: 2")
}

func TestRun_NoActiveGroups(t *testing.T) {
	reports := newReports(t)
	var out strings.Builder

	err := console.New(strings.NewReader("\n"), &out, 2020).Run(context.Background(), reports)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Нет активных групп.")
	assert.NotContains(t, out.String(), "Доступные группы:")
	assert.Equal(t, 0, reports.rosterCalls)
}

func TestRun_GroupWithoutStudents(t *testing.T) {
	reports := newReports(t)
	var out strings.Builder

	err := console.New(strings.NewReader("БИ-25\n"), &out, 2025).Run(context.Background(), reports)
	require.NoError(t, err)

	assert.Contains(t, out.String(), "Нет данных для отображения.")
	assert.NotContains(t, out.String(), "┌")
	assert.NotContains(t, out.String(), "Всего студентов")
}

type failingReports struct{}

func (failingReports) ListEligibleGroups(context.Context, int) ([]roster.Group, error) {
	return nil, &roster.DataSourceError{Op: "ListEligibleGroups", Err: assert.AnError}
}

func (failingReports) FetchRoster(context.Context, int, roster.Filter) ([]roster.Row, error) {
	return nil, nil
}

func TestRun_DataSourceError(t *testing.T) {
	var out strings.Builder

	err := console.New(strings.NewReader("\n"), &out, 2024).Run(context.Background(), failingReports{})
	assert.ErrorIs(t, err, roster.ErrDataSource)
	assert.NotContains(t, out.String(), "Доступные группы:")
}
