// Package dbtest поднимает хранилище SQLite в памяти для тестов.
package dbtest

import (
	"context"
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"

	"github.com/Ultrahd-dev/student-roster/internal/config"
	"github.com/Ultrahd-dev/student-roster/internal/database"
)

// Group строка таблицы groups
type Group struct {
	ID             int64
	Number         string
	StudyDirection string
	GraduationYear int
}

// Student строка таблицы students; пустые MiddleName и Gender пишутся как NULL
type Student struct {
	ID          int64
	GroupID     int64
	LastName    string
	FirstName   string
	MiddleName  string
	Gender      string
	BirthDate   string
	StudentCard string
}

// NewStore открывает мигрированное хранилище в памяти и закрывает его по завершении теста
func NewStore(t *testing.T) *database.Store {
	t.Helper()

	goose.SetLogger(goose.NopLogger())

	store, err := database.Open(context.Background(), config.DatabaseConfig{
		Driver: database.DriverSQLite,
		DSN:    ":memory:",
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	require.NoError(t, store.MigrateUp())
	return store
}

// Seed заполняет таблицы тестовыми данными
func Seed(t *testing.T, store *database.Store, groups []Group, students []Student) {
	t.Helper()
	ctx := context.Background()

	for _, g := range groups {
		_, err := store.DB().ExecContext(ctx,
			`INSERT INTO groups (id, group_number, study_direction, graduation_year) VALUES (?, ?, ?, ?)`,
			g.ID, g.Number, g.StudyDirection, g.GraduationYear)
		require.NoError(t, err)
	}

	for _, s := range students {
		_, err := store.DB().ExecContext(ctx,
			`INSERT INTO students (id, group_id, last_name, first_name, middle_name, gender, birth_date, student_card)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			s.ID, s.GroupID, s.LastName, s.FirstName, nullable(s.MiddleName), nullable(s.Gender), s.BirthDate, s.StudentCard)
		require.NoError(t, err)
	}
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
