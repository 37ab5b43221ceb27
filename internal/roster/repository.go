package roster

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"
)

// Querier выполняет запросы чтения. Ему удовлетворяют *sql.DB, *sql.Conn и *sql.Tx.
type Querier interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Repository предоставляет доступ к группам и студентам
type Repository struct {
	q       Querier
	builder sq.StatementBuilderType
}

// NewRepository создает новый репозиторий поверх сессии хранилища
func NewRepository(q Querier, placeholder sq.PlaceholderFormat) *Repository {
	return &Repository{
		q:       q,
		builder: sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// ListEligibleGroups получает группы с годом выпуска не позже currentYear,
// упорядоченные по номеру группы
func (r *Repository) ListEligibleGroups(ctx context.Context, currentYear int) ([]Group, error) {
	query, args, err := r.builder.
		Select("id", "group_number", "study_direction", "graduation_year").
		From("groups").
		Where(sq.LtOrEq{"graduation_year": currentYear}).
		OrderBy("group_number").
		ToSql()
	if err != nil {
		return nil, &DataSourceError{Op: "ListEligibleGroups", Err: fmt.Errorf("failed to build query: %w", err)}
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &DataSourceError{Op: "ListEligibleGroups", Err: fmt.Errorf("failed to get groups: %w", err)}
	}
	defer rows.Close()

	groups := []Group{}
	for rows.Next() {
		var g Group
		if err := rows.Scan(&g.ID, &g.Number, &g.StudyDirection, &g.GraduationYear); err != nil {
			return nil, &DataSourceError{Op: "ListEligibleGroups", Err: fmt.Errorf("failed to scan group: %w", err)}
		}
		groups = append(groups, g)
	}

	if err := rows.Err(); err != nil {
		return nil, &DataSourceError{Op: "ListEligibleGroups", Err: fmt.Errorf("error iterating rows: %w", err)}
	}

	return groups, nil
}

// FetchRoster получает студентов допустимых групп с учетом фильтра.
// Порядок: номер группы, фамилия, имя.
func (r *Repository) FetchRoster(ctx context.Context, currentYear int, filter Filter) ([]Row, error) {
	builder := r.builder.
		Select(
			"g.id", "g.group_number", "g.study_direction", "g.graduation_year",
			"s.last_name", "s.first_name",
			"COALESCE(s.middle_name, '')", "COALESCE(s.gender, '')",
			"CAST(s.birth_date AS TEXT)", "s.student_card",
		).
		From("students s").
		Join("groups g ON s.group_id = g.id").
		Where(sq.LtOrEq{"g.graduation_year": currentYear})

	if filter.GroupID != nil {
		builder = builder.Where(sq.Eq{"g.id": *filter.GroupID})
	}
	if filter.GroupNumber != "" {
		builder = builder.Where(sq.Eq{"g.group_number": filter.GroupNumber})
	}

	query, args, err := builder.OrderBy("g.group_number", "s.last_name", "s.first_name").ToSql()
	if err != nil {
		return nil, &DataSourceError{Op: "FetchRoster", Err: fmt.Errorf("failed to build query: %w", err)}
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, &DataSourceError{Op: "FetchRoster", Err: fmt.Errorf("failed to get students: %w", err)}
	}
	defer rows.Close()

	result := []Row{}
	for rows.Next() {
		var (
			g Group
			s Student
		)
		err := rows.Scan(
			&g.ID,
			&g.Number,
			&g.StudyDirection,
			&g.GraduationYear,
			&s.LastName,
			&s.FirstName,
			&s.MiddleName,
			&s.Gender,
			&s.BirthDate,
			&s.StudentCard,
		)
		if err != nil {
			return nil, &DataSourceError{Op: "FetchRoster", Err: fmt.Errorf("failed to scan student: %w", err)}
		}
		s.GroupID = g.ID
		result = append(result, NewRow(s, g))
	}

	if err := rows.Err(); err != nil {
		return nil, &DataSourceError{Op: "FetchRoster", Err: fmt.Errorf("error iterating rows: %w", err)}
	}

	return result, nil
}
