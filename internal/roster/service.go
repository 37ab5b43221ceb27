package roster

import (
	"context"
	"fmt"
	"log"
)

// Service предоставляет выборку групп и студентов для отчетов
type Service struct {
	repo *Repository
}

// NewService создает новый сервис отчета
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// ListEligibleGroups получает группы, допущенные к отчету за currentYear
func (s *Service) ListEligibleGroups(ctx context.Context, currentYear int) ([]Group, error) {
	groups, err := s.repo.ListEligibleGroups(ctx, currentYear)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка групп: %w", err)
	}

	log.Printf("Получено %d активных групп за %d год", len(groups), currentYear)
	return groups, nil
}

// FetchRoster получает список студентов по фильтру
func (s *Service) FetchRoster(ctx context.Context, currentYear int, filter Filter) ([]Row, error) {
	rows, err := s.repo.FetchRoster(ctx, currentYear, filter)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения списка студентов: %w", err)
	}

	log.Printf("Получено %d студентов (фильтр: %s)", len(rows), filter)
	return rows, nil
}

// GroupNumbers возвращает номера групп без повторов в исходном порядке
func GroupNumbers(groups []Group) []string {
	seen := make(map[string]struct{}, len(groups))
	numbers := make([]string, 0, len(groups))
	for _, g := range groups {
		if _, ok := seen[g.Number]; ok {
			continue
		}
		seen[g.Number] = struct{}{}
		numbers = append(numbers, g.Number)
	}
	return numbers
}

// IsValidGroup сообщает, что ввод пуст или точно совпадает с номером активной группы
func IsValidGroup(group string, activeGroups []string) bool {
	if group == "" {
		return true
	}
	for _, g := range activeGroups {
		if g == group {
			return true
		}
	}
	return false
}

// FindGroup ищет группу по идентификатору
func FindGroup(groups []Group, id int64) (Group, bool) {
	for _, g := range groups {
		if g.ID == id {
			return g, true
		}
	}
	return Group{}, false
}
