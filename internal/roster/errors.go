package roster

import (
	"errors"
	"fmt"
)

var (
	// ErrDataSource хранилище недоступно или вернуло некорректные данные
	ErrDataSource = errors.New("data source error")

	// ErrValidation введенная группа не входит в список активных
	ErrValidation = errors.New("validation error")
)

// DataSourceError ошибка обращения к хранилищу. Запрос прерывается целиком.
type DataSourceError struct {
	Op  string
	Err error
}

func (e *DataSourceError) Error() string {
	return fmt.Sprintf("roster.%s: %v", e.Op, e.Err)
}

func (e *DataSourceError) Unwrap() error {
	return e.Err
}

// Is позволяет проверять ошибку через errors.Is(err, ErrDataSource)
func (e *DataSourceError) Is(target error) bool {
	return target == ErrDataSource
}

// ValidationError группа не найдена среди активных
type ValidationError struct {
	Group string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("group %q is not an active group", e.Group)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}
