// Package roster определяет модели и выборку списка студентов выпускных групп
package roster

import (
	"fmt"
	"strings"
)

// Group представляет учебную группу
// Соответствует таблице groups
type Group struct {
	ID             int64  `db:"id"`
	Number         string `db:"group_number"`
	StudyDirection string `db:"study_direction"`
	GraduationYear int    `db:"graduation_year"`
}

// Student представляет студента
// Соответствует таблице students
type Student struct {
	GroupID     int64  `db:"group_id"`
	LastName    string `db:"last_name"`
	FirstName   string `db:"first_name"`
	MiddleName  string `db:"middle_name"` // NULL читается как пустая строка
	Gender      string `db:"gender"`
	BirthDate   string `db:"birth_date"` // формат хранилища сохраняется как есть
	StudentCard string `db:"student_card"`
}

// FullName возвращает ФИО в виде "Фамилия Имя Отчество".
// Разделитель перед отчеством остается и при его отсутствии.
func (s Student) FullName() string {
	var b strings.Builder
	b.Grow(len(s.LastName) + len(s.FirstName) + len(s.MiddleName) + 2)
	b.WriteString(s.LastName)
	b.WriteByte(' ')
	b.WriteString(s.FirstName)
	b.WriteByte(' ')
	b.WriteString(s.MiddleName)
	return b.String()
}

// Row строка отчета: студент вместе с номером группы и направлением подготовки
type Row struct {
	GroupNumber    string
	StudyDirection string
	FullName       string
	Gender         string
	BirthDate      string
	StudentCard    string
}

// NewRow собирает строку отчета из студента и его группы
func NewRow(s Student, g Group) Row {
	return Row{
		GroupNumber:    g.Number,
		StudyDirection: g.StudyDirection,
		FullName:       s.FullName(),
		Gender:         MapGender(s.Gender),
		BirthDate:      s.BirthDate,
		StudentCard:    s.StudentCard,
	}
}

// Cells возвращает значения строки в порядке колонок отчета
func (r Row) Cells() []string {
	return []string{r.GroupNumber, r.StudyDirection, r.FullName, r.Gender, r.BirthDate, r.StudentCard}
}

// Filter выбор группы для отчета. Нулевое значение означает все допустимые группы.
// GroupID используется веб-версией, GroupNumber консольной.
type Filter struct {
	GroupID     *int64
	GroupNumber string
}

// ByID возвращает фильтр по идентификатору группы
func ByID(id int64) Filter {
	return Filter{GroupID: &id}
}

// ByNumber возвращает фильтр по номеру группы; пустой номер означает все группы
func ByNumber(number string) Filter {
	return Filter{GroupNumber: number}
}

// IsEmpty сообщает, что фильтр не ограничивает выборку
func (f Filter) IsEmpty() bool {
	return f.GroupID == nil && f.GroupNumber == ""
}

// String описывает фильтр для журнала
func (f Filter) String() string {
	switch {
	case f.GroupID != nil && f.GroupNumber != "":
		return fmt.Sprintf("id=%d, номер=%s", *f.GroupID, f.GroupNumber)
	case f.GroupID != nil:
		return fmt.Sprintf("id=%d", *f.GroupID)
	case f.GroupNumber != "":
		return "номер=" + f.GroupNumber
	default:
		return "все группы"
	}
}
