package roster

// Подписи пола для отчета
const (
	GenderMale        = "Мужской"
	GenderFemale      = "Женский"
	GenderUnspecified = "Не указан"
)

// MapGender переводит код пола из хранилища в подпись
func MapGender(code string) string {
	switch code {
	case "M":
		return GenderMale
	case "F":
		return GenderFemale
	default:
		return GenderUnspecified
	}
}
