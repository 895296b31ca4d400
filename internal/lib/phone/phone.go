// Package phone содержит проверку номера телефона в международном формате.
package phone

import (
	"regexp"

	"github.com/go-playground/validator"
)

// Регулярное выражение для международных номеров, например +71234567890.
var re = regexp.MustCompile(`^\+?[1-9]\d{1,14}$`)

// Valid сообщает, является ли строка корректным номером телефона.
func Valid(s string) bool {
	return re.MatchString(s)
}

// RegisterValidation регистрирует тег "phone" в переданном валидаторе.
func RegisterValidation(v *validator.Validate) {
	// Ошибка регистрации возможна только при пустом теге, здесь он фиксирован.
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return Valid(fl.Field().String())
	})
}
