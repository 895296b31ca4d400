// Package otp реализует генерацию и проверку одноразовых кодов подтверждения,
// которые отправляются пользователю по SMS при регистрации и смене пароля.
//
// Generate создает случайный 6-значный код.
// Verify проверяет присланный пользователем код по сохраненному коду и времени выдачи.
package otp

import (
	"math/rand/v2"
	"strconv"
	"time"
)

// TTL время жизни кода подтверждения с момента выдачи.
const TTL = 5 * time.Minute

// Причины результата проверки кода. Возвращаются вызывающему
// как есть и показываются пользователю.
const (
	ReasonNotIssued = "confirmation code was not issued"
	ReasonMismatch  = "confirmation code does not match"
	ReasonExpired   = "confirmation code has expired"
	ReasonVerified  = "confirmation code verified"
)

// Generate возвращает случайный 6-значный код в диапазоне 100000–999999.
// Диапазон исключает коды с ведущим нулем, это поведение сохранено намеренно.
func Generate() string {
	return strconv.Itoa(rand.IntN(900000) + 100000)
}

// Verify проверяет присланный код по сохраненному коду и времени его выдачи.
//
// Возвращает признак валидности и причину. Проверка закрыта по умолчанию:
// отсутствие кода, несовпадение или истечение срока дают невалидный результат.
// Отправка ровно на границе окна TTL считается валидной.
//
// Verify не изменяет состояние: после успешной проверки вызывающий обязан
// сбросить сохраненный код, чтобы обеспечить одноразовость.
func Verify(code *string, createdAt *time.Time, submitted string) (bool, string) {
	if code == nil || *code == "" {
		return false, ReasonNotIssued
	}
	if *code != submitted {
		return false, ReasonMismatch
	}
	if createdAt != nil && time.Now().After(createdAt.Add(TTL)) {
		return false, ReasonExpired
	}
	return true, ReasonVerified
}
