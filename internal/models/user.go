// Package models содержит доменную модель пользователя системы,
// включающую данные учётной записи, хэш пароля, состояние подтверждения
// номера телефона и флаг подписки. Структуры используются в бизнес‑логике
// и при работе с хранилищем.
package models

import "time"

// User представляет зарегистрированного пользователя системы.
//
// Поле IsActive становится true только после подтверждения номера телефона
// кодом из SMS. Поле IsSubscribed выставляется при успешной оплате подписки.
type User struct {
	UID          string     // Уникальный идентификатор пользователя
	Phone        string     // Номер телефона (уникальный, используется для входа)
	Name         string     // Имя пользователя
	Email        *string    // Электронная почта
	TgNick       *string    // Ник в Telegram
	Avatar       *string    // Путь к файлу аватара
	PasswordHash string     // Хэш пароля пользователя
	Role         string     // Роль пользователя, admin или user
	IsActive     bool       // Подтвержден ли номер телефона
	IsSubscribed bool       // Оплачена ли подписка
	OTPCode      *string    // Текущий код подтверждения (nil, если код не выдан)
	OTPCreatedAt *time.Time // Время выдачи кода подтверждения
	IsOTPSent    bool       // Отправлен ли код при создании учетной записи
	CreatedAt    time.Time  // Дата создания учетной записи
}
