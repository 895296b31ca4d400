package models

import "time"

// ContactMessage представляет сообщение, отправленное через форму обратной связи.
// Сообщения публикуются в очередь и отправляются владельцу сайта по почте.
type ContactMessage struct {
	Name      string    `json:"name"`
	Phone     string    `json:"phone"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
