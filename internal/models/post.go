package models

import "time"

// Post представляет статью блога.
//
// Статьи с IsPremium доступны для чтения только подписанным пользователям.
type Post struct {
	ID          int       `json:"id"`                    // Идентификатор статьи
	Title       string    `json:"title"`                 // Заголовок
	Content     string    `json:"content"`               // Текст статьи
	Image       *string   `json:"image,omitempty"`       // Путь к изображению
	CategoryID  *int      `json:"category_id,omitempty"` // Категория статьи
	AuthorUID   *string   `json:"author_uid,omitempty"`  // Автор статьи
	IsPublished bool      `json:"is_published"`          // Опубликована ли статья
	IsPremium   bool      `json:"is_premium"`            // Доступна ли статья только по подписке
	ViewsCount  int       `json:"views_count"`           // Количество просмотров
	CreatedAt   time.Time `json:"created_at"`            // Дата создания
	UpdatedAt   time.Time `json:"updated_at"`            // Дата последнего изменения
}

// Category представляет категорию статей.
type Category struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// DummyPost используется для приёма данных статьи из JSON-запроса,
// прежде чем конвертировать их в Post.
type DummyPost struct {
	Title      string  `json:"title" validate:"required,max=200"`  // Заголовок
	Content    string  `json:"content" validate:"required"`        // Текст статьи
	Image      *string `json:"image,omitempty"`                    // Путь к изображению
	CategoryID *int    `json:"category_id,omitempty"`              // Категория
	IsPremium  bool    `json:"is_premium"`                         // Только по подписке
}
