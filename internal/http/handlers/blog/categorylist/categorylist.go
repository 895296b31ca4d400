// Package categorylist реализует HTTP-обработчик списка категорий статей.
package categorylist

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-publisher/internal/http/response"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/sl"
	"github.com/magabrotheeeer/blog-publisher/internal/models"
)

// BlogService определяет методы бизнес-логики списка категорий.
type BlogService interface {
	ListCategories(ctx context.Context) ([]*models.Category, error)
}

// Handler обрабатывает HTTP-запросы на получение списка категорий.
type Handler struct {
	log     *slog.Logger
	service BlogService
}

// New создает новый Handler с переданным логгером и сервисом блога.
func New(log *slog.Logger, service BlogService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Список категорий
// @Description Возвращает список категорий статей
// @Tags Categories
// @Produce  json
// @Success 200 {object} map[string]any "Список категорий"
// @Failure 500 {object} response.ErrorResponse "Ошибка при получении категорий"
// @Router /categories [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.blog.categorylist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	categories, err := h.service.ListCategories(r.Context())
	if err != nil {
		log.Error("failed to list categories", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list categories"))
		return
	}

	log.Info("categories listed", slog.Int("count", len(categories)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"categories": categories,
	}))
}
