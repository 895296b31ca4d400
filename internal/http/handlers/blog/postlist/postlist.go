// Package postlist реализует HTTP-обработчик списка опубликованных статей.
package postlist

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-publisher/internal/http/response"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/sl"
	"github.com/magabrotheeeer/blog-publisher/internal/models"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

// BlogService определяет методы бизнес-логики списка статей.
type BlogService interface {
	List(ctx context.Context, limit, offset int) ([]*models.Post, error)
}

// Handler обрабатывает HTTP-запросы на получение списка статей.
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
// @Summary Список статей
// @Description Возвращает список опубликованных статей с пагинацией
// @Tags Posts
// @Produce  json
// @Param limit query int false "Максимум статей в ответе"
// @Param offset query int false "Смещение от начала списка"
// @Success 200 {object} map[string]any "Список статей"
// @Failure 500 {object} response.ErrorResponse "Ошибка при получении списка"
// @Router /posts [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.blog.postlist"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	limit := defaultLimit
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := 0
	if v, err := strconv.Atoi(r.URL.Query().Get("offset")); err == nil && v > 0 {
		offset = v
	}

	posts, err := h.service.List(r.Context(), limit, offset)
	if err != nil {
		log.Error("failed to list posts", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to list posts"))
		return
	}

	log.Info("posts listed", slog.Int("count", len(posts)))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"posts":  posts,
		"limit":  limit,
		"offset": offset,
	}))
}
