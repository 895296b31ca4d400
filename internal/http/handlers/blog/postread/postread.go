// Package postread реализует HTTP-обработчик просмотра статьи.
//
// Handler извлекает ID из URL-параметров и возвращает статью. Для
// премиальных статей требуется действующая подписка, права автора
// или администратора.
package postread

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-publisher/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-publisher/internal/http/response"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/policy"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/sl"
	"github.com/magabrotheeeer/blog-publisher/internal/models"
	"github.com/magabrotheeeer/blog-publisher/internal/storage/repository"
)

// BlogService определяет методы бизнес-логики чтения статей.
type BlogService interface {
	Read(ctx context.Context, actor *models.User, id int) (*models.Post, error)
}

// Handler обрабатывает HTTP-запросы на просмотр статьи по идентификатору.
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
// @Summary Просмотр статьи
// @Description Возвращает статью по идентификатору. Премиальные статьи доступны только по подписке.
// @Tags Posts
// @Produce  json
// @Param id path int true "ID статьи"
// @Success 200 {object} map[string]any "Статья"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 401 {object} response.ErrorResponse "Требуется вход"
// @Failure 403 {object} response.ErrorResponse "Требуется подписка"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка при получении статьи"
// @Router /posts/{id} [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.blog.postread"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	idStr := chi.URLParam(r, "id")
	id, err := strconv.Atoi(idStr)
	if err != nil {
		log.Error("invalid id format", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid id"))
		return
	}

	actor := middlewarectx.ActorFromContext(r.Context())

	post, err := h.service.Read(r.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrUnauthenticated):
			log.Info("premium post requires login", slog.Int("id", id))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("authentication required"))
		case errors.Is(err, policy.ErrForbidden):
			log.Info("premium post requires subscription", slog.Int("id", id))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("subscription required"))
		case errors.Is(err, repository.ErrPostNotFound):
			log.Info("post not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
		default:
			log.Error("failed to read post", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to read post"))
		}
		return
	}

	log.Info("post read", slog.Int("id", id))
	render.JSON(w, r, response.OKWithData(post))
}
