// Package postremove реализует HTTP-обработчик удаления статьи.
package postremove

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

// BlogService определяет методы бизнес-логики удаления статей.
type BlogService interface {
	Remove(ctx context.Context, actor *models.User, id int) (int, error)
}

// Handler обрабатывает HTTP-запросы на удаление статьи по идентификатору.
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
// @Summary Удалить статью
// @Description Удаляет статью по идентификатору. Доступно автору статьи и администратору.
// @Tags Posts
// @Produce  json
// @Security BearerAuth
// @Param id path int true "ID статьи"
// @Success 200 {object} map[string]any "Статья удалена"
// @Failure 400 {object} response.ErrorResponse "Некорректный ID"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Статья не найдена"
// @Failure 500 {object} response.ErrorResponse "Ошибка при удалении"
// @Router /posts/{id} [delete]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.blog.postremove"

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

	count, err := h.service.Remove(r.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrUnauthenticated), errors.Is(err, policy.ErrForbidden):
			log.Info("remove forbidden", slog.Int("id", id))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("access denied"))
		case errors.Is(err, repository.ErrPostNotFound):
			log.Info("post not found", slog.Int("id", id))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("post not found"))
		default:
			log.Error("failed to delete post", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to delete post"))
		}
		return
	}

	log.Info("post deleted", slog.Int("id", id), slog.Int("deleted", count))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"deleted": count,
	}))
}
