// Package categorycreate реализует HTTP-обработчик создания категории статей.
package categorycreate

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/blog-publisher/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-publisher/internal/http/response"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/policy"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/sl"
	"github.com/magabrotheeeer/blog-publisher/internal/models"
)

// Request — входные данные для создания категории
type Request struct {
	Name string `json:"name" validate:"required,min=2,max=100"`
}

// BlogService определяет методы бизнес-логики создания категорий.
type BlogService interface {
	CreateCategory(ctx context.Context, actor *models.User, name string) (int, error)
}

// Handler обрабатывает HTTP-запросы на создание категории.
type Handler struct {
	log      *slog.Logger
	service  BlogService
	validate *validator.Validate
}

// New создает новый Handler с переданным логгером и сервисом блога.
func New(log *slog.Logger, service BlogService) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Создать категорию
// @Description Создает новую категорию статей. Доступно только администратору.
// @Tags Categories
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body Request true "Имя категории"
// @Success 200 {object} map[string]any "Категория создана"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка при создании категории"
// @Router /categories [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.blog.categorycreate"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	actor := middlewarectx.ActorFromContext(r.Context())

	id, err := h.service.CreateCategory(r.Context(), actor, req.Name)
	if err != nil {
		switch {
		case errors.Is(err, policy.ErrUnauthenticated), errors.Is(err, policy.ErrForbidden):
			log.Info("category creation forbidden")
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("access denied"))
		default:
			log.Error("failed to create category", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to create category"))
		}
		return
	}

	log.Info("category created", slog.Int("id", id), slog.String("name", req.Name))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
