// Package contact реализует HTTP-обработчик формы обратной связи.
package contact

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/blog-publisher/internal/http/response"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/phone"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/sl"
)

// Request — входные данные формы обратной связи
type Request struct {
	Name    string `json:"name" validate:"required,min=2,max=100"`
	Phone   string `json:"phone" validate:"required,phone"`
	Message string `json:"message" validate:"required,max=2000"`
}

// ContactService определяет методы бизнес-логики формы обратной связи.
type ContactService interface {
	SubmitContactForm(ctx context.Context, name, phone, text string) error
}

// Handler обрабатывает HTTP-запросы формы обратной связи.
type Handler struct {
	log      *slog.Logger
	service  ContactService
	validate *validator.Validate
}

// New создает новый Handler с переданным логгером и сервисом обратной связи.
func New(log *slog.Logger, service ContactService) *Handler {
	v := validator.New()
	phone.RegisterValidation(v)
	return &Handler{
		log:      log,
		service:  service,
		validate: v,
	}
}

// ServeHTTP godoc
// @Summary Форма обратной связи
// @Description Принимает сообщение и ставит его в очередь на доставку владельцу сайта
// @Tags Contacts
// @Accept  json
// @Produce  json
// @Param request body Request true "Сообщение"
// @Success 200 {object} map[string]any "Сообщение принято"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка при обработке сообщения"
// @Router /contacts [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact"

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

	if err := h.service.SubmitContactForm(r.Context(), req.Name, req.Phone, req.Message); err != nil {
		log.Error("failed to submit contact form", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to submit message"))
		return
	}

	log.Info("contact message accepted", slog.String("phone", req.Phone))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "message accepted",
	}))
}
