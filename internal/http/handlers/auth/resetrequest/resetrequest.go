// Package resetrequest реализует HTTP-обработчик запроса смены пароля.
package resetrequest

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

// Request — входные данные для запроса смены пароля
type Request struct {
	Phone string `json:"phone" validate:"required,phone"`
}

// AuthService определяет методы бизнес-логики запроса смены пароля.
type AuthService interface {
	RequestPasswordReset(ctx context.Context, phoneNumber string) error
}

// Handler обрабатывает HTTP-запросы на отправку кода для смены пароля.
type Handler struct {
	log      *slog.Logger
	service  AuthService
	validate *validator.Validate
}

// New создает новый экземпляр Handler с заданным логгером и сервисом аутентификации.
func New(log *slog.Logger, service AuthService) *Handler {
	v := validator.New()
	phone.RegisterValidation(v)
	return &Handler{
		log:      log,
		service:  service,
		validate: v,
	}
}

// ServeHTTP godoc
// @Summary Запрос смены пароля
// @Description Отправляет код подтверждения в SMS для смены пароля
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Номер телефона"
// @Success 200 {object} map[string]any "Код подтверждения отправлен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /password/reset [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.resetrequest"

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

	if err := h.service.RequestPasswordReset(r.Context(), req.Phone); err != nil {
		log.Error("password reset request failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to request password reset"))
		return
	}

	log.Info("password reset code sent", slog.String("phone", req.Phone))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "confirmation code sent",
		"phone":   req.Phone,
	}))
}
