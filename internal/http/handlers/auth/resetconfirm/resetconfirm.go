// Package resetconfirm реализует HTTP-обработчик подтверждения смены пароля.
package resetconfirm

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

// Request — входные данные для подтверждения смены пароля
type Request struct {
	Phone           string `json:"phone" validate:"required,phone"`
	Code            string `json:"code" validate:"required,len=6,numeric"`
	Password        string `json:"password" validate:"required,min=8"`
	PasswordConfirm string `json:"password_confirm" validate:"required,eqfield=Password"`
}

// AuthService определяет методы бизнес-логики смены пароля.
type AuthService interface {
	ConfirmPasswordReset(ctx context.Context, phoneNumber, code, newPassword string) (bool, string, error)
}

// Handler обрабатывает HTTP-запросы подтверждения смены пароля по коду из SMS.
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
// @Summary Подтверждение смены пароля
// @Description Проверяет код подтверждения и устанавливает новый пароль
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Номер телефона, код и новый пароль"
// @Success 200 {object} map[string]any "Пароль изменен"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или неверный код"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /password/reset/confirm [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.resetconfirm"

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

	valid, reason, err := h.service.ConfirmPasswordReset(r.Context(), req.Phone, req.Code, req.Password)
	if err != nil {
		log.Error("password reset failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to reset password"))
		return
	}
	if !valid {
		log.Info("password reset rejected", slog.String("reason", reason))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(reason))
		return
	}

	log.Info("password reset success", slog.String("phone", req.Phone))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "password updated",
	}))
}
