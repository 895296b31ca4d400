// Package otpverify реализует HTTP-обработчик подтверждения номера телефона
// по коду из SMS.
package otpverify

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

// Request — входные данные для подтверждения кода
type Request struct {
	Phone string `json:"phone" validate:"required,phone"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

// AuthService определяет методы бизнес-логики подтверждения регистрации.
type AuthService interface {
	ConfirmRegistration(ctx context.Context, phoneNumber, code string) (bool, string, error)
}

// Handler обрабатывает HTTP-запросы подтверждения кода из SMS.
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
// @Summary Подтверждение номера телефона
// @Description Проверяет код подтверждения из SMS и активирует учетную запись
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Номер телефона и код подтверждения"
// @Success 200 {object} map[string]any "Учетная запись активирована"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON или неверный код"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при подтверждении"
// @Router /register/confirm [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.otpverify"

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
	log.Info("request body decoded", slog.String("phone", req.Phone))

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusUnprocessableEntity)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	valid, reason, err := h.service.ConfirmRegistration(r.Context(), req.Phone, req.Code)
	if err != nil {
		log.Error("confirmation failed", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to confirm registration"))
		return
	}
	if !valid {
		log.Info("confirmation rejected", slog.String("reason", reason))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error(reason))
		return
	}

	log.Info("confirmation success", slog.String("phone", req.Phone))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"message": "account activated",
		"phone":   req.Phone,
	}))
}
