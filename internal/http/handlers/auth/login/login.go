// Package login реализует HTTP-обработчик входа пользователей.
package login

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/blog-publisher/internal/http/response"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/phone"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/sl"
	services "github.com/magabrotheeeer/blog-publisher/internal/services/auth"
)

// Request — входные данные для входа
type Request struct {
	Phone    string `json:"phone" validate:"required,phone"`
	Password string `json:"password" validate:"required"`
}

// AuthService определяет методы бизнес-логики входа пользователей.
type AuthService interface {
	Login(ctx context.Context, phoneNumber, rawPassword string) (string, error)
}

// Handler обрабатывает HTTP-запросы входа пользователей.
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
// @Summary Вход пользователя
// @Description Проверяет номер телефона и пароль, возвращает JWT токен
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Номер телефона и пароль"
// @Success 200 {object} map[string]any "Токен доступа"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} response.ErrorResponse "Неверные учетные данные"
// @Failure 403 {object} response.ErrorResponse "Учетная запись не активирована"
// @Failure 422 {object} response.ErrorResponse "Ошибка валидации данных"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера при входе"
// @Router /login [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.login"

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

	token, err := h.service.Login(r.Context(), req.Phone, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			log.Info("invalid credentials", slog.String("phone", req.Phone))
			w.WriteHeader(http.StatusUnauthorized)
			render.JSON(w, r, response.Error("invalid phone or password"))
		case errors.Is(err, services.ErrUserNotActive):
			log.Info("user not active", slog.String("phone", req.Phone))
			w.WriteHeader(http.StatusForbidden)
			render.JSON(w, r, response.Error("account is not activated"))
		default:
			log.Error("login failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to login"))
		}
		return
	}

	log.Info("login success", slog.String("phone", req.Phone))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"token": token,
	}))
}
