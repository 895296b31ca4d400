// Package subscribe реализует HTTP-обработчик оформления подписки.
//
// Handler создает платежную сессию в Stripe и возвращает ссылку
// на страницу оплаты.
package subscribe

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-publisher/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-publisher/internal/http/response"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/sl"
)

// PaymentService определяет методы бизнес-логики оформления подписки.
type PaymentService interface {
	Subscribe(ctx context.Context, userUID string) (string, error)
}

// Handler обрабатывает HTTP-запросы на оформление подписки.
type Handler struct {
	log     *slog.Logger
	service PaymentService
}

// New создает новый Handler с переданным логгером и платежным сервисом.
func New(log *slog.Logger, service PaymentService) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

// ServeHTTP godoc
// @Summary Оформление подписки
// @Description Создает платежную сессию и возвращает ссылку на страницу оплаты
// @Tags Payments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Ссылка на оплату"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка при создании платежа"
// @Router /payments/subscribe [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.subscribe"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	userUID, ok := r.Context().Value(middlewarectx.UserUID).(string)
	if !ok || userUID == "" {
		log.Error("user identification missing")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("user identification missing"))
		return
	}

	checkoutURL, err := h.service.Subscribe(r.Context(), userUID)
	if err != nil {
		log.Error("failed to create checkout session", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create payment"))
		return
	}

	log.Info("checkout session created", slog.String("user_uid", userUID))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"checkout_url": checkoutURL,
	}))
}
