// Package success реализует HTTP-обработчик возврата со страницы оплаты.
//
// Handler сверяет статус последнего платежа пользователя с платежным шлюзом
// и сообщает итог. Статус подписки обновляется по результату сверки,
// а не по факту возврата на страницу.
package success

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

// PaymentService определяет методы бизнес-логики сверки платежей.
type PaymentService interface {
	Reconcile(ctx context.Context, userUID string) (bool, error)
}

// Handler обрабатывает возврат пользователя со страницы оплаты.
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
// @Summary Результат оплаты
// @Description Сверяет статус последнего платежа с платежным шлюзом и возвращает статус подписки
// @Tags Payments
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} map[string]any "Результат сверки"
// @Failure 401 {object} response.ErrorResponse "Пользователь не аутентифицирован"
// @Failure 500 {object} response.ErrorResponse "Ошибка при сверке платежа"
// @Router /payments/success [get]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.success"

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

	subscribed, err := h.service.Reconcile(r.Context(), userUID)
	if err != nil {
		log.Error("failed to reconcile payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to check payment status"))
		return
	}

	log.Info("payment reconciled", slog.String("user_uid", userUID), slog.Bool("subscribed", subscribed))
	render.JSON(w, r, response.OKWithData(map[string]any{
		"is_subscribed": subscribed,
	}))
}
