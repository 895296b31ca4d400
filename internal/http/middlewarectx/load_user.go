package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/magabrotheeeer/blog-publisher/internal/http/response"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/sl"
	"github.com/magabrotheeeer/blog-publisher/internal/models"
)

// UserProvider описывает получение пользователя из хранилища по UID.
type UserProvider interface {
	GetUser(ctx context.Context, userUID string) (*models.User, error)
}

// LoadUserMiddleware создает middleware, которое загружает модель пользователя
// по UID из контекста и кладет её в контекст под ключом Actor.
//
// Middleware ставится после JWTMiddleware на маршруты, которым нужна
// актуальная информация о пользователе, включая статус подписки.
func LoadUserMiddleware(provider UserProvider, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			const op = "middlewarectx.LoadUserMiddleware"

			log = log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
			)

			userUID, ok := r.Context().Value(UserUID).(string)
			if !ok || userUID == "" {
				log.Error("user identification missing")
				render.Status(r, http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			user, err := provider.GetUser(r.Context(), userUID)
			if err != nil {
				log.Error("failed to load user", sl.Err(err))
				render.Status(r, http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			ctx := context.WithValue(r.Context(), Actor, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorFromContext возвращает загруженного пользователя из контекста запроса.
// Возвращает nil, если пользователь не загружен.
func ActorFromContext(ctx context.Context) *models.User {
	actor, ok := ctx.Value(Actor).(*models.User)
	if !ok {
		return nil
	}
	return actor
}
