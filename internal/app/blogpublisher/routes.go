// Package blogpublisher предоставляет маршруты для основного приложения.
package blogpublisher

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/auth/otpverify"
	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/auth/register"
	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/auth/resetconfirm"
	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/auth/resetrequest"
	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/blog/categorycreate"
	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/blog/categorylist"
	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/blog/postcreate"
	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/blog/postlist"
	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/blog/postread"
	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/blog/postremove"
	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/blog/postupdate"
	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/contact"
	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/health"
	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/payment/paymentlist"
	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/payment/subscribe"
	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/payment/success"
	"github.com/magabrotheeeer/blog-publisher/internal/http/handlers/profile/read"
	profileupdate "github.com/magabrotheeeer/blog-publisher/internal/http/handlers/profile/update"
	"github.com/magabrotheeeer/blog-publisher/internal/http/middlewarectx"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/jwt"
	authservice "github.com/magabrotheeeer/blog-publisher/internal/services/auth"
	blogservice "github.com/magabrotheeeer/blog-publisher/internal/services/blog"
	contactservice "github.com/magabrotheeeer/blog-publisher/internal/services/contact"
	paymentservice "github.com/magabrotheeeer/blog-publisher/internal/services/payment"
	"github.com/magabrotheeeer/blog-publisher/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger, jwtMaker jwt.Maker, db *repository.Storage,
	authService *authservice.AuthService, paymentService *paymentservice.Service,
	blogService *blogservice.BlogService, contactService *contactservice.ContactService) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/register", register.New(logger, authService).ServeHTTP)
		r.Post("/register/confirm", otpverify.New(logger, authService).ServeHTTP)
		r.Post("/login", login.New(logger, authService).ServeHTTP)
		r.Post("/password/reset", resetrequest.New(logger, authService).ServeHTTP)
		r.Post("/password/reset/confirm", resetconfirm.New(logger, authService).ServeHTTP)
		r.Post("/contacts", contact.New(logger, contactService).ServeHTTP)
		r.Get("/posts", postlist.New(logger, blogService).ServeHTTP)
		r.Get("/posts/{id}", postread.New(logger, blogService).ServeHTTP)
		r.Get("/categories", categorylist.New(logger, blogService).ServeHTTP)
		r.Get("/health", health.New(logger).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(jwtMaker, logger))
			r.Use(middlewarectx.LoadUserMiddleware(db, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))
			r.Get("/profile", read.New(logger).ServeHTTP)
			r.Put("/profile", profileupdate.New(logger, db).ServeHTTP)
			r.Post("/payments/subscribe", subscribe.New(logger, paymentService).ServeHTTP)
			r.Get("/payments/success", success.New(logger, paymentService).ServeHTTP)
			r.Get("/payments", paymentlist.New(logger, db).ServeHTTP)
			r.Post("/posts", postcreate.New(logger, blogService).ServeHTTP)
			r.Put("/posts/{id}", postupdate.New(logger, blogService).ServeHTTP)
			r.Delete("/posts/{id}", postremove.New(logger, blogService).ServeHTTP)
			r.Post("/categories", categorycreate.New(logger, blogService).ServeHTTP)
			// Авторизованный просмотр премиальной статьи
			r.Get("/posts/{id}/full", postread.New(logger, blogService).ServeHTTP)
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
