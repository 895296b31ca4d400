package blogpublisher

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/blog-publisher/internal/cache"
	"github.com/magabrotheeeer/blog-publisher/internal/config"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/jwt"
	librabbitmq "github.com/magabrotheeeer/blog-publisher/internal/lib/rabbitmq"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/sms"
	"github.com/magabrotheeeer/blog-publisher/internal/migrations"
	"github.com/magabrotheeeer/blog-publisher/internal/paymentprovider"
	"github.com/magabrotheeeer/blog-publisher/internal/rabbitmq"
	authservice "github.com/magabrotheeeer/blog-publisher/internal/services/auth"
	blogservice "github.com/magabrotheeeer/blog-publisher/internal/services/blog"
	contactservice "github.com/magabrotheeeer/blog-publisher/internal/services/contact"
	paymentservice "github.com/magabrotheeeer/blog-publisher/internal/services/payment"
	"github.com/magabrotheeeer/blog-publisher/internal/storage/repository"
)

// App объединяет HTTP-сервер и подключения основного приложения.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	rabbit *amqp.Connection
	ch     *amqp.Channel
}

// New собирает приложение: хранилище, кеш, платежный шлюз, очередь
// уведомлений, сервисы и маршруты HTTP.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, "./migrations"); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	conn, err := rabbitmq.Connect(cfg.RabbitMQConnection, cfg.RabbitMQMaxRetries, cfg.RabbitMQRetryDelay)
	if err != nil {
		return nil, err
	}
	ch, err := rabbitmq.SetupChannel(conn, rabbitmq.GetNotificationQueues())
	if err != nil {
		conn.Close()
		return nil, err
	}

	jwtMaker := jwt.NewMaker(cfg.JWTSecretKey, cfg.TokenTTL)
	smsSender := sms.NewMockSender(logger)
	stripeClient := paymentprovider.NewClient(cfg.StripeSecretKey)

	authService := authservice.NewAuthService(db, smsSender, jwtMaker, logger)
	paymentService := paymentservice.New(db, stripeClient, cfg.Stripe, logger)
	blogService := blogservice.NewBlogService(db, cacheRedis, logger)
	contactService := contactservice.NewContactService(librabbitmq.NewPublisher(ch), logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, jwtMaker, db, authService, paymentService, blogService, contactService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		rabbit: conn,
		ch:     ch,
	}, nil
}

// Run запускает HTTP-сервер и останавливает его по отмене контекста.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		if cerr := a.ch.Close(); cerr != nil {
			a.logger.Error("failed to close channel", slog.Any("err", cerr))
		}
		if cerr := a.rabbit.Close(); cerr != nil {
			a.logger.Error("failed to close connection", slog.Any("err", cerr))
		}
		a.db.DB.Close()
		return err
	}
}
