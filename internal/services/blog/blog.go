// Package services содержит бизнес-логику работы со статьями блога и кешированием.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/magabrotheeeer/blog-publisher/internal/lib/policy"
	"github.com/magabrotheeeer/blog-publisher/internal/lib/sl"
	"github.com/magabrotheeeer/blog-publisher/internal/models"
)

// PostRepository определяет методы для работы со статьями в хранилище.
type PostRepository interface {
	// CreatePost добавляет новую статью и возвращает её ID.
	CreatePost(ctx context.Context, post models.Post) (int, error)
	// ReadPost возвращает статью по ID.
	ReadPost(ctx context.Context, id int) (*models.Post, error)
	// IncrementPostViews увеличивает счетчик просмотров статьи.
	IncrementPostViews(ctx context.Context, id int) error
	// UpdatePost обновляет данные статьи по ID.
	UpdatePost(ctx context.Context, post models.Post, id int) (int, error)
	// RemovePost удаляет статью по ID и возвращает количество удалённых записей.
	RemovePost(ctx context.Context, id int) (int, error)
	// ListPosts возвращает список опубликованных статей с пагинацией.
	ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error)
	// ListCategories возвращает список категорий.
	ListCategories(ctx context.Context) ([]*models.Category, error)
	// CreateCategory добавляет новую категорию и возвращает её ID.
	CreateCategory(ctx context.Context, name string) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// BlogService реализует бизнес-логику работы со статьями, включая кеширование
// и проверку прав доступа.
type BlogService struct {
	repo  PostRepository
	cache Cache
	log   *slog.Logger
}

// NewBlogService создает новый экземпляр BlogService.
func NewBlogService(repo PostRepository, cache Cache, log *slog.Logger) *BlogService {
	return &BlogService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новую статью от имени автора, кеширует её и возвращает ID.
func (s *BlogService) Create(ctx context.Context, authorUID string, req models.DummyPost) (int, error) {
	post := models.Post{
		Title:       req.Title,
		Content:     req.Content,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
		AuthorUID:   &authorUID,
		IsPublished: true,
		IsPremium:   req.IsPremium,
	}

	id, err := s.repo.CreatePost(ctx, post)
	if err != nil {
		return 0, err
	}

	s.log.Info("created new post", slog.Int("id", id))

	cacheKey := fmt.Sprintf("post:%d", id)
	post.ID = id
	if err := s.cache.Set(cacheKey, post, time.Hour); err != nil {
		s.log.Warn("failed to cache post", slog.String("key", cacheKey), sl.Err(err))
	}

	return id, nil
}

// Read возвращает статью по ID, используя кеш или репозиторий.
//
// Премиальные статьи доступны только подписанным пользователям, автору
// и администратору. Каждое успешное чтение увеличивает счетчик просмотров.
func (s *BlogService) Read(ctx context.Context, actor *models.User, id int) (*models.Post, error) {
	var result *models.Post
	cacheKey := fmt.Sprintf("post:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if !found {
		result, err = s.repo.ReadPost(ctx, id)
		if err != nil {
			return nil, err
		}
		if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
			s.log.Warn("failed to add to cache", slog.String("key", cacheKey), sl.Err(err))
		}
	}

	if err := policy.Allow(actor, policy.ActionReadPost, result); err != nil {
		return nil, err
	}

	if err := s.repo.IncrementPostViews(ctx, id); err != nil {
		s.log.Warn("failed to increment views", slog.Int("id", id), sl.Err(err))
	}
	return result, nil
}

// Update обновляет статью и обновляет кеш.
//
// Изменять статью могут только её автор и администратор.
func (s *BlogService) Update(ctx context.Context, actor *models.User, id int, req models.DummyPost) (int, error) {
	existing, err := s.repo.ReadPost(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := policy.Allow(actor, policy.ActionUpdatePost, existing); err != nil {
		return 0, err
	}

	post := models.Post{
		Title:      req.Title,
		Content:    req.Content,
		Image:      req.Image,
		CategoryID: req.CategoryID,
		IsPremium:  req.IsPremium,
	}
	res, err := s.repo.UpdatePost(ctx, post, id)
	if err != nil {
		return 0, err
	}
	s.log.Info("updated post in storage", slog.Int("id", id))

	cacheKey := fmt.Sprintf("post:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), sl.Err(err))
	}
	return res, nil
}

// Remove удаляет статью по ID и инвалидирует кеш.
//
// Удалять статью могут только её автор и администратор.
func (s *BlogService) Remove(ctx context.Context, actor *models.User, id int) (int, error) {
	existing, err := s.repo.ReadPost(ctx, id)
	if err != nil {
		return 0, err
	}
	if err := policy.Allow(actor, policy.ActionDeletePost, existing); err != nil {
		return 0, err
	}

	cacheKey := fmt.Sprintf("post:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), sl.Err(err))
	}

	count, err := s.repo.RemovePost(ctx, id)
	if err != nil {
		return 0, err
	}
	return count, nil
}

// List возвращает список опубликованных статей с пагинацией.
func (s *BlogService) List(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	return s.repo.ListPosts(ctx, limit, offset)
}

// ListCategories возвращает список категорий.
func (s *BlogService) ListCategories(ctx context.Context) ([]*models.Category, error) {
	return s.repo.ListCategories(ctx)
}

// CreateCategory добавляет новую категорию. Доступно только администратору.
func (s *BlogService) CreateCategory(ctx context.Context, actor *models.User, name string) (int, error) {
	if err := policy.Allow(actor, policy.ActionCreateCategory, nil); err != nil {
		return 0, err
	}
	return s.repo.CreateCategory(ctx, name)
}
