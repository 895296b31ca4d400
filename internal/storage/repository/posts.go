package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/magabrotheeeer/blog-publisher/internal/models"
)

const postColumns = `id, title, content, image, category_id, author_uid,
			      is_published, is_premium, views_count, created_at, updated_at`

// CreatePost сохраняет новую статью и возвращает её ID.
func (s *Storage) CreatePost(ctx context.Context, post models.Post) (int, error) {
	const op = "storage.CreatePost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO posts (title, content, image, category_id, author_uid, is_published, is_premium)
			  VALUES ($1, $2, $3, $4, $5, $6, $7)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		post.Title, post.Content, post.Image, post.CategoryID, post.AuthorUID,
		post.IsPublished, post.IsPremium).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadPost возвращает статью по ID.
func (s *Storage) ReadPost(ctx context.Context, id int) (*models.Post, error) {
	const op = "storage.ReadPost"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + postColumns + `
			  FROM posts
			  WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)
	return scanPost(row, op)
}

// IncrementPostViews увеличивает счетчик просмотров статьи.
func (s *Storage) IncrementPostViews(ctx context.Context, id int) error {
	const op = "storage.IncrementPostViews"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE posts
			  SET views_count = views_count + 1
			  WHERE id = $1`
	if _, err := s.DB.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// UpdatePost обновляет данные статьи по ID и возвращает количество обновленных записей.
func (s *Storage) UpdatePost(ctx context.Context, post models.Post, id int) (int, error) {
	const op = "storage.UpdatePost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE posts
			  SET title = $1,
			      content = $2,
			      image = $3,
			      category_id = $4,
			      is_premium = $5,
			      updated_at = NOW()
			  WHERE id = $6`
	res, err := s.DB.ExecContext(ctx, query,
		post.Title, post.Content, post.Image, post.CategoryID, post.IsPremium, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}

// RemovePost удаляет статью по ID и возвращает количество удалённых записей.
func (s *Storage) RemovePost(ctx context.Context, id int) (int, error) {
	const op = "storage.RemovePost"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	res, err := s.DB.ExecContext(ctx, `DELETE FROM posts WHERE id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	count, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(count), nil
}

// ListPosts возвращает список опубликованных статей с пагинацией, новые первыми.
func (s *Storage) ListPosts(ctx context.Context, limit, offset int) ([]*models.Post, error) {
	const op = "storage.ListPosts"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + postColumns + `
			  FROM posts
			  WHERE is_published = TRUE
			  ORDER BY created_at DESC, id DESC
			  LIMIT $1 OFFSET $2`
	rows, err := s.DB.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Post
	for rows.Next() {
		var p models.Post
		var image sql.NullString
		var categoryID sql.NullInt64
		var authorUID sql.NullString
		if err = rows.Scan(&p.ID, &p.Title, &p.Content, &image, &categoryID, &authorUID,
			&p.IsPublished, &p.IsPremium, &p.ViewsCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		fillPostNullable(&p, image, categoryID, authorUID)
		result = append(result, &p)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListCategories возвращает все категории статей.
func (s *Storage) ListCategories(ctx context.Context) ([]*models.Category, error) {
	const op = "storage.ListCategories"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT id, name FROM categories ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Category
	for rows.Next() {
		var c models.Category
		if err = rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CreateCategory сохраняет новую категорию и возвращает её ID.
func (s *Storage) CreateCategory(ctx context.Context, name string) (int, error) {
	const op = "storage.CreateCategory"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newID int
	err := s.DB.QueryRowContext(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`, name).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

func scanPost(row *sql.Row, op string) (*models.Post, error) {
	p := &models.Post{}
	var image sql.NullString
	var categoryID sql.NullInt64
	var authorUID sql.NullString
	if err := row.Scan(&p.ID, &p.Title, &p.Content, &image, &categoryID, &authorUID,
		&p.IsPublished, &p.IsPremium, &p.ViewsCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%s: %w", op, ErrPostNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	fillPostNullable(p, image, categoryID, authorUID)
	return p, nil
}

func fillPostNullable(p *models.Post, image sql.NullString, categoryID sql.NullInt64, authorUID sql.NullString) {
	if image.Valid {
		p.Image = &image.String
	}
	if categoryID.Valid {
		id := int(categoryID.Int64)
		p.CategoryID = &id
	}
	if authorUID.Valid {
		p.AuthorUID = &authorUID.String
	}
}
