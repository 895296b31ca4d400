// Package policy содержит единую точку проверки прав доступа.
//
// Все операции, которым нужна авторизация, вызывают Allow с действующим
// пользователем, действием и ресурсом. Правила не размазаны по обработчикам.
package policy

import (
	"errors"
	"fmt"

	"github.com/magabrotheeeer/blog-publisher/internal/models"
)

// Ошибки проверки прав доступа.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access denied")
)

// RoleAdmin роль администратора, которой разрешены все действия.
const RoleAdmin = "admin"

// Поддерживаемые действия.
const (
	ActionReadPost       = "post.read"
	ActionUpdatePost     = "post.update"
	ActionDeletePost     = "post.delete"
	ActionCreateCategory = "category.create"
)

// Allow проверяет, разрешено ли пользователю actor действие action над ресурсом.
//
// Для незащищенных ресурсов (непремиальные статьи) actor может быть nil.
// Возвращает ErrUnauthenticated, если действие требует входа,
// ErrForbidden — если прав недостаточно.
func Allow(actor *models.User, action string, resource any) error {
	const op = "policy.Allow"

	switch action {
	case ActionReadPost:
		post, ok := resource.(*models.Post)
		if !ok {
			return fmt.Errorf("%s: unexpected resource type %T", op, resource)
		}
		if !post.IsPremium {
			return nil
		}
		if actor == nil {
			return ErrUnauthenticated
		}
		if actor.IsSubscribed || actor.Role == RoleAdmin || isAuthor(actor, post) {
			return nil
		}
		return ErrForbidden

	case ActionUpdatePost, ActionDeletePost:
		post, ok := resource.(*models.Post)
		if !ok {
			return fmt.Errorf("%s: unexpected resource type %T", op, resource)
		}
		if actor == nil {
			return ErrUnauthenticated
		}
		if actor.Role == RoleAdmin || isAuthor(actor, post) {
			return nil
		}
		return ErrForbidden

	case ActionCreateCategory:
		if actor == nil {
			return ErrUnauthenticated
		}
		if actor.Role == RoleAdmin {
			return nil
		}
		return ErrForbidden

	default:
		return fmt.Errorf("%s: unknown action %q", op, action)
	}
}

func isAuthor(actor *models.User, post *models.Post) bool {
	return post.AuthorUID != nil && *post.AuthorUID == actor.UID
}
