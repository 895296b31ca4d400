package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/magabrotheeeer/blog-publisher/internal/models"
)

func TestAllow_ReadPost(t *testing.T) {
	authorUID := "author-1"
	premium := &models.Post{ID: 1, IsPremium: true, AuthorUID: &authorUID}
	regular := &models.Post{ID: 2, IsPremium: false}

	subscriber := &models.User{UID: "sub-1", Role: "user", IsSubscribed: true}
	visitor := &models.User{UID: "vis-1", Role: "user"}
	admin := &models.User{UID: "adm-1", Role: RoleAdmin}
	author := &models.User{UID: "author-1", Role: "user"}

	tests := []struct {
		name    string
		actor   *models.User
		post    *models.Post
		wantErr error
	}{
		{"anonymous reads regular post", nil, regular, nil},
		{"anonymous reads premium post", nil, premium, ErrUnauthenticated},
		{"visitor reads premium post", visitor, premium, ErrForbidden},
		{"subscriber reads premium post", subscriber, premium, nil},
		{"admin reads premium post", admin, premium, nil},
		{"author reads own premium post", author, premium, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Allow(tt.actor, ActionReadPost, tt.post)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestAllow_UpdatePost(t *testing.T) {
	authorUID := "author-1"
	post := &models.Post{ID: 1, AuthorUID: &authorUID}

	assert.ErrorIs(t, Allow(nil, ActionUpdatePost, post), ErrUnauthenticated)
	assert.ErrorIs(t, Allow(&models.User{UID: "other", Role: "user"}, ActionUpdatePost, post), ErrForbidden)
	assert.NoError(t, Allow(&models.User{UID: "author-1", Role: "user"}, ActionUpdatePost, post))
	assert.NoError(t, Allow(&models.User{UID: "adm", Role: RoleAdmin}, ActionDeletePost, post))
}

func TestAllow_CreateCategory(t *testing.T) {
	assert.ErrorIs(t, Allow(nil, ActionCreateCategory, nil), ErrUnauthenticated)
	assert.ErrorIs(t, Allow(&models.User{Role: "user"}, ActionCreateCategory, nil), ErrForbidden)
	assert.NoError(t, Allow(&models.User{Role: RoleAdmin}, ActionCreateCategory, nil))
}

func TestAllow_UnknownAction(t *testing.T) {
	err := Allow(&models.User{Role: RoleAdmin}, "post.fly", &models.Post{})
	assert.Error(t, err)
}

func TestAllow_WrongResourceType(t *testing.T) {
	err := Allow(&models.User{Role: RoleAdmin}, ActionReadPost, "not a post")
	assert.Error(t, err)
}
