package api

import (
	"context"

	"inclusive_jobs/internal/domain/user"
)

// UserService работает с /users.
type UserService struct {
	resource[user.User]
}

func (s *UserService) List(ctx context.Context, page PageRequest) (*Page[user.User], error) {
	return s.list(ctx, s.path, page.params())
}
