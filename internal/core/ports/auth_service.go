package ports

import (
	"context"

	"github.com/aro-bazzar/storefront-api/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, email, password, displayName, role string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
}
