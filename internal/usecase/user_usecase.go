package usecase

import (
	"context"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// ListUsersInput pages through credentials, newest first.
type ListUsersInput struct {
	Skip  int `query:"skip"`
	Limit int `query:"limit"`
}

// CreateUserInput is used by administrators to create credentials directly.
type CreateUserInput struct {
	Username string `json:"username"`
	Password string `json:"password"`
	IsAdmin  bool   `json:"isAdmin"`
}

// UpdateUserInput changes a credential. Nil fields are left untouched.
type UpdateUserInput struct {
	Username *string `json:"username"`
	Password *string `json:"password"`
	IsAdmin  *bool   `json:"isAdmin"`
}

// UserUsecase defines administrative credential management.
type UserUsecase interface {
	List(ctx context.Context, input *ListUsersInput) ([]*entity.Credential, error)
	Get(ctx context.Context, userID uuid.UUID) (*entity.Credential, error)
	Create(ctx context.Context, input *CreateUserInput) (*entity.Credential, error)
	Update(ctx context.Context, userID uuid.UUID, input *UpdateUserInput) (*entity.Credential, error)
	Delete(ctx context.Context, userID uuid.UUID) error
}
