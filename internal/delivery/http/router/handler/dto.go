package handler

import (
	"time"

	"gatekeeper/internal/domain/entity"

	"github.com/google/uuid"
)

// --- Requests ---

// Presence of username and password is checked by the use cases, so that
// missing fields are reported the same way for every caller.
type credentialsRequest struct {
	Username string `json:"username" validate:"max=255"`
	Password string `json:"password" validate:"max=1024"`
}

type listUsersRequest struct {
	Skip  int `query:"skip" validate:"gte=0"`
	Limit int `query:"limit" validate:"gte=0,lte=500"`
}

type createUserRequest struct {
	Username string `json:"username" validate:"max=255"`
	Password string `json:"password" validate:"max=1024"`
	IsAdmin  bool   `json:"isAdmin"`
}

type updateUserRequest struct {
	Username *string `json:"username" validate:"omitempty,max=255"`
	Password *string `json:"password" validate:"omitempty,max=1024"`
	IsAdmin  *bool   `json:"isAdmin"`
}

// --- Responses ---

type authResponse struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	ID       uuid.UUID `json:"id"`
}

type identityResponse struct {
	ID       uuid.UUID `json:"id"`
	Username string    `json:"username"`
	IsAdmin  bool      `json:"isAdmin"`
}

type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

type randomNumberResponse struct {
	User identityResponse `json:"user"`
	Num  float64          `json:"num"`
}

func newUserResponse(credential *entity.Credential) userResponse {
	return userResponse{
		ID:        credential.ID,
		Username:  credential.Username,
		IsAdmin:   credential.IsAdmin,
		CreatedAt: credential.CreatedAt,
	}
}

func newUserResponses(credentials []*entity.Credential) []userResponse {
	out := make([]userResponse, 0, len(credentials))
	for _, credential := range credentials {
		out = append(out, newUserResponse(credential))
	}

	return out
}

func newIdentityResponse(identity *entity.Identity) identityResponse {
	return identityResponse{
		ID:       identity.UserID,
		Username: identity.Username,
		IsAdmin:  identity.IsAdmin,
	}
}
