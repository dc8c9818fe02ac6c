package api

import (
	"context"

	"github.com/dmitrijs2005/msgquota/internal/client/models"
)

// API is the full backend surface the view-model depends on. *Client is
// the production implementation; tests substitute fakes.
type API interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, email, password string) (string, error)
	Profile(ctx context.Context) (models.Role, error)

	Quota(ctx context.Context) (models.QuotaState, error)
	Messages(ctx context.Context) ([]models.Message, error)
	SendMessage(ctx context.Context, content string) (int, error)
	DeleteMessage(ctx context.Context, id string) (int, error)
	UseQuota(ctx context.Context) (int, error)

	Users(ctx context.Context) ([]models.UserRecord, error)
	AllMessages(ctx context.Context) ([]models.Message, error)
	SetUserQuota(ctx context.Context, userID string, quota int) error
	DeleteUser(ctx context.Context, userID string) error
	ModerateMessage(ctx context.Context, messageID string, decision models.MessageStatus) error

	SetToken(token string)
	OnUnauthorized(fn func())
}

var _ API = (*Client)(nil)
