package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/msgquota/internal/client/models"
)

// Users lists every account (admin only).
func (c *Client) Users(ctx context.Context) ([]models.UserRecord, error) {
	var users []models.UserRecord
	if err := c.do(ctx, http.MethodGet, "/admin/users", nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// AllMessages lists every message with sender details (admin only).
func (c *Client) AllMessages(ctx context.Context) ([]models.Message, error) {
	var msgs []models.Message
	if err := c.do(ctx, http.MethodGet, "/admin/messages", nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

type setQuotaRequest struct {
	Quota int `json:"quota"`
}

// SetUserQuota pushes a new quota ceiling for the target user (admin only).
func (c *Client) SetUserQuota(ctx context.Context, userID string, quota int) error {
	path := "/admin/users/" + url.PathEscape(userID) + "/quota"
	return c.do(ctx, http.MethodPut, path, setQuotaRequest{Quota: quota}, nil)
}

// DeleteUser removes an account (admin only). The backend refuses ADMIN
// targets; the client additionally never offers them for deletion.
func (c *Client) DeleteUser(ctx context.Context, userID string) error {
	return c.do(ctx, http.MethodDelete, "/admin/users/"+url.PathEscape(userID), nil, nil)
}

type moderateRequest struct {
	Status models.MessageStatus `json:"status"`
}

// ModerateMessage records the moderation decision for a pending message
// (admin only).
func (c *Client) ModerateMessage(ctx context.Context, messageID string, decision models.MessageStatus) error {
	path := "/admin/messages/" + url.PathEscape(messageID) + "/status"
	return c.do(ctx, http.MethodPut, path, moderateRequest{Status: decision}, nil)
}
