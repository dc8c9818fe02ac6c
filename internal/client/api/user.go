package api

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/msgquota/internal/client/models"
)

// Quota fetches the caller's quota record: remaining allowance, used
// counter, and expiry.
func (c *Client) Quota(ctx context.Context) (models.QuotaState, error) {
	var q models.QuotaState
	if err := c.do(ctx, http.MethodGet, "/user/quota", nil, &q); err != nil {
		return models.QuotaState{}, err
	}
	return q, nil
}

// Messages fetches the caller's own messages.
func (c *Client) Messages(ctx context.Context) ([]models.Message, error) {
	var msgs []models.Message
	if err := c.do(ctx, http.MethodGet, "/user/messages", nil, &msgs); err != nil {
		return nil, err
	}
	return msgs, nil
}

type sendMessageRequest struct {
	Content string `json:"content"`
}

type remainingQuotaResponse struct {
	RemainingQuota int `json:"remainingQuota"`
}

// SendMessage posts a new message and returns the server-authoritative
// remaining quota after the debit.
func (c *Client) SendMessage(ctx context.Context, content string) (int, error) {
	var resp remainingQuotaResponse
	if err := c.do(ctx, http.MethodPost, "/user/messages", sendMessageRequest{Content: content}, &resp); err != nil {
		return 0, err
	}
	return resp.RemainingQuota, nil
}

// DeleteMessage removes one of the caller's pending messages and returns
// the remaining quota after the credit. The pending-only rule is enforced
// server-side.
func (c *Client) DeleteMessage(ctx context.Context, id string) (int, error) {
	var resp remainingQuotaResponse
	if err := c.do(ctx, http.MethodDelete, "/user/messages/"+url.PathEscape(id), nil, &resp); err != nil {
		return 0, err
	}
	return resp.RemainingQuota, nil
}

// UseQuota consumes one quota unit via the legacy debit endpoint. It draws
// from the same counter as SendMessage.
func (c *Client) UseQuota(ctx context.Context) (int, error) {
	var resp remainingQuotaResponse
	if err := c.do(ctx, http.MethodPost, "/user/use-quota", nil, &resp); err != nil {
		return 0, err
	}
	return resp.RemainingQuota, nil
}
