package stubserver

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/msgquota/internal/client/api"
	"github.com/dmitrijs2005/msgquota/internal/client/models"
)

func newTestBackend(t *testing.T) (*api.Client, *Server) {
	t.Helper()
	srv := New()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return api.New(ts.URL + "/api"), srv
}

func signup(t *testing.T, c *api.Client, name, email string, role models.Role) {
	t.Helper()
	err := c.Register(context.Background(), api.RegisterRequest{
		Name:     name,
		Age:      30,
		Email:    email,
		Password: "secret1",
		Role:     role,
	})
	require.NoError(t, err)
	_, err = c.Login(context.Background(), email, "secret1")
	require.NoError(t, err)
}

func TestRegisterLoginProfile(t *testing.T) {
	c, _ := newTestBackend(t)
	ctx := context.Background()

	signup(t, c, "Alice", "alice@example.com", models.RoleUser)

	role, err := c.Profile(ctx)
	require.NoError(t, err)
	require.Equal(t, models.RoleUser, role)
}

func TestRegisterRejectsInvalidProfile(t *testing.T) {
	c, _ := newTestBackend(t)

	err := c.Register(context.Background(), api.RegisterRequest{
		Name: "NoEmail", Age: 30, Password: "secret1", Role: models.RoleUser,
	})
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 400, apiErr.Status)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	c, _ := newTestBackend(t)
	ctx := context.Background()

	req := api.RegisterRequest{Name: "A", Age: 30, Email: "dup@example.com", Password: "secret1", Role: models.RoleUser}
	require.NoError(t, c.Register(ctx, req))

	err := c.Register(ctx, req)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 409, apiErr.Status)
	require.Equal(t, "email already registered", apiErr.Message)
}

func TestLoginWrongPassword(t *testing.T) {
	c, _ := newTestBackend(t)
	ctx := context.Background()

	signup(t, c, "Alice", "alice@example.com", models.RoleUser)
	c.SetToken("")

	_, err := c.Login(ctx, "alice@example.com", "wrong")
	require.ErrorIs(t, err, api.ErrUnauthorized)
}

func TestGarbageTokenForcesLogout(t *testing.T) {
	c, _ := newTestBackend(t)

	hookCalled := false
	c.OnUnauthorized(func() { hookCalled = true })
	c.SetToken("not-a-jwt")

	_, err := c.Quota(context.Background())
	require.ErrorIs(t, err, api.ErrUnauthorized)
	require.True(t, hookCalled)
	require.Empty(t, c.Token())
}

func TestSendMessageDebitsQuota(t *testing.T) {
	c, _ := newTestBackend(t)
	ctx := context.Background()

	signup(t, c, "Alice", "alice@example.com", models.RoleUser)

	q, err := c.Quota(ctx)
	require.NoError(t, err)
	require.Equal(t, 10, q.Quota)
	require.Equal(t, 0, q.UsedQuota)
	require.InDelta(t, 30, q.DaysLeft(time.Now()), 1)

	remaining, err := c.SendMessage(ctx, "hello")
	require.NoError(t, err)
	require.Equal(t, 9, remaining)

	q, err = c.Quota(ctx)
	require.NoError(t, err)
	require.Equal(t, 9, q.Quota)
	require.Equal(t, 1, q.UsedQuota)

	msgs, err := c.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	require.Equal(t, "hello", msgs[0].Content)
	require.Equal(t, models.StatusPending, msgs[0].Status)
}

func TestSendMessageQuotaExhausted(t *testing.T) {
	c, srv := newTestBackend(t)
	ctx := context.Background()

	signup(t, c, "Alice", "alice@example.com", models.RoleUser)
	acc, err := srv.Store().FindByEmail("alice@example.com")
	require.NoError(t, err)
	require.NoError(t, srv.Store().SetQuota(acc.ID, 0))

	_, err = c.SendMessage(ctx, "hello")
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 403, apiErr.Status)
	require.Equal(t, "quota exhausted", apiErr.Message)
}

func TestDeleteMessageRevertsQuota(t *testing.T) {
	c, _ := newTestBackend(t)
	ctx := context.Background()

	signup(t, c, "Alice", "alice@example.com", models.RoleUser)
	_, err := c.SendMessage(ctx, "hello")
	require.NoError(t, err)

	msgs, err := c.Messages(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 1)

	remaining, err := c.DeleteMessage(ctx, msgs[0].ID)
	require.NoError(t, err)
	require.Equal(t, 10, remaining)

	q, err := c.Quota(ctx)
	require.NoError(t, err)
	require.Equal(t, 10, q.Quota)
	require.Equal(t, 0, q.UsedQuota)
}

func TestDeleteModeratedMessageRefused(t *testing.T) {
	c, srv := newTestBackend(t)
	ctx := context.Background()

	signup(t, c, "Alice", "alice@example.com", models.RoleUser)
	_, err := c.SendMessage(ctx, "hello")
	require.NoError(t, err)

	stored := srv.Store().AllMessages()
	require.Len(t, stored, 1)
	require.NoError(t, srv.Store().Moderate(stored[0].ID, "accepted"))

	_, err = c.DeleteMessage(ctx, stored[0].ID)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 409, apiErr.Status)
}

func TestUseQuotaSharesCounterWithSend(t *testing.T) {
	c, _ := newTestBackend(t)
	ctx := context.Background()

	signup(t, c, "Alice", "alice@example.com", models.RoleUser)

	remaining, err := c.UseQuota(ctx)
	require.NoError(t, err)
	require.Equal(t, 9, remaining)

	remaining, err = c.SendMessage(ctx, "hello")
	require.NoError(t, err)
	require.Equal(t, 8, remaining)

	q, err := c.Quota(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, q.UsedQuota)
}

func TestAdminEndpointsRequireAdminRole(t *testing.T) {
	c, _ := newTestBackend(t)
	ctx := context.Background()

	signup(t, c, "Alice", "alice@example.com", models.RoleUser)

	_, err := c.Users(ctx)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 403, apiErr.Status)
}

func TestAdminSetQuotaVisibleToUser(t *testing.T) {
	c, srv := newTestBackend(t)
	ctx := context.Background()

	// Register the user first, then drive admin calls from a second client
	// against the same backend.
	signup(t, c, "Alice", "alice@example.com", models.RoleUser)
	acc, err := srv.Store().FindByEmail("alice@example.com")
	require.NoError(t, err)

	adminClient, _ := newAdminClient(t, srv)
	require.NoError(t, adminClient.SetUserQuota(ctx, acc.ID, 20))

	q, err := c.Quota(ctx)
	require.NoError(t, err)
	require.Equal(t, 20, q.Quota)
}

func TestAdminModerationVisibleToBothRoles(t *testing.T) {
	c, srv := newTestBackend(t)
	ctx := context.Background()

	signup(t, c, "Alice", "alice@example.com", models.RoleUser)
	_, err := c.SendMessage(ctx, "spam?")
	require.NoError(t, err)

	adminClient, _ := newAdminClient(t, srv)
	all, err := adminClient.AllMessages(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	require.NotNil(t, all[0].Sender)
	require.Equal(t, "alice@example.com", all[0].Sender.Email)

	require.NoError(t, adminClient.ModerateMessage(ctx, all[0].ID, models.StatusRejected))

	// Second decision on the same message is refused.
	err = adminClient.ModerateMessage(ctx, all[0].ID, models.StatusAccepted)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 409, apiErr.Status)

	mine, err := c.Messages(ctx)
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, mine[0].Status)

	all, err = adminClient.AllMessages(ctx)
	require.NoError(t, err)
	require.Equal(t, models.StatusRejected, all[0].Status)
}

func TestAdminDeleteUserRemovesMessages(t *testing.T) {
	c, srv := newTestBackend(t)
	ctx := context.Background()

	signup(t, c, "Alice", "alice@example.com", models.RoleUser)
	_, err := c.SendMessage(ctx, "bye")
	require.NoError(t, err)
	acc, err := srv.Store().FindByEmail("alice@example.com")
	require.NoError(t, err)

	adminClient, _ := newAdminClient(t, srv)
	require.NoError(t, adminClient.DeleteUser(ctx, acc.ID))

	users, err := adminClient.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1) // only the admin remains

	all, err := adminClient.AllMessages(ctx)
	require.NoError(t, err)
	require.Empty(t, all)
}

func TestAdminCannotDeleteAdmin(t *testing.T) {
	_, srv := newTestBackend(t)
	ctx := context.Background()

	adminClient, adminID := newAdminClient(t, srv)

	err := adminClient.DeleteUser(ctx, adminID)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, 403, apiErr.Status)
	require.Equal(t, "admin accounts cannot be deleted", apiErr.Message)
}

// newAdminClient registers and logs in a fresh ADMIN account on an already
// running backend, returning its client and account id.
func newAdminClient(t *testing.T, srv *Server) (*api.Client, string) {
	t.Helper()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	c := api.New(ts.URL + "/api")
	signup(t, c, "Root", "root@example.com", models.RoleAdmin)
	acc, err := srv.Store().FindByEmail("root@example.com")
	require.NoError(t, err)
	return c, acc.ID
}
