package services

import (
	"context"

	"github.com/dmitrijs2005/msgquota/internal/client/api"
	"github.com/dmitrijs2005/msgquota/internal/client/models"
)

// fakeAPI implements api.API for view-model tests. Each method returns the
// configured value and records the call.
type fakeAPI struct {
	calls []string

	RegisterErr error
	LoginToken  string
	LoginErr    error
	ProfileRole models.Role
	ProfileErr  error

	QuotaRet    models.QuotaState
	QuotaErr    error
	MessagesRet []models.Message
	MessagesErr error

	SendRemaining   int
	SendErr         error
	DeleteRemaining int
	DeleteErr       error
	UseRemaining    int
	UseErr          error

	UsersRet       []models.UserRecord
	UsersErr       error
	AllMessagesRet []models.Message
	AllMessagesErr error
	SetQuotaErr    error
	DeleteUserErr  error
	ModerateErr    error

	token          string
	onUnauthorized func()

	LastRegister api.RegisterRequest
	LastSend     string
	LastDeleteID string
	LastQuotaID  string
	LastQuotaVal int
	LastModID    string
	LastDecision models.MessageStatus
}

func (f *fakeAPI) record(name string) { f.calls = append(f.calls, name) }

func (f *fakeAPI) Register(ctx context.Context, req api.RegisterRequest) error {
	f.record("register")
	f.LastRegister = req
	return f.RegisterErr
}

func (f *fakeAPI) Login(ctx context.Context, email, password string) (string, error) {
	f.record("login")
	if f.LoginErr != nil {
		return "", f.LoginErr
	}
	f.token = f.LoginToken
	return f.LoginToken, nil
}

func (f *fakeAPI) Profile(ctx context.Context) (models.Role, error) {
	f.record("profile")
	return f.ProfileRole, f.ProfileErr
}

func (f *fakeAPI) Quota(ctx context.Context) (models.QuotaState, error) {
	f.record("quota")
	return f.QuotaRet, f.QuotaErr
}

func (f *fakeAPI) Messages(ctx context.Context) ([]models.Message, error) {
	f.record("messages")
	return f.MessagesRet, f.MessagesErr
}

func (f *fakeAPI) SendMessage(ctx context.Context, content string) (int, error) {
	f.record("send")
	f.LastSend = content
	return f.SendRemaining, f.SendErr
}

func (f *fakeAPI) DeleteMessage(ctx context.Context, id string) (int, error) {
	f.record("delete")
	f.LastDeleteID = id
	return f.DeleteRemaining, f.DeleteErr
}

func (f *fakeAPI) UseQuota(ctx context.Context) (int, error) {
	f.record("use-quota")
	return f.UseRemaining, f.UseErr
}

func (f *fakeAPI) Users(ctx context.Context) ([]models.UserRecord, error) {
	f.record("users")
	return f.UsersRet, f.UsersErr
}

func (f *fakeAPI) AllMessages(ctx context.Context) ([]models.Message, error) {
	f.record("all-messages")
	return f.AllMessagesRet, f.AllMessagesErr
}

func (f *fakeAPI) SetUserQuota(ctx context.Context, userID string, quota int) error {
	f.record("set-quota")
	f.LastQuotaID = userID
	f.LastQuotaVal = quota
	return f.SetQuotaErr
}

func (f *fakeAPI) DeleteUser(ctx context.Context, userID string) error {
	f.record("delete-user")
	f.LastDeleteID = userID
	return f.DeleteUserErr
}

func (f *fakeAPI) ModerateMessage(ctx context.Context, messageID string, decision models.MessageStatus) error {
	f.record("moderate")
	f.LastModID = messageID
	f.LastDecision = decision
	return f.ModerateErr
}

func (f *fakeAPI) SetToken(token string)    { f.token = token }
func (f *fakeAPI) OnUnauthorized(fn func()) { f.onUnauthorized = fn }

// fakeStore implements SessionStore in memory.
type fakeStore struct {
	sess     models.Session
	SaveErr  error
	ClearErr error
	saves    int
	clears   int
}

func (f *fakeStore) Load() models.Session { return f.sess }

func (f *fakeStore) Save(sess models.Session) error {
	f.saves++
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.sess = sess
	return nil
}

func (f *fakeStore) Clear() error {
	f.clears++
	if f.ClearErr != nil {
		return f.ClearErr
	}
	f.sess = models.Session{}
	return nil
}
