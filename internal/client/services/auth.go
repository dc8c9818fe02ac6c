package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"

	"github.com/dmitrijs2005/msgquota/internal/client/api"
	"github.com/dmitrijs2005/msgquota/internal/client/models"
	"github.com/dmitrijs2005/msgquota/internal/logging"
)

// ErrNotLoggedIn is returned by operations that require a credential.
var ErrNotLoggedIn = errors.New("not logged in")

// SessionStore is the durable home of the token/role pair.
type SessionStore interface {
	Load() models.Session
	Save(sess models.Session) error
	Clear() error
}

// Profile is the registration input. Validation runs locally before any
// network call.
type Profile struct {
	Name     string      `validate:"required"`
	Age      int         `validate:"required,gt=0"`
	Email    string      `validate:"required,email"`
	Password string      `validate:"required"`
	Role     models.Role `validate:"required,oneof=USER ADMIN"`
}

// AuthService owns the session: login, the signup chain, logout, and the
// uniform forced-logout reaction to credential expiry.
type AuthService struct {
	api      api.API
	store    SessionStore
	log      logging.Logger
	validate *validator.Validate

	mu      sync.RWMutex
	session models.Session
}

// NewAuthService restores any persisted session, installs its token on the
// API client, and registers the forced-logout hook.
func NewAuthService(a api.API, store SessionStore, log logging.Logger) *AuthService {
	s := &AuthService{
		api:      a,
		store:    store,
		log:      log,
		validate: validator.New(),
		session:  store.Load(),
	}
	if s.session.LoggedIn() {
		a.SetToken(s.session.Token)
	}
	a.OnUnauthorized(s.forcedLogout)
	return s
}

// Session returns the current in-memory session.
func (s *AuthService) Session() models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// Login authenticates and resolves the role for the credential, then
// persists both. On failure any prior session state is left unmodified.
// No retry.
func (s *AuthService) Login(ctx context.Context, email, password string) error {
	token, err := s.api.Login(ctx, email, password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}

	role, err := s.api.Profile(ctx)
	if err != nil {
		// Login already installed the fresh token on the API client; drop
		// it so the transport matches the still-logged-out session.
		s.api.SetToken("")
		return fmt.Errorf("resolving role: %w", err)
	}

	return s.install(ctx, models.Session{Token: token, Role: role})
}

// Signup registers a new account and immediately logs in with the same
// credentials: register → login → profile, three sequential calls. Any
// single failure aborts the chain; a partially created account is the
// server's responsibility to deal with.
func (s *AuthService) Signup(ctx context.Context, p Profile) error {
	if err := s.validate.Struct(p); err != nil {
		return fmt.Errorf("invalid profile: %w", err)
	}

	req := api.RegisterRequest{
		Name:     p.Name,
		Age:      p.Age,
		Email:    p.Email,
		Password: p.Password,
		Role:     p.Role,
	}
	if err := s.api.Register(ctx, req); err != nil {
		return fmt.Errorf("register: %w", err)
	}

	return s.Login(ctx, p.Email, p.Password)
}

func (s *AuthService) install(ctx context.Context, sess models.Session) error {
	if err := s.store.Save(sess); err != nil {
		s.log.Warn(ctx, "session not persisted", "error", err)
	}
	s.mu.Lock()
	s.session = sess
	s.mu.Unlock()
	return nil
}

// Logout clears durable and in-memory session state unconditionally.
// No server round trip.
func (s *AuthService) Logout(ctx context.Context) {
	s.api.SetToken("")
	s.clear(ctx)
}

// forcedLogout is the uniform reaction to any response signaling the
// credential is no longer valid. The API client has already dropped its
// token when this runs.
func (s *AuthService) forcedLogout() {
	ctx := context.Background()
	s.log.Warn(ctx, "credential rejected by backend, logging out")
	s.clear(ctx)
}

func (s *AuthService) clear(ctx context.Context) {
	if err := s.store.Clear(); err != nil {
		s.log.Warn(ctx, "clearing persisted session", "error", err)
	}
	s.mu.Lock()
	s.session = models.Session{}
	s.mu.Unlock()
}

// TokenExpiry reports when the current credential expires, when the token
// is a JWT carrying an exp claim. The token is parsed without signature
// verification; the client has no key and only uses this for display.
func (s *AuthService) TokenExpiry() (time.Time, bool) {
	sess := s.Session()
	if !sess.LoggedIn() {
		return time.Time{}, false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(sess.Token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}
