package stubserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/dmitrijs2005/msgquota/internal/common"
	"github.com/dmitrijs2005/msgquota/internal/logging"
)

const tokenTTL = 24 * time.Hour

// Server wraps the echo engine, the in-memory store, and the signing key.
type Server struct {
	echo     *echo.Echo
	store    *Store
	secret   []byte
	validate *validator.Validate
	log      logging.Logger
}

// Option customizes a Server.
type Option func(*Server)

// WithSecret replaces the JWT signing key.
func WithSecret(secret string) Option {
	return func(s *Server) { s.secret = []byte(secret) }
}

// WithLogger installs a request logger.
func WithLogger(log logging.Logger) Option {
	return func(s *Server) { s.log = log }
}

// New builds a fully-routed server.
func New(opts ...Option) *Server {
	s := &Server{
		echo:     echo.New(),
		store:    NewStore(),
		secret:   []byte("msgquota-dev-secret"),
		validate: validator.New(),
		log:      logging.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	s.echo.HideBanner = true
	s.echo.Use(middleware.Recover())
	s.echo.Use(s.requestLog)

	api := s.echo.Group("/api")

	auth := api.Group("/auth")
	auth.POST("/register", s.handleRegister)
	auth.POST("/login", s.handleLogin)
	auth.GET("/profile", s.handleProfile, s.requireToken)

	user := api.Group("/user", s.requireToken)
	user.GET("/quota", s.handleQuota)
	user.GET("/messages", s.handleMessages)
	user.POST("/messages", s.handleSendMessage)
	user.DELETE("/messages/:id", s.handleDeleteMessage)
	user.POST("/use-quota", s.handleUseQuota)

	admin := api.Group("/admin", s.requireToken, s.requireAdmin)
	admin.GET("/users", s.handleListUsers)
	admin.GET("/messages", s.handleAllMessages)
	admin.PUT("/users/:id/quota", s.handleSetQuota)
	admin.DELETE("/users/:id", s.handleDeleteUser)
	admin.PUT("/messages/:id/status", s.handleModerate)

	return s
}

// Handler exposes the routed engine for httptest or custom listeners.
func (s *Server) Handler() http.Handler {
	return s.echo
}

// Start serves on addr until the listener fails.
func (s *Server) Start(addr string) error {
	return s.echo.Start(addr)
}

// Store exposes the backing state for test seeding.
func (s *Server) Store() *Store {
	return s.store
}

func (s *Server) requestLog(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		start := time.Now()
		err := next(c)
		s.log.Debug(c.Request().Context(), "request",
			"method", c.Request().Method,
			"path", c.Request().URL.Path,
			"status", c.Response().Status,
			"duration", time.Since(start).String(),
			"request_id", c.Request().Header.Get(common.RequestIDHeaderName),
		)
		return err
	}
}

type tokenClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

func (s *Server) issueToken(acc Account) (string, error) {
	claims := tokenClaims{
		Role: acc.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   acc.ID,
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// requireToken authenticates the bearer credential and stashes a copy of
// the account on the request context. Missing, malformed, expired, or
// orphaned credentials all answer 401 so the client performs its forced
// logout.
func (s *Server) requireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(common.AuthHeaderName)
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "missing credential")
		}

		claims := &tokenClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return s.secret, nil
		})
		if err != nil || !token.Valid {
			return echo.NewHTTPError(http.StatusUnauthorized, common.ErrTokenExpired.Error())
		}

		acc, err := s.store.Get(claims.Subject)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unknown account")
		}

		c.Set("account", acc)
		return next(c)
	}
}

func (s *Server) requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if currentAccount(c).Role != common.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, "admin role required")
		}
		return next(c)
	}
}

func currentAccount(c echo.Context) Account {
	return c.Get("account").(Account)
}
