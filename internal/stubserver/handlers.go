package stubserver

import (
	"errors"
	"net/http"
	"sort"
	"time"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

type registerRequest struct {
	Name     string `json:"name" validate:"required"`
	Age      int    `json:"age" validate:"gt=0"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=4"`
	Role     string `json:"role" validate:"required,oneof=USER ADMIN"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type sendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type setQuotaRequest struct {
	Quota int `json:"quota" validate:"gte=0"`
}

type moderateRequest struct {
	Status string `json:"status"`
}

type quotaResponse struct {
	Quota     int       `json:"quota"`
	UsedQuota int       `json:"usedQuota"`
	Expiry    time.Time `json:"expiry"`
}

type senderResponse struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type messageResponse struct {
	ID        string          `json:"_id"`
	Content   string          `json:"content"`
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Sender    *senderResponse `json:"sender,omitempty"`
}

type userResponse struct {
	ID        string `json:"_id"`
	Name      string `json:"name"`
	Age       int    `json:"age"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Quota     int    `json:"quota"`
	UsedQuota int    `json:"usedQuota"`
}

type remainingQuotaResponse struct {
	RemainingQuota int `json:"remainingQuota"`
}

func errJSON(c echo.Context, status int, msg string) error {
	return c.JSON(status, map[string]string{"message": msg})
}

func (s *Server) handleRegister(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid payload")
	}
	if err := s.validate.Struct(req); err != nil {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "hashing password")
	}

	acc, err := s.store.CreateAccount(req.Name, req.Age, req.Email, string(hash), req.Role)
	if err != nil {
		return errJSON(c, http.StatusConflict, err.Error())
	}
	return c.JSON(http.StatusCreated, map[string]string{"_id": acc.ID})
}

func (s *Server) handleLogin(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid payload")
	}

	acc, err := s.store.FindByEmail(req.Email)
	if err != nil {
		return errJSON(c, http.StatusUnauthorized, ErrUnknownAccount.Error())
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(req.Password)); err != nil {
		return errJSON(c, http.StatusUnauthorized, ErrUnknownAccount.Error())
	}

	token, err := s.issueToken(acc)
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, "signing token")
	}
	return c.JSON(http.StatusOK, map[string]string{"token": token})
}

func (s *Server) handleProfile(c echo.Context) error {
	acc := currentAccount(c)
	return c.JSON(http.StatusOK, map[string]string{"role": acc.Role})
}

func (s *Server) handleQuota(c echo.Context) error {
	acc := currentAccount(c)
	return c.JSON(http.StatusOK, quotaResponse{
		Quota:     acc.Quota,
		UsedQuota: acc.UsedQuota,
		Expiry:    acc.Expiry,
	})
}

func (s *Server) handleMessages(c echo.Context) error {
	acc := currentAccount(c)
	msgs := s.store.MessagesFor(acc.ID)
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageResponse{
			ID:        m.ID,
			Content:   m.Content,
			Status:    m.Status,
			Timestamp: m.Timestamp,
		})
	}
	sortByTimestamp(out)
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleSendMessage(c echo.Context) error {
	acc := currentAccount(c)

	var req sendMessageRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid payload")
	}
	if err := s.validate.Struct(req); err != nil {
		return errJSON(c, http.StatusBadRequest, "content is required")
	}

	_, remaining, err := s.store.AddMessage(acc.ID, req.Content)
	if errors.Is(err, ErrQuotaExhausted) {
		return errJSON(c, http.StatusForbidden, err.Error())
	}
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, remainingQuotaResponse{RemainingQuota: remaining})
}

func (s *Server) handleDeleteMessage(c echo.Context) error {
	acc := currentAccount(c)

	remaining, err := s.store.DeleteMessage(acc.ID, c.Param("id"))
	if errors.Is(err, ErrNotFound) {
		return errJSON(c, http.StatusNotFound, err.Error())
	}
	if errors.Is(err, ErrNotPending) {
		return errJSON(c, http.StatusConflict, err.Error())
	}
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, remainingQuotaResponse{RemainingQuota: remaining})
}

func (s *Server) handleUseQuota(c echo.Context) error {
	acc := currentAccount(c)

	remaining, err := s.store.UseQuota(acc.ID)
	if errors.Is(err, ErrQuotaExhausted) {
		return errJSON(c, http.StatusForbidden, err.Error())
	}
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, remainingQuotaResponse{RemainingQuota: remaining})
}

func (s *Server) handleListUsers(c echo.Context) error {
	accs := s.store.Accounts()
	out := make([]userResponse, 0, len(accs))
	for _, a := range accs {
		out = append(out, userResponse{
			ID:        a.ID,
			Name:      a.Name,
			Age:       a.Age,
			Email:     a.Email,
			Role:      a.Role,
			Quota:     a.Quota,
			UsedQuota: a.UsedQuota,
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Email < out[j].Email })
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleAllMessages(c echo.Context) error {
	msgs := s.store.AllMessages()
	out := make([]messageResponse, 0, len(msgs))
	for _, m := range msgs {
		resp := messageResponse{
			ID:        m.ID,
			Content:   m.Content,
			Status:    m.Status,
			Timestamp: m.Timestamp,
		}
		if owner, err := s.store.Get(m.OwnerID); err == nil {
			resp.Sender = &senderResponse{Name: owner.Name, Email: owner.Email}
		}
		out = append(out, resp)
	}
	sortByTimestamp(out)
	return c.JSON(http.StatusOK, out)
}

func (s *Server) handleSetQuota(c echo.Context) error {
	var req setQuotaRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid payload")
	}
	if err := s.validate.Struct(req); err != nil {
		return errJSON(c, http.StatusBadRequest, "quota must be a non-negative number")
	}

	if err := s.store.SetQuota(c.Param("id"), req.Quota); err != nil {
		return errJSON(c, http.StatusNotFound, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "quota updated"})
}

func (s *Server) handleDeleteUser(c echo.Context) error {
	err := s.store.DeleteAccount(c.Param("id"))
	if errors.Is(err, ErrAdminProtected) {
		return errJSON(c, http.StatusForbidden, err.Error())
	}
	if errors.Is(err, ErrNotFound) {
		return errJSON(c, http.StatusNotFound, err.Error())
	}
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "user deleted"})
}

func (s *Server) handleModerate(c echo.Context) error {
	var req moderateRequest
	if err := c.Bind(&req); err != nil {
		return errJSON(c, http.StatusBadRequest, "invalid payload")
	}

	err := s.store.Moderate(c.Param("id"), req.Status)
	if errors.Is(err, ErrInvalidDecision) {
		return errJSON(c, http.StatusBadRequest, err.Error())
	}
	if errors.Is(err, ErrNotFound) {
		return errJSON(c, http.StatusNotFound, err.Error())
	}
	if errors.Is(err, ErrNotPending) {
		return errJSON(c, http.StatusConflict, err.Error())
	}
	if err != nil {
		return errJSON(c, http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "status updated"})
}

func sortByTimestamp(msgs []messageResponse) {
	sort.Slice(msgs, func(i, j int) bool {
		return msgs[i].Timestamp.Before(msgs[j].Timestamp)
	})
}
