// Package stubserver is an in-memory stand-in for the real messaging
// backend, implementing the REST contract the client consumes. It exists
// for integration tests and local development; state lives in maps and
// vanishes with the process.
package stubserver

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmailTaken      = errors.New("email already registered")
	ErrUnknownAccount  = errors.New("invalid email or password")
	ErrQuotaExhausted  = errors.New("quota exhausted")
	ErrNotFound        = errors.New("not found")
	ErrNotPending      = errors.New("only pending messages can be modified")
	ErrAdminProtected  = errors.New("admin accounts cannot be deleted")
	ErrInvalidDecision = errors.New("status must be accepted or rejected")
)

const (
	defaultQuota    = 10
	quotaPeriodDays = 30
)

// Account is a stored user with quota counters.
type Account struct {
	ID           string
	Name         string
	Age          int
	Email        string
	PasswordHash string
	Role         string
	Quota        int
	UsedQuota    int
	Expiry       time.Time
}

// StoredMessage is a message awaiting or past moderation.
type StoredMessage struct {
	ID        string
	OwnerID   string
	Content   string
	Status    string
	Timestamp time.Time
}

// Store holds all backend state behind one mutex. Accessors return value
// copies, never live pointers: handlers read the results outside the
// lock while other requests mutate the originals under it.
type Store struct {
	mu       sync.Mutex
	accounts map[string]*Account
	messages map[string]*StoredMessage
	now      func() time.Time
}

// NewStore builds an empty store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]*Account),
		messages: make(map[string]*StoredMessage),
		now:      time.Now,
	}
}

// CreateAccount registers a new account with the default quota.
func (s *Store) CreateAccount(name string, age int, email, passwordHash, role string) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, a := range s.accounts {
		if a.Email == email {
			return Account{}, ErrEmailTaken
		}
	}

	acc := &Account{
		ID:           uuid.New().String(),
		Name:         name,
		Age:          age,
		Email:        email,
		PasswordHash: passwordHash,
		Role:         role,
		Quota:        defaultQuota,
		Expiry:       s.now().Add(quotaPeriodDays * 24 * time.Hour),
	}
	s.accounts[acc.ID] = acc
	return *acc, nil
}

// FindByEmail returns a copy of the account registered under email.
func (s *Store) FindByEmail(email string) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.accounts {
		if a.Email == email {
			return *a, nil
		}
	}
	return Account{}, ErrUnknownAccount
}

// Get returns a copy of the account by id.
func (s *Store) Get(id string) (Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return Account{}, ErrNotFound
	}
	return *acc, nil
}

// Accounts lists a copy of every account.
func (s *Store) Accounts() []Account {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, *a)
	}
	return out
}

// SetQuota replaces the quota ceiling for an account. The used counter is
// untouched.
func (s *Store) SetQuota(id string, quota int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return ErrNotFound
	}
	acc.Quota = quota
	return nil
}

// DeleteAccount removes an account and its messages. ADMIN accounts are
// refused.
func (s *Store) DeleteAccount(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	acc, ok := s.accounts[id]
	if !ok {
		return ErrNotFound
	}
	if acc.Role == "ADMIN" {
		return ErrAdminProtected
	}
	delete(s.accounts, id)
	for mid, m := range s.messages {
		if m.OwnerID == id {
			delete(s.messages, mid)
		}
	}
	return nil
}

// AddMessage debits one quota unit and records a pending message.
// Returns a copy of the message and the remaining quota.
func (s *Store) AddMessage(ownerID, content string) (StoredMessage, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[ownerID]
	if !ok {
		return StoredMessage{}, 0, ErrNotFound
	}
	if acc.Quota <= 0 {
		return StoredMessage{}, 0, ErrQuotaExhausted
	}

	msg := &StoredMessage{
		ID:        uuid.New().String(),
		OwnerID:   ownerID,
		Content:   content,
		Status:    "pending",
		Timestamp: s.now(),
	}
	s.messages[msg.ID] = msg
	acc.Quota--
	acc.UsedQuota++
	return *msg, acc.Quota, nil
}

// DeleteMessage removes one of owner's pending messages and credits the
// quota unit back. Returns the remaining quota.
func (s *Store) DeleteMessage(ownerID, messageID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	msg, ok := s.messages[messageID]
	if !ok || msg.OwnerID != ownerID {
		return 0, ErrNotFound
	}
	if msg.Status != "pending" {
		return 0, ErrNotPending
	}

	delete(s.messages, messageID)
	acc := s.accounts[ownerID]
	acc.Quota++
	if acc.UsedQuota > 0 {
		acc.UsedQuota--
	}
	return acc.Quota, nil
}

// UseQuota debits one quota unit without recording a message. It draws
// from the same counter as AddMessage.
func (s *Store) UseQuota(ownerID string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	acc, ok := s.accounts[ownerID]
	if !ok {
		return 0, ErrNotFound
	}
	if acc.Quota <= 0 {
		return 0, ErrQuotaExhausted
	}
	acc.Quota--
	acc.UsedQuota++
	return acc.Quota, nil
}

// MessagesFor lists copies of the messages owned by ownerID.
func (s *Store) MessagesFor(ownerID string) []StoredMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StoredMessage, 0)
	for _, m := range s.messages {
		if m.OwnerID == ownerID {
			out = append(out, *m)
		}
	}
	return out
}

// AllMessages lists a copy of every message.
func (s *Store) AllMessages() []StoredMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]StoredMessage, 0, len(s.messages))
	for _, m := range s.messages {
		out = append(out, *m)
	}
	return out
}

// Moderate records the one-shot pending → accepted|rejected transition.
func (s *Store) Moderate(messageID, status string) error {
	if status != "accepted" && status != "rejected" {
		return ErrInvalidDecision
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	msg, ok := s.messages[messageID]
	if !ok {
		return ErrNotFound
	}
	if msg.Status != "pending" {
		return ErrNotPending
	}
	msg.Status = status
	return nil
}
