package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rewear-marketplace-api/internal/config"
	"github.com/rewear-marketplace-api/internal/models"
	"github.com/rewear-marketplace-api/internal/storage"
	"github.com/rs/zerolog"
)

// WelcomeBonus is the point balance granted to new registrations.
const WelcomeBonus = 50

// sessionService is the concrete implementation of SessionService.
// The account directory lives in memory only; the active session is
// the single persisted record.
type sessionService struct {
	store      storage.Store
	sessionKey string
	log        zerolog.Logger

	mu       sync.RWMutex
	accounts []models.Account
	session  *models.Session

	notifier
}

// newSessionService creates the session store and hydrates the active
// session from the backing store. A malformed persisted session is
// discarded and the store starts unauthenticated.
func newSessionService(ctx context.Context, store storage.Store, cfg *config.Config, log zerolog.Logger) (*sessionService, error) {
	s := &sessionService{
		store:      store,
		sessionKey: cfg.Storage.KeyPrefix + "session",
		log:        log.With().Str("component", "session").Logger(),
		accounts:   seedAccounts(),
	}

	value, err := store.Get(ctx, s.sessionKey)
	if err != nil {
		if err != storage.ErrKeyNotFound {
			s.log.Warn().Err(err).Msg("Failed to read persisted session, starting unauthenticated")
		}
		return s, nil
	}

	session, err := models.DecodeSession(value)
	if err != nil {
		s.log.Warn().Err(err).Msg("Discarding corrupt session record")
		if err := store.Remove(ctx, s.sessionKey); err != nil {
			s.log.Warn().Err(err).Msg("Failed to remove corrupt session record")
		}
		return s, nil
	}

	s.session = session
	s.log.Info().Str("account_id", session.ID).Msg("Session restored")
	return s, nil
}

// Current returns a copy of the active session, or nil when
// unauthenticated.
func (s *sessionService) Current() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.session == nil {
		return nil
	}
	session := *s.session
	return &session
}

// Login authenticates against the account directory. The caller cannot
// distinguish a wrong password from an unknown email; both yield false.
func (s *sessionService) Login(ctx context.Context, email, password string) (bool, error) {
	changed := false
	defer func() {
		if changed {
			s.notify()
		}
	}()
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.accounts {
		account := &s.accounts[i]
		if account.Email == email && account.Password == password {
			session := account.Public()
			if err := s.persistSession(ctx, session); err != nil {
				return false, err
			}
			s.session = session
			s.log.Info().Str("account_id", account.ID).Msg("Login succeeded")
			changed = true
			return true, nil
		}
	}

	s.log.Debug().Str("email", email).Msg("Login failed")
	return false, nil
}

// Register appends a new account to the directory and activates it as
// the current session. Registration with an email already in the
// directory fails and leaves the directory unchanged.
func (s *sessionService) Register(ctx context.Context, name, email, password string) (bool, error) {
	changed := false
	defer func() {
		if changed {
			s.notify()
		}
	}()
	s.mu.Lock()
	defer s.mu.Unlock()

	lower := strings.ToLower(email)
	for i := range s.accounts {
		if strings.ToLower(s.accounts[i].Email) == lower {
			return false, nil
		}
	}

	account := models.Account{
		ID:       uuid.New().String(),
		Name:     name,
		Email:    email,
		Password: password,
		Points:   WelcomeBonus,
		JoinDate: time.Now().Format("2006-01-02"),
		Role:     "user",
	}

	session := account.Public()
	if err := s.persistSession(ctx, session); err != nil {
		return false, err
	}

	s.accounts = append(s.accounts, account)
	s.session = session
	s.log.Info().Str("account_id", account.ID).Msg("Account registered")
	changed = true
	return true, nil
}

// Logout clears the active session and removes its persisted record.
func (s *sessionService) Logout(ctx context.Context) error {
	s.mu.Lock()
	if err := s.store.Remove(ctx, s.sessionKey); err != nil {
		s.mu.Unlock()
		return err
	}
	s.session = nil
	s.mu.Unlock()

	s.notify()
	return nil
}

// Update shallow-merges the given fields into the active session and
// re-persists it. Merged fields are not validated.
func (s *sessionService) Update(ctx context.Context, upd models.SessionUpdate) (*models.Session, error) {
	changed := false
	defer func() {
		if changed {
			s.notify()
		}
	}()
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session == nil {
		return nil, ErrNoSession
	}

	merged := *s.session
	if upd.Name != nil {
		merged.Name = *upd.Name
	}
	if upd.Email != nil {
		merged.Email = *upd.Email
	}
	if upd.Points != nil {
		merged.Points = *upd.Points
	}

	if err := s.persistSession(ctx, &merged); err != nil {
		return nil, err
	}
	s.session = &merged
	changed = true

	result := merged
	return &result, nil
}

// GetAccount looks up a directory account by id.
func (s *sessionService) GetAccount(accountID string) (*models.Account, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for i := range s.accounts {
		if s.accounts[i].ID == accountID {
			account := s.accounts[i]
			return &account, true
		}
	}
	return nil, false
}

// AccountCount returns the size of the account directory.
func (s *sessionService) AccountCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.accounts)
}

// Subscribe registers a listener invoked after each committed mutation.
func (s *sessionService) Subscribe(fn func()) {
	s.subscribe(fn)
}

func (s *sessionService) persistSession(ctx context.Context, session *models.Session) error {
	value, err := models.EncodeSession(session)
	if err != nil {
		return err
	}
	return s.store.Set(ctx, s.sessionKey, value)
}

// Compile-time check that sessionService implements SessionService
var _ SessionService = (*sessionService)(nil)
