// Package session holds the operator session of one terminal: the bearer
// token, the user it resolves to and the subscribers told about changes.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"dutyfree-pos/internal/domain"
	"dutyfree-pos/internal/repository/token"

	"github.com/rs/zerolog"
)

// ErrNotAuthenticated is returned when an operation needs a logged in user.
var ErrNotAuthenticated = errors.New("not authenticated")

// AuthAPI is the authentication part of the Sales API.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (string, domain.User, error)
	Me(ctx context.Context) (domain.User, error)
	Logout(ctx context.Context) error
}

// Listener receives the new user, or nil once the session ends.
type Listener func(user *domain.User)

type Session struct {
	api        AuthAPI
	store      token.Repository
	terminalID string
	ttl        time.Duration
	logger     zerolog.Logger
	now        func() time.Time

	mu        sync.RWMutex
	token     string
	user      *domain.User
	listeners []Listener
}

func New(api AuthAPI, store token.Repository, terminalID string, ttl time.Duration, logger zerolog.Logger) *Session {
	return &Session{
		api:        api,
		store:      store,
		terminalID: terminalID,
		ttl:        ttl,
		logger:     logger.With().Str("component", "session").Str("terminal", terminalID).Logger(),
		now:        time.Now,
	}
}

// Init resumes a persisted token by resolving it through GET /auth/me. A
// token the API no longer accepts is discarded; only store failures are
// returned.
func (s *Session) Init(ctx context.Context) error {
	stored, err := s.store.Get(ctx, s.terminalID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load session token: %w", err)
	}

	s.mu.Lock()
	s.token = stored.Token
	s.mu.Unlock()

	user, err := s.api.Me(ctx)
	if err != nil {
		s.logger.Warn().Err(err).Msg("stored token rejected, session cleared")
		s.Invalidate()
		return nil
	}
	s.set(stored.Token, &user)
	s.logger.Info().Str("user", user.Username).Msg("session resumed")
	return nil
}

// Login authenticates against the Sales API and persists the token.
func (s *Session) Login(ctx context.Context, username, password string) (domain.User, error) {
	tok, user, err := s.api.Login(ctx, username, password)
	if err != nil {
		return domain.User{}, err
	}
	now := s.now()
	rec := token.Token{
		Token:      tok,
		TerminalID: s.terminalID,
		UserID:     user.ID,
		CreatedAt:  now,
	}
	if s.ttl > 0 {
		rec.ExpiresAt = now.Add(s.ttl)
	}
	if err := s.store.Save(ctx, rec); err != nil {
		return domain.User{}, fmt.Errorf("save session token: %w", err)
	}
	s.set(tok, &user)
	s.logger.Info().Str("user", user.Username).Str("role", string(user.Role)).Msg("logged in")
	return user, nil
}

// Logout tells the Sales API and ends the session whatever it answers.
func (s *Session) Logout(ctx context.Context) {
	if s.Token() != "" {
		if err := s.api.Logout(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("logout call failed")
		}
	}
	s.Invalidate()
}

// Invalidate drops the token locally and in the store. It is the Sales API
// client's 401 hook, so it must not call the API.
func (s *Session) Invalidate() {
	s.mu.Lock()
	had := s.token != "" || s.user != nil
	s.token = ""
	s.user = nil
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.store.Delete(ctx, s.terminalID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.logger.Error().Err(err).Msg("delete session token")
	}
	if had {
		s.logger.Info().Msg("session ended")
		s.notify(nil)
	}
}

// Token implements salesapi.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// User returns a copy of the logged in user.
func (s *Session) User() (domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return domain.User{}, false
	}
	return *s.user, true
}

// Subscribe registers l for every login and logout.
func (s *Session) Subscribe(l Listener) {
	s.mu.Lock()
	s.listeners = append(s.listeners, l)
	s.mu.Unlock()
}

func (s *Session) set(tok string, user *domain.User) {
	s.mu.Lock()
	s.token = tok
	s.user = user
	s.mu.Unlock()
	u := *user
	s.notify(&u)
}

func (s *Session) notify(user *domain.User) {
	s.mu.RLock()
	listeners := make([]Listener, len(s.listeners))
	copy(listeners, s.listeners)
	s.mu.RUnlock()
	for _, l := range listeners {
		l(user)
	}
}
