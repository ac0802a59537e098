package session

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dutyfree-pos/internal/domain"
	"dutyfree-pos/internal/repository/token"
	"dutyfree-pos/internal/salesapi"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuth struct {
	token     string
	user      domain.User
	loginErr  error
	meErr     error
	logoutErr error

	// onMe runs before Me answers, with the token the client would send.
	onMe       func()
	meCalls    int
	logoutCall int
}

func (s *stubAuth) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	if s.loginErr != nil {
		return "", domain.User{}, s.loginErr
	}
	return s.token, s.user, nil
}

func (s *stubAuth) Me(ctx context.Context) (domain.User, error) {
	s.meCalls++
	if s.onMe != nil {
		s.onMe()
	}
	if s.meErr != nil {
		return domain.User{}, s.meErr
	}
	return s.user, nil
}

func (s *stubAuth) Logout(ctx context.Context) error {
	s.logoutCall++
	return s.logoutErr
}

func cashier() domain.User {
	return domain.User{ID: "5", Username: "awa", Role: domain.RoleCashier, Active: true}
}

func TestLoginPersistsTokenAndNotifies(t *testing.T) {
	ctx := context.Background()
	store := token.NewMemory()
	s := New(&stubAuth{token: "abc", user: cashier()}, store, "pos-1", time.Hour, zerolog.Nop())

	var seen []*domain.User
	s.Subscribe(func(u *domain.User) { seen = append(seen, u) })

	user, err := s.Login(ctx, "awa", "secret")
	require.NoError(t, err)
	assert.Equal(t, "awa", user.Username)
	assert.Equal(t, "abc", s.Token())

	got, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, domain.RoleCashier, got.Role)

	stored, err := store.Get(ctx, "pos-1")
	require.NoError(t, err)
	assert.Equal(t, "abc", stored.Token)
	assert.Equal(t, "5", stored.UserID)
	assert.False(t, stored.ExpiresAt.IsZero())

	require.Len(t, seen, 1)
	assert.Equal(t, "awa", seen[0].Username)
}

func TestLoginFailureLeavesSessionEmpty(t *testing.T) {
	ctx := context.Background()
	store := token.NewMemory()
	s := New(&stubAuth{loginErr: errors.New("bad credentials")}, store, "pos-1", time.Hour, zerolog.Nop())

	_, err := s.Login(ctx, "awa", "wrong")
	require.Error(t, err)
	assert.Empty(t, s.Token())
	_, ok := s.User()
	assert.False(t, ok)
	_, err = store.Get(ctx, "pos-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInitWithoutStoredTokenDoesNothing(t *testing.T) {
	api := &stubAuth{user: cashier()}
	s := New(api, token.NewMemory(), "pos-1", time.Hour, zerolog.Nop())

	require.NoError(t, s.Init(context.Background()))
	assert.Equal(t, 0, api.meCalls)
	_, ok := s.User()
	assert.False(t, ok)
}

func TestInitResumesStoredToken(t *testing.T) {
	ctx := context.Background()
	store := token.NewMemory()
	require.NoError(t, store.Save(ctx, token.Token{Token: "abc", TerminalID: "pos-1"}))

	api := &stubAuth{user: cashier()}
	s := New(api, store, "pos-1", time.Hour, zerolog.Nop())
	api.onMe = func() { assert.Equal(t, "abc", s.Token()) }

	require.NoError(t, s.Init(ctx))
	assert.Equal(t, 1, api.meCalls)
	got, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "awa", got.Username)
}

func TestInitDiscardsRejectedToken(t *testing.T) {
	ctx := context.Background()
	store := token.NewMemory()
	require.NoError(t, store.Save(ctx, token.Token{Token: "old", TerminalID: "pos-1"}))

	s := New(&stubAuth{meErr: errors.New("401")}, store, "pos-1", time.Hour, zerolog.Nop())
	require.NoError(t, s.Init(ctx))

	assert.Empty(t, s.Token())
	_, err := store.Get(ctx, "pos-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLogoutClearsEvenWhenAPIFails(t *testing.T) {
	ctx := context.Background()
	store := token.NewMemory()
	api := &stubAuth{token: "abc", user: cashier(), logoutErr: errors.New("unreachable")}
	s := New(api, store, "pos-1", time.Hour, zerolog.Nop())
	_, err := s.Login(ctx, "awa", "secret")
	require.NoError(t, err)

	var last *domain.User
	notified := 0
	s.Subscribe(func(u *domain.User) { last = u; notified++ })

	s.Logout(ctx)
	assert.Equal(t, 1, api.logoutCall)
	assert.Empty(t, s.Token())
	assert.Equal(t, 1, notified)
	assert.Nil(t, last)
	_, err = store.Get(ctx, "pos-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInvalidateWithoutSessionDoesNotNotify(t *testing.T) {
	s := New(&stubAuth{}, token.NewMemory(), "pos-1", time.Hour, zerolog.Nop())
	notified := 0
	s.Subscribe(func(*domain.User) { notified++ })

	s.Invalidate()
	assert.Equal(t, 0, notified)
}

func TestRejectedLoginKeepsCurrentSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Password != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"success":false,"message":"Bad credentials"}`)
			return
		}
		io.WriteString(w, `{"success":true,"data":{"token":"abc","id":5,"username":"awa","role":"CASHIER"}}`)
	}))
	defer srv.Close()

	client, err := salesapi.New(srv.URL+"/api", 2*time.Second)
	require.NoError(t, err)
	ctx := context.Background()
	store := token.NewMemory()
	s := New(client, store, "pos-1", time.Hour, zerolog.Nop())
	client.SetTokenSource(s)
	client.SetUnauthorizedHook(s.Invalidate)

	_, err = s.Login(ctx, "awa", "secret")
	require.NoError(t, err)

	var ended int
	s.Subscribe(func(u *domain.User) {
		if u == nil {
			ended++
		}
	})

	_, err = s.Login(ctx, "bob", "wrong")
	require.Error(t, err)
	assert.Equal(t, 0, ended)
	assert.Equal(t, "abc", s.Token())
	got, ok := s.User()
	require.True(t, ok)
	assert.Equal(t, "awa", got.Username)
	_, err = store.Get(ctx, "pos-1")
	assert.NoError(t, err)
}
