package token

import (
	"context"
	"time"
)

// Token is the bearer token a terminal holds for its logged in operator.
type Token struct {
	Token      string    `json:"token"`
	TerminalID string    `json:"terminalId"`
	UserID     string    `json:"userId"`
	ExpiresAt  time.Time `json:"expiresAt"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Expired reports whether t is past its expiry at now.
func (t Token) Expired(now time.Time) bool {
	return !t.ExpiresAt.IsZero() && now.After(t.ExpiresAt)
}

// Repository persists one token per terminal.
type Repository interface {
	Save(ctx context.Context, token Token) error
	Get(ctx context.Context, terminalID string) (*Token, error)
	Delete(ctx context.Context, terminalID string) error
}
