package token

import (
	"context"
	"os"
	"testing"
	"time"

	"dutyfree-pos/internal/domain"

	"github.com/redis/go-redis/v9"
)

func TestMemory_SaveGetDelete(t *testing.T) {
	ctx := context.Background()
	repo := NewMemory()
	exerciseRepo(ctx, t, repo)
}

func TestMemory_ExpiredTokenIsDropped(t *testing.T) {
	ctx := context.Background()
	repo := &memoryRepo{tokens: make(map[string]Token), now: time.Now}
	if err := repo.Save(ctx, Token{Token: "t", TerminalID: "pos-1", ExpiresAt: time.Now().Add(time.Minute)}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	repo.now = func() time.Time { return time.Now().Add(2 * time.Minute) }

	if _, err := repo.Get(ctx, "pos-1"); err != domain.ErrNotFound {
		t.Fatalf("expected not found for expired token, got %v", err)
	}
	if len(repo.tokens) != 0 {
		t.Fatalf("expired token still stored")
	}
}

func TestRedis_SaveGetDelete(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	if err != nil {
		t.Fatalf("parse redis url: %v", err)
	}
	client := redis.NewClient(opts)
	defer client.Close()

	ctx := context.Background()
	exerciseRepo(ctx, t, NewRedis(client))
}

func exerciseRepo(ctx context.Context, t *testing.T, repo Repository) {
	t.Helper()
	terminal := "pos-test-" + time.Now().Format("150405.000000")

	if _, err := repo.Get(ctx, terminal); err != domain.ErrNotFound {
		t.Fatalf("expected not found before save, got %v", err)
	}

	in := Token{Token: "abc", TerminalID: terminal, UserID: "7", ExpiresAt: time.Now().Add(time.Hour).UTC().Truncate(time.Second)}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, err := repo.Get(ctx, terminal)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Token != "abc" || got.UserID != "7" || !got.ExpiresAt.Equal(in.ExpiresAt) {
		t.Fatalf("unexpected token %+v", got)
	}

	if err := repo.Delete(ctx, terminal); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(ctx, terminal); err != domain.ErrNotFound {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
}
