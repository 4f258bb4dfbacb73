package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sangkips/gymcore-api/internal/domain/entity"
)

type memoryIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func (r *memoryIdempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	return r.keys[userID.String()+key], nil
}

func (r *memoryIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.keys[ikey.UserID.String()+ikey.Key] = ikey
	return nil
}

func (r *memoryIdempotencyRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	return 0, nil
}

func TestIdempotencyReplaysStoredResponse(t *testing.T) {
	repo := &memoryIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
	userID := uuid.New()
	calls := 0

	r := gin.New()
	r.POST("/receipts", func(c *gin.Context) {
		c.Set(ContextUserID, userID)
	}, Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		calls++
		c.JSON(http.StatusCreated, gin.H{"receipt_number": calls})
	})

	send := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/receipts", strings.NewReader(body))
		req.Header.Set(IdempotencyKeyHeader, "key-1")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	first := send(`{"amount":"100"}`)
	second := send(`{"amount":"100"}`)

	if calls != 1 {
		t.Fatalf("handler ran %d times, want 1", calls)
	}
	if second.Code != http.StatusCreated || second.Body.String() != first.Body.String() {
		t.Errorf("replay = %d %s, want %d %s", second.Code, second.Body, first.Code, first.Body)
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Error("replayed responses should be marked")
	}

	conflict := send(`{"amount":"999"}`)
	if conflict.Code != http.StatusUnprocessableEntity {
		t.Errorf("reused key with another body = %d, want 422", conflict.Code)
	}
}

func TestIdempotencyIgnoresFailuresAndMissingKey(t *testing.T) {
	repo := &memoryIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
	userID := uuid.New()

	r := gin.New()
	r.POST("/receipts", func(c *gin.Context) {
		c.Set(ContextUserID, userID)
	}, Idempotency(IdempotencyConfig{Repo: repo}), func(c *gin.Context) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"success": false})
	})

	req := httptest.NewRequest(http.MethodPost, "/receipts", strings.NewReader(`{}`))
	req.Header.Set(IdempotencyKeyHeader, "key-2")
	r.ServeHTTP(httptest.NewRecorder(), req)
	if len(repo.keys) != 0 {
		t.Error("failed writes must not be stored")
	}

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodPost, "/receipts", strings.NewReader(`{}`)))
	if len(repo.keys) != 0 {
		t.Error("requests without a key must not be stored")
	}
}

func TestIdempotencyExpiredKeyRunsAgain(t *testing.T) {
	repo := &memoryIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
	userID := uuid.New()
	now := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	calls := 0

	r := gin.New()
	r.POST("/receipts", func(c *gin.Context) {
		c.Set(ContextUserID, userID)
	}, Idempotency(IdempotencyConfig{Repo: repo, Now: func() time.Time { return now }}), func(c *gin.Context) {
		calls++
		c.Status(http.StatusCreated)
	})

	send := func() {
		req := httptest.NewRequest(http.MethodPost, "/receipts", strings.NewReader(`{}`))
		req.Header.Set(IdempotencyKeyHeader, "key-3")
		r.ServeHTTP(httptest.NewRecorder(), req)
	}

	send()
	now = now.Add(entity.IdempotencyTTL + time.Minute)
	send()
	if calls != 2 {
		t.Errorf("handler ran %d times, want 2 once the key expired", calls)
	}
}
