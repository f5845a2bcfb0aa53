package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/atpritam/Event-Flow/internal/app"
	"github.com/atpritam/Event-Flow/internal/auth"
	"github.com/atpritam/Event-Flow/internal/clock"
	"github.com/atpritam/Event-Flow/internal/domain"
)

func TestHandleSyncUser(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC)

	t.Run("mirrors identity claims", func(t *testing.T) {
		t.Parallel()
		repo := &fakeUserRepo{}
		svc := app.NewUserService(repo, clock.NewFixed(now))

		req := httptest.NewRequest(http.MethodPost, "/api/users/sync", nil)
		req = req.WithContext(auth.WithIdentity(req.Context(), &auth.Identity{
			Subject:   "user-1",
			Email:     "ada@example.com",
			FirstName: "Ada",
			LastName:  "Lovelace",
		}))
		rec := httptest.NewRecorder()

		HandleSyncUser(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected status 200, got %d", rec.Code)
		}
		if !strings.Contains(rec.Body.String(), `"id":"user-1"`) {
			t.Fatalf("expected synced user id, got %q", rec.Body.String())
		}
		if repo.upserted == nil || repo.upserted.Email != "ada@example.com" {
			t.Fatalf("expected upsert with claims, got %+v", repo.upserted)
		}
	})

	t.Run("anonymous rejected", func(t *testing.T) {
		t.Parallel()
		svc := app.NewUserService(&fakeUserRepo{}, clock.NewFixed(now))

		req := httptest.NewRequest(http.MethodPost, "/api/users/sync", nil)
		rec := httptest.NewRecorder()

		HandleSyncUser(svc).ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected status 401, got %d", rec.Code)
		}
	})
}

type fakeUserRepo struct {
	upserted *domain.User
}

func (f *fakeUserRepo) UpsertUser(_ context.Context, user domain.User) (domain.User, error) {
	f.upserted = &user
	return user, nil
}

func (f *fakeUserRepo) GetUser(_ context.Context, id string) (domain.User, error) {
	if f.upserted == nil || f.upserted.ID != id {
		return domain.User{}, domain.ErrUserNotFound
	}
	return *f.upserted, nil
}
