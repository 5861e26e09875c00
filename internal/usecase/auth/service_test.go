package auth

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docbrief/docbrief/internal/domain/entities"
	"github.com/docbrief/docbrief/internal/infrastructure/cache"
	"github.com/docbrief/docbrief/pkg/config"
	"github.com/docbrief/docbrief/pkg/jwt"
)

type fakeUserRepo struct {
	byAuthUID map[string]*entities.User
	creates   int
	finds     int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{byAuthUID: make(map[string]*entities.User)}
}

func (r *fakeUserRepo) Create(_ context.Context, user *entities.User) error {
	r.byAuthUID[user.AuthUID] = user
	r.creates++
	return nil
}

func (r *fakeUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entities.User, error) {
	for _, u := range r.byAuthUID {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, entities.ErrUserNotFound
}

func (r *fakeUserRepo) FindByAuthUID(_ context.Context, authUID string) (*entities.User, error) {
	r.finds++
	u, ok := r.byAuthUID[authUID]
	if !ok {
		return nil, entities.ErrUserNotFound
	}
	return u, nil
}

func testAuthConfig() *config.Config {
	return &config.Config{
		Auth: config.AuthConfig{JWTSecret: "test-secret", UserCacheTTL: time.Minute},
	}
}

func newTestAuth(repo *fakeUserRepo) (Service, *jwt.Verifier) {
	verifier := jwt.NewVerifier("test-secret", "")
	svc := NewService(repo, verifier, cache.NewMemoryStore(), testAuthConfig(), zap.NewNop())
	return svc, verifier
}

func TestAuthenticate_ProvisionsNewUser(t *testing.T) {
	repo := newFakeUserRepo()
	svc, verifier := newTestAuth(repo)

	token, err := verifier.Sign("uid-1", "new@example.com", "New User", time.Hour)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}

	user, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.AuthUID != "uid-1" || user.Email != "new@example.com" {
		t.Errorf("unexpected user %+v", user)
	}
	if repo.creates != 1 {
		t.Errorf("expected one created user, got %d", repo.creates)
	}
}

func TestAuthenticate_ReturnsExistingUser(t *testing.T) {
	repo := newFakeUserRepo()
	existing := entities.NewUser("uid-2", "old@example.com", "Old User")
	repo.byAuthUID["uid-2"] = existing
	svc, verifier := newTestAuth(repo)

	token, _ := verifier.Sign("uid-2", "old@example.com", "Old User", time.Hour)

	user, err := svc.Authenticate(context.Background(), token)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user.ID != existing.ID {
		t.Error("expected the existing record, not a new one")
	}
	if repo.creates != 0 {
		t.Errorf("expected no creates, got %d", repo.creates)
	}
}

func TestAuthenticate_CachesRepeatedLookups(t *testing.T) {
	repo := newFakeUserRepo()
	svc, verifier := newTestAuth(repo)

	token, _ := verifier.Sign("uid-3", "cached@example.com", "", time.Hour)

	if _, err := svc.Authenticate(context.Background(), token); err != nil {
		t.Fatalf("first call failed: %v", err)
	}
	findsAfterFirst := repo.finds

	for i := 0; i < 5; i++ {
		if _, err := svc.Authenticate(context.Background(), token); err != nil {
			t.Fatalf("cached call failed: %v", err)
		}
	}
	if repo.finds != findsAfterFirst {
		t.Errorf("expected cache hits, repo lookups grew from %d to %d", findsAfterFirst, repo.finds)
	}
}

func TestAuthenticate_RejectsExpiredToken(t *testing.T) {
	repo := newFakeUserRepo()
	svc, verifier := newTestAuth(repo)

	token, _ := verifier.Sign("uid-4", "late@example.com", "", -time.Minute)

	if _, err := svc.Authenticate(context.Background(), token); err == nil {
		t.Fatal("expected expired token error")
	}
}

func TestAuthenticate_RejectsGarbage(t *testing.T) {
	repo := newFakeUserRepo()
	svc, _ := newTestAuth(repo)

	if _, err := svc.Authenticate(context.Background(), "garbage"); err == nil {
		t.Fatal("expected invalid token error")
	}
}
