package auth

import (
	"context"
	"encoding/json"
	goerrors "errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/docbrief/docbrief/errors"
	"github.com/docbrief/docbrief/internal/domain/entities"
	"github.com/docbrief/docbrief/internal/domain/repositories"
	"github.com/docbrief/docbrief/internal/infrastructure/cache"
	"github.com/docbrief/docbrief/pkg/config"
	"github.com/docbrief/docbrief/pkg/jwt"
)

// Service resolves bearer tokens to local user records
type Service interface {
	// Authenticate verifies a bearer token and returns the matching user,
	// creating the local record on first sight
	Authenticate(ctx context.Context, token string) (*entities.User, error)
}

type service struct {
	users    repositories.UserRepository
	verifier *jwt.Verifier
	store    cache.Store
	cfg      *config.Config
	logger   *zap.Logger
}

// NewService creates the auth service
func NewService(
	users repositories.UserRepository,
	verifier *jwt.Verifier,
	store cache.Store,
	cfg *config.Config,
	logger *zap.Logger,
) Service {
	return &service{
		users:    users,
		verifier: verifier,
		store:    store,
		cfg:      cfg,
		logger:   logger,
	}
}

// cachedUser is the serialized form kept in the token cache
type cachedUser struct {
	ID      uuid.UUID `json:"id"`
	AuthUID string    `json:"auth_uid"`
	Email   string    `json:"email"`
	Name    string    `json:"name"`
}

func (s *service) Authenticate(ctx context.Context, token string) (*entities.User, error) {
	cacheKey := "auth:token:" + jwt.HashToken(token)
	if raw, ok := s.store.Get(ctx, cacheKey); ok {
		var cached cachedUser
		if err := json.Unmarshal([]byte(raw), &cached); err == nil {
			return &entities.User{
				ID:      cached.ID,
				AuthUID: cached.AuthUID,
				Email:   cached.Email,
				Name:    cached.Name,
			}, nil
		}
	}

	claims, err := s.verifier.Verify(token)
	if err != nil {
		if goerrors.Is(err, jwt.ErrExpired) {
			return nil, errors.ErrTokenExpired()
		}
		return nil, errors.ErrInvalidToken()
	}

	user, err := s.resolveUser(ctx, claims)
	if err != nil {
		return nil, err
	}

	// Cache TTL is shorter than token lifetimes, so an expired token
	// can outlive its cache entry by at most the TTL.
	if raw, err := json.Marshal(cachedUser{
		ID:      user.ID,
		AuthUID: user.AuthUID,
		Email:   user.Email,
		Name:    user.Name,
	}); err == nil {
		if err := s.store.Set(ctx, cacheKey, string(raw), s.cfg.Auth.UserCacheTTL); err != nil {
			s.logger.Warn("failed to cache authenticated user", zap.Error(err))
		}
	}

	return user, nil
}

// resolveUser looks up the user by the token subject, provisioning a
// record on first login.
func (s *service) resolveUser(ctx context.Context, claims *jwt.Claims) (*entities.User, error) {
	user, err := s.users.FindByAuthUID(ctx, claims.Subject)
	if err == nil {
		return user, nil
	}
	if !goerrors.Is(err, entities.ErrUserNotFound) {
		return nil, errors.ErrDBQueryFailed(err)
	}

	user = entities.NewUser(claims.Subject, claims.Email, claims.Name)
	if err := user.Validate(); err != nil {
		return nil, errors.ErrInvalidToken()
	}
	if err := s.users.Create(ctx, user); err != nil {
		// A concurrent first request may have created the row already.
		if existing, findErr := s.users.FindByAuthUID(ctx, claims.Subject); findErr == nil {
			return existing, nil
		}
		return nil, errors.ErrDBQueryFailed(err)
	}

	s.logger.Info("provisioned new user",
		zap.String("user_id", user.ID.String()),
		zap.String("auth_uid", user.AuthUID))
	return user, nil
}
