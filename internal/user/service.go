package user

import (
	"context"
	"fmt"
	"time"

	"github.com/vuminhhoangg/E-Store-sub000/internal/logger"

	"go.uber.org/zap"
)

// TokenRevoker invalidates issued tokens until they expire on their own.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
}

type Service interface {
	Register(ctx context.Context, params RegisterParams) (string, User, error)
	Login(ctx context.Context, email, password string) (string, User, error)
	Logout(ctx context.Context, tokenStr string) error
	GetByID(ctx context.Context, id uint) (User, error)
}

type service struct {
	repo    Repository
	revoker TokenRevoker
}

func NewService(repo Repository, revoker TokenRevoker) Service {
	return &service{repo: repo, revoker: revoker}
}

func (s *service) Register(ctx context.Context, params RegisterParams) (string, User, error) {
	log := logger.FromCtx(ctx)

	hashed, err := HashPassword(params.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return "", User{}, err
	}

	u, err := s.repo.Create(ctx, params.Name, params.Email, hashed)
	if err != nil {
		log.Error("failed to create user", zap.String("email", params.Email), zap.Error(err))
		return "", User{}, err
	}

	token, err := GenerateJWT(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		log.Error("failed to generate jwt", zap.String("user_id", fmt.Sprint(u.ID)), zap.Error(err))
		return "", User{}, err
	}

	log.Info("register service completed",
		zap.String("user_id", fmt.Sprint(u.ID)),
		zap.String("email", params.Email),
	)

	return token, u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (string, User, error) {
	log := logger.FromCtx(ctx)

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		log.Warn("login failed, email not found", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	if !CheckPasswordHash(password, u.Password) {
		log.Warn("login failed, password mismatch", zap.String("email", email))
		return "", User{}, ErrInvalidCredentials
	}

	token, err := GenerateJWT(u.ID, u.Email, u.IsAdmin)
	if err != nil {
		return "", User{}, err
	}
	return token, u, nil
}

// Logout revokes the presented token for the remainder of its lifetime.
func (s *service) Logout(ctx context.Context, tokenStr string) error {
	claims, err := ParseJWT(tokenStr)
	if err != nil {
		return err
	}

	ttl := time.Until(claims.ExpiresAt.Time)
	if ttl <= 0 {
		// Already expired, nothing to revoke.
		return nil
	}

	if err := s.revoker.Revoke(ctx, claims.ID, ttl); err != nil {
		logger.FromCtx(ctx).Error("failed to revoke token", zap.Error(err))
		return err
	}
	return nil
}

func (s *service) GetByID(ctx context.Context, id uint) (User, error) {
	return s.repo.FindByID(ctx, id)
}
