package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Dee126/DSAR-sub009/internal/auth"
	"github.com/Dee126/DSAR-sub009/internal/config"
	"github.com/Dee126/DSAR-sub009/internal/domain"
	"github.com/Dee126/DSAR-sub009/internal/repository"
	apperrors "github.com/Dee126/DSAR-sub009/pkg/util"
)

// AuthService authenticates tenant actors and issues tokens.
type AuthService struct {
	actors repository.ActorRepository
	tokens *auth.TokenManager
}

// NewAuthService constructs the service.
func NewAuthService(cfg config.AuthConfig, actors repository.ActorRepository) *AuthService {
	return &AuthService{
		actors: actors,
		tokens: auth.NewTokenManager(cfg.JWTSecret, cfg.AccessTokenTTLMinutes),
	}
}

// TokenManager exposes the manager for middleware wiring.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokens
}

// Login verifies credentials and returns a signed token.
func (s *AuthService) Login(ctx context.Context, tenantID, email, password string) (string, time.Time, *domain.Actor, error) {
	actor, err := s.actors.GetByEmail(ctx, tenantID, email)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
		}
		return "", time.Time{}, nil, err
	}
	if !actor.IsActive {
		return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
	}
	if err := auth.ComparePassword(actor.PasswordHash, password); err != nil {
		return "", time.Time{}, nil, apperrors.NewUnauthorized("invalid credentials")
	}

	token, expiresAt, err := s.tokens.GenerateToken(actor)
	if err != nil {
		return "", time.Time{}, nil, err
	}
	return token, expiresAt, actor, nil
}
