package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/ezbillify/ezbillify-backend/internal/apperrors"
	"github.com/ezbillify/ezbillify-backend/internal/core/domain"
	portsrepo "github.com/ezbillify/ezbillify-backend/internal/core/ports/repositories"
	portssvc "github.com/ezbillify/ezbillify-backend/internal/core/ports/services"
	"github.com/ezbillify/ezbillify-backend/internal/dto"
	"github.com/ezbillify/ezbillify-backend/internal/middleware"
	"github.com/ezbillify/ezbillify-backend/internal/platform/config"
	"github.com/ezbillify/ezbillify-backend/internal/utils"
)

var ErrEmailTaken = errors.New("email is already registered")

// authService handles registration and credential login.
type authService struct {
	userRepo  portsrepo.UserRepositoryFacade
	jwtSecret string
	jwtExpiry time.Duration
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, cfg *config.Config) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		jwtSecret: cfg.JWTSecret,
		jwtExpiry: time.Duration(cfg.JWTExpiryMinutes) * time.Minute,
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func (s *authService) Register(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	_, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err == nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrDuplicate, ErrEmailTaken)
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		IsActive:     true,
	}
	user.AuditFields = domain.AuditFields{
		CreatedAt:     now,
		CreatedBy:     user.UserID,
		LastUpdatedAt: now,
		LastUpdatedBy: user.UserID,
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, err
	}
	middleware.GetLoggerFromCtx(ctx).InfoContext(ctx, "user registered",
		slog.String("userID", user.UserID),
	)
	return &user, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, err
	}
	if !user.IsActive || !utils.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}

	expiresAt := time.Now().Add(s.jwtExpiry)
	claims := jwt.RegisteredClaims{
		Subject:   user.UserID,
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, fmt.Errorf("signing token: %w", err)
	}

	return &dto.LoginResponse{
		AccessToken: signed,
		ExpiresAt:   expiresAt,
		User: dto.UserResponse{
			UserID:    user.UserID,
			Name:      user.Name,
			Email:     user.Email,
			CreatedAt: user.CreatedAt,
		},
	}, nil
}
