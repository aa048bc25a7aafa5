package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/kmalyshev/shopcart/internal/hash"
	"github.com/kmalyshev/shopcart/internal/logging"
	"github.com/kmalyshev/shopcart/internal/models"
	"github.com/kmalyshev/shopcart/internal/repo"
)

const (
	accessTTL  = 15 * time.Minute
	refreshTTL = 7 * 24 * time.Hour
)

type AuthService struct {
	Repo          *repo.GormRepo
	JWTSecret     []byte
	RefreshSecret []byte
}

type LoginResult struct {
	AccessToken  string
	RefreshToken string
	AccessExp    time.Time
	RefreshExp   time.Time
	IsAdmin      bool
}

func (s *AuthService) CreateAccessToken(userID, role string, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  exp.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.JWTSecret)
}

func (s *AuthService) CreateRefreshToken(userID string, exp time.Time) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": exp.Unix(),
		"jti": uuid.NewString(),
		"typ": "refresh",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.RefreshSecret)
}

func (s *AuthService) Register(ctx context.Context, username, password string) (*models.User, error) {
	l := logging.FromContext(ctx).With("svc", "auth.register")

	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", ErrValidation)
	}

	pwHash, err := hash.HashPassword(password)
	if err != nil {
		l.Error("register_error", "reason", "cannot hash password", "error", err)
		return nil, err
	}

	user := models.User{
		Username:     username,
		PasswordHash: pwHash,
		Role:         "user",
	}
	created, err := s.Repo.CreateUserIfNotExists(ctx, &user)
	if err != nil {
		return nil, err
	}
	if !created {
		return nil, fmt.Errorf("username %q already exists: %w", username, ErrConflict)
	}
	return &user, nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.login", "username", username)

	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password are required: %w", ErrValidation)
	}

	user, err := s.Repo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !hash.CheckPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.issueTokens(ctx, l, user)
}

func (s *AuthService) issueTokens(ctx context.Context, l *slog.Logger, user *models.User) (*LoginResult, error) {
	accessExp := time.Now().Add(accessTTL)
	accessToken, err := s.CreateAccessToken(user.ID.String(), user.Role, accessExp)
	if err != nil {
		l.Error("token_error", "reason", "cannot sign access token", "error", err)
		return nil, err
	}

	refreshExp := time.Now().Add(refreshTTL)
	refreshToken, err := s.CreateRefreshToken(user.ID.String(), refreshExp)
	if err != nil {
		l.Error("token_error", "reason", "cannot sign refresh token", "error", err)
		return nil, err
	}

	if err := s.Repo.StoreRefreshToken(ctx, &models.RefreshToken{
		Token:     refreshToken,
		UserID:    user.ID,
		ExpiresAt: refreshExp,
	}); err != nil {
		return nil, err
	}

	return &LoginResult{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		AccessExp:    accessExp,
		RefreshExp:   refreshExp,
		IsAdmin:      user.Role == "admin",
	}, nil
}

// Refresh rotates the token pair: the presented refresh token must parse,
// still be stored, unrevoked and unexpired. The old token is revoked.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*LoginResult, error) {
	l := logging.FromContext(ctx).With("svc", "auth.refresh")

	token, err := jwt.Parse(refreshToken, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.RefreshSecret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("refresh token rejected: %w", ErrInvalidCredentials)
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("refresh token claims: %w", ErrInvalidCredentials)
	}
	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, fmt.Errorf("refresh token subject: %w", ErrInvalidCredentials)
	}

	valid, err := s.Repo.RefreshTokenValid(ctx, refreshToken, time.Now())
	if err != nil {
		return nil, err
	}
	if !valid {
		return nil, fmt.Errorf("refresh token revoked or expired: %w", ErrInvalidCredentials)
	}

	user, err := s.Repo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("account gone: %w", ErrInvalidCredentials)
		}
		return nil, err
	}

	if err := s.Repo.RevokeRefreshToken(ctx, refreshToken); err != nil {
		return nil, err
	}
	return s.issueTokens(ctx, l, user)
}

func (s *AuthService) LogOut(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	return s.Repo.RevokeRefreshToken(ctx, refreshToken)
}
