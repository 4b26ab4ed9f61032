package service

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/shop-service/internal/auth"
	"github.com/spec-kit/shop-service/internal/config"
	"github.com/spec-kit/shop-service/internal/domain"
	"github.com/spec-kit/shop-service/internal/repository"
)

// Sentinel errors surfaced to the HTTP layer. ErrInvalidCredentials and
// ErrWrongEmailOrAnswer cover several distinct causes each on purpose:
// handlers must not reveal which check failed.
var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongEmailOrAnswer = errors.New("wrong email or answer")
	ErrPasswordTooShort   = errors.New("password too short")
)

// MinPasswordLength is enforced on registration, reset and profile update.
const MinPasswordLength = 6

// AuthService coordinates registration, login, password reset and
// profile updates.
type AuthService struct {
	users      repository.UserRepository
	tokenMgr   *auth.TokenManager
	bcryptCost int
}

// AuthDependencies encapsulates repo requirements for auth service.
type AuthDependencies struct {
	UserRepo repository.UserRepository
}

// NewAuthService builds the service.
func NewAuthService(cfg config.Config, deps AuthDependencies) *AuthService {
	return &AuthService{
		users:      deps.UserRepo,
		tokenMgr:   auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.AccessTokenTTL()),
		bcryptCost: cfg.Auth.BcryptCost,
	}
}

// RegisterInput describes a registration request after field validation.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Phone    string
	Address  string
	Answer   string
}

// Register creates a new standard-role account. It deliberately does not
// mint a token: a fresh registration still has to log in.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if _, err := s.users.GetByEmail(ctx, in.Email); err == nil {
		return nil, ErrEmailTaken
	} else if err != pgx.ErrNoRows {
		return nil, err
	}

	passwordHash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}
	answerHash, err := auth.HashPassword(in.Answer, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: passwordHash,
		Phone:        in.Phone,
		Address:      in.Address,
		AnswerHash:   answerHash,
		Role:         domain.RoleStandard,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates a user and mints a session token. An unknown email
// and a wrong password both yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, string, time.Time, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, "", time.Time{}, ErrInvalidCredentials
		}
		return nil, "", time.Time{}, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, "", time.Time{}, ErrInvalidCredentials
	}

	token, exp, err := s.tokenMgr.GenerateToken(user.ID)
	if err != nil {
		return nil, "", time.Time{}, err
	}
	return user, token, exp, nil
}

// ResetPassword sets a new password when the security answer matches.
// Missing user and wrong answer collapse into ErrWrongEmailOrAnswer.
// No token is issued: the user logs in again with the new password.
func (s *AuthService) ResetPassword(ctx context.Context, email, answer, newPassword string) error {
	if len(newPassword) < MinPasswordLength {
		return ErrPasswordTooShort
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return ErrWrongEmailOrAnswer
		}
		return err
	}
	if err := auth.ComparePassword(user.AnswerHash, answer); err != nil {
		return ErrWrongEmailOrAnswer
	}

	hash, err := auth.HashPassword(newPassword, s.bcryptCost)
	if err != nil {
		return err
	}
	user.PasswordHash = hash
	return s.users.Update(ctx, user)
}

// ProfileUpdate carries optional profile fields; empty strings leave the
// stored value untouched.
type ProfileUpdate struct {
	Name     string
	Password string
	Phone    string
	Address  string
}

// UpdateProfile merges the supplied fields into the account identified by
// userID. Identity comes from the authenticated request, never from the
// payload. A supplied password shorter than MinPasswordLength aborts the
// update with ErrPasswordTooShort.
func (s *AuthService) UpdateProfile(ctx context.Context, userID string, in ProfileUpdate) (*domain.User, error) {
	if in.Password != "" && len(in.Password) < MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Phone != "" {
		user.Phone = in.Phone
	}
	if in.Address != "" {
		user.Address = in.Address
	}
	if in.Password != "" {
		hash, err := auth.HashPassword(in.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// TokenManager exposes the underlying token manager for middleware usage.
func (s *AuthService) TokenManager() *auth.TokenManager {
	return s.tokenMgr
}
