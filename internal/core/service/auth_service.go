package service

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/httptim/clientportal/internal/core/domain"
	"github.com/httptim/clientportal/internal/core/ports"
)

// AuthService issues signed session tokens and revokes them on logout.
// A token is only honored while its session id is live in the session store,
// so logout is effective immediately.
type AuthService struct {
	users    ports.UserRepository
	sessions ports.SessionStore
	secret   string
	ttl      time.Duration
	logger   zerolog.Logger
}

func NewAuthService(users ports.UserRepository, sessions ports.SessionStore, secret string, ttl time.Duration, logger zerolog.Logger) *AuthService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthService{users: users, sessions: sessions, secret: secret, ttl: ttl, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	if email == "" || password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, domain.ErrInvalidCredentials
	}

	sid := uuid.New().String()
	if err := s.sessions.Put(ctx, sid, s.ttl); err != nil {
		return nil, err
	}

	token, err := s.generateToken(user, sid)
	if err != nil {
		return nil, err
	}

	s.logger.Info().Str("user_id", user.ID).Str("role", string(user.Role)).Msg("session issued")
	return &ports.AuthResult{Token: token, User: user}, nil
}

func (s *AuthService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Info().Str("sid", sessionID).Msg("session revoked")
	return nil
}

func (s *AuthService) generateToken(user *domain.User, sid string) (string, error) {
	claims := jwt.MapClaims{
		"sid":   sid,
		"sub":   user.ID,
		"role":  string(user.Role),
		"name":  user.Name,
		"email": user.Email,
		"exp":   time.Now().Add(s.ttl).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.secret))
}
