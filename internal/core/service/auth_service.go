package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/tivit/users-api/internal/core/domain"
	"github.com/tivit/users-api/internal/core/ports"
	"github.com/tivit/users-api/internal/core/token"
)

// AuthService verifies credentials against the user store and issues signed
// session tokens. It is stateless and safe for concurrent use.
type AuthService struct {
	repo     ports.UserRepository
	codec    *token.Codec
	throttle ports.LoginThrottle
	log      zerolog.Logger
}

// NewAuthService wires the verifier. throttle may be nil, in which case no
// attempt limiting is applied.
func NewAuthService(repo ports.UserRepository, codec *token.Codec, throttle ports.LoginThrottle, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, throttle: throttle, log: log}
}

// Login verifies the presented password against the stored bcrypt hash and,
// on success, returns a signed token carrying the user's role at this moment.
// The plaintext password is never logged.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		allowed, err := s.throttle.Allow(ctx, username)
		if err != nil {
			// Fail open: the throttle store being down must not block logins.
			s.log.Warn().Err(err).Msg("login throttle unavailable")
		} else if !allowed {
			return "", nil, domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
		}
		return "", nil, err
	}

	if !user.Active {
		return "", nil, domain.ErrInvalidCredentials
	}

	// bcrypt comparison is constant time.
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.recordFailure(ctx, username)
		return "", nil, domain.ErrInvalidCredentials
	}

	if s.throttle != nil {
		if err := s.throttle.Reset(ctx, username); err != nil {
			s.log.Warn().Err(err).Msg("login throttle reset failed")
		}
	}

	signed, err := s.codec.Issue(user)
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.throttle == nil {
		return
	}
	if err := s.throttle.RecordFailure(ctx, username); err != nil {
		s.log.Warn().Err(err).Msg("login throttle record failed")
	}
}

// HashPassword produces the bcrypt hash stored on a user record. Exposed for
// the seed bootstrap.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
