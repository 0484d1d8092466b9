// Package service contains the business logic for the voiceforge services.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/crypto/bcrypt"

	"github.com/voiceforge/voiceforge/internal/core"
	"github.com/voiceforge/voiceforge/internal/domain/auth"
	"github.com/voiceforge/voiceforge/internal/domain/model"
	apperrors "github.com/voiceforge/voiceforge/internal/errors"
	"github.com/voiceforge/voiceforge/internal/token"
)

// AuthServiceOptions groups dependencies for AuthService.
type AuthServiceOptions struct {
	Users      core.UserRepository // Required: user repository
	Tokens     *token.Service      // Required: token issuer/verifier
	BcryptCost int                 // Optional: bcrypt work factor, defaults to bcrypt.DefaultCost
	Logger     *slog.Logger        // Optional: structured logger
}

// AuthService implements registration, login, and token validation. It is the
// only component holding the signing secret (via the token service); every
// other service trusts the gateway's header injection instead.
type AuthService struct {
	users      core.UserRepository
	tokens     *token.Service
	bcryptCost int
	logger     *slog.Logger

	// dummyHash is compared against when the email is unknown so login
	// latency does not reveal whether an account exists.
	dummyHash []byte
}

// NewAuthService constructs a new AuthService.
func NewAuthService(opts AuthServiceOptions) (*AuthService, error) {
	if opts.Users == nil {
		return nil, errors.New("UserRepository is required")
	}
	if opts.Tokens == nil {
		return nil, errors.New("token service is required")
	}

	cost := opts.BcryptCost
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte("voiceforge-dummy-credential"), cost)
	if err != nil {
		return nil, fmt.Errorf("generate dummy hash: %w", err)
	}

	var logger *slog.Logger
	if opts.Logger != nil {
		logger = opts.Logger.With("component", "auth_service")
	}

	return &AuthService{
		users:      opts.Users,
		tokens:     opts.Tokens,
		bcryptCost: cost,
		logger:     logger,
		dummyHash:  dummy,
	}, nil
}

// Register creates a new account and returns a freshly issued token. Duplicate
// email or username yields a Conflict without altering the existing record.
func (s *AuthService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.users.ExistsByEmailOrUsername(ctx, req.Email, req.Username)
	if err != nil {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return nil, apperrors.Conflict("user already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "hash password")
	}

	// The unique constraints remain the backstop for concurrent registrations;
	// MapDBError turns that race into the same Conflict.
	user, err := s.users.Create(ctx, &model.User{
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: string(hash),
	})
	if err != nil {
		return nil, err
	}

	if s.logger != nil {
		s.logger.InfoContext(ctx, "user registered", "user_id", user.ID, "username", user.Username)
	}

	return s.authResponse(*user)
}

// Login authenticates an email/password pair. Unknown email and wrong
// password produce identical errors so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	if req == nil {
		return nil, apperrors.Validation("request body is required")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		if apperrors.IsNotFound(err) {
			// Burn a comparison against the dummy hash so the two failure
			// paths cost the same.
			_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(req.Password))
			return nil, apperrors.Unauthorized("invalid credentials")
		}
		return nil, fmt.Errorf("lookup user: %w", err)
	}

	if compareErr := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); compareErr != nil {
		return nil, apperrors.Unauthorized("invalid credentials")
	}

	return s.authResponse(*user)
}

// Validate verifies a raw bearer token and returns its claims. It exists so
// the gateway can delegate all trust decisions to this single service.
func (s *AuthService) Validate(_ context.Context, rawToken string) (*core.VerifiedClaims, error) {
	claims, err := s.tokens.Verify(rawToken)
	if err != nil {
		return nil, err
	}
	return &core.VerifiedClaims{
		UserID:    claims.UserID,
		Email:     claims.Email,
		Username:  claims.Username,
		ExpiresAt: claims.ExpiresAt.Unix(),
	}, nil
}

func (s *AuthService) authResponse(user model.User) (*model.AuthResponse, error) {
	identity := auth.Identity{UserID: user.ID, Email: user.Email, Username: user.Username}
	signed, expiresAt, err := s.tokens.Issue(identity)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	user.PasswordHash = ""
	return &model.AuthResponse{
		Token:     signed,
		ExpiresAt: expiresAt,
		User:      user,
	}, nil
}
