package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/voicehire/voicehire/internal/auth"
	"github.com/voicehire/voicehire/internal/models"
	"github.com/voicehire/voicehire/internal/repositories"
	"github.com/voicehire/voicehire/internal/utils"
)

// LoginResult is the issued token plus the (possibly freshly created) user.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        *models.User
}

type AuthService interface {
	GoogleLogin(ctx context.Context, rawIDToken string) (*LoginResult, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
	RefreshToken(ctx context.Context, userID string) (*LoginResult, error)
	// Logout deletes the user's unexpired session rows. The bearer token
	// itself stays valid until expiry; logout is advisory bookkeeping.
	Logout(ctx context.Context, userID string) (int64, error)
}

type authService struct {
	users    repositories.UserRepository
	sessions repositories.UserSessionRepository
	verifier auth.GoogleVerifier
	roles    *auth.RoleResolver
	tokens   *auth.TokenIssuer
}

func NewAuthService(
	users repositories.UserRepository,
	sessions repositories.UserSessionRepository,
	verifier auth.GoogleVerifier,
	roles *auth.RoleResolver,
	tokens *auth.TokenIssuer,
) AuthService {
	return &authService{users: users, sessions: sessions, verifier: verifier, roles: roles, tokens: tokens}
}

func (s *authService) GoogleLogin(ctx context.Context, rawIDToken string) (*LoginResult, error) {
	const op = "AuthService.GoogleLogin"

	if rawIDToken == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "token is required", nil)
	}

	identity, err := s.verifier.Verify(ctx, rawIDToken)
	if err != nil {
		return nil, utils.E(utils.CodeUnauthorized, op, "invalid Google token", err)
	}

	// role membership is re-evaluated on every login
	role := s.roles.RoleFor(identity.Email)
	now := time.Now().UTC()

	user, err := s.users.GetByEmail(ctx, identity.Email)
	switch {
	case errors.Is(err, utils.ErrNotFound):
		user = &models.User{
			ID:        uuid.NewString(),
			Email:     identity.Email,
			Name:      identity.Name,
			Picture:   identity.Picture,
			Role:      role,
			GoogleID:  identity.GoogleID,
			IsActive:  true,
			CreatedAt: now,
			LastLogin: &now,
		}
		if err := s.users.Insert(ctx, user); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to create user", err)
		}
	case err != nil:
		return nil, utils.E(utils.CodeInternal, op, "failed to look up user", err)
	default:
		user.Role = role
		user.Name = identity.Name
		user.Picture = identity.Picture
		user.LastLogin = &now
		if err := s.users.Save(ctx, user); err != nil {
			return nil, utils.E(utils.CodeInternal, op, "failed to update user", err)
		}
	}

	return s.issue(ctx, op, user)
}

func (s *authService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	const op = "AuthService.GetUser"

	if userID == "" {
		return nil, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			return nil, utils.E(utils.CodeUnauthorized, op, "user not found", err)
		}
		return nil, utils.E(utils.CodeInternal, op, "failed to get user", err)
	}
	return user, nil
}

func (s *authService) RefreshToken(ctx context.Context, userID string) (*LoginResult, error) {
	const op = "AuthService.RefreshToken"

	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.issue(ctx, op, user)
}

func (s *authService) Logout(ctx context.Context, userID string) (int64, error) {
	const op = "AuthService.Logout"

	if userID == "" {
		return 0, utils.E(utils.CodeInvalidArgument, op, "user_id is required", nil)
	}
	deleted, err := s.sessions.DeleteActiveByUser(ctx, userID, time.Now().UTC())
	if err != nil {
		return 0, utils.E(utils.CodeInternal, op, "failed to delete sessions", err)
	}
	return deleted, nil
}

func (s *authService) issue(ctx context.Context, op string, user *models.User) (*LoginResult, error) {
	token, expires, err := s.tokens.Issue(user)
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to sign token", err)
	}

	row := &models.UserSession{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		SessionToken: token,
		ExpiresAt:    expires,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.sessions.Insert(ctx, row); err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to record session", err)
	}

	return &LoginResult{AccessToken: token, ExpiresAt: expires, User: user}, nil
}
