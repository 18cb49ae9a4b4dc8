package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/voicehire/voicehire/internal/auth"
	"github.com/voicehire/voicehire/internal/models"
	"github.com/voicehire/voicehire/internal/repositories"
	"github.com/voicehire/voicehire/internal/utils"
)

type fakeVerifier struct {
	user *auth.GoogleUser
	err  error
}

func (f *fakeVerifier) Verify(ctx context.Context, rawToken string) (*auth.GoogleUser, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.user, nil
}

func newAuthService(t *testing.T, db *gorm.DB, verifier auth.GoogleVerifier, recruiters []string) AuthService {
	t.Helper()
	return NewAuthService(
		repositories.NewUserRepo(db),
		repositories.NewUserSessionRepo(db),
		verifier,
		auth.NewRoleResolver(recruiters),
		auth.NewTokenIssuer("test-secret", time.Hour),
	)
}

func TestGoogleLoginCreatesUser(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	verifier := &fakeVerifier{user: &auth.GoogleUser{
		Email:    "jane@example.com",
		Name:     "Jane Smith",
		Picture:  "https://example.com/jane.png",
		GoogleID: "google-123",
	}}
	svc := newAuthService(t, db, verifier, []string{"hr@acme.com"})

	result, err := svc.GoogleLogin(context.Background(), "raw-token")
	require.NoError(t, err)
	assert.NotEmpty(t, result.AccessToken)
	assert.Equal(t, models.RoleCandidate, result.User.Role)
	assert.Equal(t, "Jane Smith", result.User.Name)
	require.NotNil(t, result.User.LastLogin)

	// a session row is recorded for the issued token
	var sessions int64
	require.NoError(t, db.Model(&models.UserSession{}).
		Where("user_id = ?", result.User.ID).Count(&sessions).Error)
	assert.EqualValues(t, 1, sessions)
}

func TestGoogleLoginAssignsRecruiterRole(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	verifier := &fakeVerifier{user: &auth.GoogleUser{Email: "hr@acme.com", Name: "HR"}}
	svc := newAuthService(t, db, verifier, []string{"hr@acme.com"})

	result, err := svc.GoogleLogin(context.Background(), "raw-token")
	require.NoError(t, err)
	assert.Equal(t, models.RoleRecruiter, result.User.Role)
}

func TestGoogleLoginReevaluatesRole(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	verifier := &fakeVerifier{user: &auth.GoogleUser{Email: "jane@example.com", Name: "Jane"}}

	first, err := newAuthService(t, db, verifier, nil).GoogleLogin(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, models.RoleCandidate, first.User.Role)

	// the allow-list now includes her; next login promotes the stored user
	second, err := newAuthService(t, db, verifier, []string{"jane@example.com"}).GoogleLogin(context.Background(), "t")
	require.NoError(t, err)
	assert.Equal(t, first.User.ID, second.User.ID)
	assert.Equal(t, models.RoleRecruiter, second.User.Role)
}

func TestGoogleLoginRejectsInvalidToken(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newAuthService(t, db, &fakeVerifier{err: errors.New("bad token")}, nil)

	_, err := svc.GoogleLogin(context.Background(), "raw-token")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}

func TestGoogleLoginRequiresToken(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	svc := newAuthService(t, db, &fakeVerifier{}, nil)

	_, err := svc.GoogleLogin(context.Background(), "")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeInvalidArgument))
}

func TestLogoutDeletesActiveSessions(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	verifier := &fakeVerifier{user: &auth.GoogleUser{Email: "jane@example.com", Name: "Jane"}}
	svc := newAuthService(t, db, verifier, nil)
	ctx := context.Background()

	first, err := svc.GoogleLogin(ctx, "t")
	require.NoError(t, err)
	_, err = svc.GoogleLogin(ctx, "t")
	require.NoError(t, err)

	deleted, err := svc.Logout(ctx, first.User.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, deleted)

	deleted, err = svc.Logout(ctx, first.User.ID)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestRefreshToken(t *testing.T) {
	t.Parallel()
	db := newTestDB(t)
	verifier := &fakeVerifier{user: &auth.GoogleUser{Email: "jane@example.com", Name: "Jane"}}
	svc := newAuthService(t, db, verifier, nil)
	ctx := context.Background()

	login, err := svc.GoogleLogin(ctx, "t")
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, login.User.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.Equal(t, login.User.ID, refreshed.User.ID)

	_, err = svc.RefreshToken(ctx, "no-such-user")
	require.Error(t, err)
	assert.True(t, utils.IsCode(err, utils.CodeUnauthorized))
}
