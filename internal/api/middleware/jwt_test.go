package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voicehire/voicehire/internal/auth"
	"github.com/voicehire/voicehire/internal/models"
)

func newProtectedRouter(t *testing.T, tokens *auth.TokenIssuer, role string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	chain := []gin.HandlerFunc{JWTAuth(tokens)}
	if role != "" {
		chain = append(chain, RequireRole(role))
	}
	chain = append(chain, func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	r.GET("/protected", chain...)
	return r
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenIssuer("secret", time.Hour)
	signed, _, err := tokens.Issue(&models.User{ID: "u1", Email: "u@x.com", Role: models.RoleCandidate})
	require.NoError(t, err)

	r := newProtectedRouter(t, tokens, "")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "u1")
}

func TestJWTAuthRejectsMissingHeader(t *testing.T) {
	t.Parallel()

	r := newProtectedRouter(t, auth.NewTokenIssuer("secret", time.Hour), "")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsMalformedHeader(t *testing.T) {
	t.Parallel()

	r := newProtectedRouter(t, auth.NewTokenIssuer("secret", time.Hour), "")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestJWTAuthRejectsForgedToken(t *testing.T) {
	t.Parallel()

	forged, _, err := auth.NewTokenIssuer("other-secret", time.Hour).
		Issue(&models.User{ID: "u1", Email: "u@x.com", Role: models.RoleCandidate})
	require.NoError(t, err)

	r := newProtectedRouter(t, auth.NewTokenIssuer("secret", time.Hour), "")
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireRole(t *testing.T) {
	t.Parallel()

	tokens := auth.NewTokenIssuer("secret", time.Hour)
	r := newProtectedRouter(t, tokens, "recruiter")

	recruiterToken, _, err := tokens.Issue(&models.User{ID: "r1", Email: "r@x.com", Role: models.RoleRecruiter})
	require.NoError(t, err)
	candidateToken, _, err := tokens.Issue(&models.User{ID: "c1", Email: "c@x.com", Role: models.RoleCandidate})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+recruiterToken)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+candidateToken)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
