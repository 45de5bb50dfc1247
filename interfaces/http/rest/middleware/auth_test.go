package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	apperrors "ntlango-api/pkg/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func signedTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return token
}

func newProtectedHandler(t *testing.T) (http.Handler, *http.Request) {
	t.Helper()

	logger := zap.NewNop()
	mw := RequireAccessToken(apperrors.NewErrorHandler(logger, false), logger)

	handler := mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, _ := AccessTokenFromContext(r.Context())
		username, _ := UsernameFromContext(r.Context())
		json.NewEncoder(w).Encode(map[string]string{"token": token, "username": username})
	}))

	return handler, httptest.NewRequest(http.MethodPost, "/auth/logout", nil)
}

func TestRequireAccessTokenMissingHeaderIs401(t *testing.T) {
	handler, req := newProtectedHandler(t)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "UnauthenticatedException", body["errorType"])
	assert.Equal(t, "Missing authorization header", body["message"])
}

func TestRequireAccessTokenExtractsBearerToken(t *testing.T) {
	handler, req := newProtectedHandler(t)
	token := signedTestToken(t, jwt.MapClaims{"username": "ada", "sub": "abc-123"})
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, token, body["token"])
	assert.Equal(t, "ada", body["username"])
}

func TestRequireAccessTokenFallsBackToSubClaim(t *testing.T) {
	handler, req := newProtectedHandler(t)
	token := signedTestToken(t, jwt.MapClaims{"sub": "abc-123"})
	req.Header.Set("Authorization", "Bearer "+token)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "abc-123", body["username"])
}

func TestRequireAccessTokenPassesGarbledTokenThrough(t *testing.T) {
	// The provider rejects bad tokens authoritatively; the middleware only
	// fails on an absent header.
	handler, req := newProtectedHandler(t)
	req.Header.Set("Authorization", "Bearer not-a-jwt")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "not-a-jwt", body["token"])
	assert.Empty(t, body["username"])
}
