package middlewares

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
	"tokenbook-service/internal/app/config"
	"tokenbook-service/internal/app/models"
	"tokenbook-service/internal/pkg/constvars"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testJWTSecret = "test-secret"

func signTestToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return signed
}

func newTestMiddlewares() *Middlewares {
	return NewMiddlewares(zap.NewNop(), &config.InternalConfig{
		JWT: config.JWT{Secret: testJWTSecret},
	})
}

func TestAuthenticate(t *testing.T) {
	m := newTestMiddlewares()

	var gotSession *models.Session
	handler := m.Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotSession, _ = r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
		w.WriteHeader(http.StatusOK)
	}))

	t.Run("valid token populates session", func(t *testing.T) {
		gotSession = nil
		token := signTestToken(t, jwt.MapClaims{
			"sub":        "user-1",
			"role":       "patient",
			"patient_id": "pat-1",
			"exp":        time.Now().Add(time.Hour).Unix(),
		})

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotNil(t, gotSession)
		assert.Equal(t, "user-1", gotSession.UserID)
		assert.Equal(t, "pat-1", gotSession.PatientID)
		assert.True(t, gotSession.IsPatient())
	})

	t.Run("missing header rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("expired token rejected", func(t *testing.T) {
		token := signTestToken(t, jwt.MapClaims{
			"sub": "user-1",
			"exp": time.Now().Add(-time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
		signed, err := token.SignedString([]byte("other-secret"))
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+signed)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("token without subject rejected", func(t *testing.T) {
		token := signTestToken(t, jwt.MapClaims{"role": "patient"})
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer "+token)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares()

	var gotRequestID string
	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotRequestID, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	}))

	t.Run("generates an id when the client sends none", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.NotEmpty(t, gotRequestID)
		assert.Contains(t, gotRequestID, constvars.REQUEST_ID_PREFIX)
		assert.Equal(t, gotRequestID, rec.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("propagates a client-supplied id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderXRequestID, "client-id-42")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		assert.Equal(t, "client-id-42", gotRequestID)
		assert.Equal(t, "client-id-42", rec.Header().Get(constvars.HeaderXRequestID))
	})
}
