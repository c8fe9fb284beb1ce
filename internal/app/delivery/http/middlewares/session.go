package middlewares

import (
	"context"
	"net/http"
	"strings"
	"tokenbook-service/internal/app/models"
	"tokenbook-service/internal/pkg/constvars"
	"tokenbook-service/internal/pkg/exceptions"
	"tokenbook-service/internal/pkg/utils"
)

// Authenticate requires a valid bearer token and places the caller's session
// in the request context. Tokens carry the identity claims directly, so no
// session store round trip is needed.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}

		token := strings.TrimPrefix(authHeader, "Bearer ")
		claims, err := utils.ParseJWT(token, m.InternalConfig.JWT.Secret)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(err))
			return
		}

		session := &models.Session{
			UserID:    claimString(claims, "sub"),
			Role:      claimString(claims, "role"),
			PatientID: claimString(claims, "patient_id"),
			DoctorID:  claimString(claims, "doctor_id"),
		}
		if session.UserID == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(nil))
			return
		}

		ctx := context.WithValue(r.Context(), constvars.CONTEXT_SESSION_DATA_KEY, session)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimString(claims map[string]interface{}, key string) string {
	value, _ := claims[key].(string)
	return value
}
