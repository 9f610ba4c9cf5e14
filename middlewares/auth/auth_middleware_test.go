package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/carkumbh/backend/utils"
)

func newProtectedRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Protect(), func(c *gin.Context) {
		sub, _ := c.Get("sub")
		c.JSON(http.StatusOK, gin.H{"sub": sub})
	})
	return r
}

func signedToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(utils.GetJWTSecret())
	require.NoError(t, err)
	return token
}

func TestProtectAllowsValidToken(t *testing.T) {
	r := newProtectedRouter()
	adminID := uuid.New().String()

	token := signedToken(t, jwt.MapClaims{
		"sub": adminID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), adminID)
}

func TestProtectRejectsBadRequests(t *testing.T) {
	r := newProtectedRouter()

	expired := signedToken(t, jwt.MapClaims{
		"sub": uuid.New().String(),
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	cases := map[string]string{
		"missing header": "",
		"not bearer":     "Token abc",
		"garbage token":  "Bearer not.a.jwt",
		"expired token":  "Bearer " + expired,
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			req, _ := http.NewRequest("GET", "/protected", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestProtectRejectsTokenWithoutSubject(t *testing.T) {
	r := newProtectedRouter()

	token := signedToken(t, jwt.MapClaims{
		"exp": time.Now().Add(time.Hour).Unix(),
	})

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
