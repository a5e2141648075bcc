package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studybuddy/backend/config"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Auth(&config.Config{JWTSecret: testSecret}))
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"uid":   UserID(c),
			"name":  c.GetString(CtxName),
			"email": c.GetString(CtxEmail),
		})
	})
	return r
}

func TestAuth_ValidTokenSetsIdentity(t *testing.T) {
	r := newAuthRouter()
	token := signToken(t, testSecret, Claims{
		Name:  "Ada",
		Email: "ada@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "uid-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"uid":"uid-1"`)
	assert.Contains(t, w.Body.String(), `"email":"ada@example.com"`)
}

func TestAuth_MissingHeaderIsUnauthorized(t *testing.T) {
	r := newAuthRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "missing authorization header")
}

func TestAuth_RejectsBadTokens(t *testing.T) {
	tests := map[string]string{
		"garbage": "Bearer not-a-token",
		"wrong secret": "Bearer " + signToken(t, "other-secret", Claims{
			RegisteredClaims: jwt.RegisteredClaims{Subject: "uid-1"},
		}),
		"expired": "Bearer " + signToken(t, testSecret, Claims{
			RegisteredClaims: jwt.RegisteredClaims{
				Subject:   "uid-1",
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			},
		}),
		"no subject": "Bearer " + signToken(t, testSecret, Claims{Name: "Ada"}),
	}

	r := newAuthRouter()
	for name, header := range tests {
		t.Run(name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
			req.Header.Set("Authorization", header)
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}
