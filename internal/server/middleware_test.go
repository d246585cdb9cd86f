package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"auction-house/internal/auth"
	"auction-house/internal/repository"
	"auction-house/utils"
)

func newAuthTestRouter(t *testing.T) (*gin.Engine, *auth.Gate) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	gate := auth.NewGate(store.Users(), auth.LogMailer{}, auth.Secrets{
		JWTSecret: []byte("middleware-test-secret"),
		TokenTTL:  time.Hour,
		ResetTTL:  time.Hour,
	}, "http://localhost")

	router := gin.New()
	router.GET("/protected", AuthRequired(gate), func(c *gin.Context) {
		user, ok := utils.CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"user_id": user.UserID})
	})
	return router, gate
}

func TestAuthRequired(t *testing.T) {
	router, gate := newAuthTestRouter(t)

	_, err := gate.Register("alam", "alam1234", "alam@example.com")
	require.NoError(t, err)
	token, err := gate.Login("alam", "alam1234")
	require.NoError(t, err)

	tests := []struct {
		name           string
		authorization  string
		expectedStatus int
	}{
		{name: "valid_token", authorization: "Bearer " + token, expectedStatus: http.StatusOK},
		{name: "missing_header", authorization: "", expectedStatus: http.StatusUnauthorized},
		{name: "no_bearer_prefix", authorization: token, expectedStatus: http.StatusUnauthorized},
		{name: "garbage_token", authorization: "Bearer not.a.token", expectedStatus: http.StatusUnauthorized},
	}

	for _, tc := range tests {
		tc := tc

		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.authorization != "" {
				req.Header.Set("Authorization", tc.authorization)
			}
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			require.Equal(t, tc.expectedStatus, w.Code)
		})
	}
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimiter(time.Minute, 2))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}

func TestRateLimiter_WindowResets(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(RateLimiter(50*time.Millisecond, 1))
	router.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusTooManyRequests, w.Code)

	time.Sleep(60 * time.Millisecond)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusOK, w.Code)
}
