package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"auction-house/internal/auction"
	"auction-house/internal/auth"
	model "auction-house/internal/models"
	"auction-house/internal/notification"
	"auction-house/internal/repository"
	"auction-house/internal/server"
	userhelpers "auction-house/services/users/helpers"
)

// captureMailer records outgoing mail instead of sending it.
type captureMailer struct {
	sent []string // bodies
}

func (m *captureMailer) Send(to, subject, body string) error {
	m.sent = append(m.sent, body)
	return nil
}

// testEnv is a full application wired over the in-memory store.
type testEnv struct {
	Router     *gin.Engine
	Store      *repository.MemoryStore
	Mailer     *captureMailer
	Dispatcher *notification.Dispatcher
	Ledger     *auction.Ledger
	Gate       *auth.Gate
}

// SetupTestEnv builds the whole stack the way main does, minus the
// listener, SMTP and Postgres.
func SetupTestEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := repository.NewMemoryStore()
	mailer := &captureMailer{}

	dispatcher := notification.NewDispatcher(store.Notifications())
	dispatcher.Start()
	t.Cleanup(dispatcher.Close)

	ledger := auction.NewLedger(store.Items(), store.Bids(), dispatcher)
	gate := auth.NewGate(store.Users(), mailer, auth.Secrets{
		JWTSecret: []byte("integration-test-secret"),
		TokenTTL:  time.Hour,
		ResetTTL:  time.Hour,
	}, "http://localhost:8080/users/reset-password")

	router := server.SetupRouter(gate, ledger, dispatcher, server.RouterConfig{})
	return &testEnv{Router: router, Store: store, Mailer: mailer, Dispatcher: dispatcher, Ledger: ledger, Gate: gate}
}

// limitedRouter rebuilds the router over the same stores with a per-IP
// request budget, for exercising the rate limiter.
func limitedRouter(t *testing.T, env *testEnv, max int) *gin.Engine {
	t.Helper()
	return server.SetupRouter(env.Gate, env.Ledger, env.Dispatcher, server.RouterConfig{
		RateLimitWindow: time.Minute,
		RateLimitMax:    max,
	})
}

// modelItem builds a seedable item with the current price at the starting price.
func modelItem(itemID, ownerID string, startingPrice float64, endTime time.Time) model.Item {
	return model.Item{
		ItemID:        itemID,
		OwnerID:       ownerID,
		Name:          "seeded " + itemID,
		StartingPrice: startingPrice,
		CurrentPrice:  startingPrice,
		EndTime:       endTime,
		CreatedAt:     time.Now().UTC(),
	}
}

// ExecuteRequest executes an HTTP request and returns the response recorder.
// token may be empty for unauthenticated requests.
func ExecuteRequest(t *testing.T, router *gin.Engine, method, url string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reqBody []byte
	var err error
	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// ExecuteRequestAndParse executes a request and parses the JSON response.
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url string, body any, token string) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	w := ExecuteRequest(t, router, method, url, body, token)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp), "response must be JSON: %s", w.Body.String())
	}
	return resp, w
}

// RegisterAndLogin creates an account and returns its userID and a bearer token.
func RegisterAndLogin(t *testing.T, router *gin.Engine, username, password, email string) (string, string) {
	t.Helper()

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/users/register", userhelpers.RegisterRequest{
		Username: username,
		Password: password,
		Email:    email,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, "register failed: %s", w.Body.String())
	userID := resp["data"].(map[string]any)["user_id"].(string)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/users/login", userhelpers.LoginRequest{
		Username: username,
		Password: password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, "login failed: %s", w.Body.String())
	token := resp["token"].(string)
	require.NotEmpty(t, token)

	return userID, token
}

// CreateItem lists an item through the API and returns its item_id.
func CreateItem(t *testing.T, router *gin.Engine, token, name string, startingPrice float64) string {
	t.Helper()

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/items", map[string]any{
		"name":           name,
		"description":    "integration test item",
		"starting_price": startingPrice,
		"end_time":       time.Now().Add(24 * time.Hour).UTC().Format(time.RFC3339),
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, "create item failed: %s", w.Body.String())
	return resp["data"].(map[string]any)["item_id"].(string)
}
