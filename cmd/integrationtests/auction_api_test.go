package integrationtests

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// The central bidding scenario: price 10, a bid of 15 is accepted, a later
// bid of 12 is rejected without side effects, a bid of 20 is accepted.
func TestBiddingScenario(t *testing.T) {
	env := SetupTestEnv(t)

	_, sellerToken := RegisterAndLogin(t, env.Router, "seller", "seller123", "seller@example.com")
	_, aliceToken := RegisterAndLogin(t, env.Router, "alice", "alice123", "alice@example.com")
	_, bobToken := RegisterAndLogin(t, env.Router, "bob", "bob12345", "bob@example.com")

	itemID := CreateItem(t, env.Router, sellerToken, "antique clock", 10)

	// alice bids 15, accepted
	resp, w := ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/items/"+itemID+"/bids",
		map[string]any{"bid_amount": 15}, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code)
	require.Equal(t, 15.0, resp["data"].(map[string]any)["bid_amount"])

	// bob bids 12, rejected
	resp, w = ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/items/"+itemID+"/bids",
		map[string]any{"bid_amount": 12}, bobToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Contains(t, resp["message"], "bid amount must be higher than the current price")

	// the rejected bid left no trace
	resp, w = ExecuteRequestAndParse(t, env.Router, http.MethodGet, "/items/"+itemID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 15.0, resp["data"].(map[string]any)["current_price"])

	// bob bids 20, accepted
	_, w = ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/items/"+itemID+"/bids",
		map[string]any{"bid_amount": 20}, bobToken)
	require.Equal(t, http.StatusCreated, w.Code)

	resp, w = ExecuteRequestAndParse(t, env.Router, http.MethodGet, "/items/"+itemID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 20.0, resp["data"].(map[string]any)["current_price"])

	// two accepted bids on record, newest first
	resp, w = ExecuteRequestAndParse(t, env.Router, http.MethodGet, "/items/"+itemID+"/bids", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	bids := resp["data"].([]any)
	require.Len(t, bids, 2)
	require.Equal(t, 20.0, bids[0].(map[string]any)["bid_amount"])
	require.Equal(t, 15.0, bids[1].(map[string]any)["bid_amount"])

	// exactly two notification rows exist: seller for the first bid, alice
	// for being outbid. bob, the high bidder, has none.
	resp, w = ExecuteRequestAndParse(t, env.Router, http.MethodGet, "/notifications", nil, sellerToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"], 1)

	resp, w = ExecuteRequestAndParse(t, env.Router, http.MethodGet, "/notifications", nil, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"], 1)

	resp, w = ExecuteRequestAndParse(t, env.Router, http.MethodGet, "/notifications", nil, bobToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, resp["data"])
}

// Bidding requires authentication
func TestPlaceBidRequiresAuth(t *testing.T) {
	env := SetupTestEnv(t)
	_, sellerToken := RegisterAndLogin(t, env.Router, "seller", "seller123", "seller@example.com")
	itemID := CreateItem(t, env.Router, sellerToken, "lamp", 5)

	_, w := ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/items/"+itemID+"/bids",
		map[string]any{"bid_amount": 10}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// Bids on expired or unknown items are rejected
func TestPlaceBidEdgeCases(t *testing.T) {
	env := SetupTestEnv(t)
	_, token := RegisterAndLogin(t, env.Router, "bidder", "bidder123", "bidder@example.com")

	t.Run("unknown_item", func(t *testing.T) {
		resp, w := ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/items/ghost/bids",
			map[string]any{"bid_amount": 10}, token)
		require.Equal(t, http.StatusNotFound, w.Code)
		require.Contains(t, resp["message"], "item not found")
	})

	t.Run("closed_auction", func(t *testing.T) {
		env.Store.AddItem(modelItem("expired", "seller-x", 10, time.Now().Add(-time.Hour)))

		resp, w := ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/items/expired/bids",
			map[string]any{"bid_amount": 50}, token)
		require.Equal(t, http.StatusBadRequest, w.Code)
		require.Contains(t, resp["message"], "auction has ended")
	})
}

// Item CRUD, including the owner-only rules
func TestItemLifecycle(t *testing.T) {
	env := SetupTestEnv(t)
	_, ownerToken := RegisterAndLogin(t, env.Router, "owner", "owner1234", "owner@example.com")
	_, otherToken := RegisterAndLogin(t, env.Router, "other", "other1234", "other@example.com")

	itemID := CreateItem(t, env.Router, ownerToken, "vase", 50)

	// anyone can list and read
	resp, w := ExecuteRequestAndParse(t, env.Router, http.MethodGet, "/items", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"], 1)

	// creation requires auth
	_, w = ExecuteRequestAndParse(t, env.Router, http.MethodPost, "/items", map[string]any{
		"name": "sneaky", "starting_price": 1,
		"end_time": time.Now().Add(time.Hour).UTC().Format(time.RFC3339),
	}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)

	// non-owner cannot update
	_, w = ExecuteRequestAndParse(t, env.Router, http.MethodPut, "/items/"+itemID,
		map[string]any{"name": "stolen"}, otherToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	// owner can update
	resp, w = ExecuteRequestAndParse(t, env.Router, http.MethodPut, "/items/"+itemID,
		map[string]any{"name": "ming vase"}, ownerToken)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "ming vase", resp["data"].(map[string]any)["name"])

	// non-owner cannot delete
	_, w = ExecuteRequestAndParse(t, env.Router, http.MethodDelete, "/items/"+itemID, nil, otherToken)
	require.Equal(t, http.StatusForbidden, w.Code)

	// owner can delete
	_, w = ExecuteRequestAndParse(t, env.Router, http.MethodDelete, "/items/"+itemID, nil, ownerToken)
	require.Equal(t, http.StatusOK, w.Code)

	_, w = ExecuteRequestAndParse(t, env.Router, http.MethodGet, "/items/"+itemID, nil, "")
	require.Equal(t, http.StatusNotFound, w.Code)
}

// Requests are rejected once the per-IP budget is spent
func TestRateLimiter(t *testing.T) {
	env := SetupTestEnv(t)

	// rebuild the router with a tight limit
	limited := limitedRouter(t, env, 3)

	for i := 0; i < 3; i++ {
		_, w := ExecuteRequestAndParse(t, limited, http.MethodGet, "/items", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
	}
	_, w := ExecuteRequestAndParse(t, limited, http.MethodGet, "/items", nil, "")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
}
