package repository

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
)

func TestMemoryStore_UserUniqueness(t *testing.T) {
	users := NewMemoryStore().Users()

	first := model.User{UserID: "u1", Username: "alam", Email: "alam@example.com"}
	require.NoError(t, users.Create(&first))

	sameName := model.User{UserID: "u2", Username: "alam", Email: "other@example.com"}
	err := users.Create(&sameName)
	require.Error(t, err)
	require.True(t, errors.Is(err, auctionerrors.ErrDuplicateUser))

	sameEmail := model.User{UserID: "u3", Username: "other", Email: "alam@example.com"}
	err = users.Create(&sameEmail)
	require.Error(t, err)
	require.True(t, errors.Is(err, auctionerrors.ErrDuplicateUser))
}

func TestMemoryStore_RecordAccepted(t *testing.T) {
	store := NewMemoryStore()
	store.AddItem(model.Item{ItemID: "item1", StartingPrice: 100})
	bids := store.Bids()

	t.Run("first_bid_has_no_displaced", func(t *testing.T) {
		displaced, err := bids.RecordAccepted(model.Bid{BidID: "b1", ItemID: "item1", UserID: "u1", Amount: 150}, 100)
		require.NoError(t, err)
		require.Nil(t, displaced)

		item, err := store.Items().Get("item1")
		require.NoError(t, err)
		require.Equal(t, 150.0, item.CurrentPrice)
	})

	t.Run("second_bid_displaces_first", func(t *testing.T) {
		displaced, err := bids.RecordAccepted(model.Bid{BidID: "b2", ItemID: "item1", UserID: "u2", Amount: 200}, 150)
		require.NoError(t, err)
		require.NotNil(t, displaced)
		require.Equal(t, "u1", displaced.UserID)
	})

	t.Run("stale_prior_price_conflicts", func(t *testing.T) {
		_, err := bids.RecordAccepted(model.Bid{BidID: "b3", ItemID: "item1", UserID: "u3", Amount: 300}, 150)
		require.Error(t, err)
		require.True(t, errors.Is(err, auctionerrors.ErrPriceConflict))

		// The conflicted bid leaves no trace.
		item, err := store.Items().Get("item1")
		require.NoError(t, err)
		require.Equal(t, 200.0, item.CurrentPrice)
		all, err := bids.ListByItem("item1")
		require.NoError(t, err)
		require.Len(t, all, 2)
	})

	t.Run("unknown_item", func(t *testing.T) {
		_, err := bids.RecordAccepted(model.Bid{BidID: "b4", ItemID: "ghost", UserID: "u1", Amount: 10}, 0)
		require.Error(t, err)
		require.True(t, errors.Is(err, auctionerrors.ErrItemNotFound))
	})

	t.Run("list_is_newest_first", func(t *testing.T) {
		all, err := bids.ListByItem("item1")
		require.NoError(t, err)
		require.Len(t, all, 2)
		require.Equal(t, "b2", all[0].BidID)
		require.Equal(t, "b1", all[1].BidID)
	})
}

func TestMemoryStore_DeleteItemDropsBids(t *testing.T) {
	store := NewMemoryStore()
	store.AddItem(model.Item{ItemID: "item1", StartingPrice: 10})

	_, err := store.Bids().RecordAccepted(model.Bid{BidID: "b1", ItemID: "item1", UserID: "u1", Amount: 20}, 10)
	require.NoError(t, err)

	require.NoError(t, store.Items().Delete("item1"))

	_, err = store.Items().Get("item1")
	require.True(t, errors.Is(err, auctionerrors.ErrItemNotFound))
	remaining, err := store.Bids().ListByItem("item1")
	require.NoError(t, err)
	require.Empty(t, remaining)
}

func TestMemoryStore_Notifications(t *testing.T) {
	store := NewMemoryStore()
	repo := store.Notifications()

	now := time.Now().UTC()
	for i, id := range []string{"n1", "n2", "n3"} {
		require.NoError(t, repo.Create(&model.Notification{
			NotificationID: id,
			UserID:         "u1",
			Payload:        "payload " + id,
			CreatedAt:      now.Add(time.Duration(i) * time.Second),
		}))
	}

	unread, err := repo.ListUnread("u1")
	require.NoError(t, err)
	require.Len(t, unread, 3)
	require.Equal(t, "n1", unread[0].NotificationID, "unread list is oldest first")

	require.NoError(t, repo.MarkRead("u1", []string{"n2", "no-such-id"}))
	unread, err = repo.ListUnread("u1")
	require.NoError(t, err)
	require.Len(t, unread, 2)

	// Another user's mark-read cannot touch u1's rows.
	require.NoError(t, repo.MarkRead("u2", []string{"n1"}))
	unread, err = repo.ListUnread("u1")
	require.NoError(t, err)
	require.Len(t, unread, 2)
}
