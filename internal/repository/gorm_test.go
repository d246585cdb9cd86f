package repository

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
)

// newSQLiteStore migrates the schema into a throwaway SQLite file. The
// repository code under test is the same code that runs against Postgres.
func newSQLiteStore(t *testing.T) *GormStore {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "auction.db")), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	store, err := NewGormStoreWithDB(db)
	require.NoError(t, err)
	return store
}

func TestGormStore_UserUniqueness(t *testing.T) {
	users := newSQLiteStore(t).Users()

	first := model.User{UserID: "u1", Username: "alam", Email: "alam@example.com", PasswordHash: "x"}
	require.NoError(t, users.Create(&first))

	sameName := model.User{UserID: "u2", Username: "alam", Email: "other@example.com", PasswordHash: "x"}
	err := users.Create(&sameName)
	require.Error(t, err)
	require.True(t, errors.Is(err, auctionerrors.ErrDuplicateUser))

	sameEmail := model.User{UserID: "u3", Username: "other", Email: "alam@example.com", PasswordHash: "x"}
	err = users.Create(&sameEmail)
	require.Error(t, err)
	require.True(t, errors.Is(err, auctionerrors.ErrDuplicateUser))
}

func TestGormStore_UserLookupsAndUpdate(t *testing.T) {
	users := newSQLiteStore(t).Users()

	user := model.User{UserID: "u1", Username: "alam", Email: "alam@example.com", PasswordHash: "x"}
	require.NoError(t, users.Create(&user))

	byName, err := users.GetByUsername("alam")
	require.NoError(t, err)
	require.Equal(t, "u1", byName.UserID)

	byEmail, err := users.GetByEmail("alam@example.com")
	require.NoError(t, err)
	require.Equal(t, "u1", byEmail.UserID)

	_, err = users.GetByID("ghost")
	require.True(t, errors.Is(err, auctionerrors.ErrUserNotFound))

	// Set a reset token, look it up, then clear it again through Update.
	token := "reset-token-1"
	expires := time.Now().UTC().Add(time.Hour)
	byName.ResetToken = &token
	byName.ResetExpires = &expires
	require.NoError(t, users.Update(byName))

	byToken, err := users.GetByResetToken(token)
	require.NoError(t, err)
	require.Equal(t, "u1", byToken.UserID)

	byToken.ResetToken = nil
	byToken.ResetExpires = nil
	require.NoError(t, users.Update(byToken))

	_, err = users.GetByResetToken(token)
	require.True(t, errors.Is(err, auctionerrors.ErrUserNotFound), "cleared token must not resolve")
}

func TestGormStore_ItemCRUD(t *testing.T) {
	items := newSQLiteStore(t).Items()

	item := model.Item{
		ItemID:        "item1",
		OwnerID:       "owner1",
		Name:          "vase",
		StartingPrice: 50,
		CurrentPrice:  50,
		EndTime:       time.Now().Add(time.Hour).UTC(),
		CreatedAt:     time.Now().UTC(),
	}
	require.NoError(t, items.Create(&item))

	got, err := items.Get("item1")
	require.NoError(t, err)
	require.Equal(t, "vase", got.Name)

	got.Name = "urn"
	got.CurrentPrice = 9999 // must be ignored by Update
	require.NoError(t, items.Update(got))

	got, err = items.Get("item1")
	require.NoError(t, err)
	require.Equal(t, "urn", got.Name)
	require.Equal(t, 50.0, got.CurrentPrice, "metadata updates never touch the price")

	all, err := items.List()
	require.NoError(t, err)
	require.Len(t, all, 1)

	require.NoError(t, items.Delete("item1"))
	err = items.Delete("item1")
	require.True(t, errors.Is(err, auctionerrors.ErrItemNotFound))
	_, err = items.Get("item1")
	require.True(t, errors.Is(err, auctionerrors.ErrItemNotFound))
}

func TestGormStore_RecordAccepted(t *testing.T) {
	store := newSQLiteStore(t)
	require.NoError(t, store.Items().Create(&model.Item{
		ItemID:        "item1",
		OwnerID:       "owner1",
		Name:          "clock",
		StartingPrice: 100,
		CurrentPrice:  100,
		EndTime:       time.Now().Add(time.Hour).UTC(),
		CreatedAt:     time.Now().UTC(),
	}))
	bids := store.Bids()

	now := time.Now().UTC()

	t.Run("first_bid_has_no_displaced", func(t *testing.T) {
		displaced, err := bids.RecordAccepted(model.Bid{
			BidID: "b1", ItemID: "item1", UserID: "u1", Amount: 150, CreatedAt: now,
		}, 100)
		require.NoError(t, err)
		require.Nil(t, displaced)

		item, err := store.Items().Get("item1")
		require.NoError(t, err)
		require.Equal(t, 150.0, item.CurrentPrice)
	})

	t.Run("second_bid_displaces_first", func(t *testing.T) {
		displaced, err := bids.RecordAccepted(model.Bid{
			BidID: "b2", ItemID: "item1", UserID: "u2", Amount: 200, CreatedAt: now.Add(time.Second),
		}, 150)
		require.NoError(t, err)
		require.NotNil(t, displaced)
		require.Equal(t, "u1", displaced.UserID)
	})

	t.Run("stale_prior_price_rolls_back", func(t *testing.T) {
		_, err := bids.RecordAccepted(model.Bid{
			BidID: "b3", ItemID: "item1", UserID: "u3", Amount: 300, CreatedAt: now.Add(2 * time.Second),
		}, 150)
		require.Error(t, err)
		require.True(t, errors.Is(err, auctionerrors.ErrPriceConflict))

		item, err := store.Items().Get("item1")
		require.NoError(t, err)
		require.Equal(t, 200.0, item.CurrentPrice)

		all, err := bids.ListByItem("item1")
		require.NoError(t, err)
		require.Len(t, all, 2, "the rolled-back bid row must be gone")
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

func TestGormStore_Notifications(t *testing.T) {
	repo := newSQLiteStore(t).Notifications()

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
	require.NoError(t, repo.MarkRead("u1", []string{"n2"})) // idempotent
	unread, err = repo.ListUnread("u1")
	require.NoError(t, err)
	require.Len(t, unread, 2)

	// Another user cannot mark u1's rows.
	require.NoError(t, repo.MarkRead("u2", []string{"n1"}))
	unread, err = repo.ListUnread("u1")
	require.NoError(t, err)
	require.Len(t, unread, 2)

	unread, err = repo.ListUnread("nobody")
	require.NoError(t, err)
	require.Empty(t, unread)
}
