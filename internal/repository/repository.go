package repository

import (
	model "auction-house/internal/models"
)

//go:generate mockgen -source=repository.go -destination=mock_repository.go -package=repository

// UserRepository is the persistence interface for user accounts.
type UserRepository interface {
	Create(user *model.User) error
	GetByID(userID string) (model.User, error)
	GetByUsername(username string) (model.User, error)
	GetByEmail(email string) (model.User, error)
	GetByResetToken(token string) (model.User, error)
	Update(user model.User) error
}

// ItemRepository is the persistence interface for auction listings.
type ItemRepository interface {
	Create(item *model.Item) error
	Get(itemID string) (model.Item, error)
	List() ([]model.Item, error)
	Update(item model.Item) error
	Delete(itemID string) error
}

// BidRepository is the persistence interface for accepted bids.
type BidRepository interface {
	// RecordAccepted persists the bid and advances the item's current price
	// from priorPrice to bid.Amount as a single atomic unit. If the item's
	// current price no longer equals priorPrice the whole operation is rolled
	// back and ErrPriceConflict is returned, so no concurrent update is ever
	// lost. The bid it displaced as the highest is returned, nil for the
	// first bid on an item.
	RecordAccepted(bid model.Bid, priorPrice float64) (*model.Bid, error)

	// ListByItem returns all bids on an item, newest first.
	ListByItem(itemID string) ([]model.Bid, error)
}

// NotificationRepository is the persistence interface for notifications.
type NotificationRepository interface {
	Create(notification *model.Notification) error

	// ListUnread returns unread notifications for the user, oldest first.
	ListUnread(userID string) ([]model.Notification, error)

	// MarkRead flips is_read for the given ids, but only rows owned by
	// userID. Ids that are unknown, foreign, or already read are ignored.
	MarkRead(userID string, ids []string) error
}

// Store bundles the per-entity repositories over one backing database.
type Store interface {
	Users() UserRepository
	Items() ItemRepository
	Bids() BidRepository
	Notifications() NotificationRepository
}
