package repository

import (
	"fmt"
	"sync"
	"time"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
)

// MemoryStore is a concurrency-safe in-memory implementation of Store.
// It backs local development and the integration tests.
type MemoryStore struct {
	mu            sync.RWMutex
	users         map[string]model.User
	usernames     map[string]string // username -> userID
	emails        map[string]string // email -> userID
	items         map[string]model.Item
	bids          map[string][]model.Bid          // itemID -> bids in acceptance order
	notifications map[string][]model.Notification // userID -> notifications in creation order
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:         make(map[string]model.User),
		usernames:     make(map[string]string),
		emails:        make(map[string]string),
		items:         make(map[string]model.Item),
		bids:          make(map[string][]model.Bid),
		notifications: make(map[string][]model.Notification),
	}
}

func (s *MemoryStore) Users() UserRepository                 { return &memoryUsers{s} }
func (s *MemoryStore) Items() ItemRepository                 { return &memoryItems{s} }
func (s *MemoryStore) Bids() BidRepository                   { return &memoryBids{s} }
func (s *MemoryStore) Notifications() NotificationRepository { return &memoryNotifications{s} }

type memoryUsers struct{ s *MemoryStore }

func (r *memoryUsers) Create(user *model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, taken := r.s.usernames[user.Username]; taken {
		return fmt.Errorf("create user %s: %w", user.Username, auctionerrors.ErrDuplicateUser)
	}
	if _, taken := r.s.emails[user.Email]; taken {
		return fmt.Errorf("create user %s: %w", user.Username, auctionerrors.ErrDuplicateUser)
	}

	r.s.users[user.UserID] = *user
	r.s.usernames[user.Username] = user.UserID
	r.s.emails[user.Email] = user.UserID
	return nil
}

func (r *memoryUsers) GetByID(userID string) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[userID]
	if !ok {
		return model.User{}, fmt.Errorf("get user %s: %w", userID, auctionerrors.ErrUserNotFound)
	}
	return user, nil
}

func (r *memoryUsers) GetByUsername(username string) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.usernames[username]
	if !ok {
		return model.User{}, fmt.Errorf("get user by username %s: %w", username, auctionerrors.ErrUserNotFound)
	}
	return r.s.users[id], nil
}

func (r *memoryUsers) GetByEmail(email string) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	id, ok := r.s.emails[email]
	if !ok {
		return model.User{}, fmt.Errorf("get user by email %s: %w", email, auctionerrors.ErrUserNotFound)
	}
	return r.s.users[id], nil
}

func (r *memoryUsers) GetByResetToken(token string) (model.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.ResetToken != nil && *user.ResetToken == token {
			return user, nil
		}
	}
	return model.User{}, fmt.Errorf("get user by reset token: %w", auctionerrors.ErrUserNotFound)
}

func (r *memoryUsers) Update(user model.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.users[user.UserID]; !ok {
		return fmt.Errorf("update user %s: %w", user.UserID, auctionerrors.ErrUserNotFound)
	}
	r.s.users[user.UserID] = user
	return nil
}

type memoryItems struct{ s *MemoryStore }

func (r *memoryItems) Create(item *model.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	r.s.items[item.ItemID] = *item
	return nil
}

func (r *memoryItems) Get(itemID string) (model.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	item, ok := r.s.items[itemID]
	if !ok {
		return model.Item{}, fmt.Errorf("get item %s: %w", itemID, auctionerrors.ErrItemNotFound)
	}
	return item, nil
}

func (r *memoryItems) List() ([]model.Item, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	items := make([]model.Item, 0, len(r.s.items))
	for _, item := range r.s.items {
		items = append(items, item)
	}
	return items, nil
}

func (r *memoryItems) Update(item model.Item) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.items[item.ItemID]; !ok {
		return fmt.Errorf("update item %s: %w", item.ItemID, auctionerrors.ErrItemNotFound)
	}
	r.s.items[item.ItemID] = item
	return nil
}

func (r *memoryItems) Delete(itemID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.items[itemID]; !ok {
		return fmt.Errorf("delete item %s: %w", itemID, auctionerrors.ErrItemNotFound)
	}
	delete(r.s.items, itemID)
	delete(r.s.bids, itemID)
	return nil
}

type memoryBids struct{ s *MemoryStore }

func (r *memoryBids) RecordAccepted(bid model.Bid, priorPrice float64) (*model.Bid, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	item, ok := r.s.items[bid.ItemID]
	if !ok {
		return nil, fmt.Errorf("record bid for item %s: %w", bid.ItemID, auctionerrors.ErrItemNotFound)
	}
	if item.CurrentPrice != priorPrice {
		return nil, fmt.Errorf("record bid for item %s: %w", bid.ItemID, auctionerrors.ErrPriceConflict)
	}

	var displaced *model.Bid
	if existing := r.s.bids[bid.ItemID]; len(existing) > 0 {
		last := existing[len(existing)-1]
		displaced = &last
	}

	r.s.bids[bid.ItemID] = append(r.s.bids[bid.ItemID], bid)
	item.CurrentPrice = bid.Amount
	r.s.items[bid.ItemID] = item
	return displaced, nil
}

func (r *memoryBids) ListByItem(itemID string) ([]model.Bid, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	bids := r.s.bids[itemID]
	out := make([]model.Bid, len(bids))
	// acceptance order is oldest first; reverse to newest first
	for i, b := range bids {
		out[len(bids)-1-i] = b
	}
	return out, nil
}

type memoryNotifications struct{ s *MemoryStore }

func (r *memoryNotifications) Create(notification *model.Notification) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now().UTC()
	}
	r.s.notifications[notification.UserID] = append(r.s.notifications[notification.UserID], *notification)
	return nil
}

func (r *memoryNotifications) ListUnread(userID string) ([]model.Notification, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	unread := make([]model.Notification, 0)
	for _, n := range r.s.notifications[userID] {
		if !n.IsRead {
			unread = append(unread, n)
		}
	}
	return unread, nil
}

func (r *memoryNotifications) MarkRead(userID string, ids []string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		wanted[id] = true
	}

	owned := r.s.notifications[userID]
	for i, n := range owned {
		if wanted[n.NotificationID] {
			owned[i].IsRead = true
		}
	}
	return nil
}

// AddItem seeds an item directly. This method is intended for tests only.
func (s *MemoryStore) AddItem(item model.Item) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if item.CurrentPrice == 0 {
		item.CurrentPrice = item.StartingPrice
	}
	s.items[item.ItemID] = item
}
