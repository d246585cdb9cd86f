package notification

import (
	"context"
	"fmt"
	"sync"
	"time"

	"auction-house/internal/auction"
	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

const pushQueueSize = 256

// Dispatcher turns accepted bids into durable per-user notification rows and
// forwards them, best effort, to connected subscribers. Rows survive a
// restart; anything queued for push but not yet delivered is re-derivable by
// polling ListUnread.
type Dispatcher struct {
	repo repository.NotificationRepository

	mu          sync.RWMutex
	subscribers map[string][]chan model.Notification

	queue  chan model.Notification
	wg     sync.WaitGroup
	cancel context.CancelFunc
}

// NewDispatcher creates a Dispatcher. Call Start to enable push delivery;
// rows are written regardless.
func NewDispatcher(repo repository.NotificationRepository) *Dispatcher {
	return &Dispatcher{
		repo:        repo,
		subscribers: make(map[string][]chan model.Notification),
		queue:       make(chan model.Notification, pushQueueSize),
	}
}

// Start launches the push worker.
func (d *Dispatcher) Start() {
	ctx, cancel := context.WithCancel(context.Background())
	d.cancel = cancel
	d.wg.Add(1)
	go func() {
		defer d.wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case n := <-d.queue:
				d.push(n)
			}
		}
	}()
}

// Close stops the push worker and waits for it to exit.
func (d *Dispatcher) Close() {
	if d.cancel == nil {
		return
	}
	d.cancel()
	d.wg.Wait()
}

// OnBidAccepted creates one notification row for the party the accepted bid
// displaced: the previous high bidder, or the item owner when this is the
// first bid on the listing. A bidder is never notified about their own bid.
// Delivery to connected clients is best effort; the row itself is durable
// before this returns.
func (d *Dispatcher) OnBidAccepted(event auction.BidAccepted) {
	outbid := event.OwnerID
	payload := fmt.Sprintf("Your item %q received a bid of %.2f", event.ItemName, event.Amount)
	if event.PreviousBidderID != nil {
		outbid = *event.PreviousBidderID
		payload = fmt.Sprintf("You have been outbid on %q: the price is now %.2f", event.ItemName, event.Amount)
	}
	if outbid == event.BidderID {
		return
	}

	n := model.Notification{
		NotificationID: utils.GenerateID(),
		UserID:         outbid,
		Payload:        payload,
		IsRead:         false,
		CreatedAt:      time.Now().UTC(),
	}
	if err := d.repo.Create(&n); err != nil {
		utils.Error("dispatcher: failed to store notification", map[string]any{
			"user_id": outbid,
			"item_id": event.ItemID,
			"error":   err.Error(),
		})
		return
	}

	select {
	case d.queue <- n:
	default:
		// push queue full; the row is durable, subscribers fall back to polling
		utils.Warn("dispatcher: push queue full, dropping live delivery", map[string]any{
			"user_id": n.UserID,
		})
	}
}

// ListUnread returns the user's unread notifications, oldest first.
func (d *Dispatcher) ListUnread(userID string) ([]model.Notification, error) {
	if userID == "" {
		return nil, fmt.Errorf("dispatcher: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}
	notifications, err := d.repo.ListUnread(userID)
	if err != nil {
		return nil, fmt.Errorf("dispatcher: failed to list unread for user %s: %w", userID, err)
	}
	return notifications, nil
}

// MarkRead flips is_read for the given ids belonging to userID. Foreign or
// unknown ids are ignored and re-marking is a no-op, so the call is
// idempotent.
func (d *Dispatcher) MarkRead(userID string, ids []string) error {
	if userID == "" {
		return fmt.Errorf("dispatcher: %w - empty user ID", auctionerrors.ErrInvalidInput)
	}
	if len(ids) == 0 {
		return nil
	}
	if err := d.repo.MarkRead(userID, ids); err != nil {
		return fmt.Errorf("dispatcher: failed to mark notifications read for user %s: %w", userID, err)
	}
	return nil
}

// Subscribe registers a live delivery channel for the user.
func (d *Dispatcher) Subscribe(userID string) <-chan model.Notification {
	ch := make(chan model.Notification, 16)
	d.mu.Lock()
	defer d.mu.Unlock()
	d.subscribers[userID] = append(d.subscribers[userID], ch)
	return ch
}

// Unsubscribe removes a channel registered with Subscribe.
func (d *Dispatcher) Unsubscribe(userID string, ch <-chan model.Notification) {
	d.mu.Lock()
	defer d.mu.Unlock()
	channels := d.subscribers[userID]
	for i, existing := range channels {
		if existing == ch {
			d.subscribers[userID] = append(channels[:i], channels[i+1:]...)
			return
		}
	}
}

func (d *Dispatcher) push(n model.Notification) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, ch := range d.subscribers[n.UserID] {
		select {
		case ch <- n:
		default:
			// slow subscriber, drop rather than block the worker
		}
	}
}
