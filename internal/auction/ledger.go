package auction

import (
	"errors"
	"fmt"
	"time"

	"auction-house/internal/auctionerrors"
	model "auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// BidAccepted describes a committed bid acceptance. It is emitted exactly
// once per accepted bid, after the price update is durable.
type BidAccepted struct {
	ItemID           string
	ItemName         string
	OwnerID          string
	BidderID         string
	PreviousBidderID *string
	Amount           float64
}

// EventSink consumes BidAccepted events. The notification dispatcher is the
// production implementation.
type EventSink interface {
	OnBidAccepted(event BidAccepted)
}

// Ledger holds the authoritative current price per item and serializes bid
// acceptance so the monotonic-increase rule holds under concurrent bids.
type Ledger struct {
	items  repository.ItemRepository
	bids   repository.BidRepository
	events EventSink
}

// NewLedger creates a Ledger. events may be nil when nothing consumes
// acceptance events (benchmarks, partial wiring in tests).
func NewLedger(items repository.ItemRepository, bids repository.BidRepository, events EventSink) *Ledger {
	return &Ledger{
		items:  items,
		bids:   bids,
		events: events,
	}
}

// PlaceBid validates and records a bid. Acceptance persists the bid row and
// advances the item's current price atomically; a rejected bid changes
// nothing.
func (l *Ledger) PlaceBid(itemID, userID string, amount float64) (model.Bid, error) {
	if itemID == "" || userID == "" {
		return model.Bid{}, fmt.Errorf("ledger: %w - missing itemID or userID", auctionerrors.ErrInvalidBid)
	}
	if amount <= 0 {
		return model.Bid{}, fmt.Errorf("ledger: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	// The compare-and-swap in RecordAccepted can only fail when another bid
	// was accepted in between, so each iteration of this loop means global
	// progress and it terminates.
	for {
		item, err := l.items.Get(itemID)
		if err != nil {
			return model.Bid{}, fmt.Errorf("ledger: failed to load item %s: %w", itemID, err)
		}
		if time.Now().After(item.EndTime) {
			return model.Bid{}, fmt.Errorf("ledger: %w - item %s", auctionerrors.ErrAuctionClosed, itemID)
		}
		if amount <= item.CurrentPrice {
			return model.Bid{}, fmt.Errorf("ledger: %w - current price is %.2f", auctionerrors.ErrBidTooLow, item.CurrentPrice)
		}

		bid := model.Bid{
			BidID:     utils.GenerateID(),
			ItemID:    itemID,
			UserID:    userID,
			Amount:    amount,
			CreatedAt: time.Now().UTC(),
		}

		displaced, err := l.bids.RecordAccepted(bid, item.CurrentPrice)
		if errors.Is(err, auctionerrors.ErrPriceConflict) {
			continue
		}
		if err != nil {
			return model.Bid{}, fmt.Errorf("ledger: failed to record bid for item %s by user %s: %w", itemID, userID, err)
		}

		l.emitAccepted(item, bid, displaced)
		return bid, nil
	}
}

func (l *Ledger) emitAccepted(item model.Item, bid model.Bid, displaced *model.Bid) {
	if l.events == nil {
		return
	}
	event := BidAccepted{
		ItemID:   item.ItemID,
		ItemName: item.Name,
		OwnerID:  item.OwnerID,
		BidderID: bid.UserID,
		Amount:   bid.Amount,
	}
	if displaced != nil {
		previous := displaced.UserID
		event.PreviousBidderID = &previous
	}
	l.events.OnBidAccepted(event)
}

// CreateItem opens a new listing owned by ownerID. The current price starts
// at the starting price.
func (l *Ledger) CreateItem(ownerID, name, description string, startingPrice float64, endTime time.Time) (model.Item, error) {
	if ownerID == "" || name == "" {
		return model.Item{}, fmt.Errorf("ledger: %w - missing owner or name", auctionerrors.ErrInvalidInput)
	}
	if startingPrice < 0 {
		return model.Item{}, fmt.Errorf("ledger: %w - negative starting price", auctionerrors.ErrInvalidInput)
	}
	if endTime.Before(time.Now()) {
		return model.Item{}, fmt.Errorf("ledger: %w - end time already passed", auctionerrors.ErrInvalidInput)
	}

	item := model.Item{
		ItemID:        utils.GenerateID(),
		OwnerID:       ownerID,
		Name:          name,
		Description:   description,
		StartingPrice: startingPrice,
		CurrentPrice:  startingPrice,
		EndTime:       endTime.UTC(),
		CreatedAt:     time.Now().UTC(),
	}
	if err := l.items.Create(&item); err != nil {
		return model.Item{}, fmt.Errorf("ledger: failed to create item: %w", err)
	}
	return item, nil
}

// GetItem returns a single listing.
func (l *Ledger) GetItem(itemID string) (model.Item, error) {
	if itemID == "" {
		return model.Item{}, fmt.Errorf("ledger: %w - empty item ID", auctionerrors.ErrInvalidInput)
	}
	item, err := l.items.Get(itemID)
	if err != nil {
		return model.Item{}, fmt.Errorf("ledger: failed to get item %s: %w", itemID, err)
	}
	return item, nil
}

// ListItems returns all listings.
func (l *Ledger) ListItems() ([]model.Item, error) {
	items, err := l.items.List()
	if err != nil {
		return nil, fmt.Errorf("ledger: failed to list items: %w", err)
	}
	return items, nil
}

// UpdateItem lets the owner change name, description and end time. Prices
// are never touched here.
func (l *Ledger) UpdateItem(ownerID string, update model.Item) (model.Item, error) {
	if update.ItemID == "" {
		return model.Item{}, fmt.Errorf("ledger: %w - empty item ID", auctionerrors.ErrInvalidInput)
	}
	item, err := l.items.Get(update.ItemID)
	if err != nil {
		return model.Item{}, fmt.Errorf("ledger: failed to get item %s: %w", update.ItemID, err)
	}
	if item.OwnerID != ownerID {
		return model.Item{}, fmt.Errorf("ledger: %w - item %s", auctionerrors.ErrNotOwner, update.ItemID)
	}

	if update.Name != "" {
		item.Name = update.Name
	}
	if update.Description != "" {
		item.Description = update.Description
	}
	if !update.EndTime.IsZero() {
		item.EndTime = update.EndTime.UTC()
	}
	if err := l.items.Update(item); err != nil {
		return model.Item{}, fmt.Errorf("ledger: failed to update item %s: %w", update.ItemID, err)
	}
	return item, nil
}

// DeleteItem removes one of the owner's listings.
func (l *Ledger) DeleteItem(ownerID, itemID string) error {
	if itemID == "" {
		return fmt.Errorf("ledger: %w - empty item ID", auctionerrors.ErrInvalidInput)
	}
	item, err := l.items.Get(itemID)
	if err != nil {
		return fmt.Errorf("ledger: failed to get item %s: %w", itemID, err)
	}
	if item.OwnerID != ownerID {
		return fmt.Errorf("ledger: %w - item %s", auctionerrors.ErrNotOwner, itemID)
	}
	if err := l.items.Delete(itemID); err != nil {
		return fmt.Errorf("ledger: failed to delete item %s: %w", itemID, err)
	}
	return nil
}

// BidsForItem returns all bids on an item, newest first.
func (l *Ledger) BidsForItem(itemID string) ([]model.Bid, error) {
	if itemID == "" {
		return nil, fmt.Errorf("ledger: %w - empty item ID", auctionerrors.ErrInvalidInput)
	}
	bids, err := l.bids.ListByItem(itemID)
	if err != nil {
		return nil, fmt.Errorf("ledger: failed to list bids for item %s: %w", itemID, err)
	}
	return bids, nil
}
