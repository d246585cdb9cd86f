package models

import "time"

// User represents a registered account in the auction system.
// The password is stored only as a bcrypt hash and is never serialized.
type User struct {
	UserID       string     `json:"user_id" gorm:"primaryKey"`
	Username     string     `json:"username" gorm:"uniqueIndex;not null"`
	Email        string     `json:"email" gorm:"uniqueIndex;not null"`
	PasswordHash string     `json:"-" gorm:"not null"`
	ResetToken   *string    `json:"-" gorm:"index"`
	ResetExpires *time.Time `json:"-"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Item represents an auction listing. CurrentPrice starts at StartingPrice
// and is mutated only by accepted bids, monotonically non-decreasing until
// EndTime passes.
type Item struct {
	ItemID        string    `json:"item_id" gorm:"primaryKey"`
	OwnerID       string    `json:"owner_id" gorm:"index;not null"`
	Name          string    `json:"name" gorm:"not null"`
	Description   string    `json:"description"`
	StartingPrice float64   `json:"starting_price" gorm:"not null"`
	CurrentPrice  float64   `json:"current_price" gorm:"not null"`
	EndTime       time.Time `json:"end_time" gorm:"not null"`
	CreatedAt     time.Time `json:"created_at"`
}

// Bid represents an accepted bid on an item. Bids are immutable once created.
type Bid struct {
	BidID     string    `json:"bid_id" gorm:"primaryKey"`
	ItemID    string    `json:"item_id" gorm:"index;not null"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Amount    float64   `json:"bid_amount" gorm:"not null"`
	CreatedAt time.Time `json:"created_at"`
}

// Notification is a durable message for a user. Only IsRead is ever mutated.
type Notification struct {
	NotificationID string    `json:"id" gorm:"primaryKey"`
	UserID         string    `json:"user_id" gorm:"index;not null"`
	Payload        string    `json:"payload" gorm:"not null"`
	IsRead         bool      `json:"is_read" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at"`
}
