package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrItemNotFound  = errors.New("item not found")
	ErrUserNotFound  = errors.New("user not found")
	ErrDuplicateUser = errors.New("username or email already registered")

	// ErrPriceConflict signals that the item's current price moved between the
	// ledger's read and its write. Callers re-read and retry.
	ErrPriceConflict = errors.New("current price changed concurrently")
)

// Business logic errors
var (
	ErrInvalidBid    = errors.New("invalid bid")
	ErrBidTooLow     = errors.New("bid amount too low")
	ErrAuctionClosed = errors.New("auction has ended")
	ErrInvalidInput  = errors.New("invalid input")
	ErrNotOwner      = errors.New("not the item owner")
)

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid login credentials")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrResetTokenInvalid  = errors.New("invalid or expired reset token")
)
