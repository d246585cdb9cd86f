package helpers

// Request/Response DTOs
type CreateItemRequest struct {
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	StartingPrice float64 `json:"starting_price" binding:"gte=0"`
	EndTime       string  `json:"end_time" binding:"required"`
}

type UpdateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	EndTime     string `json:"end_time"`
}

type PlaceBidRequest struct {
	BidAmount float64 `json:"bid_amount" binding:"required,gt=0"`
}

type ItemResponse struct {
	ItemID        string  `json:"item_id"`
	OwnerID       string  `json:"owner_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	StartingPrice float64 `json:"starting_price"`
	CurrentPrice  float64 `json:"current_price"`
	EndTime       string  `json:"end_time"`
}

type BidResponse struct {
	BidID     string  `json:"bid_id"`
	ItemID    string  `json:"item_id"`
	UserID    string  `json:"user_id"`
	BidAmount float64 `json:"bid_amount"`
	CreatedAt string  `json:"created_at"`
}
