package helpers

// MarkReadRequest is the body of POST /notifications/mark-read.
type MarkReadRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// NotificationResponse is the wire shape of a single notification.
type NotificationResponse struct {
	ID        string `json:"id"`
	UserID    string `json:"user_id"`
	Payload   string `json:"payload"`
	IsRead    bool   `json:"is_read"`
	CreatedAt string `json:"created_at"`
}
