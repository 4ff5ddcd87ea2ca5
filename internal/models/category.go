package models

// Category represents a user-defined transaction category
type Category struct {
	ID        int64  `json:"id"`
	UserID    int64  `json:"user_id"`
	Name      string `json:"name"`
	Type      string `json:"type"` // income or expense
	CreatedAt string `json:"created_at"`
}
