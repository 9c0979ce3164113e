package domain

import "time"

// Warehouse is one inventory line: an item with a non-negative quantity,
// owned by a single seller. Ownership never changes after creation.
type Warehouse struct {
	ID        uint      `json:"id"`
	Item      string    `json:"item"`
	Quantity  int       `json:"quantity"`
	UserID    uint      `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
