package feedback

import "time"

type Entry struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Hidden    bool      `json:"hidden"`
	CreatedAt time.Time `json:"created_at"`
}
