package domain

import "time"

// Prompt is a reusable summarization instruction template. At most one prompt
// is active at any time; activating one deactivates the rest.
type Prompt struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"not null"`
	Content   string    `json:"content" gorm:"not null"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
