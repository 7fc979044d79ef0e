package domain

import "time"

// User is an admin operator. A user may exist purely as a Slack identity
// (created by the workspace sync) with no email or password, in which case
// they cannot log in until an admin sets credentials.
type User struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Email     *string   `json:"email,omitempty" gorm:"uniqueIndex"`
	Password  string    `json:"-"` // bcrypt hash, never returned in JSON
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	SlackID   *string   `json:"slack_id,omitempty" gorm:"uniqueIndex"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
