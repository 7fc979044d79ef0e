package domain

import "time"

// FireHookLog is the audit record of one inbound Fireflies webhook delivery.
// Every delivery is logged, authentic or not.
type FireHookLog struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	EventType      string    `json:"event_type"`
	MeetingID      string    `json:"meeting_id" gorm:"index"`
	Signature      string    `json:"signature"`
	SignatureValid bool      `json:"signature_valid"`
	Payload        string    `json:"payload"`
	Processed      bool      `json:"processed"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// MeetingNote is the derived content of a processed webhook event.
type MeetingNote struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	FireHookLogID string    `json:"fire_hook_log_id" gorm:"index"`
	MeetingID     string    `json:"meeting_id" gorm:"uniqueIndex"`
	Title         string    `json:"title"`
	Summary       string    `json:"summary"`
	HubspotNoteID string    `json:"hubspot_note_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
