package domain

import "time"

// SlackChannel is a reference to an external Slack channel.
type SlackChannel struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	ChannelID string    `json:"channel_id" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// HubspotCompany is a reference to an external HubSpot company.
type HubspotCompany struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	CompanyID string    `json:"company_id" gorm:"uniqueIndex;not null"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
