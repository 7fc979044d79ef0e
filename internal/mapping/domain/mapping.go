package domain

import (
	"time"

	catalogdomain "channelsync-backend/internal/catalog/domain"
)

// Cadence is the schedule bucket controlling how often a mapping is eligible
// for the scheduled run.
type Cadence string

const (
	CadenceDaily   Cadence = "daily"
	CadenceWeekly  Cadence = "weekly"
	CadenceMonthly Cadence = "monthly"
)

// Valid reports whether the cadence is one of the known buckets.
func (c Cadence) Valid() bool {
	switch c {
	case CadenceDaily, CadenceWeekly, CadenceMonthly:
		return true
	}
	return false
}

// LookbackDays is the message-history window the sync fetches for this cadence.
func (c Cadence) LookbackDays() int {
	switch c {
	case CadenceWeekly:
		return 7
	case CadenceMonthly:
		return 30
	default:
		return 1
	}
}

// Mapping binds one or more Slack channels to exactly one HubSpot company.
type Mapping struct {
	ID               string     `json:"id" gorm:"primaryKey"`
	Title            string     `json:"title"`
	Cadence          Cadence    `json:"cadence" gorm:"not null"`
	HubspotCompanyID string     `json:"hubspot_company_id" gorm:"not null"`
	LastSyncedAt     *time.Time `json:"last_synced_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`

	Company  *catalogdomain.HubspotCompany `json:"company,omitempty" gorm:"foreignKey:HubspotCompanyID"`
	Channels []MappingSlackChannel         `json:"channels,omitempty" gorm:"foreignKey:MappingID"`
}

// MappingSlackChannel is a join row attaching one channel to a mapping.
type MappingSlackChannel struct {
	ID             string    `json:"id" gorm:"primaryKey"`
	MappingID      string    `json:"mapping_id" gorm:"index;not null"`
	SlackChannelID string    `json:"slack_channel_id" gorm:"index;not null"`
	CreatedAt      time.Time `json:"created_at"`

	SlackChannel *catalogdomain.SlackChannel `json:"slack_channel,omitempty" gorm:"foreignKey:SlackChannelID"`
}
