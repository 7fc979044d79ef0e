package domain

import "time"

type CronLogStatus string

const (
	CronLogRunning   CronLogStatus = "running"
	CronLogCompleted CronLogStatus = "completed"
	CronLogFailed    CronLogStatus = "failed"
)

type CronLogMappingStatus string

const (
	CronLogMappingSuccess CronLogMappingStatus = "success"
	CronLogMappingFailed  CronLogMappingStatus = "failed"
	CronLogMappingSkipped CronLogMappingStatus = "skipped"
)

// CronLog is one audit record per scheduled sync run. It is created at run
// start and mutated exactly once at run end.
type CronLog struct {
	ID               string        `json:"id" gorm:"primaryKey"`
	StartedAt        time.Time     `json:"started_at"`
	CompletedAt      *time.Time    `json:"completed_at,omitempty"`
	Status           CronLogStatus `json:"status"`
	Cadences         string        `json:"cadences"` // comma-joined
	MappingsFound    int           `json:"mappings_found"`
	MappingsExecuted int           `json:"mappings_executed"`
	MappingsFailed   int           `json:"mappings_failed"`
	ErrorMessage     string        `json:"error_message,omitempty"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	Mappings []CronLogMapping `json:"mappings,omitempty" gorm:"foreignKey:CronLogID"`
}

// CronLogMapping is one audit record per mapping processed within a run,
// immutable after creation.
type CronLogMapping struct {
	ID           string               `json:"id" gorm:"primaryKey"`
	CronLogID    string               `json:"cron_log_id" gorm:"index;not null"`
	MappingID    string               `json:"mapping_id" gorm:"index;not null"`
	Status       CronLogMappingStatus `json:"status"`
	ErrorMessage string               `json:"error_message,omitempty"`
	CreatedAt    time.Time            `json:"created_at"`
}
