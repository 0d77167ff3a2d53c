package models

import (
	"time"

	"github.com/google/uuid"
)

type SearchRunStatus string

const (
	SearchRunning   SearchRunStatus = "running"
	SearchCompleted SearchRunStatus = "completed"
	SearchFailed    SearchRunStatus = "failed"
)

// SearchRun is the audit record of one search-and-draft request.
type SearchRun struct {
	ID             uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	SessionID      string          `gorm:"type:text;index" json:"session_id"`
	Mode           string          `gorm:"type:text" json:"mode"`
	BusinessIdea   string          `gorm:"type:text" json:"business_idea"`
	Country        string          `gorm:"type:text" json:"country"`
	Industry       string          `gorm:"type:text" json:"industry"`
	RegionURN      *string         `gorm:"type:text" json:"region_urn,omitempty"`
	IndustryURN    *string         `gorm:"type:text" json:"industry_urn,omitempty"`
	Status         SearchRunStatus `gorm:"type:text;not null" json:"status"`
	CandidateCount int             `json:"candidate_count"`
	ErrorMessage   *string         `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Drafts []OutreachDraft `gorm:"foreignKey:SearchRunID" json:"drafts,omitempty"`
}

func (SearchRun) TableName() string {
	return "search_runs"
}

type OutreachDraft struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	SearchRunID   uuid.UUID `gorm:"type:uuid;not null;index" json:"search_run_id"`
	Position      int       `json:"position"`
	CandidateID   string    `gorm:"type:text" json:"candidate_id"`
	CandidateName string    `gorm:"type:text" json:"candidate_name"`
	Body          string    `gorm:"type:text" json:"body"`
	CreatedAt     time.Time `json:"created_at"`
}

func (OutreachDraft) TableName() string {
	return "outreach_drafts"
}
