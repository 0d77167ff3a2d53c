package models

import (
	"time"

	"github.com/google/uuid"
)

type DispatchKind string

const (
	DispatchMessage    DispatchKind = "message"
	DispatchConnection DispatchKind = "connection"
)

type DispatchStatus string

const (
	DispatchSent         DispatchStatus = "sent"
	DispatchFailed       DispatchStatus = "failed"
	DispatchNotAttempted DispatchStatus = "not_attempted"
)

// DispatchItem is the outcome of one dispatch unit within a batch.
type DispatchItem struct {
	Position    int            `json:"position"`
	CandidateID string         `json:"candidate_id"`
	MessageBody *string        `json:"message_body,omitempty"`
	Status      DispatchStatus `json:"status"`
	Error       string         `json:"error,omitempty"`
}

// DispatchReport is the per-item account of a dispatch batch.
type DispatchReport struct {
	BatchID uuid.UUID      `json:"batch_id"`
	Kind    DispatchKind   `json:"kind"`
	Items   []DispatchItem `json:"items"`
}

// Sent counts the items that reached the collaborator successfully.
func (r *DispatchReport) Sent() int {
	n := 0
	for _, item := range r.Items {
		if item.Status == DispatchSent {
			n++
		}
	}
	return n
}

// OutreachAttempt is the persisted form of a DispatchItem.
type OutreachAttempt struct {
	ID           uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	BatchID      uuid.UUID      `gorm:"type:uuid;not null;index" json:"batch_id"`
	Kind         DispatchKind   `gorm:"type:text;not null" json:"kind"`
	Position     int            `json:"position"`
	CandidateID  string         `gorm:"type:text" json:"candidate_id"`
	MessageBody  *string        `gorm:"type:text" json:"message_body,omitempty"`
	Status       DispatchStatus `gorm:"type:text;not null" json:"status"`
	ErrorMessage *string        `gorm:"type:text" json:"error_message,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

func (OutreachAttempt) TableName() string {
	return "outreach_attempts"
}

// ReportFromAttempts rebuilds a report from the rows of one batch. Rows are
// expected in position order.
func ReportFromAttempts(batchID uuid.UUID, attempts []OutreachAttempt) *DispatchReport {
	report := &DispatchReport{BatchID: batchID, Items: make([]DispatchItem, 0, len(attempts))}
	for _, a := range attempts {
		report.Kind = a.Kind
		item := DispatchItem{
			Position:    a.Position,
			CandidateID: a.CandidateID,
			MessageBody: a.MessageBody,
			Status:      a.Status,
		}
		if a.ErrorMessage != nil {
			item.Error = *a.ErrorMessage
		}
		report.Items = append(report.Items, item)
	}
	return report
}
