package repositories

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"leadreach/outreach-assistant/internal/models"
)

// ErrBatchNotFound is returned when no attempts exist for a batch ID.
var ErrBatchNotFound = errors.New("outreach batch not found")

type OutreachRepository interface {
	CreateBatch(attempts []models.OutreachAttempt) error
	FindByBatch(batchID uuid.UUID) ([]models.OutreachAttempt, error)
}

type outreachRepository struct {
	db *gorm.DB
}

func NewOutreachRepository(db *gorm.DB) OutreachRepository {
	return &outreachRepository{db: db}
}

func (r *outreachRepository) CreateBatch(attempts []models.OutreachAttempt) error {
	if len(attempts) == 0 {
		return nil
	}
	if err := r.db.Create(&attempts).Error; err != nil {
		return fmt.Errorf("failed to store outreach attempts: %w", err)
	}
	return nil
}

func (r *outreachRepository) FindByBatch(batchID uuid.UUID) ([]models.OutreachAttempt, error) {
	var attempts []models.OutreachAttempt
	err := r.db.
		Where("batch_id = ?", batchID).
		Order("position ASC").
		Find(&attempts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find outreach attempts: %w", err)
	}
	if len(attempts) == 0 {
		return nil, ErrBatchNotFound
	}
	return attempts, nil
}
