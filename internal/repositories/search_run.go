package repositories

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"leadreach/outreach-assistant/internal/models"
)

// ErrSearchRunNotFound is returned when no search run has the given ID.
var ErrSearchRunNotFound = errors.New("search run not found")

type SearchRunRepository interface {
	Create(run *models.SearchRun) error
	Complete(id uuid.UUID, candidateCount int, drafts []models.OutreachDraft) error
	Fail(id uuid.UUID, errorMsg string) error
	FindByID(id uuid.UUID) (*models.SearchRun, error)
}

type searchRunRepository struct {
	db *gorm.DB
}

func NewSearchRunRepository(db *gorm.DB) SearchRunRepository {
	return &searchRunRepository{db: db}
}

func (r *searchRunRepository) Create(run *models.SearchRun) error {
	if err := r.db.Create(run).Error; err != nil {
		return fmt.Errorf("failed to create search run: %w", err)
	}
	return nil
}

// Complete marks the run completed and stores its drafts in one transaction.
func (r *searchRunRepository) Complete(id uuid.UUID, candidateCount int, drafts []models.OutreachDraft) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.SearchRun{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":          models.SearchCompleted,
				"candidate_count": candidateCount,
				"updated_at":      time.Now(),
			})
		if result.Error != nil {
			return fmt.Errorf("failed to complete search run: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrSearchRunNotFound
		}

		if len(drafts) == 0 {
			return nil
		}
		for i := range drafts {
			drafts[i].SearchRunID = id
			if drafts[i].ID == uuid.Nil {
				drafts[i].ID = uuid.New()
			}
		}
		if err := tx.Create(&drafts).Error; err != nil {
			return fmt.Errorf("failed to store drafts: %w", err)
		}
		return nil
	})
}

func (r *searchRunRepository) Fail(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.SearchRun{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        models.SearchFailed,
			"error_message": errorMsg,
			"updated_at":    time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update search run: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		return ErrSearchRunNotFound
	}

	return nil
}

func (r *searchRunRepository) FindByID(id uuid.UUID) (*models.SearchRun, error) {
	var run models.SearchRun
	err := r.db.Preload("Drafts", func(db *gorm.DB) *gorm.DB {
		return db.Order("position ASC")
	}).Where("id = ?", id).First(&run).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSearchRunNotFound
		}
		return nil, fmt.Errorf("failed to find search run: %w", err)
	}
	return &run, nil
}
