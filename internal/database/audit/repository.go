// Package audit provides database operations for the admin action log.
package audit

import (
	"gorm.io/gorm"

	"github.com/mrlokans/locallibrary/internal/entities"
)

// Repository handles admin log database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new admin log repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// LogEntry persists an admin log entry.
func (r *Repository) LogEntry(entry *entities.AuditEntry) error {
	return r.db.Create(entry).Error
}

// GetRecent retrieves the most recent admin log entries, newest first.
func (r *Repository) GetRecent(limit int) ([]entities.AuditEntry, error) {
	if limit <= 0 {
		limit = 50
	}
	var entries []entities.AuditEntry
	err := r.db.Order("created_at DESC, id DESC").Limit(limit).Find(&entries).Error
	return entries, err
}

// GetByEntity retrieves the log entries recorded for one entity,
// newest first.
func (r *Repository) GetByEntity(entityType, entityID string) ([]entities.AuditEntry, error) {
	var entries []entities.AuditEntry
	err := r.db.Where("entity_type = ? AND entity_id = ?", entityType, entityID).
		Order("created_at DESC, id DESC").Find(&entries).Error
	return entries, err
}
