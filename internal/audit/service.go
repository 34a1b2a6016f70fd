// Package audit provides high-level admin action logging. Every
// create, update, delete and return performed through the admin
// interface is recorded with the acting user and the entity's display
// label, mirroring the log kept by the administrative UI this service
// backs.
package audit

import (
	"log"

	auditrepo "github.com/mrlokans/locallibrary/internal/database/audit"
	"github.com/mrlokans/locallibrary/internal/entities"
)

// Service provides high-level admin log functionality.
type Service struct {
	repo *auditrepo.Repository
}

// NewService creates a new audit service.
func NewService(repo *auditrepo.Repository) *Service {
	return &Service{repo: repo}
}

// Log records an admin log entry.
func (s *Service) Log(entry *entities.AuditEntry) error {
	return s.repo.LogEntry(entry)
}

// LogAsync records an admin log entry in the background (non-blocking).
func (s *Service) LogAsync(entry *entities.AuditEntry) {
	go func() {
		if err := s.repo.LogEntry(entry); err != nil {
			log.Printf("Failed to write admin log entry: %v", err)
		}
	}()
}

// LogChange records one admin operation against an entity. A non-nil
// err marks the entry as failed with a truncated message.
func (s *Service) LogChange(actorID uint, entityType, entityID, label string, action entities.AuditAction, err error) {
	entry := &entities.AuditEntry{
		ActorID:    actorID,
		EntityType: entityType,
		EntityID:   entityID,
		Label:      truncate(label, 200),
		Action:     action,
	}
	if err != nil {
		entry.ErrorMsg = truncate(err.Error(), 500)
	}
	s.LogAsync(entry)
}

// GetRecent returns the newest admin log entries.
func (s *Service) GetRecent(limit int) ([]entities.AuditEntry, error) {
	return s.repo.GetRecent(limit)
}

// GetByEntity returns the log entries recorded for one entity.
func (s *Service) GetByEntity(entityType, entityID string) ([]entities.AuditEntry, error) {
	return s.repo.GetByEntity(entityType, entityID)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
