package entities

import "time"

// AuditAction is the kind of admin operation that was recorded.
type AuditAction string

const (
	AuditActionCreate AuditAction = "create"
	AuditActionUpdate AuditAction = "update"
	AuditActionDelete AuditAction = "delete"
	AuditActionReturn AuditAction = "return"
)

// AuditEntry records a single admin operation against a catalog entity.
// EntityID is stored as text so it can hold both numeric ids and the
// UUID ids used by book instances.
type AuditEntry struct {
	ID         uint        `gorm:"primaryKey" json:"id"`
	ActorID    uint        `gorm:"index" json:"actor_id"`
	EntityType string      `gorm:"index;size:50" json:"entity_type"`
	EntityID   string      `gorm:"index;size:64" json:"entity_id"`
	Label      string      `gorm:"size:200" json:"label"`
	Action     AuditAction `gorm:"size:20" json:"action"`
	ErrorMsg   string      `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt  time.Time   `gorm:"index" json:"created_at"`
}

func (AuditEntry) TableName() string {
	return "admin_log"
}
