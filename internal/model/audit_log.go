package model

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog append-only audit trail (audit_logs)
type AuditLog struct {
	AuditLogID string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"audit_log_id"`
	Action     string         `gorm:"type:varchar(50);not null;index"                json:"action"` // shift_swap | leave_approved | status_change ...
	EntityType string         `gorm:"type:varchar(50);not null"                      json:"entity_type"`
	EntityID   string         `gorm:"type:uuid;not null"                             json:"entity_id"`
	ActorID    string         `gorm:"type:uuid;not null"                             json:"actor_id"`
	Details    string         `gorm:"type:text"                                      json:"details,omitempty"`
	Metadata   datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"               json:"metadata"`
	CreatedAt  time.Time      `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

func (AuditLog) TableName() string { return "audit_logs" }
