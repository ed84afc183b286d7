package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	IncidentOpen       = "open"
	IncidentInProgress = "in_progress"
	IncidentResolved   = "resolved"
	IncidentClosed     = "closed"
)

// Incident case raised by staff (incidents)
type Incident struct {
	IncidentID     string         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"incident_id"`
	Title          string         `gorm:"type:varchar(200);not null"                     json:"title"`
	Description    string         `gorm:"type:text"                                      json:"description,omitempty"`
	Category       string         `gorm:"type:varchar(20);not null;index"                json:"category"`
	Status         string         `gorm:"type:varchar(20);not null;default:'open'"       json:"status"`
	Severity       string         `gorm:"type:varchar(20);not null;default:'medium'"     json:"severity"`
	ReporterID     string         `gorm:"type:uuid;not null"                             json:"reporter_id"`
	ReporterName   string         `gorm:"type:varchar(150)"                              json:"reporter_name,omitempty"`
	BranchLocation string         `gorm:"type:varchar(20);not null;index"                json:"branch_location"`
	Metadata       datatypes.JSON `gorm:"type:jsonb;not null;default:'{}'"               json:"metadata"`
	ResolvedAt     *time.Time     `json:"resolved_at,omitempty"`
	VersionedModel
}

func (Incident) TableName() string { return "incidents" }

// IncidentComment follow-up note on an incident (incident_comments)
type IncidentComment struct {
	CommentID  string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"comment_id"`
	IncidentID string    `gorm:"type:uuid;not null;index"                       json:"incident_id"`
	AuthorID   string    `gorm:"type:uuid;not null"                             json:"author_id"`
	Body       string    `gorm:"type:text;not null"                             json:"body"`
	CreatedAt  time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
}

func (IncidentComment) TableName() string { return "incident_comments" }
