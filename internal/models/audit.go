package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AuditQuestionCreated = "question.created"
	AuditQuestionDeleted = "question.deleted"
)

// AuditEvent records teacher mutations for after-the-fact review. Writes are
// best-effort: a failed audit insert never fails the mutating request.
type AuditEvent struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	ActorID   uint           `json:"actorId" gorm:"index"`
	Action    string         `json:"action" gorm:"not null;size:50;index"`
	Detail    datatypes.JSON `json:"detail" gorm:"type:jsonb"`
	CreatedAt time.Time      `json:"createdAt"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
