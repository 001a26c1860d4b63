package model

import "time"

// AuditLog records one mutating operation: a lifecycle transition, a score
// update, or an edit/create/delete. Writes are best-effort; rows are never
// updated or deleted.
type AuditLog struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	ObjectType string    `json:"object_type" gorm:"not null;index:idx_audit_object"`
	ObjectID   uint      `json:"object_id" gorm:"not null;index:idx_audit_object"`
	Action     string    `json:"action" gorm:"not null"`
	UserID     uint      `json:"user_id" gorm:"not null;index"`
	Diff       string    `json:"diff,omitempty" gorm:"type:text"`
	CreatedAt  time.Time `json:"created_at"`
}
