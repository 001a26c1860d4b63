package model

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// Status is the workflow stage of an observation. Canonical casing is upper
// snake; ParseStatus tolerates lower-case input at the boundary.
type Status string

const (
	StatusDraft     Status = "DRAFT"
	StatusSubmitted Status = "SUBMITTED"
	StatusReviewed  Status = "REVIEWED"
	StatusFinalized Status = "FINALIZED"
)

// ParseStatus normalises external representations of a status.
func ParseStatus(s string) (Status, bool) {
	switch Status(strings.ToUpper(s)) {
	case StatusDraft:
		return StatusDraft, true
	case StatusSubmitted:
		return StatusSubmitted, true
	case StatusReviewed:
		return StatusReviewed, true
	case StatusFinalized:
		return StatusFinalized, true
	}
	return "", false
}

// Observation is one classroom visit's full evaluation record. It is created
// in DRAFT and only lifecycle transitions may change Status afterwards; once
// FINALIZED the record is immutable.
type Observation struct {
	ID         uint  `gorm:"primarykey" json:"id"`
	BranchID   uint  `json:"branch_id" gorm:"not null;index"`
	TeacherID  uint  `json:"teacher_id" gorm:"not null;index"`
	ObserverID uint  `json:"observer_id" gorm:"not null;index"`
	ReviewerID *uint `json:"reviewer_id,omitempty" gorm:"index"`

	ClassSection    string    `json:"class_section,omitempty"`
	Subject         string    `json:"subject,omitempty"`
	Topic           string    `json:"topic,omitempty"`
	ObservedAt      time.Time `json:"observed_at"`
	TotalStudents   int       `json:"total_students"`
	PresentStudents int       `json:"present_students"`
	HasLessonPlan   bool      `json:"has_lesson_plan"`

	Strengths      string `json:"strengths,omitempty" gorm:"type:text"`
	AreasToImprove string `json:"areas_to_improve,omitempty" gorm:"type:text"`
	Suggestions    string `json:"suggestions,omitempty" gorm:"type:text"`

	Status           Status     `json:"status" gorm:"not null;default:'DRAFT';index"`
	ReviewerComments string     `json:"reviewer_comments,omitempty" gorm:"type:text"`
	ReviewedAt       *time.Time `json:"reviewed_at,omitempty"`
	FinalizedAt      *time.Time `json:"finalized_at,omitempty"`

	ItemScores []ItemScore `json:"item_scores,omitempty" gorm:"foreignKey:ObservationID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
