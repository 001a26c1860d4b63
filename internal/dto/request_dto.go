package dto

import "time"

// ItemScoreInput is one rating keyed by rubric item. Rating may be null for
// "not yet rated"; 0 means "Not Observed".
type ItemScoreInput struct {
	RubricItemID uint    `json:"rubric_item_id" binding:"required"`
	Rating       *int    `json:"rating" binding:"omitempty,min=0"`
	Comment      *string `json:"comment"`
}

type ObservationCreateRequest struct {
	BranchID        uint             `json:"branch_id" binding:"required"`
	TeacherID       uint             `json:"teacher_id" binding:"required"`
	ClassSection    string           `json:"class_section"`
	Subject         string           `json:"subject"`
	Topic           string           `json:"topic"`
	ObservedAt      time.Time        `json:"observed_at" binding:"required"`
	TotalStudents   int              `json:"total_students"`
	PresentStudents int              `json:"present_students"`
	HasLessonPlan   bool             `json:"has_lesson_plan"`
	Strengths       string           `json:"strengths"`
	AreasToImprove  string           `json:"areas_to_improve"`
	Suggestions     string           `json:"suggestions"`
	ItemScores      []ItemScoreInput `json:"item_scores" binding:"omitempty,dive"`
}

// ObservationUpdateRequest mutates a non-finalized observation. Pointer
// fields distinguish "leave unchanged" from "set to zero value".
type ObservationUpdateRequest struct {
	ClassSection    *string          `json:"class_section"`
	Subject         *string          `json:"subject"`
	Topic           *string          `json:"topic"`
	ObservedAt      *time.Time       `json:"observed_at"`
	TotalStudents   *int             `json:"total_students"`
	PresentStudents *int             `json:"present_students"`
	HasLessonPlan   *bool            `json:"has_lesson_plan"`
	Strengths       *string          `json:"strengths"`
	AreasToImprove  *string          `json:"areas_to_improve"`
	Suggestions     *string          `json:"suggestions"`
	ItemScores      []ItemScoreInput `json:"item_scores" binding:"omitempty,dive"`
}

type TransitionRequest struct {
	Action           string `json:"action" binding:"required"`
	ReviewerComments string `json:"reviewer_comments"`
}
