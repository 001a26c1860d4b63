package dto

import "time"

type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries the complete rule-failure list for one pass.
type ValidationErrorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors"`
}

// ValidationCheckResponse is the advisory pre-submission check result. Unlike
// ValidationErrorResponse it is a 200 body, not an error body.
type ValidationCheckResponse struct {
	IsValid bool     `json:"is_valid"`
	Errors  []string `json:"errors"`
}

type ItemScoreResponse struct {
	ID           uint   `json:"id"`
	RubricItemID uint   `json:"rubric_item_id"`
	Rating       *int   `json:"rating,omitempty"`
	Comment      string `json:"comment,omitempty"`
}

type ObservationResponse struct {
	ID               uint                `json:"id"`
	BranchID         uint                `json:"branch_id"`
	TeacherID        uint                `json:"teacher_id"`
	ObserverID       uint                `json:"observer_id"`
	ReviewerID       *uint               `json:"reviewer_id,omitempty"`
	ClassSection     string              `json:"class_section,omitempty"`
	Subject          string              `json:"subject,omitempty"`
	Topic            string              `json:"topic,omitempty"`
	ObservedAt       time.Time           `json:"observed_at"`
	TotalStudents    int                 `json:"total_students"`
	PresentStudents  int                 `json:"present_students"`
	HasLessonPlan    bool                `json:"has_lesson_plan"`
	Strengths        string              `json:"strengths,omitempty"`
	AreasToImprove   string              `json:"areas_to_improve,omitempty"`
	Suggestions      string              `json:"suggestions,omitempty"`
	Status           string              `json:"status"`
	ReviewerComments string              `json:"reviewer_comments,omitempty"`
	ReviewedAt       *time.Time          `json:"reviewed_at,omitempty"`
	FinalizedAt      *time.Time          `json:"finalized_at,omitempty"`
	ItemScores       []ItemScoreResponse `json:"item_scores,omitempty"`
	CreatedAt        time.Time           `json:"created_at"`
	UpdatedAt        time.Time           `json:"updated_at"`
}

// ObservationSummaryResponse is the list-view shape, without scores.
type ObservationSummaryResponse struct {
	ID         uint      `json:"id"`
	BranchID   uint      `json:"branch_id"`
	TeacherID  uint      `json:"teacher_id"`
	ObserverID uint      `json:"observer_id"`
	Subject    string    `json:"subject,omitempty"`
	ObservedAt time.Time `json:"observed_at"`
	Status     string    `json:"status"`
}

type TransitionResponse struct {
	ObservationID uint   `json:"observation_id"`
	NewStatus     string `json:"new_status"`
}

type AuditLogResponse struct {
	ID         uint      `json:"id"`
	ObjectType string    `json:"object_type"`
	ObjectID   uint      `json:"object_id"`
	Action     string    `json:"action"`
	UserID     uint      `json:"user_id"`
	Diff       string    `json:"diff,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
