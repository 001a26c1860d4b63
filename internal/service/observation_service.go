package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/teachscope/teachscope/internal/dto"
	"github.com/teachscope/teachscope/internal/model"
	"github.com/teachscope/teachscope/internal/repository"
	"gorm.io/gorm"
)

const auditObjectObservation = "observation"

// Actor identifies who is asking. Identity issuance is outside this service;
// the HTTP layer resolves it from the request.
type Actor struct {
	ID   uint
	Role model.Role
}

// ObservationService owns the observation lifecycle: CRUD while mutable,
// the status state machine, and score reports derived on read.
type ObservationService interface {
	Create(req dto.ObservationCreateRequest, actor Actor) (*dto.ObservationResponse, error)
	Get(id uint) (*dto.ObservationResponse, error)
	List(filter repository.ObservationFilter) ([]dto.ObservationSummaryResponse, error)
	Update(id uint, req dto.ObservationUpdateRequest, actor Actor) (*dto.ObservationResponse, error)
	Delete(id uint, actor Actor) error
	Validate(id uint) (ValidationResult, error)
	ScoreReport(id uint) (*dto.ScoreReportResponse, error)
	Transition(id uint, req dto.TransitionRequest, actor Actor) (*dto.TransitionResponse, error)
}

type observationService struct {
	obsRepo    repository.ObservationRepository
	scoreRepo  repository.ItemScoreRepository
	rubricRepo repository.RubricRepository
	scoring    ScoringService
	audit      AuditService
}

func NewObservationService(
	obsRepo repository.ObservationRepository,
	scoreRepo repository.ItemScoreRepository,
	rubricRepo repository.RubricRepository,
	scoring ScoringService,
	audit AuditService,
) ObservationService {
	return &observationService{
		obsRepo:    obsRepo,
		scoreRepo:  scoreRepo,
		rubricRepo: rubricRepo,
		scoring:    scoring,
		audit:      audit,
	}
}

func (s *observationService) Create(req dto.ObservationCreateRequest, actor Actor) (*dto.ObservationResponse, error) {
	obs := model.Observation{
		BranchID:        req.BranchID,
		TeacherID:       req.TeacherID,
		ObserverID:      actor.ID,
		ClassSection:    req.ClassSection,
		Subject:         req.Subject,
		Topic:           req.Topic,
		ObservedAt:      req.ObservedAt,
		TotalStudents:   req.TotalStudents,
		PresentStudents: req.PresentStudents,
		HasLessonPlan:   req.HasLessonPlan,
		Strengths:       req.Strengths,
		AreasToImprove:  req.AreasToImprove,
		Suggestions:     req.Suggestions,
		Status:          model.StatusDraft,
	}
	for _, in := range req.ItemScores {
		obs.ItemScores = append(obs.ItemScores, itemScoreFromInput(0, in))
	}

	if err := s.obsRepo.Create(&obs); err != nil {
		log.Error().Err(err).Msg("Create observation failed")
		return nil, fmt.Errorf("failed to create observation: %w", err)
	}

	s.audit.Record(auditObjectObservation, obs.ID, "CREATE", actor.ID, map[string]interface{}{
		"status": obs.Status,
	})

	return s.Get(obs.ID)
}

func (s *observationService) Get(id uint) (*dto.ObservationResponse, error) {
	obs, err := s.obsRepo.FindByIDWithScores(id)
	if err != nil {
		return nil, mapNotFound(err, id)
	}
	return toObservationDTO(obs), nil
}

func (s *observationService) List(filter repository.ObservationFilter) ([]dto.ObservationSummaryResponse, error) {
	observations, err := s.obsRepo.FindAll(filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list observations: %w", err)
	}
	dtos := make([]dto.ObservationSummaryResponse, len(observations))
	for i := range observations {
		copier.Copy(&dtos[i], &observations[i])
		dtos[i].Status = string(observations[i].Status)
	}
	return dtos, nil
}

func (s *observationService) Update(id uint, req dto.ObservationUpdateRequest, actor Actor) (*dto.ObservationResponse, error) {
	obs, err := s.obsRepo.FindByID(id)
	if err != nil {
		return nil, mapNotFound(err, id)
	}
	if err := s.checkMutable(obs, actor, "edit"); err != nil {
		return nil, err
	}

	applyUpdate(obs, req)
	scores := make([]model.ItemScore, 0, len(req.ItemScores))
	for _, in := range req.ItemScores {
		scores = append(scores, itemScoreFromInput(obs.ID, in))
	}
	// One transaction for fields and scores: a failed score write must not
	// leave the field changes behind.
	if err := s.obsRepo.UpdateWithScores(obs, scores); err != nil {
		return nil, fmt.Errorf("failed to update observation %d: %w", id, err)
	}

	s.audit.Record(auditObjectObservation, obs.ID, "UPDATE", actor.ID, map[string]interface{}{
		"fields_updated": true,
		"scores_updated": len(req.ItemScores),
	})

	return s.Get(obs.ID)
}

func (s *observationService) Delete(id uint, actor Actor) error {
	obs, err := s.obsRepo.FindByID(id)
	if err != nil {
		return mapNotFound(err, id)
	}
	if err := s.checkMutable(obs, actor, "delete"); err != nil {
		return err
	}

	if err := s.obsRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete observation %d: %w", id, err)
	}

	s.audit.Record(auditObjectObservation, id, "DELETE", actor.ID, map[string]interface{}{
		"status_at_delete": obs.Status,
	})
	return nil
}

// Validate runs the full pre-submission rule set and reports every failure.
// It never blocks a draft save; callers use it to surface problems early.
func (s *observationService) Validate(id uint) (ValidationResult, error) {
	obs, err := s.obsRepo.FindByIDWithScores(id)
	if err != nil {
		return ValidationResult{}, mapNotFound(err, id)
	}
	return s.scoring.ValidateObservationData(ObservationData{
		TotalStudents:   obs.TotalStudents,
		PresentStudents: obs.PresentStudents,
		ItemScores:      scoreEntries(obs.ItemScores),
	}), nil
}

// ScoreReport recomputes the full score breakdown from the current rubric
// snapshot and ratings. Nothing here is persisted.
func (s *observationService) ScoreReport(id uint) (*dto.ScoreReportResponse, error) {
	obs, err := s.obsRepo.FindByIDWithScores(id)
	if err != nil {
		return nil, mapNotFound(err, id)
	}
	domains, err := s.rubricRepo.FindActiveDomainsWithItems()
	if err != nil {
		return nil, fmt.Errorf("failed to load rubric: %w", err)
	}

	domainScores := s.scoring.CalculateDomainScores(domains, scoreEntries(obs.ItemScores))
	overall := s.scoring.CalculateOverallRating(domainScores, nil)
	grandTotal := s.scoring.CalculateGrandTotal(domainScores)

	report := &dto.ScoreReportResponse{
		ObservationID: obs.ID,
		GrandTotal:    grandTotal,
		OverallRating: dto.OverallRatingDTO{
			Rating:     overall.Rating,
			Color:      overall.Color,
			Percentage: overall.Percentage,
		},
	}
	report.DomainScores = make([]dto.DomainScoreDTO, len(domainScores))
	for i, ds := range domainScores {
		copier.Copy(&report.DomainScores[i], &ds)
	}
	return report, nil
}

func (s *observationService) Transition(id uint, req dto.TransitionRequest, actor Actor) (*dto.TransitionResponse, error) {
	action, ok := ParseAction(req.Action)
	if !ok {
		return nil, &ValidationError{Errors: []string{fmt.Sprintf("unknown action %q", req.Action)}}
	}

	obs, err := s.obsRepo.FindByID(id)
	if err != nil {
		return nil, mapNotFound(err, id)
	}

	if !CanPerform(actor.Role, action, obs.Status) {
		// Distinguish "who" from "why": a role the table never allows is an
		// authorization failure, anything else is a state precondition.
		if !roleAllowed(actor.Role, action) {
			return nil, &AuthorizationError{Reason: fmt.Sprintf("role %s may not perform %s", actor.Role, action)}
		}
		return nil, &StateError{Action: action, Current: obs.Status}
	}
	if action == ActionSubmit && actor.Role != model.RoleAdmin && obs.ObserverID != actor.ID {
		return nil, &AuthorizationError{Reason: "only the observation's observer or an admin may submit it"}
	}

	fields, newStatus, err := s.transitionEffects(obs, action, actor, req.ReviewerComments)
	if err != nil {
		return nil, err
	}

	if err := s.obsRepo.UpdateStatusFrom(obs.ID, obs.Status, fields); err != nil {
		if errors.Is(err, repository.ErrStaleStatus) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to apply %s on observation %d: %w", action, id, err)
	}

	s.audit.Record(auditObjectObservation, obs.ID, string(action), actor.ID, map[string]interface{}{
		"previous_status": obs.Status,
		"new_status":      newStatus,
	})

	return &dto.TransitionResponse{ObservationID: obs.ID, NewStatus: string(newStatus)}, nil
}

// transitionEffects builds the column set one transition writes. The submit
// gate counts non-nil ratings, zero included: "Not Observed" entries satisfy
// it even though scoring excludes them. That asymmetry is long-standing
// recorded behavior.
func (s *observationService) transitionEffects(obs *model.Observation, action Action, actor Actor, reviewerComments string) (map[string]interface{}, model.Status, error) {
	now := time.Now()
	switch action {
	case ActionSubmit:
		scores, err := s.scoreRepo.FindByObservationID(obs.ID)
		if err != nil {
			return nil, "", fmt.Errorf("failed to load item scores for observation %d: %w", obs.ID, err)
		}
		rated := 0
		for _, sc := range scores {
			if sc.Rating != nil {
				rated++
			}
		}
		if rated == 0 {
			return nil, "", &ValidationError{Errors: []string{"at least one item must be rated before submission"}}
		}
		return map[string]interface{}{"status": model.StatusSubmitted}, model.StatusSubmitted, nil

	case ActionReview:
		return map[string]interface{}{
			"status":            model.StatusReviewed,
			"reviewer_id":       actor.ID,
			"reviewed_at":       now,
			"reviewer_comments": reviewerComments,
		}, model.StatusReviewed, nil

	case ActionFinalize:
		return map[string]interface{}{
			"status":       model.StatusFinalized,
			"finalized_at": now,
		}, model.StatusFinalized, nil

	case ActionReturnToDraft:
		return map[string]interface{}{
			"status":            model.StatusDraft,
			"reviewer_id":       nil,
			"reviewed_at":       nil,
			"reviewer_comments": "",
		}, model.StatusDraft, nil
	}
	return nil, "", &StateError{Action: action, Current: obs.Status}
}

// checkMutable enforces the edit/delete rules that hold independent of
// transitions: observer-of-record or admin, and never once FINALIZED.
func (s *observationService) checkMutable(obs *model.Observation, actor Actor, verb string) error {
	if obs.Status == model.StatusFinalized {
		return &StateError{Action: Action(strings.ToUpper(verb)), Current: obs.Status}
	}
	if actor.Role != model.RoleAdmin && obs.ObserverID != actor.ID {
		return &AuthorizationError{Reason: fmt.Sprintf("only the observation's observer or an admin may %s it", verb)}
	}
	return nil
}

func applyUpdate(obs *model.Observation, req dto.ObservationUpdateRequest) {
	if req.ClassSection != nil {
		obs.ClassSection = *req.ClassSection
	}
	if req.Subject != nil {
		obs.Subject = *req.Subject
	}
	if req.Topic != nil {
		obs.Topic = *req.Topic
	}
	if req.ObservedAt != nil {
		obs.ObservedAt = *req.ObservedAt
	}
	if req.TotalStudents != nil {
		obs.TotalStudents = *req.TotalStudents
	}
	if req.PresentStudents != nil {
		obs.PresentStudents = *req.PresentStudents
	}
	if req.HasLessonPlan != nil {
		obs.HasLessonPlan = *req.HasLessonPlan
	}
	if req.Strengths != nil {
		obs.Strengths = *req.Strengths
	}
	if req.AreasToImprove != nil {
		obs.AreasToImprove = *req.AreasToImprove
	}
	if req.Suggestions != nil {
		obs.Suggestions = *req.Suggestions
	}
}

func itemScoreFromInput(observationID uint, in dto.ItemScoreInput) model.ItemScore {
	score := model.ItemScore{
		ObservationID: observationID,
		RubricItemID:  in.RubricItemID,
		Rating:        in.Rating,
	}
	if in.Comment != nil {
		score.Comment = *in.Comment
	}
	return score
}

func scoreEntries(scores []model.ItemScore) map[uint]ScoreEntry {
	entries := make(map[uint]ScoreEntry, len(scores))
	for _, sc := range scores {
		entries[sc.RubricItemID] = ScoreEntry{Rating: sc.Rating, Comment: sc.Comment}
	}
	return entries
}

func toObservationDTO(obs *model.Observation) *dto.ObservationResponse {
	var resp dto.ObservationResponse
	copier.Copy(&resp, obs)
	resp.Status = string(obs.Status)
	resp.ItemScores = make([]dto.ItemScoreResponse, len(obs.ItemScores))
	for i := range obs.ItemScores {
		copier.Copy(&resp.ItemScores[i], &obs.ItemScores[i])
	}
	return &resp
}

func mapNotFound(err error, id uint) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("observation %d: %w", id, ErrNotFound)
	}
	return err
}
