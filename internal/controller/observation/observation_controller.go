package observation

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/teachscope/teachscope/internal/controller"
	"github.com/teachscope/teachscope/internal/dto"
	"github.com/teachscope/teachscope/internal/model"
	"github.com/teachscope/teachscope/internal/repository"
	"github.com/teachscope/teachscope/internal/service"
)

type ObservationController struct {
	obsSvc service.ObservationService
}

func NewObservationController(obsSvc service.ObservationService) *ObservationController {
	return &ObservationController{obsSvc: obsSvc}
}

// CreateObservation godoc
// @Summary Create an observation
// @Description Record a new classroom observation in DRAFT status, optionally with initial item ratings
// @Tags observations
// @Accept json
// @Produce json
// @Param observation body dto.ObservationCreateRequest true "Observation data"
// @Success 201 {object} dto.ObservationResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /observations [post]
func (ctrl *ObservationController) CreateObservation(c *gin.Context) {
	var req dto.ObservationCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind ObservationCreateRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.obsSvc.Create(req, controller.CurrentActor(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListObservations godoc
// @Summary List observations
// @Description List observations, filterable by branch, teacher, observer, and status
// @Tags observations
// @Produce json
// @Param branch_id query int false "Branch ID"
// @Param teacher_id query int false "Teacher ID"
// @Param observer_id query int false "Observer ID"
// @Param status query string false "Status (DRAFT|SUBMITTED|REVIEWED|FINALIZED)"
// @Success 200 {array} dto.ObservationSummaryResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /observations [get]
func (ctrl *ObservationController) ListObservations(c *gin.Context) {
	var filter repository.ObservationFilter
	if v, ok := queryUint(c, "branch_id"); ok {
		filter.BranchID = &v
	}
	if v, ok := queryUint(c, "teacher_id"); ok {
		filter.TeacherID = &v
	}
	if v, ok := queryUint(c, "observer_id"); ok {
		filter.ObserverID = &v
	}
	if raw := c.Query("status"); raw != "" {
		status, ok := model.ParseStatus(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid status filter"})
			return
		}
		filter.Status = &status
	}

	resp, err := ctrl.obsSvc.List(filter)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetObservation godoc
// @Summary Get an observation
// @Description Retrieve one observation with its item scores
// @Tags observations
// @Produce json
// @Param id path int true "Observation ID"
// @Success 200 {object} dto.ObservationResponse
// @Failure 404 {object} dto.ErrorResponse "Observation not found"
// @Router /observations/{id} [get]
func (ctrl *ObservationController) GetObservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	resp, err := ctrl.obsSvc.Get(id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateObservation godoc
// @Summary Update an observation
// @Description Edit observation fields and item scores. Allowed only for the observer of record or an admin, and only before finalization.
// @Tags observations
// @Accept json
// @Produce json
// @Param id path int true "Observation ID"
// @Param observation body dto.ObservationUpdateRequest true "Fields to update"
// @Success 200 {object} dto.ObservationResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 403 {object} dto.ErrorResponse "Not the observer of record"
// @Failure 404 {object} dto.ErrorResponse "Observation not found"
// @Failure 409 {object} dto.ErrorResponse "Observation is finalized"
// @Router /observations/{id} [put]
func (ctrl *ObservationController) UpdateObservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.ObservationUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind ObservationUpdateRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.obsSvc.Update(id, req, controller.CurrentActor(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// DeleteObservation godoc
// @Summary Delete an observation
// @Description Delete a non-finalized observation together with its item scores
// @Tags observations
// @Produce json
// @Param id path int true "Observation ID"
// @Success 204 "Deleted"
// @Failure 403 {object} dto.ErrorResponse "Not the observer of record"
// @Failure 404 {object} dto.ErrorResponse "Observation not found"
// @Failure 409 {object} dto.ErrorResponse "Observation is finalized"
// @Router /observations/{id} [delete]
func (ctrl *ObservationController) DeleteObservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctrl.obsSvc.Delete(id, controller.CurrentActor(c)); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ValidateObservation godoc
// @Summary Validate an observation
// @Description Run the full pre-submission rule set and return every failure in one pass
// @Tags observations
// @Produce json
// @Param id path int true "Observation ID"
// @Success 200 {object} dto.ValidationCheckResponse
// @Failure 404 {object} dto.ErrorResponse "Observation not found"
// @Router /observations/{id}/validate [get]
func (ctrl *ObservationController) ValidateObservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	result, err := ctrl.obsSvc.Validate(id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ValidationCheckResponse{IsValid: result.IsValid, Errors: result.Errors})
}

// GetScoreReport godoc
// @Summary Get an observation's score report
// @Description Recompute per-domain totals, the grand total, and the overall rating from current ratings
// @Tags observations
// @Produce json
// @Param id path int true "Observation ID"
// @Success 200 {object} dto.ScoreReportResponse
// @Failure 404 {object} dto.ErrorResponse "Observation not found"
// @Router /observations/{id}/score [get]
func (ctrl *ObservationController) GetScoreReport(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	report, err := ctrl.obsSvc.ScoreReport(id)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, report)
}

// TransitionObservation godoc
// @Summary Apply a lifecycle transition
// @Description Apply SUBMIT, REVIEW, FINALIZE, or RETURN_TO_DRAFT to an observation
// @Tags observations
// @Accept json
// @Produce json
// @Param id path int true "Observation ID"
// @Param transition body dto.TransitionRequest true "Action and optional reviewer comments"
// @Success 200 {object} dto.TransitionResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 403 {object} dto.ErrorResponse "Actor may not perform this action"
// @Failure 404 {object} dto.ErrorResponse "Observation not found"
// @Failure 409 {object} dto.ErrorResponse "State does not permit this action, or concurrent transition"
// @Failure 422 {object} dto.ValidationErrorResponse "Precondition failed"
// @Router /observations/{id}/transition [post]
func (ctrl *ObservationController) TransitionObservation(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind TransitionRequest")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}

	resp, err := ctrl.obsSvc.Transition(id, req, controller.CurrentActor(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid observation ID format"})
		return 0, false
	}
	return uint(id), true
}

func queryUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Query(name)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(v), true
}
