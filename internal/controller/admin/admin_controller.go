package admin

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/teachscope/teachscope/internal/controller"
	"github.com/teachscope/teachscope/internal/dto"
	"github.com/teachscope/teachscope/internal/service"
)

type AdminController struct {
	rubricSvc service.RubricService
	orgSvc    service.OrgService
	auditSvc  service.AuditService
}

func NewAdminController(rubricSvc service.RubricService, orgSvc service.OrgService, auditSvc service.AuditService) *AdminController {
	return &AdminController{rubricSvc: rubricSvc, orgSvc: orgSvc, auditSvc: auditSvc}
}

// GetRubric godoc
// @Summary Get the active rubric
// @Description Active domains in order, each with its active items in order
// @Tags rubric
// @Produce json
// @Success 200 {array} dto.RubricDomainResponse
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/rubric [get]
func (ctrl *AdminController) GetRubric(c *gin.Context) {
	resp, err := ctrl.rubricSvc.GetRubric()
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CreateRubricDomain godoc
// @Summary Create a rubric domain
// @Tags rubric
// @Accept json
// @Produce json
// @Param domain body dto.RubricDomainCreateDTO true "Domain with optional items"
// @Success 201 {object} dto.RubricDomainResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 422 {object} dto.ValidationErrorResponse "Duplicate order indexes"
// @Router /admin/rubric/domains [post]
func (ctrl *AdminController) CreateRubricDomain(c *gin.Context) {
	var req dto.RubricDomainCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Failed to bind RubricDomainCreateDTO")
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.rubricSvc.CreateDomain(req, controller.CurrentActor(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// UpdateRubricDomain godoc
// @Summary Update a rubric domain
// @Tags rubric
// @Accept json
// @Produce json
// @Param id path int true "Domain ID"
// @Param domain body dto.RubricDomainUpdateDTO true "Fields to update"
// @Success 200 {object} dto.RubricDomainResponse
// @Failure 404 {object} dto.ErrorResponse "Domain not found"
// @Router /admin/rubric/domains/{id} [put]
func (ctrl *AdminController) UpdateRubricDomain(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.RubricDomainUpdateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.rubricSvc.UpdateDomain(id, req, controller.CurrentActor(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ArchiveRubricDomain godoc
// @Summary Archive a rubric domain
// @Description Flag the domain inactive. Historical observations keep their references; nothing is physically removed.
// @Tags rubric
// @Produce json
// @Param id path int true "Domain ID"
// @Success 204 "Archived"
// @Failure 404 {object} dto.ErrorResponse "Domain not found"
// @Router /admin/rubric/domains/{id} [delete]
func (ctrl *AdminController) ArchiveRubricDomain(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctrl.rubricSvc.ArchiveDomain(id, controller.CurrentActor(c)); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddRubricItem godoc
// @Summary Add an item to a rubric domain
// @Tags rubric
// @Accept json
// @Produce json
// @Param id path int true "Domain ID"
// @Param item body dto.RubricItemCreateDTO true "Item data"
// @Success 201 {object} dto.RubricItemResponse
// @Failure 404 {object} dto.ErrorResponse "Domain not found"
// @Failure 422 {object} dto.ValidationErrorResponse "Order index taken"
// @Router /admin/rubric/domains/{id}/items [post]
func (ctrl *AdminController) AddRubricItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var req dto.RubricItemCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.rubricSvc.AddItem(id, req, controller.CurrentActor(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ArchiveRubricItem godoc
// @Summary Archive a rubric item
// @Tags rubric
// @Produce json
// @Param id path int true "Item ID"
// @Success 204 "Archived"
// @Failure 404 {object} dto.ErrorResponse "Item not found"
// @Router /admin/rubric/items/{id} [delete]
func (ctrl *AdminController) ArchiveRubricItem(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctrl.rubricSvc.ArchiveItem(id, controller.CurrentActor(c)); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateBranch godoc
// @Summary Create a branch
// @Tags org
// @Accept json
// @Produce json
// @Param branch body dto.BranchCreateDTO true "Branch data"
// @Success 201 {object} dto.BranchResponse
// @Router /admin/branches [post]
func (ctrl *AdminController) CreateBranch(c *gin.Context) {
	var req dto.BranchCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.orgSvc.CreateBranch(req, controller.CurrentActor(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListBranches godoc
// @Summary List branches
// @Tags org
// @Produce json
// @Param active_only query bool false "Only active branches"
// @Success 200 {array} dto.BranchResponse
// @Router /admin/branches [get]
func (ctrl *AdminController) ListBranches(c *gin.Context) {
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active_only", "false"))
	resp, err := ctrl.orgSvc.ListBranches(activeOnly)
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ArchiveBranch godoc
// @Summary Archive a branch
// @Tags org
// @Produce json
// @Param id path int true "Branch ID"
// @Success 204 "Archived"
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Router /admin/branches/{id} [delete]
func (ctrl *AdminController) ArchiveBranch(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctrl.orgSvc.ArchiveBranch(id, controller.CurrentActor(c)); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateTeacher godoc
// @Summary Create a teacher
// @Tags org
// @Accept json
// @Produce json
// @Param teacher body dto.TeacherCreateDTO true "Teacher data"
// @Success 201 {object} dto.TeacherResponse
// @Failure 404 {object} dto.ErrorResponse "Branch not found"
// @Router /admin/teachers [post]
func (ctrl *AdminController) CreateTeacher(c *gin.Context) {
	var req dto.TeacherCreateDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: err.Error()})
		return
	}
	resp, err := ctrl.orgSvc.CreateTeacher(req, controller.CurrentActor(c))
	if err != nil {
		controller.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// ListTeachers godoc
// @Summary List teachers in a branch
// @Tags org
// @Produce json
// @Param branch_id query int true "Branch ID"
// @Param active_only query bool false "Only active teachers"
// @Success 200 {array} dto.TeacherResponse
// @Router /admin/teachers [get]
func (ctrl *AdminController) ListTeachers(c *gin.Context) {
	branchID, err := strconv.ParseUint(c.Query("branch_id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "branch_id query parameter is required"})
		return
	}
	activeOnly, _ := strconv.ParseBool(c.DefaultQuery("active_only", "false"))
	resp, listErr := ctrl.orgSvc.ListTeachers(uint(branchID), activeOnly)
	if listErr != nil {
		controller.RespondError(c, listErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// ArchiveTeacher godoc
// @Summary Archive a teacher
// @Tags org
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 204 "Archived"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Router /admin/teachers/{id} [delete]
func (ctrl *AdminController) ArchiveTeacher(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := ctrl.orgSvc.ArchiveTeacher(id, controller.CurrentActor(c)); err != nil {
		controller.RespondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GetAuditLog godoc
// @Summary Audit history for one object
// @Tags audit
// @Produce json
// @Param object_type query string true "Object type, e.g. observation"
// @Param object_id query int true "Object ID"
// @Success 200 {array} dto.AuditLogResponse
// @Router /admin/audit [get]
func (ctrl *AdminController) GetAuditLog(c *gin.Context) {
	objectType := c.Query("object_type")
	objectID, err := strconv.ParseUint(c.Query("object_id"), 10, 32)
	if objectType == "" || err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "object_type and object_id query parameters are required"})
		return
	}
	resp, histErr := ctrl.auditSvc.History(objectType, uint(objectID))
	if histErr != nil {
		controller.RespondError(c, histErr)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func pathID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid ID format"})
		return 0, false
	}
	return uint(id), true
}
