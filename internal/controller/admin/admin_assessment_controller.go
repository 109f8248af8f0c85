package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/softskills/internal/controller"
	"github.com/lshigami/softskills/internal/dto"
	"github.com/lshigami/softskills/internal/service"
	"github.com/rs/zerolog/log"
)

type AdminAssessmentController struct {
	adminAssessmentService service.AdminAssessmentService
}

func NewAdminAssessmentController(svc service.AdminAssessmentService) *AdminAssessmentController {
	return &AdminAssessmentController{adminAssessmentService: svc}
}

func (c *AdminAssessmentController) RegisterRoutes(admin *gin.RouterGroup) {
	assessments := admin.Group("/assessments")
	assessments.POST("", c.CreateAssessment)
	assessments.GET("", c.ListAssessments)
	assessments.GET("/:assessment_id", c.GetAssessment)
	assessments.DELETE("/:assessment_id", c.DeleteAssessment)
}

// CreateAssessment godoc
// @Summary (Admin) Register an assessment
// @Description Registers the prompt and rubric used for one kind/language/level/task.
// @Tags Admin - Assessments
// @Accept json
// @Produce json
// @Param assessment_data body dto.AssessmentCreateDTO true "Assessment definition"
// @Success 201 {object} dto.AssessmentResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/assessments [post]
func (c *AdminAssessmentController) CreateAssessment(ctx *gin.Context) {
	var req dto.AssessmentCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("Admin CreateAssessment: Failed to bind JSON")
		controller.BindError(ctx, err)
		return
	}

	created, err := c.adminAssessmentService.CreateAssessment(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create assessment")
		return
	}
	ctx.JSON(http.StatusCreated, created)
}

// ListAssessments godoc
// @Summary (Admin) List assessments
// @Tags Admin - Assessments
// @Produce json
// @Param kind query string false "Filter by kind"
// @Success 200 {array} dto.AssessmentResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Unknown kind"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/assessments [get]
func (c *AdminAssessmentController) ListAssessments(ctx *gin.Context) {
	assessments, err := c.adminAssessmentService.ListAssessments(ctx.Request.Context(), ctx.Query("kind"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve assessments")
		return
	}
	ctx.JSON(http.StatusOK, assessments)
}

// GetAssessment godoc
// @Summary (Admin) Get an assessment
// @Tags Admin - Assessments
// @Produce json
// @Param assessment_id path string true "Assessment ID"
// @Success 200 {object} dto.AssessmentResponseDTO
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Router /admin/assessments/{assessment_id} [get]
func (c *AdminAssessmentController) GetAssessment(ctx *gin.Context) {
	assessment, err := c.adminAssessmentService.GetAssessment(ctx.Request.Context(), ctx.Param("assessment_id"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve assessment")
		return
	}
	ctx.JSON(http.StatusOK, assessment)
}

// DeleteAssessment godoc
// @Summary (Admin) Delete an assessment
// @Tags Admin - Assessments
// @Param assessment_id path string true "Assessment ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse "Assessment not found"
// @Router /admin/assessments/{assessment_id} [delete]
func (c *AdminAssessmentController) DeleteAssessment(ctx *gin.Context) {
	if err := c.adminAssessmentService.DeleteAssessment(ctx.Request.Context(), ctx.Param("assessment_id")); err != nil {
		controller.RespondError(ctx, err, "Failed to delete assessment")
		return
	}
	ctx.Status(http.StatusNoContent)
}
