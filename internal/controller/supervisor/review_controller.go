package supervisor

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/softskills/internal/controller"
	"github.com/lshigami/softskills/internal/dto"
	"github.com/lshigami/softskills/internal/service"
	"github.com/rs/zerolog/log"
)

type ReviewController struct {
	reviewService     service.ReviewService
	evaluationService service.EvaluationService
}

func NewReviewController(reviewService service.ReviewService, evaluationService service.EvaluationService) *ReviewController {
	return &ReviewController{reviewService: reviewService, evaluationService: evaluationService}
}

func (c *ReviewController) RegisterRoutes(api *gin.RouterGroup) {
	group := api.Group("/supervisor/attempts")
	group.GET("/pending", c.ListPending)
	group.POST("/:attempt_id/evaluation", c.SubmitEvaluation)
}

// ListPending godoc
// @Summary (Supervisor) List attempts waiting for review
// @Description Newest first. User info is null when it cannot be resolved.
// @Tags Supervisor - Review
// @Produce json
// @Param limit query int false "Maximum number of attempts (default 50, max 200)"
// @Success 200 {array} dto.PendingAttemptDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid limit"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /supervisor/attempts/pending [get]
func (c *ReviewController) ListPending(ctx *gin.Context) {
	limit := 0
	if raw := ctx.Query("limit"); raw != "" {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid limit", Field: "limit"})
			return
		}
		limit = v
	}

	pending, err := c.reviewService.ListPending(ctx.Request.Context(), limit)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve pending attempts")
		return
	}
	ctx.JSON(http.StatusOK, pending)
}

// SubmitEvaluation godoc
// @Summary (Supervisor) Evaluate a pending attempt
// @Description Criteria, when given, define the score as round(100 * sum(score) / sum(max_score)); otherwise raw_score is read out of score_scale (default 100).
// @Tags Supervisor - Review
// @Accept json
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Param evaluation body dto.EvaluationRequest true "Evaluation"
// @Success 200 {object} dto.AttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input or attempt not pending"
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /supervisor/attempts/{attempt_id}/evaluation [post]
func (c *ReviewController) SubmitEvaluation(ctx *gin.Context) {
	var req dto.EvaluationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitEvaluation: Failed to bind JSON")
		controller.BindError(ctx, err)
		return
	}

	attempt, err := c.evaluationService.SubmitEvaluation(ctx.Request.Context(), ctx.Param("attempt_id"), req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to submit evaluation")
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}
