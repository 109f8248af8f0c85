package user

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/softskills/internal/controller"
	"github.com/lshigami/softskills/internal/dto"
	"github.com/lshigami/softskills/internal/model"
	"github.com/lshigami/softskills/internal/service"
	"github.com/rs/zerolog/log"
)

type AttemptController struct {
	attemptService service.AttemptService
}

func NewAttemptController(attemptService service.AttemptService) *AttemptController {
	return &AttemptController{attemptService: attemptService}
}

func (c *AttemptController) RegisterRoutes(api *gin.RouterGroup) {
	api.GET("/attempts/eligibility", c.CheckEligibility)
	api.POST("/attempts", c.SubmitAttempt)
	api.GET("/attempts/:attempt_id", c.GetAttempt)
	api.GET("/users/:user_id/attempts", c.ListUserAttempts)
}

// CheckEligibility godoc
// @Summary (User) Check whether a new attempt is allowed
// @Description An attempt is blocked while the previous one for the same key is pending review or inside its cooldown.
// @Tags User - Attempts
// @Produce json
// @Param user_id query string true "User ID"
// @Param kind query string true "Assessment kind" Enums(leadership, problem_solving, adaptability, speaking, presentation)
// @Param language query string false "Language"
// @Param level query string false "Level"
// @Param task_id query string false "Task ID"
// @Success 200 {object} dto.EligibilityResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid key"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attempts/eligibility [get]
func (c *AttemptController) CheckEligibility(ctx *gin.Context) {
	var q dto.AttemptKeyQuery
	if err := ctx.ShouldBindQuery(&q); err != nil {
		controller.BindError(ctx, err)
		return
	}
	key := model.AttemptKey{UserID: q.UserID, Kind: model.Kind(q.Kind), Language: q.Language, Level: q.Level, TaskID: q.TaskID}

	eligibility, err := c.attemptService.CheckEligibility(ctx.Request.Context(), key)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to check eligibility")
		return
	}
	ctx.JSON(http.StatusOK, eligibility)
}

// SubmitAttempt godoc
// @Summary (User) Submit a response
// @Description Scores the response automatically and queues it for supervisor review.
// @Tags User - Attempts
// @Accept json
// @Produce json
// @Param submission body dto.SubmitAttemptRequest true "Attempt key and transcript or video"
// @Success 201 {object} dto.AttemptResponse
// @Failure 400 {object} dto.ErrorResponse "Invalid input"
// @Failure 409 {object} dto.IneligibleResponse "Pending review or in cooldown"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attempts [post]
func (c *AttemptController) SubmitAttempt(ctx *gin.Context) {
	var req dto.SubmitAttemptRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAttempt: Failed to bind JSON")
		controller.BindError(ctx, err)
		return
	}
	key := model.AttemptKey{UserID: req.UserID, Kind: model.Kind(req.Kind), Language: req.Language, Level: req.Level, TaskID: req.TaskID}
	ref := model.SubmissionRef{Transcript: req.Transcript, VideoURL: req.VideoURL, VideoID: req.VideoID}

	attempt, err := c.attemptService.Submit(ctx.Request.Context(), key, ref)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to submit attempt")
		return
	}
	ctx.JSON(http.StatusCreated, attempt)
}

// GetAttempt godoc
// @Summary (User) Get an attempt
// @Tags User - Attempts
// @Produce json
// @Param attempt_id path string true "Attempt ID"
// @Success 200 {object} dto.AttemptResponse
// @Failure 404 {object} dto.ErrorResponse "Attempt not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attempts/{attempt_id} [get]
func (c *AttemptController) GetAttempt(ctx *gin.Context) {
	attempt, err := c.attemptService.GetAttempt(ctx.Request.Context(), ctx.Param("attempt_id"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve attempt")
		return
	}
	ctx.JSON(http.StatusOK, attempt)
}

// ListUserAttempts godoc
// @Summary (User) List a user's attempts
// @Description One entry per attempt key, newest first.
// @Tags User - Attempts
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {array} dto.AttemptSummaryDTO
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /users/{user_id}/attempts [get]
func (c *AttemptController) ListUserAttempts(ctx *gin.Context) {
	attempts, err := c.attemptService.ListUserAttempts(ctx.Request.Context(), ctx.Param("user_id"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve attempts")
		return
	}
	ctx.JSON(http.StatusOK, attempts)
}
