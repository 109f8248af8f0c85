package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/softskills/internal/controller"
	"github.com/lshigami/softskills/internal/dto"
	"github.com/lshigami/softskills/internal/service"
)

type AdminUserController struct {
	adminUserService service.AdminUserService
}

func NewAdminUserController(svc service.AdminUserService) *AdminUserController {
	return &AdminUserController{adminUserService: svc}
}

func (c *AdminUserController) RegisterRoutes(admin *gin.RouterGroup) {
	admin.POST("/users", c.CreateUser)
	admin.GET("/users/:user_id", c.GetUser)
}

// CreateUser godoc
// @Summary (Admin) Create a user
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Param user_data body dto.UserCreateDTO true "User"
// @Success 201 {object} dto.UserResponseDTO
// @Failure 400 {object} dto.ErrorResponse "Invalid input or email taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /admin/users [post]
func (c *AdminUserController) CreateUser(ctx *gin.Context) {
	var req dto.UserCreateDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		controller.BindError(ctx, err)
		return
	}
	user, err := c.adminUserService.CreateUser(ctx.Request.Context(), req)
	if err != nil {
		controller.RespondError(ctx, err, "Failed to create user")
		return
	}
	ctx.JSON(http.StatusCreated, user)
}

// GetUser godoc
// @Summary (Admin) Get a user
// @Tags Admin - Users
// @Produce json
// @Param user_id path string true "User ID"
// @Success 200 {object} dto.UserResponseDTO
// @Failure 404 {object} dto.ErrorResponse "User not found"
// @Router /admin/users/{user_id} [get]
func (c *AdminUserController) GetUser(ctx *gin.Context) {
	user, err := c.adminUserService.GetUser(ctx.Request.Context(), ctx.Param("user_id"))
	if err != nil {
		controller.RespondError(ctx, err, "Failed to retrieve user")
		return
	}
	ctx.JSON(http.StatusOK, user)
}
