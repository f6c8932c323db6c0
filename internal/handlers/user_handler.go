package handlers

import (
	"net/http"
	"strconv"

	"hirepro_backend/internal/appErrors"
	"hirepro_backend/internal/middleware"
	"hirepro_backend/internal/models"
	"hirepro_backend/internal/services"
	"hirepro_backend/internal/services/dto"
	"hirepro_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userSvc services.UserService
}

func NewUserHandler(v *validator.Validator, userSvc services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: NewBaseHandler(v),
		userSvc:     userSvc,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	users := rg.Group("/users")
	{
		users.GET("", middleware.RequireUserTypes(models.UserTypeSystemAdmin), h.List)
		users.GET("/me", h.GetMe)
		users.PUT("/me", h.UpdateMe)
		users.PATCH("/me", h.UpdateMe)
		users.GET("/:id", h.GetByID)
		users.PUT("/:id", h.UpdateByID)
		users.PATCH("/:id", h.UpdateByID)
	}
}

func (h *UserHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	users, total, err := h.userSvc.List(limit, offset)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}

	resp := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		resp = append(resp, dto.NewUserResponse(&users[i]))
	}
	c.JSON(http.StatusOK, gin.H{"users": resp, "total": total})
}

func (h *UserHandler) GetMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *UserHandler) UpdateMe(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}
	h.updateProfile(c, user.ID)
}

func (h *UserHandler) GetByID(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	targetID := c.Param("id")
	if current.ID != targetID && current.UserType != models.UserTypeSystemAdmin {
		appErrors.HandleError(c, appErrors.ErrForbidden)
		return
	}

	user, err := h.userSvc.GetByID(targetID)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}

func (h *UserHandler) UpdateByID(c *gin.Context) {
	current, ok := middleware.CurrentUser(c)
	if !ok {
		appErrors.HandleError(c, appErrors.ErrUnauthorized)
		return
	}

	targetID := c.Param("id")
	if current.ID != targetID && current.UserType != models.UserTypeSystemAdmin {
		appErrors.HandleError(c, appErrors.ErrForbidden)
		return
	}
	h.updateProfile(c, targetID)
}

func (h *UserHandler) updateProfile(c *gin.Context, userID string) {
	var req dto.UpdateProfileRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	user, err := h.userSvc.UpdateProfile(userID, &req)
	if err != nil {
		appErrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewUserResponse(user))
}
