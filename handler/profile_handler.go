package handler

import (
	"errors"

	"main/dto"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	userService *usecase.UserService
	sessionRepo *repository.SessionsRepo
}

func NewProfileHandler(userService *usecase.UserService, sessionRepo *repository.SessionsRepo) *ProfileHandler {
	return &ProfileHandler{userService: userService, sessionRepo: sessionRepo}
}

// GetProfile handles GET /api/user/profile
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	user, err := h.userService.FindUserByID(c.Request.Context(), userID.(string))
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			utils.NotFound(c, "User not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToUserProfileResponse(user))
}

// GetSessions handles GET /api/user/sessions — the device login history.
func (h *ProfileHandler) GetSessions(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	sessions, err := h.sessionRepo.GetUserSessions(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, sessions)
}
