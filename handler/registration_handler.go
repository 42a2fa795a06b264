package handler

import (
	"main/model"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	userService *usecase.UserService
}

func NewAuthHandler(userService *usecase.UserService) *AuthHandler {
	return &AuthHandler{userService: userService}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var user model.User
	if err := c.ShouldBindJSON(&user); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	if err := h.userService.CreateUser(c.Request.Context(), &user); err != nil {
		switch err.Error() {
		case "username already exists", "email already exists":
			utils.TrackAuthAttempt("failure", "register")
			utils.Conflict(c, err.Error())
		default:
			utils.TrackAuthAttempt("failure", "register")
			utils.BadRequest(c, err.Error())
		}
		return
	}

	token, err := services.GenerateToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate token")
		return
	}
	refreshToken, err := services.GenerateRefreshToken(user.UserID)
	if err != nil {
		utils.InternalError(c, "Failed to generate refresh token")
		return
	}

	utils.TrackAuthAttempt("success", "register")
	utils.Created(c, gin.H{
		"user_id": user.UserID,
		"token":   token,
		"refresh": refreshToken,
	})
}
