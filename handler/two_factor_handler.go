package handler

import (
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type TwoFactorHandler struct {
	userService *usecase.UserService
}

func NewTwoFactorHandler(userService *usecase.UserService) *TwoFactorHandler {
	return &TwoFactorHandler{userService: userService}
}

// Enable handles POST /api/user/2fa/enable. Generates a secret and returns
// the provisioning URL; the factor activates once a code is verified.
func (h *TwoFactorHandler) Enable(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	secret, url, err := h.userService.EnableTwoFactor(c.Request.Context(), userID.(string))
	if err != nil {
		if err.Error() == "two-factor authentication already enabled" {
			utils.Conflict(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{
		"secret": secret,
		"url":    url,
	})
}

// Verify handles POST /api/user/2fa/verify.
func (h *TwoFactorHandler) Verify(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Code string `json:"code" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Missing verification code")
		return
	}

	if err := h.userService.VerifyTwoFactor(c.Request.Context(), userID.(string), req.Code); err != nil {
		utils.BadRequest(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Two-factor authentication enabled"})
}
