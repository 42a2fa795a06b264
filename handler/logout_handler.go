package handler

import (
	"strings"

	"main/services"
	"main/utils"

	"github.com/gin-gonic/gin"
)

// Logout handles POST /api/user/logout. The access token from the
// Authorization header and the refresh token from the body (if supplied) are
// both blacklisted until they expire.
func Logout(c *gin.Context) {
	authHeader := c.GetHeader("Authorization")
	accessToken := strings.TrimPrefix(authHeader, "Bearer ")

	var req struct {
		RefreshToken string `json:"refresh_token"`
	}
	// Body is optional; ignore bind failures.
	_ = c.ShouldBindJSON(&req)

	if err := services.BlacklistTokens(accessToken, req.RefreshToken); err != nil {
		utils.InternalError(c, "Failed to invalidate tokens")
		return
	}

	utils.Success(c, gin.H{"message": "Logged out successfully"})
}
