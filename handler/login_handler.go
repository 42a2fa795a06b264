package handler

import (
	"log"
	"time"

	"main/model"
	"main/repository"
	"main/services"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type LoginHandler struct {
	userService *usecase.UserService
	sessionRepo *repository.SessionsRepo
}

func NewLoginHandler(userService *usecase.UserService, sessionRepo *repository.SessionsRepo) *LoginHandler {
	return &LoginHandler{userService: userService, sessionRepo: sessionRepo}
}

// Login handles POST /api/auth/login
func (h *LoginHandler) Login(c *gin.Context) {
	var loginReq model.LoginRequest
	if err := c.ShouldBindJSON(&loginReq); err != nil {
		utils.BadRequest(c, "Invalid request")
		return
	}

	user, err := h.userService.FindUserByUsername(c.Request.Context(), loginReq.Username)
	if err != nil {
		utils.InternalError(c, "Failed to look up user")
		return
	}
	if user == nil {
		utils.TrackAuthAttempt("failure", "login")
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	checkPassword, err := services.VerifyPassword(user.Password, loginReq.Password)
	if err != nil || !checkPassword {
		utils.TrackAuthAttempt("failure", "login")
		utils.Unauthorized(c, "Invalid username or password")
		return
	}

	if user.TwoFactorEnabled {
		if err := services.ValidateTOTPCode(user.TwoFactorSecret, loginReq.TwoFactorCode); err != nil {
			utils.TrackAuthAttempt("failure", "2fa")
			utils.Unauthorized(c, "Invalid two-factor code")
			return
		}
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

	// Record the login for the device-history view. Best effort: a failed
	// session write must not block the login itself.
	session := &model.Session{
		SessionID:  uuid.New().String(),
		UserID:     user.UserID,
		DeviceInfo: utils.ParseUserAgent(c.Request.UserAgent()),
		IPAddress:  c.ClientIP(),
		CreatedAt:  time.Now(),
		ExpiresAt:  time.Now().Add(utils.GetEnvAsDuration("SESSION_DURATION", 720*time.Hour)),
	}
	if err := h.sessionRepo.CreateSession(c.Request.Context(), session); err != nil {
		log.Printf("login: failed to record session for user %s: %v", user.UserID, err)
	}

	utils.TrackAuthAttempt("success", "login")
	utils.Success(c, gin.H{
		"message": "Login successful",
		"token":   token,
		"refresh": refreshToken,
	})
}
