package handler

import (
	"errors"
	"strings"
	"time"

	"main/dto"
	"main/model"
	"main/repository"
	"main/usecase"
	"main/utils"

	"github.com/gin-gonic/gin"
)

type JournalHandler struct {
	service *usecase.JournalService
}

func NewJournalHandler(service *usecase.JournalService) *JournalHandler {
	return &JournalHandler{service: service}
}

// CreateEntry handles POST /api/journal
func (h *JournalHandler) CreateEntry(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	var req struct {
		Title     string     `json:"title"`
		Content   string     `json:"content" binding:"required"`
		Mood      model.Mood `json:"mood"`
		Tags      []string   `json:"tags"`
		EntryDate *time.Time `json:"entry_date"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	entry := &model.JournalEntry{
		UserID:    userID.(string),
		Title:     req.Title,
		Content:   req.Content,
		Mood:      req.Mood,
		Tags:      req.Tags,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if req.EntryDate != nil {
		entry.EntryDate = *req.EntryDate
	}

	if err := h.service.CreateEntry(c.Request.Context(), entry); err != nil {
		if isJournalValidationError(err) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Created(c, dto.ToJournalEntryResponse(entry))
}

// GetUserEntries handles GET /api/journal
func (h *JournalHandler) GetUserEntries(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	entries, err := h.service.GetUserEntries(c.Request.Context(), userID.(string))
	if err != nil {
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToJournalEntryResponses(entries))
}

// UpdateEntry handles PUT /api/journal/:id
func (h *JournalHandler) UpdateEntry(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	entryID := c.Param("id")
	if entryID == "" {
		utils.BadRequest(c, "Missing entry ID")
		return
	}

	var updates model.JournalEntry
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.BadRequest(c, "Invalid request body")
		return
	}

	updatedEntry, err := h.service.UpdateEntry(c.Request.Context(), entryID, userID.(string), &updates)
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			utils.NotFound(c, "Journal entry not found")
			return
		}
		if isJournalValidationError(err) {
			utils.BadRequest(c, err.Error())
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, dto.ToJournalEntryResponse(updatedEntry))
}

// DeleteEntry handles DELETE /api/journal/:id
func (h *JournalHandler) DeleteEntry(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		utils.Unauthorized(c, "Missing user ID")
		return
	}

	entryID := c.Param("id")
	if entryID == "" {
		utils.BadRequest(c, "Missing entry ID")
		return
	}

	if err := h.service.DeleteEntry(c.Request.Context(), entryID, userID.(string)); err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			utils.NotFound(c, "Journal entry not found")
			return
		}
		utils.InternalError(c, err.Error())
		return
	}

	utils.Success(c, gin.H{"message": "Journal entry deleted successfully"})
}

func isJournalValidationError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "invalid mood") ||
		strings.Contains(msg, "tag") ||
		strings.Contains(msg, "is required")
}
