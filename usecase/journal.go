package usecase

import (
	"context"
	"errors"
	"time"

	"main/model"
	"main/repository"

	"github.com/google/uuid"
)

const maxTagsPerEntry = 10
const maxTagLength = 30

type JournalService struct {
	repo *repository.JournalRepo
}

func NewJournalService(repo *repository.JournalRepo) *JournalService {
	return &JournalService{repo: repo}
}

// Get the user's journal entries, newest first
func (svc *JournalService) GetUserEntries(ctx context.Context, userID string) ([]*model.JournalEntry, error) {
	return svc.repo.GetUserEntries(ctx, userID)
}

// Create Journal Entry
func (svc *JournalService) CreateEntry(ctx context.Context, entry *model.JournalEntry) error {
	if entry.UserID == "" {
		return errors.New("user ID is required")
	}
	if entry.Content == "" {
		return errors.New("entry content is required")
	}
	if entry.Title == "" {
		entry.Title = model.DefaultEntryTitle
	}
	if err := validateMood(entry.Mood); err != nil {
		return err
	}

	validTags, err := validateTags(entry.Tags)
	if err != nil {
		return err
	}
	entry.Tags = validTags

	now := time.Now()
	if entry.EntryDate.IsZero() {
		entry.EntryDate = now
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = now
	}
	if entry.UpdatedAt.IsZero() {
		entry.UpdatedAt = now
	}
	if entry.EntryID == "" {
		entry.EntryID = uuid.New().String()
	}

	return svc.repo.CreateEntry(ctx, entry)
}

// Update an entry owned by the user and return its new state
func (svc *JournalService) UpdateEntry(ctx context.Context, entryID, userID string, updates *model.JournalEntry) (*model.JournalEntry, error) {
	if updates.Content == "" {
		return nil, errors.New("entry content is required")
	}
	if updates.Title == "" {
		updates.Title = model.DefaultEntryTitle
	}
	if err := validateMood(updates.Mood); err != nil {
		return nil, err
	}

	validTags, err := validateTags(updates.Tags)
	if err != nil {
		return nil, err
	}
	updates.Tags = validTags

	if updates.EntryDate.IsZero() {
		updates.EntryDate = time.Now()
	}

	if err := svc.repo.UpdateEntry(ctx, entryID, userID, updates); err != nil {
		return nil, err
	}
	updates.EntryID = entryID
	updates.UserID = userID
	return updates, nil
}

// Delete an entry owned by the user
func (svc *JournalService) DeleteEntry(ctx context.Context, entryID, userID string) error {
	return svc.repo.DeleteEntry(ctx, entryID, userID)
}

func validateMood(mood model.Mood) error {
	switch mood {
	case "", model.MoodHappy, model.MoodNeutral, model.MoodSad, model.MoodExcited:
		return nil
	default:
		return errors.New("invalid mood")
	}
}

// validateTags deduplicates and bounds the tag set
func validateTags(tags []string) ([]string, error) {
	if len(tags) > maxTagsPerEntry {
		return nil, errors.New("cannot exceed 10 tags")
	}

	seen := make(map[string]bool, len(tags))
	valid := make([]string, 0, len(tags))
	for _, tag := range tags {
		if tag == "" {
			continue
		}
		if len(tag) > maxTagLength {
			return nil, errors.New("tag cannot exceed 30 characters")
		}
		if !seen[tag] {
			seen[tag] = true
			valid = append(valid, tag)
		}
	}
	return valid, nil
}
