package model

import "time"

type Mood string

const (
	MoodHappy   Mood = "happy"
	MoodNeutral Mood = "neutral"
	MoodSad     Mood = "sad"
	MoodExcited Mood = "excited"
)

// DefaultEntryTitle is used when an entry is created without a title.
const DefaultEntryTitle = "Untitled Entry"

type JournalEntry struct {
	EntryID   string    `bson:"_id,omitempty" json:"id"`
	UserID    string    `bson:"user_id" json:"user_id"`
	Title     string    `bson:"title" json:"title"`
	Content   string    `bson:"content" json:"content" binding:"required"`
	Mood      Mood      `bson:"mood,omitempty" json:"mood,omitempty"`
	Tags      []string  `bson:"tags,omitempty" json:"tags,omitempty"`
	EntryDate time.Time `bson:"entry_date" json:"entry_date"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
