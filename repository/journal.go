package repository

import (
	"context"
	"errors"
	"os"
	"time"

	"main/model"
	"main/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var ErrEntryNotFound = errors.New("journal entry not found")

type JournalRepo struct {
	MongoCollection *mongo.Collection
}

// Retrieves MongoDB collection for journal entries
func GetJournalRepo(client *mongo.Client) *JournalRepo {
	dbName := os.Getenv("MONGO_DB")
	collectionName := utils.GetEnvAsString("JOURNAL_COLLECTION", "journal_entries")
	return &JournalRepo{
		MongoCollection: client.Database(dbName).Collection(collectionName),
	}
}

// Add a new journal entry into the database
func (r *JournalRepo) CreateEntry(ctx context.Context, entry *model.JournalEntry) error {
	timer := utils.TrackDBOperation("insert", "journal_entries")
	defer timer.ObserveDuration()

	if entry.UserID == "" {
		utils.TrackError("database", "missing_user_id")
		return errors.New("user ID is required")
	}

	_, err := r.MongoCollection.InsertOne(ctx, entry)
	if err != nil {
		utils.TrackError("database", "entry_creation_failed")
		return err
	}
	return nil
}

// Retrieves all journal entries owned by the user, newest entry date first
func (r *JournalRepo) GetUserEntries(ctx context.Context, userID string) ([]*model.JournalEntry, error) {
	timer := utils.TrackDBOperation("find", "journal_entries")
	defer timer.ObserveDuration()

	opts := options.Find().SetSort(bson.D{{Key: "entry_date", Value: -1}})
	cursor, err := r.MongoCollection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		utils.TrackError("database", "entry_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.JournalEntry
	if err = cursor.All(ctx, &entries); err != nil {
		utils.TrackError("database", "entry_decode_failed")
		return nil, err
	}
	return entries, nil
}

// GetEntriesInRange fetches entries whose entry date falls inside [start, end].
func (r *JournalRepo) GetEntriesInRange(ctx context.Context, userID string, start, end time.Time) ([]*model.JournalEntry, error) {
	timer := utils.TrackDBOperation("find", "journal_entries")
	defer timer.ObserveDuration()

	filter := bson.M{
		"user_id":    userID,
		"entry_date": bson.M{"$gte": start, "$lte": end},
	}

	cursor, err := r.MongoCollection.Find(ctx, filter)
	if err != nil {
		utils.TrackError("database", "entry_fetch_failed")
		return nil, err
	}
	defer cursor.Close(ctx)

	var entries []*model.JournalEntry
	if err = cursor.All(ctx, &entries); err != nil {
		utils.TrackError("database", "entry_decode_failed")
		return nil, err
	}
	return entries, nil
}

// All encompassing update for a specific journal entry
func (r *JournalRepo) UpdateEntry(ctx context.Context, entryID, userID string, updates *model.JournalEntry) error {
	timer := utils.TrackDBOperation("update", "journal_entries")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     entryID,
		"user_id": userID,
	}

	update := bson.M{
		"$set": bson.M{
			"title":      updates.Title,
			"content":    updates.Content,
			"mood":       updates.Mood,
			"tags":       updates.Tags,
			"entry_date": updates.EntryDate,
			"updated_at": time.Now(),
		},
	}

	result, err := r.MongoCollection.UpdateOne(ctx, filter, update)
	if err != nil {
		utils.TrackError("database", "entry_update_failed")
		return err
	}
	if result.MatchedCount == 0 {
		utils.TrackError("database", "entry_not_found")
		return ErrEntryNotFound
	}
	return nil
}

// Removes a specific journal entry from database
func (r *JournalRepo) DeleteEntry(ctx context.Context, entryID, userID string) error {
	timer := utils.TrackDBOperation("delete", "journal_entries")
	defer timer.ObserveDuration()

	filter := bson.M{
		"_id":     entryID,
		"user_id": userID,
	}

	result, err := r.MongoCollection.DeleteOne(ctx, filter)
	if err != nil {
		utils.TrackError("database", "entry_deletion_failed")
		return err
	}
	if result.DeletedCount == 0 {
		utils.TrackError("database", "entry_not_found")
		return ErrEntryNotFound
	}
	return nil
}
