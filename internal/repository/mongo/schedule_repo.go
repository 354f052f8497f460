package mongo

import (
	"context"
	"errors"
	"time"

	"alcyxob/workout-analytics/internal/domain"
	"alcyxob/workout-analytics/internal/repository"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const scheduleCollectionName = "schedule_days"

// mongoScheduleRepository implements repository.ScheduleRepository.
// One document per (userId, date).
type mongoScheduleRepository struct {
	collection *mongo.Collection
}

func NewMongoScheduleRepository(db *mongo.Database) repository.ScheduleRepository {
	return &mongoScheduleRepository{
		collection: db.Collection(scheduleCollectionName),
	}
}

// Upsert replaces the template assignment of a day, keeping its completion state.
func (r *mongoScheduleRepository) Upsert(ctx context.Context, day *domain.ScheduleDay) (*domain.ScheduleDay, error) {
	if day.UserID == primitive.NilObjectID || day.Date == "" {
		return nil, errors.New("schedule day requires userId and date")
	}
	filter := bson.M{"userId": day.UserID, "date": day.Date}
	update := bson.M{
		"$set": bson.M{
			"templateId": day.TemplateID,
			"updatedAt":  time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"_id":       primitive.NewObjectID(),
			"userId":    day.UserID,
			"date":      day.Date,
			"completed": day.Completed,
		},
	}
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)

	var saved domain.ScheduleDay
	if err := r.collection.FindOneAndUpdate(ctx, filter, update, opts).Decode(&saved); err != nil {
		return nil, err
	}
	return &saved, nil
}

// GetByDate retrieves the schedule entry of one day.
func (r *mongoScheduleRepository) GetByDate(ctx context.Context, userID primitive.ObjectID, date string) (*domain.ScheduleDay, error) {
	var day domain.ScheduleDay
	err := r.collection.FindOne(ctx, bson.M{"userId": userID, "date": date}).Decode(&day)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &day, nil
}

// ListRange returns entries with from <= date <= to. YYYY-MM-DD strings order lexically.
func (r *mongoScheduleRepository) ListRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]domain.ScheduleDay, error) {
	filter := bson.M{"userId": userID, "date": bson.M{"$gte": from, "$lte": to}}
	findOptions := options.Find().SetSort(bson.D{{Key: "date", Value: 1}})

	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	days := []domain.ScheduleDay{}
	if err = cursor.All(ctx, &days); err != nil {
		return nil, err
	}
	return days, nil
}

// MarkCompleted flags a scheduled day as done by the given workout.
// Days without a schedule entry are left alone.
func (r *mongoScheduleRepository) MarkCompleted(ctx context.Context, userID primitive.ObjectID, date string, workoutID primitive.ObjectID) error {
	filter := bson.M{"userId": userID, "date": date}
	update := bson.M{"$set": bson.M{
		"completed": true,
		"workoutId": workoutID,
		"updatedAt": time.Now().UTC(),
	}}
	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureScheduleIndexes creates necessary indexes. Call during startup.
func EnsureScheduleIndexes(ctx context.Context, collection *mongo.Collection) error {
	_, err := collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "userId", Value: 1}, {Key: "date", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}
