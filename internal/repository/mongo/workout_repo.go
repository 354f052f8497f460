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

const workoutCollectionName = "workouts"

// mongoWorkoutRepository implements repository.WorkoutRepository
type mongoWorkoutRepository struct {
	collection *mongo.Collection
}

// NewMongoWorkoutRepository creates a new Workout repository.
func NewMongoWorkoutRepository(db *mongo.Database) repository.WorkoutRepository {
	return &mongoWorkoutRepository{
		collection: db.Collection(workoutCollectionName),
	}
}

// Create inserts a new workout record.
func (r *mongoWorkoutRepository) Create(ctx context.Context, workout *domain.WorkoutRecord) (primitive.ObjectID, error) {
	if workout.UserID == primitive.NilObjectID {
		return primitive.NilObjectID, errors.New("workout requires userId")
	}
	workout.ID = primitive.NewObjectID()
	now := time.Now().UTC()
	workout.CreatedAt = now
	workout.UpdatedAt = now
	if workout.Exercises == nil {
		workout.Exercises = []domain.ExerciseEntry{}
	}

	result, err := r.collection.InsertOne(ctx, workout)
	if err != nil {
		return primitive.NilObjectID, err
	}
	insertedID, ok := result.InsertedID.(primitive.ObjectID)
	if !ok {
		return primitive.NilObjectID, errors.New("failed to convert inserted workout ID")
	}
	return insertedID, nil
}

// GetByID retrieves a single workout by its ID.
func (r *mongoWorkoutRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*domain.WorkoutRecord, error) {
	var workout domain.WorkoutRecord
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&workout)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &workout, nil
}

// MarkCompleted sets completedAt once. Completing an already completed workout is ErrUpdateFailed.
func (r *mongoWorkoutRepository) MarkCompleted(ctx context.Context, id, userID primitive.ObjectID, completedAt time.Time, durationSeconds *int) error {
	filter := bson.M{
		"_id":         id,
		"userId":      userID,
		"completedAt": bson.M{"$in": bson.A{nil}}, // missing or null
	}
	set := bson.M{
		"completedAt": completedAt.UTC(),
		"updatedAt":   time.Now().UTC(),
	}
	if durationSeconds != nil {
		set["durationSeconds"] = *durationSeconds
	}

	result, err := r.collection.UpdateOne(ctx, filter, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		// Either it does not exist for this user or it is already completed.
		count, err := r.collection.CountDocuments(ctx, bson.M{"_id": id, "userId": userID})
		if err != nil {
			return err
		}
		if count == 0 {
			return repository.ErrNotFound
		}
		return repository.ErrUpdateFailed
	}
	return nil
}

// ListCompleted retrieves completed workouts for analytics.
func (r *mongoWorkoutRepository) ListCompleted(ctx context.Context, userID primitive.ObjectID, from, to time.Time) ([]domain.WorkoutRecord, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "completedAt", Value: 1}, {Key: "_id", Value: 1}})
	cursor, err := r.collection.Find(ctx, completedRangeFilter(userID, from, to), findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	workouts := []domain.WorkoutRecord{}
	if err = cursor.All(ctx, &workouts); err != nil {
		return nil, err
	}
	return workouts, nil
}

// completedRangeFilter matches date-typed completions inside [from, to) and every
// completion stored in a legacy representation, which the bucketer parses or skips.
func completedRangeFilter(userID primitive.ObjectID, from, to time.Time) bson.M {
	dateRange := bson.M{"$lt": to.UTC()}
	if !from.IsZero() {
		dateRange["$gte"] = from.UTC()
	}
	return bson.M{
		"userId":      userID,
		"completedAt": bson.M{"$exists": true, "$ne": nil},
		"$or": bson.A{
			bson.M{"completedAt": dateRange},
			bson.M{"completedAt": bson.M{"$not": bson.M{"$type": "date"}}},
		},
	}
}

// FirstCompletedAt returns the earliest date-typed completion of a user.
func (r *mongoWorkoutRepository) FirstCompletedAt(ctx context.Context, userID primitive.ObjectID) (*time.Time, error) {
	filter := bson.M{"userId": userID, "completedAt": bson.M{"$type": "date"}}
	findOptions := options.FindOne().
		SetSort(bson.D{{Key: "completedAt", Value: 1}}).
		SetProjection(bson.M{"completedAt": 1})

	var doc struct {
		CompletedAt time.Time `bson:"completedAt"`
	}
	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &doc.CompletedAt, nil
}

// EnsureWorkoutIndexes creates necessary indexes. Call during startup.
func EnsureWorkoutIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			// Range scans per user for analytics
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "completedAt", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}, {Key: "updatedAt", Value: -1}},
		},
	}
	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
