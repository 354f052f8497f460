package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutTemplate is a reusable routine that schedule days point at.
type WorkoutTemplate struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	UserID      primitive.ObjectID   `bson:"userId" json:"userId"`
	Name        string               `bson:"name" json:"name"` // e.g., "Push Day", "Long Run"
	Description string               `bson:"description,omitempty" json:"description,omitempty"`
	ExerciseIDs []primitive.ObjectID `bson:"exerciseIds,omitempty" json:"exerciseIds,omitempty"` // Ordered
	IsActive    bool                 `bson:"isActive" json:"isActive"`
	CreatedAt   time.Time            `bson:"createdAt" json:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt" json:"updatedAt"`
}
