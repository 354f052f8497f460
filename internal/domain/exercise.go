package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Exercise represents a single exercise definition in the library.
type Exercise struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	OwnerID     primitive.ObjectID `bson:"ownerId" json:"ownerId"` // User who created/owns this exercise
	Name        string             `bson:"name" json:"name"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`

	PrimaryMuscleGroup    string   `bson:"primaryMuscleGroup" json:"primaryMuscleGroup"`                               // e.g., "Chest", "Legs", "Back"
	SecondaryMuscleGroups []string `bson:"secondaryMuscleGroups,omitempty" json:"secondaryMuscleGroups,omitempty"` // Assisting groups
	Equipment             string   `bson:"equipment,omitempty" json:"equipment,omitempty"`                         // e.g., "Barbell", "Bodyweight"

	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}
