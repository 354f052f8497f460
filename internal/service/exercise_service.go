package service

import (
	"context"
	"errors"
	"strings"

	"alcyxob/workout-analytics/internal/domain"
	"alcyxob/workout-analytics/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrExerciseNotFound = errors.New("exercise not found")
	ErrValidationFailed = errors.New("validation failed")
)

// ExerciseInput carries the fields of a new exercise definition.
type ExerciseInput struct {
	Name                  string
	Description           string
	PrimaryMuscleGroup    string
	SecondaryMuscleGroups []string
	Equipment             string
}

type ExerciseService interface {
	CreateExercise(ctx context.Context, ownerID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error)
	GetExercisesByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Exercise, error)
}

// exerciseService implements the ExerciseService interface.
type exerciseService struct {
	exerciseRepo repository.ExerciseRepository
}

// NewExerciseService creates a new instance of exerciseService.
func NewExerciseService(exerciseRepo repository.ExerciseRepository) ExerciseService {
	return &exerciseService{
		exerciseRepo: exerciseRepo,
	}
}

// CreateExercise stores a new exercise definition. A primary muscle group is required
// so that muscle distribution can resolve the exercise.
func (s *exerciseService) CreateExercise(ctx context.Context, ownerID primitive.ObjectID, input ExerciseInput) (*domain.Exercise, error) {
	name := strings.TrimSpace(input.Name)
	primary := strings.TrimSpace(input.PrimaryMuscleGroup)
	if name == "" || primary == "" {
		return nil, ErrValidationFailed
	}
	if ownerID == primitive.NilObjectID {
		return nil, errors.New("owner ID is required to create an exercise")
	}

	var secondary []string
	seen := map[string]bool{primary: true}
	for _, g := range input.SecondaryMuscleGroups {
		g = strings.TrimSpace(g)
		if g == "" || seen[g] {
			continue
		}
		seen[g] = true
		secondary = append(secondary, g)
	}

	exercise := &domain.Exercise{
		OwnerID:               ownerID,
		Name:                  name,
		Description:           input.Description,
		PrimaryMuscleGroup:    primary,
		SecondaryMuscleGroups: secondary,
		Equipment:             input.Equipment,
	}
	exerciseID, err := s.exerciseRepo.Create(ctx, exercise)
	if err != nil {
		return nil, err
	}
	exercise.ID = exerciseID
	return exercise, nil
}

// GetExercisesByOwner retrieves the exercise library of a user.
func (s *exerciseService) GetExercisesByOwner(ctx context.Context, ownerID primitive.ObjectID) ([]domain.Exercise, error) {
	return s.exerciseRepo.GetByOwnerID(ctx, ownerID)
}
