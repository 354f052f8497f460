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
	ErrTemplateNotFound     = errors.New("workout template not found")
	ErrTemplateAccessDenied = errors.New("workout template belongs to another user")
)

type TemplateService interface {
	CreateTemplate(ctx context.Context, userID primitive.ObjectID, name, description string, exerciseIDs []primitive.ObjectID) (*domain.WorkoutTemplate, error)
	GetTemplatesByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error)
}

type templateService struct {
	templateRepo repository.TemplateRepository
	exerciseRepo repository.ExerciseRepository
}

func NewTemplateService(templateRepo repository.TemplateRepository, exerciseRepo repository.ExerciseRepository) TemplateService {
	return &templateService{
		templateRepo: templateRepo,
		exerciseRepo: exerciseRepo,
	}
}

// CreateTemplate stores a routine. Every referenced exercise must exist and belong to the user.
func (s *templateService) CreateTemplate(ctx context.Context, userID primitive.ObjectID, name, description string, exerciseIDs []primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrValidationFailed
	}

	if len(exerciseIDs) > 0 {
		found, err := s.exerciseRepo.GetByIDs(ctx, exerciseIDs)
		if err != nil {
			return nil, err
		}
		owned := make(map[primitive.ObjectID]bool, len(found))
		for _, e := range found {
			if e.OwnerID == userID {
				owned[e.ID] = true
			}
		}
		for _, id := range exerciseIDs {
			if !owned[id] {
				return nil, ErrExerciseNotFound
			}
		}
	}

	template := &domain.WorkoutTemplate{
		UserID:      userID,
		Name:        name,
		Description: description,
		ExerciseIDs: exerciseIDs,
		IsActive:    true,
	}
	templateID, err := s.templateRepo.Create(ctx, template)
	if err != nil {
		return nil, err
	}
	template.ID = templateID
	return template, nil
}

func (s *templateService) GetTemplatesByUser(ctx context.Context, userID primitive.ObjectID) ([]domain.WorkoutTemplate, error) {
	return s.templateRepo.GetByUserID(ctx, userID)
}

// ownedTemplate loads a template and checks that userID owns it.
func ownedTemplate(ctx context.Context, repo repository.TemplateRepository, userID, templateID primitive.ObjectID) (*domain.WorkoutTemplate, error) {
	template, err := repo.GetByID(ctx, templateID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTemplateNotFound
		}
		return nil, err
	}
	if template.UserID != userID {
		return nil, ErrTemplateAccessDenied
	}
	return template, nil
}
