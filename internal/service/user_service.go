package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"alcyxob/workout-analytics/internal/domain"
	"alcyxob/workout-analytics/internal/repository"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidPreferences = errors.New("invalid preferences")
)

// PreferencesInput is a full replacement of a user's analytics preferences.
type PreferencesInput struct {
	Timezone           string
	WeekStart          *int
	MaxRestDaysPerWeek int
	StreakType         domain.StreakType
}

type UserService interface {
	GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error)
	UpdatePreferences(ctx context.Context, userID primitive.ObjectID, input PreferencesInput) (*domain.User, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

// GetProfile returns the user without the password hash.
func (s *userService) GetProfile(ctx context.Context, userID primitive.ObjectID) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	user.PasswordHash = ""
	return user, nil
}

// UpdatePreferences validates and stores timezone, week start and streak policy.
func (s *userService) UpdatePreferences(ctx context.Context, userID primitive.ObjectID, input PreferencesInput) (*domain.User, error) {
	if input.Timezone != "" {
		if _, err := time.LoadLocation(input.Timezone); err != nil {
			return nil, fmt.Errorf("%w: unknown timezone %q", ErrInvalidPreferences, input.Timezone)
		}
	}
	if input.WeekStart != nil && (*input.WeekStart < 0 || *input.WeekStart > 6) {
		return nil, fmt.Errorf("%w: weekStart must be 0-6", ErrInvalidPreferences)
	}
	if input.MaxRestDaysPerWeek < 0 || input.MaxRestDaysPerWeek > 7 {
		return nil, fmt.Errorf("%w: maxRestDaysPerWeek must be 0-7", ErrInvalidPreferences)
	}
	switch input.StreakType {
	case "":
		input.StreakType = domain.StreakDaily
	case domain.StreakDaily, domain.StreakWeekly:
	default:
		return nil, fmt.Errorf("%w: streakType must be daily or weekly", ErrInvalidPreferences)
	}

	streak := domain.StreakConfig{MaxRestDaysPerWeek: input.MaxRestDaysPerWeek, StreakType: input.StreakType}
	if err := s.userRepo.UpdatePreferences(ctx, userID, input.Timezone, input.WeekStart, streak); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.GetProfile(ctx, userID)
}
