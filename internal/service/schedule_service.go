package service

import (
	"context"
	"errors"
	"time"

	"alcyxob/workout-analytics/internal/domain"
	"alcyxob/workout-analytics/internal/repository"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// maxScheduleRangeDays caps ListRange at one year.
const maxScheduleRangeDays = 366

// --- Error Definitions ---
var (
	ErrInvalidDate  = errors.New("invalid date, expected YYYY-MM-DD")
	ErrRangeTooWide = errors.New("schedule range too wide")
)

type ScheduleService interface {
	// SetDay assigns a template to date. A nil templateID turns the day into a rest day.
	SetDay(ctx context.Context, userID primitive.ObjectID, date string, templateID *primitive.ObjectID) (*domain.ScheduleDay, error)
	ListRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]domain.ScheduleDay, error)
}

type scheduleService struct {
	scheduleRepo repository.ScheduleRepository
	templateRepo repository.TemplateRepository
}

func NewScheduleService(scheduleRepo repository.ScheduleRepository, templateRepo repository.TemplateRepository) ScheduleService {
	return &scheduleService{
		scheduleRepo: scheduleRepo,
		templateRepo: templateRepo,
	}
}

func (s *scheduleService) SetDay(ctx context.Context, userID primitive.ObjectID, date string, templateID *primitive.ObjectID) (*domain.ScheduleDay, error) {
	if _, err := time.Parse(domain.ScheduleDateLayout, date); err != nil {
		return nil, ErrInvalidDate
	}
	if templateID != nil {
		if _, err := ownedTemplate(ctx, s.templateRepo, userID, *templateID); err != nil {
			return nil, err
		}
	}
	day := &domain.ScheduleDay{
		UserID:     userID,
		Date:       date,
		TemplateID: templateID,
	}
	return s.scheduleRepo.Upsert(ctx, day)
}

// ListRange returns the stored days between from and to, both inclusive.
func (s *scheduleService) ListRange(ctx context.Context, userID primitive.ObjectID, from, to string) ([]domain.ScheduleDay, error) {
	start, err := time.Parse(domain.ScheduleDateLayout, from)
	if err != nil {
		return nil, ErrInvalidDate
	}
	end, err := time.Parse(domain.ScheduleDateLayout, to)
	if err != nil {
		return nil, ErrInvalidDate
	}
	if end.Before(start) {
		return nil, ErrInvalidDate
	}
	if end.Sub(start) >= maxScheduleRangeDays*24*time.Hour {
		return nil, ErrRangeTooWide
	}
	return s.scheduleRepo.ListRange(ctx, userID, from, to)
}

func logScheduleMarkFailure(err error, userID primitive.ObjectID, date string) {
	logrus.WithError(err).WithFields(logrus.Fields{
		"userId": userID.Hex(),
		"date":   date,
	}).Warn("failed to mark schedule day completed")
}
