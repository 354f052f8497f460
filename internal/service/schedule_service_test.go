package service

import (
	"context"
	"testing"

	"alcyxob/workout-analytics/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestScheduleService_SetDay(t *testing.T) {
	userID := primitive.NewObjectID()
	template := domain.WorkoutTemplate{ID: primitive.NewObjectID(), UserID: userID, Name: "Legs"}
	schedule := newFakeScheduleRepo()
	svc := NewScheduleService(schedule, &fakeTemplateRepo{templates: []domain.WorkoutTemplate{template}})
	ctx := context.Background()

	day, err := svc.SetDay(ctx, userID, "2024-03-18", &template.ID)
	require.NoError(t, err)
	assert.False(t, day.IsRestDay())

	day, err = svc.SetDay(ctx, userID, "2024-03-18", nil)
	require.NoError(t, err)
	assert.True(t, day.IsRestDay())
	assert.Len(t, schedule.days, 1)

	_, err = svc.SetDay(ctx, userID, "18/03/2024", nil)
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.SetDay(ctx, primitive.NewObjectID(), "2024-03-18", &template.ID)
	assert.ErrorIs(t, err, ErrTemplateAccessDenied)
}

func TestScheduleService_ListRange(t *testing.T) {
	userID := primitive.NewObjectID()
	templateID := primitive.NewObjectID()
	schedule := newFakeScheduleRepo()
	svc := NewScheduleService(schedule, &fakeTemplateRepo{})
	ctx := context.Background()
	for _, date := range []string{"2024-03-10", "2024-03-11", "2024-03-20"} {
		_, err := schedule.Upsert(ctx, &domain.ScheduleDay{UserID: userID, Date: date, TemplateID: &templateID})
		require.NoError(t, err)
	}

	days, err := svc.ListRange(ctx, userID, "2024-03-10", "2024-03-15")
	require.NoError(t, err)
	require.Len(t, days, 2)
	assert.Equal(t, "2024-03-10", days[0].Date)

	_, err = svc.ListRange(ctx, userID, "2024-03-15", "2024-03-10")
	assert.ErrorIs(t, err, ErrInvalidDate)

	_, err = svc.ListRange(ctx, userID, "2023-01-01", "2024-03-10")
	assert.ErrorIs(t, err, ErrRangeTooWide)
}
