package service

import (
	"context"
	"testing"
	"time"

	"alcyxob/workout-analytics/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestUserService_UpdatePreferences(t *testing.T) {
	user := &domain.User{ID: primitive.NewObjectID(), Name: "Ada", Email: "ada@example.com", PasswordHash: "hash"}
	svc := NewUserService(newFakeUserRepo(user))
	sunday := 0

	updated, err := svc.UpdatePreferences(context.Background(), user.ID, PreferencesInput{
		Timezone:           "America/New_York",
		WeekStart:          &sunday,
		MaxRestDaysPerWeek: 1,
		StreakType:         domain.StreakWeekly,
	})
	require.NoError(t, err)
	assert.Equal(t, "America/New_York", updated.Timezone)
	assert.Equal(t, time.Sunday, updated.WeekStartDay(time.Monday))
	assert.Equal(t, domain.StreakConfig{MaxRestDaysPerWeek: 1, StreakType: domain.StreakWeekly}, updated.Streak)
	assert.Empty(t, updated.PasswordHash)
}

func TestUserService_UpdatePreferencesValidation(t *testing.T) {
	user := &domain.User{ID: primitive.NewObjectID()}
	svc := NewUserService(newFakeUserRepo(user))
	ctx := context.Background()
	seven := 7

	tests := []struct {
		name  string
		input PreferencesInput
	}{
		{"unknown timezone", PreferencesInput{Timezone: "Mars/Olympus"}},
		{"week start out of range", PreferencesInput{WeekStart: &seven}},
		{"negative rest days", PreferencesInput{MaxRestDaysPerWeek: -1}},
		{"too many rest days", PreferencesInput{MaxRestDaysPerWeek: 8}},
		{"unknown streak type", PreferencesInput{StreakType: "monthly"}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.UpdatePreferences(ctx, user.ID, tc.input)
			assert.ErrorIs(t, err, ErrInvalidPreferences)
		})
	}
}

func TestUserService_UnknownUser(t *testing.T) {
	svc := NewUserService(newFakeUserRepo())
	_, err := svc.GetProfile(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = svc.UpdatePreferences(context.Background(), primitive.NewObjectID(), PreferencesInput{})
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestPreferencesFor(t *testing.T) {
	settings := testSettings()
	settings.DefaultLocation = time.FixedZone("UTC+3", 3*3600)

	prefs := settings.preferencesFor(&domain.User{})
	assert.Equal(t, "UTC+3", prefs.location.String())
	assert.Equal(t, time.Monday, prefs.weekStart)
	assert.Equal(t, domain.StreakConfig{StreakType: domain.StreakDaily, MaxRestDaysPerWeek: 2}, prefs.streak)

	strict := domain.StreakConfig{StreakType: domain.StreakDaily, MaxRestDaysPerWeek: 0}
	prefs = settings.preferencesFor(&domain.User{Timezone: "Europe/Berlin", Streak: strict})
	assert.Equal(t, "Europe/Berlin", prefs.location.String())
	assert.Equal(t, strict, prefs.streak)
}
