package api

import (
	"net/http"
	"time"

	"alcyxob/workout-analytics/internal/analytics"
	"alcyxob/workout-analytics/internal/domain"
	"alcyxob/workout-analytics/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type WorkoutHandler struct {
	workoutService service.WorkoutService
}

func NewWorkoutHandler(workoutService service.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// --- DTOs ---

type SetRequest struct {
	Weight *float64 `json:"weight"`
	Reps   *int     `json:"reps"`
	RPE    *float64 `json:"rpe"`
}

type ExerciseEntryRequest struct {
	ExerciseID string       `json:"exerciseId" binding:"required"`
	Sets       []SetRequest `json:"sets"`
}

type LogWorkoutRequest struct {
	Name            string                 `json:"name" binding:"required"`
	TemplateID      string                 `json:"templateId"`
	StartedAt       *time.Time             `json:"startedAt"`
	CompletedAt     *time.Time             `json:"completedAt"` // Set to log an already finished session
	DurationSeconds *int                   `json:"durationSeconds" binding:"omitempty,min=0"`
	Exercises       []ExerciseEntryRequest `json:"exercises"`
}

type CompleteWorkoutRequest struct {
	DurationSeconds *int `json:"durationSeconds" binding:"omitempty,min=0"`
}

func (r LogWorkoutRequest) toInput() (service.WorkoutInput, error) {
	input := service.WorkoutInput{
		Name:            r.Name,
		CompletedAt:     r.CompletedAt,
		DurationSeconds: r.DurationSeconds,
	}
	if r.StartedAt != nil {
		input.StartedAt = *r.StartedAt
	}
	if r.TemplateID != "" {
		id, err := primitive.ObjectIDFromHex(r.TemplateID)
		if err != nil {
			return input, err
		}
		input.TemplateID = &id
	}
	for _, e := range r.Exercises {
		exerciseID, err := primitive.ObjectIDFromHex(e.ExerciseID)
		if err != nil {
			return input, err
		}
		entry := domain.ExerciseEntry{ExerciseID: exerciseID, Sets: make([]domain.SetEntry, 0, len(e.Sets))}
		for _, s := range e.Sets {
			entry.Sets = append(entry.Sets, domain.SetEntry{Weight: s.Weight, Reps: s.Reps, RPE: s.RPE})
		}
		input.Exercises = append(input.Exercises, entry)
	}
	return input, nil
}

// LogWorkout records a workout session.
// POST /api/v1/workouts
func (h *WorkoutHandler) LogWorkout(c *gin.Context) {
	var req LogWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	// Template and exercise IDs arrive as hex strings
	input, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid ID format in workout.")
		return
	}

	workout, err := h.workoutService.LogWorkout(c.Request.Context(), userID, input)
	if err != nil {
		// Negative weight/reps -> 422, foreign template -> 403
		respondWithServiceError(c, err, "log workout")
		return
	}
	c.JSON(http.StatusCreated, workout)
}

// CompleteWorkout marks an in-progress workout as finished now.
// POST /api/v1/workouts/:workoutId/complete
func (h *WorkoutHandler) CompleteWorkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	workoutID, ok := pathObjectID(c, "workoutId")
	if !ok {
		return
	}
	// The body is optional; without one the elapsed time becomes the duration
	var req CompleteWorkoutRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
			return
		}
	}

	workout, err := h.workoutService.CompleteWorkout(c.Request.Context(), userID, workoutID, req.DurationSeconds)
	if err != nil {
		respondWithServiceError(c, err, "complete workout")
		return
	}
	c.JSON(http.StatusOK, workout)
}

// ListWorkouts returns completed workouts of a period.
// GET /api/v1/workouts?period=last30Days
func (h *WorkoutHandler) ListWorkouts(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	period, err := analytics.ParsePeriod(c.DefaultQuery("period", string(defaultPeriod)))
	if err != nil {
		respondWithServiceError(c, err, "list workouts")
		return
	}
	workouts, err := h.workoutService.ListWorkouts(c.Request.Context(), userID, period)
	if err != nil {
		respondWithServiceError(c, err, "list workouts")
		return
	}
	c.JSON(http.StatusOK, workouts)
}
