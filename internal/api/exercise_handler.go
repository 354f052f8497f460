package api

import (
	"net/http"
	"time"

	"alcyxob/workout-analytics/internal/domain"
	"alcyxob/workout-analytics/internal/service"

	"github.com/gin-gonic/gin"
)

// ExerciseHandler holds the exercise service dependency.
type ExerciseHandler struct {
	exerciseService service.ExerciseService
}

// NewExerciseHandler creates a new ExerciseHandler.
func NewExerciseHandler(exerciseService service.ExerciseService) *ExerciseHandler {
	return &ExerciseHandler{exerciseService: exerciseService}
}

// --- DTOs for API (Data Transfer Objects) ---

// CreateExerciseRequest defines the expected JSON for creating an exercise.
type CreateExerciseRequest struct {
	Name                  string   `json:"name" binding:"required"`
	Description           string   `json:"description"`
	PrimaryMuscleGroup    string   `json:"primaryMuscleGroup" binding:"required"` // e.g. "chest"
	SecondaryMuscleGroups []string `json:"secondaryMuscleGroups"`
	Equipment             string   `json:"equipment"`
}

// ExerciseResponse is the DTO for returning exercise details.
type ExerciseResponse struct {
	ID                    string    `json:"id"`
	OwnerID               string    `json:"ownerId"`
	Name                  string    `json:"name"`
	Description           string    `json:"description,omitempty"`
	PrimaryMuscleGroup    string    `json:"primaryMuscleGroup"`
	SecondaryMuscleGroups []string  `json:"secondaryMuscleGroups,omitempty"`
	Equipment             string    `json:"equipment,omitempty"`
	CreatedAt             time.Time `json:"createdAt"`
	UpdatedAt             time.Time `json:"updatedAt"`
}

// MapExerciseToResponse converts a domain.Exercise to ExerciseResponse DTO.
func MapExerciseToResponse(ex *domain.Exercise) ExerciseResponse {
	if ex == nil {
		return ExerciseResponse{}
	}
	return ExerciseResponse{
		ID:                    ex.ID.Hex(),
		OwnerID:               ex.OwnerID.Hex(),
		Name:                  ex.Name,
		Description:           ex.Description,
		PrimaryMuscleGroup:    ex.PrimaryMuscleGroup,
		SecondaryMuscleGroups: ex.SecondaryMuscleGroups,
		Equipment:             ex.Equipment,
		CreatedAt:             ex.CreatedAt,
		UpdatedAt:             ex.UpdatedAt,
	}
}

// MapExercisesToResponse converts a slice of domain.Exercise to a slice of ExerciseResponse DTO.
func MapExercisesToResponse(exercises []domain.Exercise) []ExerciseResponse {
	responses := make([]ExerciseResponse, len(exercises))
	for i := range exercises {
		responses[i] = MapExerciseToResponse(&exercises[i])
	}
	return responses
}

// --- Handler Methods ---

// CreateExercise adds an exercise to the caller's library.
// POST /api/v1/exercises
func (h *ExerciseHandler) CreateExercise(c *gin.Context) {
	var req CreateExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	// Trimming and secondary-group dedup happen in the service
	exercise, err := h.exerciseService.CreateExercise(c.Request.Context(), userID, service.ExerciseInput{
		Name:                  req.Name,
		Description:           req.Description,
		PrimaryMuscleGroup:    req.PrimaryMuscleGroup,
		SecondaryMuscleGroups: req.SecondaryMuscleGroups,
		Equipment:             req.Equipment,
	})
	if err != nil {
		respondWithServiceError(c, err, "create exercise")
		return
	}
	c.JSON(http.StatusCreated, MapExerciseToResponse(exercise))
}

// GetExercises lists the caller's exercise library.
// GET /api/v1/exercises
func (h *ExerciseHandler) GetExercises(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	exercises, err := h.exerciseService.GetExercisesByOwner(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err, "retrieve exercises")
		return
	}
	c.JSON(http.StatusOK, MapExercisesToResponse(exercises))
}
