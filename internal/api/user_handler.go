package api

import (
	"net/http"

	"alcyxob/workout-analytics/internal/domain"
	"alcyxob/workout-analytics/internal/service"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userService service.UserService
}

func NewUserHandler(userService service.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// UpdatePreferencesRequest replaces the analytics preferences of the caller.
type UpdatePreferencesRequest struct {
	Timezone           string            `json:"timezone"`
	WeekStart          *int              `json:"weekStart" binding:"omitempty,min=0,max=6"`
	MaxRestDaysPerWeek int               `json:"maxRestDaysPerWeek" binding:"min=0,max=7"`
	StreakType         domain.StreakType `json:"streakType" binding:"omitempty,oneof=daily weekly"`
}

// GetMe returns the profile of the authenticated user.
// GET /api/v1/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err, "load profile")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}

// UpdatePreferences stores timezone, week start and streak policy.
// PUT /api/v1/me/preferences
func (h *UserHandler) UpdatePreferences(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req UpdatePreferencesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	user, err := h.userService.UpdatePreferences(c.Request.Context(), userID, service.PreferencesInput{
		Timezone:           req.Timezone,
		WeekStart:          req.WeekStart,
		MaxRestDaysPerWeek: req.MaxRestDaysPerWeek,
		StreakType:         req.StreakType,
	})
	if err != nil {
		respondWithServiceError(c, err, "update preferences")
		return
	}
	c.JSON(http.StatusOK, MapUserToResponse(user))
}
