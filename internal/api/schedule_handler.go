package api

import (
	"net/http"

	"alcyxob/workout-analytics/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type ScheduleHandler struct {
	scheduleService service.ScheduleService
}

func NewScheduleHandler(scheduleService service.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{scheduleService: scheduleService}
}

// SetDayRequest assigns a template to a day; an empty templateId makes it a rest day.
type SetDayRequest struct {
	TemplateID string `json:"templateId"`
}

// SetDay plans a calendar day.
// PUT /api/v1/schedule/:date
func (h *ScheduleHandler) SetDay(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req SetDayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	var templateID *primitive.ObjectID // nil plans a rest day
	if req.TemplateID != "" {
		id, err := primitive.ObjectIDFromHex(req.TemplateID)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid templateId format.")
			return
		}
		templateID = &id
	}

	day, err := h.scheduleService.SetDay(c.Request.Context(), userID, c.Param("date"), templateID)
	if err != nil {
		// Bad date -> 400, someone else's template -> 403
		respondWithServiceError(c, err, "update schedule")
		return
	}
	c.JSON(http.StatusOK, day)
}

// ListSchedule returns planned days between from and to, both inclusive.
// GET /api/v1/schedule?from=2024-03-01&to=2024-03-31
func (h *ScheduleHandler) ListSchedule(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	days, err := h.scheduleService.ListRange(c.Request.Context(), userID, c.Query("from"), c.Query("to"))
	if err != nil {
		respondWithServiceError(c, err, "list schedule")
		return
	}
	c.JSON(http.StatusOK, days)
}
