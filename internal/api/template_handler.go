package api

import (
	"net/http"

	"alcyxob/workout-analytics/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type TemplateHandler struct {
	templateService service.TemplateService
}

func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

type CreateTemplateRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	ExerciseIDs []string `json:"exerciseIds"`
}

// CreateTemplate stores a workout routine.
// POST /api/v1/templates
func (h *TemplateHandler) CreateTemplate(c *gin.Context) {
	var req CreateTemplateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	// Convert hex IDs; ownership of each exercise is checked by the service
	exerciseIDs := make([]primitive.ObjectID, 0, len(req.ExerciseIDs))
	for _, hex := range req.ExerciseIDs {
		id, err := primitive.ObjectIDFromHex(hex)
		if err != nil {
			abortWithError(c, http.StatusBadRequest, "Invalid exercise ID format: "+hex)
			return
		}
		exerciseIDs = append(exerciseIDs, id)
	}

	template, err := h.templateService.CreateTemplate(c.Request.Context(), userID, req.Name, req.Description, exerciseIDs)
	if err != nil {
		respondWithServiceError(c, err, "create template")
		return
	}
	c.JSON(http.StatusCreated, template)
}

// GetTemplates lists the caller's routines.
// GET /api/v1/templates
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	templates, err := h.templateService.GetTemplatesByUser(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err, "retrieve templates")
		return
	}
	c.JSON(http.StatusOK, templates)
}
