package api

import (
	"net/http"
	"time"

	"alcyxob/workout-analytics/internal/analytics"
	"alcyxob/workout-analytics/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// defaultPeriod applies when the period query parameter is absent. Present but unknown
// values are rejected.
const defaultPeriod = analytics.PeriodLast30Days

type AnalyticsHandler struct {
	analyticsService service.AnalyticsService
}

func NewAnalyticsHandler(analyticsService service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analyticsService: analyticsService}
}

// ExportResponse describes a stored snapshot. DownloadURL is only set on retrieval.
type ExportResponse struct {
	ID             string    `json:"id"`
	Period         string    `json:"period"`
	ContentType    string    `json:"contentType"`
	Size           int64     `json:"size"`
	DatasetVersion string    `json:"datasetVersion"`
	CreatedAt      time.Time `json:"createdAt"`
	DownloadURL    string    `json:"downloadUrl,omitempty"`
}

// analyticsQuery reads the caller, period and granularity of an analytics request.
func analyticsQuery(c *gin.Context) (primitive.ObjectID, analytics.Period, analytics.Granularity, bool) {
	userID, ok := requireUserID(c)
	if !ok {
		return primitive.NilObjectID, "", "", false
	}
	period, err := analytics.ParsePeriod(c.DefaultQuery("period", string(defaultPeriod)))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return primitive.NilObjectID, "", "", false
	}
	granularity, err := analytics.ParseGranularity(c.DefaultQuery("granularity", string(analytics.GranularityDay)))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return primitive.NilObjectID, "", "", false
	}
	return userID, period, granularity, true
}

// GET /api/v1/analytics/volume?period=&granularity=
func (h *AnalyticsHandler) GetVolume(c *gin.Context) {
	userID, period, granularity, ok := analyticsQuery(c)
	if !ok {
		return
	}
	out, err := h.analyticsService.VolumeTrend(c.Request.Context(), userID, period, granularity)
	if err != nil {
		respondWithServiceError(c, err, "compute volume trend")
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/v1/analytics/muscles?period=
func (h *AnalyticsHandler) GetMuscles(c *gin.Context) {
	userID, period, _, ok := analyticsQuery(c)
	if !ok {
		return
	}
	out, err := h.analyticsService.MuscleDistribution(c.Request.Context(), userID, period)
	if err != nil {
		respondWithServiceError(c, err, "compute muscle distribution")
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/v1/analytics/duration?period=
func (h *AnalyticsHandler) GetDuration(c *gin.Context) {
	userID, period, _, ok := analyticsQuery(c)
	if !ok {
		return
	}
	out, err := h.analyticsService.Durations(c.Request.Context(), userID, period)
	if err != nil {
		respondWithServiceError(c, err, "compute duration stats")
		return
	}
	c.JSON(http.StatusOK, out)
}

// GetOverload responds with {"overload": null} when there is not enough data.
// GET /api/v1/analytics/overload?period=
func (h *AnalyticsHandler) GetOverload(c *gin.Context) {
	userID, period, _, ok := analyticsQuery(c)
	if !ok {
		return
	}
	out, err := h.analyticsService.Overload(c.Request.Context(), userID, period)
	if err != nil {
		respondWithServiceError(c, err, "compute progressive overload")
		return
	}
	c.JSON(http.StatusOK, gin.H{"overload": out})
}

// GET /api/v1/analytics/adherence
func (h *AnalyticsHandler) GetAdherence(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	out, err := h.analyticsService.Adherence(c.Request.Context(), userID)
	if err != nil {
		respondWithServiceError(c, err, "compute adherence")
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/v1/analytics/heatmap?period=
func (h *AnalyticsHandler) GetHeatmap(c *gin.Context) {
	userID, period, _, ok := analyticsQuery(c)
	if !ok {
		return
	}
	out, err := h.analyticsService.Heatmap(c.Request.Context(), userID, period)
	if err != nil {
		respondWithServiceError(c, err, "compute heatmap")
		return
	}
	c.JSON(http.StatusOK, out)
}

// GET /api/v1/analytics/dashboard?period=&granularity=
func (h *AnalyticsHandler) GetDashboard(c *gin.Context) {
	userID, period, granularity, ok := analyticsQuery(c)
	if !ok {
		return
	}
	out, err := h.analyticsService.Dashboard(c.Request.Context(), userID, period, granularity)
	if err != nil {
		respondWithServiceError(c, err, "compute dashboard")
		return
	}
	c.JSON(http.StatusOK, out)
}

// CreateExport stores a dashboard snapshot in object storage.
// POST /api/v1/analytics/exports?period=
func (h *AnalyticsHandler) CreateExport(c *gin.Context) {
	userID, period, _, ok := analyticsQuery(c)
	if !ok {
		return
	}
	export, err := h.analyticsService.CreateExport(c.Request.Context(), userID, period)
	if err != nil {
		respondWithServiceError(c, err, "create export")
		return
	}
	c.JSON(http.StatusCreated, ExportResponse{
		ID:             export.ID.Hex(),
		Period:         export.Period,
		ContentType:    export.ContentType,
		Size:           export.Size,
		DatasetVersion: export.DatasetVersion,
		CreatedAt:      export.CreatedAt,
	})
}

// GetExport returns export metadata with a presigned download URL.
// GET /api/v1/analytics/exports/:exportId
func (h *AnalyticsHandler) GetExport(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	exportID, ok := pathObjectID(c, "exportId")
	if !ok {
		return
	}
	export, url, err := h.analyticsService.GetExportURL(c.Request.Context(), userID, exportID)
	if err != nil {
		respondWithServiceError(c, err, "retrieve export")
		return
	}
	c.JSON(http.StatusOK, ExportResponse{
		ID:             export.ID.Hex(),
		Period:         export.Period,
		ContentType:    export.ContentType,
		Size:           export.Size,
		DatasetVersion: export.DatasetVersion,
		CreatedAt:      export.CreatedAt,
		DownloadURL:    url,
	})
}
