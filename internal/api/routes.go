package api

import (
	"net/http"

	"alcyxob/workout-analytics/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Services bundles the dependencies of the HTTP layer.
type Services struct {
	Auth      service.AuthService
	User      service.UserService
	Exercise  service.ExerciseService
	Template  service.TemplateService
	Workout   service.WorkoutService
	Schedule  service.ScheduleService
	Analytics service.AnalyticsService
}

func SetupRoutes(router *gin.Engine, jwtSecret string, services Services) {
	authHandler := NewAuthHandler(services.Auth)
	userHandler := NewUserHandler(services.User)
	exerciseHandler := NewExerciseHandler(services.Exercise)
	templateHandler := NewTemplateHandler(services.Template)
	workoutHandler := NewWorkoutHandler(services.Workout)
	scheduleHandler := NewScheduleHandler(services.Schedule)
	analyticsHandler := NewAnalyticsHandler(services.Analytics)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
		protected.PUT("/me/preferences", userHandler.UpdatePreferences)

		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.POST("", exerciseHandler.CreateExercise)
			exerciseGroup.GET("", exerciseHandler.GetExercises)
		}

		templateGroup := protected.Group("/templates")
		{
			templateGroup.POST("", templateHandler.CreateTemplate)
			templateGroup.GET("", templateHandler.GetTemplates)
		}

		workoutGroup := protected.Group("/workouts")
		{
			workoutGroup.POST("", workoutHandler.LogWorkout)
			workoutGroup.GET("", workoutHandler.ListWorkouts)
			workoutGroup.POST("/:workoutId/complete", workoutHandler.CompleteWorkout)
		}

		scheduleGroup := protected.Group("/schedule")
		{
			scheduleGroup.GET("", scheduleHandler.ListSchedule)
			scheduleGroup.PUT("/:date", scheduleHandler.SetDay)
		}

		analyticsGroup := protected.Group("/analytics")
		{
			analyticsGroup.GET("/volume", analyticsHandler.GetVolume)
			analyticsGroup.GET("/muscles", analyticsHandler.GetMuscles)
			analyticsGroup.GET("/duration", analyticsHandler.GetDuration)
			analyticsGroup.GET("/overload", analyticsHandler.GetOverload)
			analyticsGroup.GET("/adherence", analyticsHandler.GetAdherence)
			analyticsGroup.GET("/heatmap", analyticsHandler.GetHeatmap)
			analyticsGroup.GET("/dashboard", analyticsHandler.GetDashboard)
			analyticsGroup.POST("/exports", analyticsHandler.CreateExport)
			analyticsGroup.GET("/exports/:exportId", analyticsHandler.GetExport)
		}
	}
}
