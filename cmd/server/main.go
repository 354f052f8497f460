package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"alcyxob/workout-analytics/internal/api"
	"alcyxob/workout-analytics/internal/config"
	"alcyxob/workout-analytics/internal/logging"
	"alcyxob/workout-analytics/internal/repository/mongo"
	"alcyxob/workout-analytics/internal/service"
	"alcyxob/workout-analytics/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logrus.Fatalf("could not load config: %v", err)
	}

	logging.Setup(logging.LoggerSetupParams{
		LogFileName:   cfg.Log.File,
		LogToStdout:   cfg.Log.ToStdout,
		LogLevel:      cfg.Log.Level,
		LogFormatJSON: cfg.Log.Format == "json",
	})
	logrus.Info("starting workout analytics server")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logrus.Fatalf("could not connect to MongoDB: %v", err)
	}
	defer func() {
		logrus.Info("disconnecting MongoDB")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logrus.WithError(err).Error("failed to disconnect MongoDB")
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		if err := mongo.EnsureIndexes(ctx, appDB); err != nil {
			logrus.WithError(err).Error("index creation failed")
			return
		}
		logrus.Info("index creation completed")
	}()

	// --- Initialize Storage ---
	fileStorage, err := storage.NewS3Storage(cfg.S3)
	if err != nil {
		logrus.Fatalf("failed to initialize S3 storage: %v", err)
	}

	// --- Initialize Repositories ---
	userRepo := mongo.NewMongoUserRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	templateRepo := mongo.NewMongoTemplateRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	scheduleRepo := mongo.NewMongoScheduleRepository(appDB)
	exportRepo := mongo.NewMongoExportRepository(appDB)

	// --- Initialize Services ---
	settings := service.AnalyticsSettings{
		DefaultLocation:           cfg.Analytics.Location(),
		DefaultWeekStart:          time.Weekday(cfg.Analytics.WeekStart),
		DefaultMaxRestDaysPerWeek: cfg.Analytics.DefaultMaxRestDaysPerWeek,
		LookbackWeeks:             cfg.Analytics.AdherenceLookbackWeeks,
		HorizonDays:               cfg.Analytics.PlannedHorizonDays,
		CacheTTL:                  cfg.Analytics.CacheTTL,
		CacheCleanup:              cfg.Analytics.CacheCleanup,
	}
	services := api.Services{
		Auth:      service.NewAuthService(userRepo, cfg.JWT.Secret, cfg.JWT.Expiration),
		User:      service.NewUserService(userRepo),
		Exercise:  service.NewExerciseService(exerciseRepo),
		Template:  service.NewTemplateService(templateRepo, exerciseRepo),
		Workout:   service.NewWorkoutService(workoutRepo, templateRepo, scheduleRepo, userRepo, settings),
		Schedule:  service.NewScheduleService(scheduleRepo, templateRepo),
		Analytics: service.NewAnalyticsService(userRepo, workoutRepo, scheduleRepo, exerciseRepo, exportRepo, fileStorage, settings),
	}

	// --- Initialize Gin Engine ---
	if cfg.Log.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger())
	api.SetupRoutes(router, cfg.JWT.Secret, services)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logrus.Infof("server listening on %s", cfg.Server.Address)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatalf("ListenAndServe error: %v", err)
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()
	if err := server.Shutdown(ctxShutdown); err != nil {
		logrus.WithError(err).Error("server forced to shutdown")
	}
	logrus.Info("server exiting")
}
