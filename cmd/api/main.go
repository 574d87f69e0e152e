package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/arka-labs/course-market-api/api/swagger"
	"github.com/arka-labs/course-market-api/internal/handler"
	"github.com/arka-labs/course-market-api/internal/middleware"
	"github.com/arka-labs/course-market-api/internal/models"
	"github.com/arka-labs/course-market-api/internal/repository"
	"github.com/arka-labs/course-market-api/internal/service"
	"github.com/arka-labs/course-market-api/pkg/config"
	"github.com/arka-labs/course-market-api/pkg/database"
	"github.com/arka-labs/course-market-api/pkg/logger"
	corsmiddleware "github.com/arka-labs/course-market-api/pkg/middleware/cors"
	reqidmiddleware "github.com/arka-labs/course-market-api/pkg/middleware/requestid"
)

// @title Course Market API
// @version 0.1.0
// @description Marketplace backend for publishing, purchasing and reviewing courses
// @BasePath /api/v1
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Sugar().Fatalw("failed to connect to database", "error", err)
	}
	defer db.Close()

	validate := validator.New()

	learnerRepo := repository.NewLearnerRepository(db)
	instructorRepo := repository.NewInstructorRepository(db)
	courseRepo := repository.NewCourseRepository(db)
	purchaseRepo := repository.NewPurchaseRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	tokenSvc := service.NewTokenService(service.TokenConfig{
		LearnerSecret:    cfg.Auth.LearnerSecret,
		InstructorSecret: cfg.Auth.InstructorSecret,
		Expiry:           cfg.Auth.TokenExpiry,
		Issuer:           cfg.Auth.Issuer,
	})
	authSvc := service.NewAuthService(learnerRepo, instructorRepo, tokenSvc, validate, logr, cfg.Auth.BcryptCost)
	catalogSvc := service.NewCatalogService(courseRepo, validate, logr)
	enrollmentSvc := service.NewEnrollmentService(courseRepo, purchaseRepo, logr)
	reviewSvc := service.NewReviewService(courseRepo, purchaseRepo, reviewRepo, validate, logr)
	reportSvc := service.NewReportService(courseRepo, logr)
	metricsSvc := service.NewMetricsService()

	learnerAuth := handler.NewAuthHandler(authSvc, models.ClassLearner)
	instructorAuth := handler.NewAuthHandler(authSvc, models.ClassInstructor)
	catalogHandler := handler.NewCatalogHandler(catalogSvc)
	enrollmentHandler := handler.NewEnrollmentHandler(enrollmentSvc)
	reviewHandler := handler.NewReviewHandler(reviewSvc)
	reportHandler := handler.NewReportHandler(reportSvc)

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.GET("/ready", func(c *gin.Context) {
		if err := db.Ping(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "degraded"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	})

	r.GET("/metrics", gin.WrapH(metricsSvc.Handler()))

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)

	requireLearner := middleware.RequireClass(tokenSvc, models.ClassLearner)
	requireInstructor := middleware.RequireClass(tokenSvc, models.ClassInstructor)

	learner := api.Group("/learner")
	{
		learner.POST("/signup", learnerAuth.Signup)
		learner.POST("/login", learnerAuth.Login)
		learner.GET("/profile", requireLearner, learnerAuth.Profile)
		learner.GET("/purchases", requireLearner, enrollmentHandler.ListPurchases)
		learner.GET("/courses", requireLearner, enrollmentHandler.ListCourseData)
		learner.POST("/courses/:id/complete", requireLearner, enrollmentHandler.MarkCompleted)
		learner.POST("/courses/:id/review", requireLearner, reviewHandler.Submit)
	}

	instructor := api.Group("/instructor")
	{
		instructor.POST("/signup", instructorAuth.Signup)
		instructor.POST("/login", instructorAuth.Login)
		instructor.GET("/profile", requireInstructor, instructorAuth.Profile)
		instructor.POST("/courses", requireInstructor, catalogHandler.CreateCourse)
		instructor.GET("/courses", requireInstructor, catalogHandler.ListMyCourses)
		instructor.PUT("/courses/:id", requireInstructor, catalogHandler.UpdateCourse)
		instructor.GET("/courses/:id/sections", requireInstructor, catalogHandler.ListSections)
		instructor.POST("/sections", requireInstructor, catalogHandler.CreateSection)
		if cfg.Reports.Enabled {
			instructor.GET("/reports/sales", requireInstructor, reportHandler.Sales)
		}
	}

	course := api.Group("/course")
	{
		course.GET("/preview", catalogHandler.Preview)
		course.GET("/:id", catalogHandler.GetCourse)
		course.GET("/:id/reviews", reviewHandler.ListByCourse)
		course.POST("/:id/purchase", requireLearner, enrollmentHandler.Purchase)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
