package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prepwise/prepwise/config"
	"github.com/prepwise/prepwise/database"
	_ "github.com/prepwise/prepwise/docs" // Swagger docs - auto-generated
	adminctrl "github.com/prepwise/prepwise/internal/controller/admin"
	userctrl "github.com/prepwise/prepwise/internal/controller/user"
	"github.com/prepwise/prepwise/internal/jobs"
	"github.com/prepwise/prepwise/internal/logger"
	"github.com/prepwise/prepwise/internal/middleware"
	"github.com/prepwise/prepwise/internal/model"
	"github.com/prepwise/prepwise/internal/repository"
	"github.com/prepwise/prepwise/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title PrepWise Interview Preparation API
// @version 1.0
// @description Backend for interview preparation: AI-driven mock interviews with level progression, courses and resume building.
// @contact.name API Support
// @contact.email support@prepwise.dev
// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html
// @host localhost:8080
// @BasePath /api/v1
// @schemes http https
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger.Init()

	app := fx.New(
		// Core application components
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
		),

		// Repositories layer
		fx.Provide(
			repository.NewSessionRepository,
			repository.NewUserRepository,
			repository.NewCourseRepository,
			repository.NewResumeRepository,
		),

		// Services layer
		fx.Provide(
			service.NewQuestionGeneratorService,
			service.NewAnswerGraderService,
			service.NewScoreConverterService,
			func(
				sessionRepo repository.SessionRepository,
				generator service.QuestionGeneratorService,
				grader service.AnswerGraderService,
				sc service.ScoreConverterService,
			) service.InterviewService {
				return service.NewInterviewService(sessionRepo, generator, grader, sc, service.DefaultAdvancePolicy)
			},
			service.NewAuthService,
			service.NewCourseService,
			service.NewResumeService,
		),

		// Controllers and middleware
		fx.Provide(
			userctrl.NewAuthController,
			userctrl.NewInterviewController,
			userctrl.NewCourseController,
			userctrl.NewResumeController,
			adminctrl.NewAdminController,
			middleware.NewRateLimiter,
			jobs.NewSessionJanitor,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("user_agent", param.Request.UserAgent()).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())
	r.Use(middleware.Metrics())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Retry-After"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	authCtrl *userctrl.AuthController,
	interviewCtrl *userctrl.InterviewController,
	courseCtrl *userctrl.CourseController,
	resumeCtrl *userctrl.ResumeController,
	adminCtrl *adminctrl.AdminController,
	limiter *middleware.RateLimiter,
	janitor *jobs.SessionJanitor,
) {
	router.GET("/healthz", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.GET("/metrics", middleware.MetricsHandler())

	apiV1 := router.Group("/api/v1")

	authGroup := apiV1.Group("/auth")
	{
		authGroup.POST("/register", authCtrl.Register)
		authGroup.POST("/login", authCtrl.Login)
		authGroup.GET("/me", middleware.AuthRequired(cfg), authCtrl.Me)
	}

	authed := apiV1.Group("")
	authed.Use(middleware.AuthRequired(cfg))
	{
		interviewGroup := authed.Group("/interview")
		{
			interviewGroup.POST("", interviewCtrl.CreateInterview)
			interviewGroup.GET("", interviewCtrl.ListInterviews)
			// AI-backed endpoints carry the per-user rate limit.
			interviewGroup.POST("/bulk-questions", limiter.Middleware(), interviewCtrl.BulkQuestions)
			interviewGroup.POST("/batch-feedback", limiter.Middleware(), interviewCtrl.BatchFeedback)
			interviewGroup.GET("/:interview_id", interviewCtrl.GetInterview)
		}

		courseGroup := authed.Group("/courses")
		{
			courseGroup.GET("", courseCtrl.ListCourses)
			courseGroup.GET("/enrollments", courseCtrl.ListEnrollments)
			courseGroup.GET("/:course_id", courseCtrl.GetCourse)
			courseGroup.POST("/:course_id/enroll", courseCtrl.Enroll)
		}

		resumeGroup := authed.Group("/resumes")
		{
			resumeGroup.POST("", resumeCtrl.CreateResume)
			resumeGroup.GET("", resumeCtrl.ListResumes)
			resumeGroup.GET("/:resume_id", resumeCtrl.GetResume)
			resumeGroup.PUT("/:resume_id", resumeCtrl.UpdateResume)
			resumeGroup.DELETE("/:resume_id", resumeCtrl.DeleteResume)
		}
	}

	adminGroup := apiV1.Group("/admin")
	adminGroup.Use(middleware.AuthRequired(cfg), middleware.AdminRequired())
	{
		adminGroup.POST("/courses", adminCtrl.CreateCourse)
		adminGroup.PUT("/courses/:course_id", adminCtrl.UpdateCourse)
		adminGroup.DELETE("/courses/:course_id", adminCtrl.DeleteCourse)
		adminGroup.GET("/interviews", adminCtrl.ListAllInterviews)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("PrepWise API server starting on port %s", cfg.Server.Port)
			log.Info().Msgf("Swagger UI available at http://localhost:%s/swagger/index.html", cfg.Server.Port)
			if err := janitor.Start(); err != nil {
				return err
			}
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			janitor.Stop()
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.InterviewSession{},
		&model.InterviewLevel{},
		&model.Question{},
		&model.Course{},
		&model.Enrollment{},
		&model.Resume{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
