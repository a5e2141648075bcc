package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/studybuddy/backend/config"
	"github.com/studybuddy/backend/database"
	"github.com/studybuddy/backend/internal/controller"
	"github.com/studybuddy/backend/internal/logger"
	"github.com/studybuddy/backend/internal/middleware"
	"github.com/studybuddy/backend/internal/model"
	"github.com/studybuddy/backend/internal/repository"
	"github.com/studybuddy/backend/internal/service"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Study Buddy API
// @version 1.0
// @description Adaptive learning backend: classes, lessons, quiz progress and LLM-assisted confidence estimation.
// @host localhost:5000
// @BasePath /api
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
			repository.NewUserRepository,
			repository.NewClassRepository,
			repository.NewLessonRepository,
			repository.NewQuestionRepository,
			repository.NewProgressRepository,
		),

		// Services layer
		fx.Provide(
			func(cfg *config.Config, users repository.UserRepository) service.ProfileService {
				return service.NewProfileService(users, cfg.DefaultUserRole)
			},
			service.NewDirectoryService,
			service.NewClassService,
			service.NewLessonService,
			service.NewProgressService,
			service.NewConfidenceService,
			service.NewClassifierService,
			service.NewTranscriptService,
		),

		// API controllers layer
		fx.Provide(
			func(profileSvc service.ProfileService, directorySvc service.DirectoryService, users repository.UserRepository) *controller.ProfileController {
				return controller.NewProfileController(profileSvc, directorySvc, users)
			},
			controller.NewTeacherController,
			controller.NewStudentController,
			controller.NewAIController,
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
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer configures API routes and manages server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	users repository.UserRepository,
	profileCtrl *controller.ProfileController,
	teacherCtrl *controller.TeacherController,
	studentCtrl *controller.StudentController,
	aiCtrl *controller.AIController,
) {
	api := router.Group("/api", middleware.Auth(cfg))
	{
		// Any authenticated caller
		api.POST("/getprofile", profileCtrl.GetProfile)
		api.GET("/getClasses", profileCtrl.GetClasses)
		api.GET("/getClassAndLessons", profileCtrl.GetClassAndLessons)
		api.POST("/classify", aiCtrl.Classify)
		api.POST("/confidence", aiCtrl.Confidence)
		api.POST("/transcript-url", aiCtrl.TranscriptURL)

		// Teacher-gated
		teacherOnly := api.Group("", middleware.RequireRole(users, model.RoleTeacher))
		teacherOnly.POST("/createClass", teacherCtrl.CreateClass)
		teacherOnly.POST("/assignStudentToClass/:classId/:studentId", teacherCtrl.AssignStudentToClass)
		teacherOnly.GET("/getAllStudents", teacherCtrl.GetAllStudents)
		teacherOnly.POST("/createLesson/:classId", teacherCtrl.CreateLesson)
		teacherOnly.POST("/createQuestion/:lessonId", teacherCtrl.CreateQuestion)

		// Student-gated
		studentOnly := api.Group("", middleware.RequireRole(users, model.RoleStudent))
		studentOnly.GET("/getLesson/:lessonId", studentCtrl.GetLesson)
		studentOnly.POST("/updateProgress/:lessonId", studentCtrl.UpdateProgress)
		studentOnly.GET("/getStudentClassProgress/:classId", studentCtrl.GetStudentClassProgress)
	}

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Study Buddy API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
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
		&model.Class{},
		&model.Lesson{},
		&model.Question{},
		&model.ProgressRecord{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
