package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/studybuddy/backend/internal/dto"
	"github.com/studybuddy/backend/internal/middleware"
	"github.com/studybuddy/backend/internal/repository"
	"github.com/studybuddy/backend/internal/service"
)

type StudentController struct {
	lessonSvc   service.LessonService
	progressSvc service.ProgressService
}

func NewStudentController(lessonSvc service.LessonService, progressSvc service.ProgressService) *StudentController {
	return &StudentController{lessonSvc: lessonSvc, progressSvc: progressSvc}
}

// GetLesson godoc
// @Summary Lesson with its questions and the caller's progress
// @Tags student
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Success 200 {object} dto.LessonDetailResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /getLesson/{lessonId} [get]
func (ctrl *StudentController) GetLesson(c *gin.Context) {
	lessonID := c.Param("lessonId")
	lesson, err := ctrl.lessonSvc.GetLessonForStudent(lessonID, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Lesson not found"})
			return
		}
		log.Error().Err(err).Str("lessonId", lessonID).Msg("Failed to get lesson")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve lesson"})
		return
	}
	c.JSON(http.StatusOK, lesson)
}

// UpdateProgress godoc
// @Summary Upsert quiz results and the topic confidence map for a lesson
// @Tags student
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Param progress body dto.UpdateProgressRequest true "Per-question scores and confidence levels"
// @Success 200 {object} dto.ProgressResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /updateProgress/{lessonId} [post]
func (ctrl *StudentController) UpdateProgress(c *gin.Context) {
	lessonID := c.Param("lessonId")
	var req dto.UpdateProgressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	progress, err := ctrl.progressSvc.Record(lessonID, middleware.UserID(c), req)
	if err != nil {
		log.Error().Err(err).Str("lessonId", lessonID).Str("uid", middleware.UserID(c)).Msg("Failed to record progress")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to record progress"})
		return
	}
	c.JSON(http.StatusOK, progress)
}

// GetStudentClassProgress godoc
// @Summary Aggregated completion summary for the caller in one class
// @Tags student
// @Produce json
// @Param classId path string true "Class ID"
// @Success 200 {object} dto.ClassProgressResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /getStudentClassProgress/{classId} [get]
func (ctrl *StudentController) GetStudentClassProgress(c *gin.Context) {
	classID := c.Param("classId")
	progress, err := ctrl.progressSvc.ClassProgress(classID, middleware.UserID(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Class not found"})
			return
		}
		log.Error().Err(err).Str("classId", classID).Msg("Failed to aggregate class progress")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve class progress"})
		return
	}
	c.JSON(http.StatusOK, progress)
}
