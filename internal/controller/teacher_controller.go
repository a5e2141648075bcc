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

type TeacherController struct {
	classSvc   service.ClassService
	lessonSvc  service.LessonService
	profileSvc service.ProfileService
}

func NewTeacherController(classSvc service.ClassService, lessonSvc service.LessonService, profileSvc service.ProfileService) *TeacherController {
	return &TeacherController{classSvc: classSvc, lessonSvc: lessonSvc, profileSvc: profileSvc}
}

// CreateClass godoc
// @Summary Create a class
// @Description Creates a class owned by the calling teacher and appends it to their class list
// @Tags teacher
// @Accept json
// @Produce json
// @Param class body dto.CreateClassRequest true "Class data"
// @Success 201 {object} dto.ClassResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /createClass [post]
func (ctrl *TeacherController) CreateClass(c *gin.Context) {
	var req dto.CreateClassRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	class, err := ctrl.classSvc.CreateClass(middleware.UserID(c), req)
	if err != nil {
		log.Error().Err(err).Str("uid", middleware.UserID(c)).Msg("Failed to create class")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create class"})
		return
	}
	c.JSON(http.StatusCreated, class)
}

// AssignStudentToClass godoc
// @Summary Enroll a student in a class
// @Tags teacher
// @Produce json
// @Param classId path string true "Class ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} map[string]string
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /assignStudentToClass/{classId}/{studentId} [post]
func (ctrl *TeacherController) AssignStudentToClass(c *gin.Context) {
	classID := c.Param("classId")
	studentID := c.Param("studentId")
	if classID == "" || studentID == "" {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "classId and studentId are required"})
		return
	}

	err := ctrl.classSvc.AssignStudent(classID, studentID)
	switch {
	case err == nil:
		c.JSON(http.StatusOK, gin.H{"message": "Student enrolled"})
	case errors.Is(err, service.ErrAlreadyEnrolled):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Student already enrolled in class"})
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Class or student not found"})
	default:
		log.Error().Err(err).Str("classId", classID).Str("studentId", studentID).Msg("Failed to enroll student")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to enroll student"})
	}
}

// GetAllStudents godoc
// @Summary List all student profiles
// @Tags teacher
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Failure 403 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /getAllStudents [get]
func (ctrl *TeacherController) GetAllStudents(c *gin.Context) {
	students, err := ctrl.profileSvc.GetAllStudents()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list students")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to retrieve students"})
		return
	}
	c.JSON(http.StatusOK, students)
}

// CreateLesson godoc
// @Summary Create a lesson in a class
// @Tags teacher
// @Accept json
// @Produce json
// @Param classId path string true "Class ID"
// @Param lesson body dto.CreateLessonRequest true "Lesson data"
// @Success 201 {object} dto.LessonResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /createLesson/{classId} [post]
func (ctrl *TeacherController) CreateLesson(c *gin.Context) {
	classID := c.Param("classId")
	var req dto.CreateLessonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	lesson, err := ctrl.classSvc.CreateLesson(classID, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Class not found"})
			return
		}
		log.Error().Err(err).Str("classId", classID).Msg("Failed to create lesson")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create lesson"})
		return
	}
	c.JSON(http.StatusCreated, lesson)
}

// CreateQuestion godoc
// @Summary Author a question and attach it to a lesson
// @Tags teacher
// @Accept json
// @Produce json
// @Param lessonId path string true "Lesson ID"
// @Param question body dto.CreateQuestionRequest true "Question data"
// @Success 201 {object} dto.QuestionResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /createQuestion/{lessonId} [post]
func (ctrl *TeacherController) CreateQuestion(c *gin.Context) {
	lessonID := c.Param("lessonId")
	var req dto.CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	question, err := ctrl.lessonSvc.CreateQuestion(lessonID, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "Lesson not found"})
			return
		}
		log.Error().Err(err).Str("lessonId", lessonID).Msg("Failed to create question")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to create question"})
		return
	}
	c.JSON(http.StatusCreated, question)
}
