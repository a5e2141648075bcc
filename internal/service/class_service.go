package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/studybuddy/backend/internal/dto"
	"github.com/studybuddy/backend/internal/model"
	"github.com/studybuddy/backend/internal/repository"
	"gorm.io/gorm"
)

// ErrAlreadyEnrolled is returned when a student is assigned to a class twice.
var ErrAlreadyEnrolled = errors.New("student already enrolled in class")

// ClassService owns teacher-side class management. Every operation that
// touches both a class document and a user document runs inside one
// transaction so a crash cannot leave the two halves inconsistent.
type ClassService interface {
	CreateClass(teacherID string, req dto.CreateClassRequest) (*dto.ClassResponse, error)
	AssignStudent(classID, studentID string) error
	CreateLesson(classID string, req dto.CreateLessonRequest) (*dto.LessonResponse, error)
}

type classService struct {
	classRepo  repository.ClassRepository
	lessonRepo repository.LessonRepository
	userRepo   repository.UserRepository
	db         *gorm.DB
}

func NewClassService(
	classRepo repository.ClassRepository,
	lessonRepo repository.LessonRepository,
	userRepo repository.UserRepository,
	db *gorm.DB,
) ClassService {
	return &classService{classRepo: classRepo, lessonRepo: lessonRepo, userRepo: userRepo, db: db}
}

// CreateClass persists the class and appends a reference to the creating
// teacher's class list in one transaction.
func (s *classService) CreateClass(teacherID string, req dto.CreateClassRequest) (*dto.ClassResponse, error) {
	teacher, err := s.userRepo.FindByID(teacherID)
	if err != nil {
		return nil, fmt.Errorf("failed to load teacher %s: %w", teacherID, err)
	}

	class := &model.Class{
		ID:         uuid.NewString(),
		Name:       req.Name,
		Active:     true,
		Lessons:    []string{},
		TeacherIDs: []string{teacherID},
		StudentIDs: []string{},
		CreatedAt:  time.Now(),
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(class).Error; err != nil {
			return fmt.Errorf("failed to create class: %w", err)
		}
		teacher.Classes = append(teacher.Classes, model.ClassRef{ClassID: class.ID})
		if err := tx.Save(teacher).Error; err != nil {
			return fmt.Errorf("failed to update teacher class list: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("classId", class.ID).Str("teacherId", teacherID).Msg("Class created")
	return &dto.ClassResponse{
		ID:        class.ID,
		Name:      class.Name,
		Active:    class.Active,
		CreatedAt: class.CreatedAt,
		LessonIDs: []string{},
	}, nil
}

// AssignStudent enrolls the student: class.studentIds gains the student id and
// the student's class list gains a reference whose next-lesson cursor starts
// at the class's first lesson (blank when the class has no lessons yet).
func (s *classService) AssignStudent(classID, studentID string) error {
	class, err := s.classRepo.FindByID(classID)
	if err != nil {
		return fmt.Errorf("failed to load class %s: %w", classID, err)
	}
	student, err := s.userRepo.FindByID(studentID)
	if err != nil {
		return fmt.Errorf("failed to load student %s: %w", studentID, err)
	}

	for _, id := range class.StudentIDs {
		if id == studentID {
			return ErrAlreadyEnrolled
		}
	}

	firstLesson := ""
	if len(class.Lessons) > 0 {
		firstLesson = class.Lessons[0]
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		class.StudentIDs = append(class.StudentIDs, studentID)
		if err := tx.Save(class).Error; err != nil {
			return fmt.Errorf("failed to update class roster: %w", err)
		}
		student.Classes = append(student.Classes, model.ClassRef{ClassID: classID, LessonID: firstLesson})
		if err := tx.Save(student).Error; err != nil {
			return fmt.Errorf("failed to update student class list: %w", err)
		}
		return nil
	})
}

// CreateLesson persists the lesson and appends its id to the class's lesson
// list in one transaction.
func (s *classService) CreateLesson(classID string, req dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	class, err := s.classRepo.FindByID(classID)
	if err != nil {
		return nil, fmt.Errorf("failed to load class %s: %w", classID, err)
	}

	lesson := &model.Lesson{
		ID:        uuid.NewString(),
		Name:      req.Name,
		Questions: []string{},
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(lesson).Error; err != nil {
			return fmt.Errorf("failed to create lesson: %w", err)
		}
		class.Lessons = append(class.Lessons, lesson.ID)
		if err := tx.Save(class).Error; err != nil {
			return fmt.Errorf("failed to update class lesson list: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().Str("lessonId", lesson.ID).Str("classId", classID).Msg("Lesson created")
	return lessonToResponse(lesson), nil
}
