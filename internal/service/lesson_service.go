package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
	"github.com/studybuddy/backend/internal/dto"
	"github.com/studybuddy/backend/internal/model"
	"github.com/studybuddy/backend/internal/repository"
	"gorm.io/gorm"
)

// LessonService serves lesson consumption and question authoring.
type LessonService interface {
	// GetLessonForStudent returns the lesson, its hydrated questions and the
	// caller's progress record (nil until the first submission).
	GetLessonForStudent(lessonID, studentID string) (*dto.LessonDetailResponse, error)
	CreateQuestion(lessonID string, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error)
}

type lessonService struct {
	lessonRepo   repository.LessonRepository
	questionRepo repository.QuestionRepository
	progressRepo repository.ProgressRepository
	db           *gorm.DB
}

func NewLessonService(
	lessonRepo repository.LessonRepository,
	questionRepo repository.QuestionRepository,
	progressRepo repository.ProgressRepository,
	db *gorm.DB,
) LessonService {
	return &lessonService{lessonRepo: lessonRepo, questionRepo: questionRepo, progressRepo: progressRepo, db: db}
}

func (s *lessonService) GetLessonForStudent(lessonID, studentID string) (*dto.LessonDetailResponse, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson %s: %w", lessonID, err)
	}

	// Hydrate in the lesson's stored question order; dangling ids are logged
	// and dropped rather than failing the whole response.
	questions := make([]dto.QuestionResponse, 0, len(lesson.Questions))
	for _, qid := range lesson.Questions {
		question, err := s.questionRepo.FindByID(qid)
		if err != nil {
			log.Warn().Err(err).Str("questionId", qid).Str("lessonId", lessonID).Msg("Skipping unresolvable question reference")
			continue
		}
		questions = append(questions, *questionToResponse(question))
	}

	resp := &dto.LessonDetailResponse{
		ID:        lesson.ID,
		Name:      lesson.Name,
		Questions: questions,
	}

	record, err := s.progressRepo.Find(lessonID, studentID)
	switch {
	case err == nil:
		resp.Progress = progressToResponse(record)
	case errors.Is(err, repository.ErrNotFound):
		// No submission yet; progress stays null.
	default:
		log.Warn().Err(err).Str("lessonId", lessonID).Str("studentId", studentID).Msg("Failed to read progress, treating as none")
	}

	return resp, nil
}

// CreateQuestion persists the question and appends its id to the lesson's
// question list in one transaction.
func (s *lessonService) CreateQuestion(lessonID string, req dto.CreateQuestionRequest) (*dto.QuestionResponse, error) {
	lesson, err := s.lessonRepo.FindByID(lessonID)
	if err != nil {
		return nil, fmt.Errorf("failed to load lesson %s: %w", lessonID, err)
	}

	difficulty := req.Difficulty
	if difficulty == "" {
		difficulty = model.DifficultyMedium
	}

	question := &model.Question{
		ID:          uuid.NewString(),
		LessonID:    lessonID,
		Question:    req.Question,
		Options:     req.Options,
		Answer:      req.Answer,
		Explanation: req.Explanation,
		Difficulty:  difficulty,
		Tags:        req.Tags,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(question).Error; err != nil {
			return fmt.Errorf("failed to create question: %w", err)
		}
		lesson.Questions = append(lesson.Questions, question.ID)
		if err := tx.Save(lesson).Error; err != nil {
			return fmt.Errorf("failed to update lesson question list: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return questionToResponse(question), nil
}

func questionToResponse(q *model.Question) *dto.QuestionResponse {
	var resp dto.QuestionResponse
	copier.Copy(&resp, q)
	resp.Options = append([]string{}, q.Options...)
	resp.Tags = append([]string{}, q.Tags...)
	return &resp
}
