package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/studybuddy/backend/internal/dto"
	"github.com/studybuddy/backend/internal/model"
	"github.com/studybuddy/backend/internal/repository"
	"gorm.io/datatypes"
)

// ProgressService records quiz submissions and aggregates per-class
// completion for one student.
type ProgressService interface {
	Record(lessonID, studentID string, req dto.UpdateProgressRequest) (*dto.ProgressResponse, error)
	ClassProgress(classID, studentID string) (*dto.ClassProgressResponse, error)
}

type progressService struct {
	progressRepo repository.ProgressRepository
	classRepo    repository.ClassRepository
	lessonRepo   repository.LessonRepository
	userRepo     repository.UserRepository
}

func NewProgressService(
	progressRepo repository.ProgressRepository,
	classRepo repository.ClassRepository,
	lessonRepo repository.LessonRepository,
	userRepo repository.UserRepository,
) ProgressService {
	return &progressService{
		progressRepo: progressRepo,
		classRepo:    classRepo,
		lessonRepo:   lessonRepo,
		userRepo:     userRepo,
	}
}

// Record merges the submission into the (lesson, student) progress record.
// Each incoming entry replaces the stored entry with the same question id or
// is appended when new, so resubmitting a question never duplicates it.
// Scores and question ids are stored as given; membership in the lesson and
// score range are deliberately not validated.
func (s *progressService) Record(lessonID, studentID string, req dto.UpdateProgressRequest) (*dto.ProgressResponse, error) {
	record, err := s.progressRepo.Find(lessonID, studentID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to load progress for lesson %s: %w", lessonID, err)
		}
		record = &model.ProgressRecord{LessonID: lessonID, StudentID: studentID}
	}

	now := time.Now()
	merged := append([]model.QuestionScore{}, record.Questions...)
	for _, entry := range req.Questions {
		score := model.QuestionScore{QuestionID: entry.QuestionID, Score: entry.Score, SubmittedAt: now}
		replaced := false
		for i := range merged {
			if merged[i].QuestionID == entry.QuestionID {
				merged[i] = score
				replaced = true
				break
			}
		}
		if !replaced {
			merged = append(merged, score)
		}
	}
	record.Questions = merged
	if req.ConfidenceLevels != nil {
		record.ConfidenceLevels = datatypes.NewJSONType(req.ConfidenceLevels)
	}

	if err := s.progressRepo.Upsert(record); err != nil {
		return nil, fmt.Errorf("failed to save progress for lesson %s: %w", lessonID, err)
	}

	log.Info().Str("lessonId", lessonID).Str("studentId", studentID).Int("questions", len(record.Questions)).Msg("Progress recorded")
	return progressToResponse(record), nil
}

// ClassProgress walks the class's lesson list and derives completion per
// lesson for the caller. Only a missing class is an error; every other lookup
// fails open and counts as "no progress yet", which is vacuously complete.
func (s *progressService) ClassProgress(classID, studentID string) (*dto.ClassProgressResponse, error) {
	class, err := s.classRepo.FindByID(classID)
	if err != nil {
		return nil, fmt.Errorf("failed to load class %s: %w", classID, err)
	}

	resp := &dto.ClassProgressResponse{
		TotalLessons: len(class.Lessons),
		Details:      make([]dto.LessonProgressDetail, 0, len(class.Lessons)),
	}

	for _, lessonID := range class.Lessons {
		detail := dto.LessonProgressDetail{LessonID: lessonID}

		if lesson, err := s.lessonRepo.FindByID(lessonID); err == nil {
			detail.Name = lesson.Name
		} else {
			log.Warn().Err(err).Str("lessonId", lessonID).Msg("Lesson in class list did not resolve")
		}

		record, err := s.progressRepo.Find(lessonID, studentID)
		if err != nil {
			if !errors.Is(err, repository.ErrNotFound) {
				log.Warn().Err(err).Str("lessonId", lessonID).Str("studentId", studentID).Msg("Failed to read progress, treating as none")
			}
			record = nil
		}

		// A missing record is vacuously complete in the detail row but does
		// not advance the completed counter; only recorded completions count.
		detail.Completed = record.Completed()
		if record != nil {
			detail.Progress = progressToResponse(record)
			if detail.Completed {
				resp.CompletedLessons++
			}
		}
		resp.Details = append(resp.Details, detail)
	}

	resp.NextLesson = s.resolveNextLesson(classID, studentID)
	return resp, nil
}

// resolveNextLesson scans the student's stored class references for this
// class and hydrates the cursor lesson. Any failure along the way degrades to
// a null next lesson.
func (s *progressService) resolveNextLesson(classID, studentID string) *dto.LessonResponse {
	student, err := s.userRepo.FindByID(studentID)
	if err != nil {
		log.Warn().Err(err).Str("studentId", studentID).Msg("Failed to load student for next-lesson resolution")
		return nil
	}
	for _, ref := range student.Classes {
		if ref.ClassID != classID || ref.LessonID == "" {
			continue
		}
		lesson, err := s.lessonRepo.FindByID(ref.LessonID)
		if err != nil {
			log.Warn().Err(err).Str("lessonId", ref.LessonID).Msg("Next-lesson cursor did not resolve")
			return nil
		}
		return lessonToResponse(lesson)
	}
	return nil
}

func progressToResponse(record *model.ProgressRecord) *dto.ProgressResponse {
	questions := make([]dto.QuestionScoreResponse, 0, len(record.Questions))
	for _, q := range record.Questions {
		questions = append(questions, dto.QuestionScoreResponse{
			QuestionID:  q.QuestionID,
			Score:       q.Score,
			SubmittedAt: q.SubmittedAt,
		})
	}
	levels := record.ConfidenceLevels.Data()
	if levels == nil {
		levels = map[string]float64{}
	}
	return &dto.ProgressResponse{
		LessonID:         record.LessonID,
		StudentID:        record.StudentID,
		Questions:        questions,
		ConfidenceLevels: levels,
	}
}
