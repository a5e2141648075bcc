package service

import (
	"github.com/rs/zerolog/log"
	"github.com/studybuddy/backend/internal/dto"
	"github.com/studybuddy/backend/internal/model"
	"github.com/studybuddy/backend/internal/repository"
)

// DirectoryService hydrates a user's class-reference list into full class
// objects. Resolution is partial-failure tolerant: a blank or dangling
// reference is logged and dropped, never an error for the whole request.
type DirectoryService interface {
	// HydrateClasses resolves each reference into class metadata, its lesson
	// id list and the caller's next-lesson object.
	HydrateClasses(refs []model.ClassRef) []dto.ClassResponse
	// HydrateClassesWithLessons additionally resolves every lesson id in each
	// class into a full lesson object.
	HydrateClassesWithLessons(refs []model.ClassRef) []dto.ClassResponse
}

type directoryService struct {
	classRepo  repository.ClassRepository
	lessonRepo repository.LessonRepository
}

func NewDirectoryService(classRepo repository.ClassRepository, lessonRepo repository.LessonRepository) DirectoryService {
	return &directoryService{classRepo: classRepo, lessonRepo: lessonRepo}
}

func (s *directoryService) HydrateClasses(refs []model.ClassRef) []dto.ClassResponse {
	return s.hydrate(refs, false)
}

func (s *directoryService) HydrateClassesWithLessons(refs []model.ClassRef) []dto.ClassResponse {
	return s.hydrate(refs, true)
}

func (s *directoryService) hydrate(refs []model.ClassRef, withLessons bool) []dto.ClassResponse {
	out := make([]dto.ClassResponse, 0, len(refs))
	for _, ref := range refs {
		if ref.ClassID == "" {
			log.Warn().Msg("Skipping blank class reference during hydration")
			continue
		}

		class, err := s.classRepo.FindByID(ref.ClassID)
		if err != nil {
			log.Warn().Err(err).Str("classId", ref.ClassID).Msg("Skipping unresolvable class reference")
			continue
		}

		resp := dto.ClassResponse{
			ID:         class.ID,
			Name:       class.Name,
			Active:     class.Active,
			CreatedAt:  class.CreatedAt,
			NextLesson: s.resolveLesson(ref.LessonID),
		}

		if withLessons {
			resp.Lessons = s.resolveLessons(class.Lessons)
		} else {
			resp.LessonIDs = append([]string{}, class.Lessons...)
		}

		out = append(out, resp)
	}
	return out
}

func (s *directoryService) resolveLessons(ids []string) []dto.LessonResponse {
	lessons := make([]dto.LessonResponse, 0, len(ids))
	for _, id := range ids {
		lesson := s.resolveLesson(id)
		if lesson == nil {
			continue
		}
		lessons = append(lessons, *lesson)
	}
	return lessons
}

func (s *directoryService) resolveLesson(id string) *dto.LessonResponse {
	if id == "" {
		return nil
	}
	lesson, err := s.lessonRepo.FindByID(id)
	if err != nil {
		log.Warn().Err(err).Str("lessonId", id).Msg("Skipping unresolvable lesson reference")
		return nil
	}
	return lessonToResponse(lesson)
}

func lessonToResponse(lesson *model.Lesson) *dto.LessonResponse {
	return &dto.LessonResponse{
		ID:        lesson.ID,
		Name:      lesson.Name,
		Questions: append([]string{}, lesson.Questions...),
	}
}
