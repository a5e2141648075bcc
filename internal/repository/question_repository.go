package repository

import (
	"github.com/studybuddy/backend/internal/model"
	"gorm.io/gorm"
)

type QuestionRepository interface {
	Create(question *model.Question) error
	FindByID(id string) (*model.Question, error)
	FindByLessonID(lessonID string) ([]model.Question, error)
}

type questionRepository struct {
	db *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

func (r *questionRepository) Create(question *model.Question) error {
	return r.db.Create(question).Error
}

func (r *questionRepository) FindByID(id string) (*model.Question, error) {
	var question model.Question
	if err := r.db.First(&question, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &question, nil
}

func (r *questionRepository) FindByLessonID(lessonID string) ([]model.Question, error) {
	var questions []model.Question
	if err := r.db.Where("lesson_id = ?", lessonID).Order("created_at asc").Find(&questions).Error; err != nil {
		return nil, err
	}
	return questions, nil
}
