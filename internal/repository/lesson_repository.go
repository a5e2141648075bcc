package repository

import (
	"github.com/studybuddy/backend/internal/model"
	"gorm.io/gorm"
)

type LessonRepository interface {
	Create(lesson *model.Lesson) error
	FindByID(id string) (*model.Lesson, error)
	Save(lesson *model.Lesson) error
}

type lessonRepository struct {
	db *gorm.DB
}

func NewLessonRepository(db *gorm.DB) LessonRepository {
	return &lessonRepository{db: db}
}

func (r *lessonRepository) Create(lesson *model.Lesson) error {
	return r.db.Create(lesson).Error
}

func (r *lessonRepository) FindByID(id string) (*model.Lesson, error) {
	var lesson model.Lesson
	if err := r.db.First(&lesson, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &lesson, nil
}

func (r *lessonRepository) Save(lesson *model.Lesson) error {
	return r.db.Save(lesson).Error
}
