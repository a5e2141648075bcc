package repository

import (
	"github.com/studybuddy/backend/internal/model"
	"gorm.io/gorm"
)

type ClassRepository interface {
	Create(class *model.Class) error
	FindByID(id string) (*model.Class, error)
	Save(class *model.Class) error
}

type classRepository struct {
	db *gorm.DB
}

func NewClassRepository(db *gorm.DB) ClassRepository {
	return &classRepository{db: db}
}

func (r *classRepository) Create(class *model.Class) error {
	return r.db.Create(class).Error
}

func (r *classRepository) FindByID(id string) (*model.Class, error) {
	var class model.Class
	if err := r.db.First(&class, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &class, nil
}

func (r *classRepository) Save(class *model.Class) error {
	return r.db.Save(class).Error
}
