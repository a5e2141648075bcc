package repository

import (
	"github.com/studybuddy/backend/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ProgressRepository interface {
	Find(lessonID, studentID string) (*model.ProgressRecord, error)
	Upsert(record *model.ProgressRecord) error
}

type progressRepository struct {
	db *gorm.DB
}

func NewProgressRepository(db *gorm.DB) ProgressRepository {
	return &progressRepository{db: db}
}

func (r *progressRepository) Find(lessonID, studentID string) (*model.ProgressRecord, error) {
	var record model.ProgressRecord
	err := r.db.First(&record, "lesson_id = ? AND student_id = ?", lessonID, studentID).Error
	if err != nil {
		return nil, translate(err)
	}
	return &record, nil
}

// Upsert writes the record with merge semantics on the (lesson, student) key:
// an existing row is overwritten field by field, a missing row is created.
func (r *progressRepository) Upsert(record *model.ProgressRecord) error {
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "lesson_id"}, {Name: "student_id"}},
		UpdateAll: true,
	}).Create(record).Error
}
