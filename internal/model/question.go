package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	DifficultyEasy   = "Easy"
	DifficultyMedium = "Medium"
	DifficultyHard   = "Hard"
)

// Question is authored by a teacher; Tags and Difficulty may come from the
// LLM-assisted classifier rather than the author.
type Question struct {
	ID          string                      `gorm:"primarykey" json:"id"`
	LessonID    string                      `gorm:"index;not null" json:"lessonId"`
	Question    string                      `gorm:"type:text;not null" json:"question"`
	Options     datatypes.JSONSlice[string] `json:"options"`
	Answer      string                      `gorm:"not null" json:"answer"`
	Explanation string                      `gorm:"type:text" json:"explanation,omitempty"`
	Difficulty  string                      `json:"difficulty"`
	Tags        datatypes.JSONSlice[string] `json:"tags"`
	CreatedAt   time.Time                   `json:"created_at"`
	UpdatedAt   time.Time                   `json:"-"`
}
