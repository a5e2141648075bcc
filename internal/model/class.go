package model

import (
	"time"

	"gorm.io/datatypes"
)

// Class is a teacher-owned grouping of lessons and enrolled students.
// Lessons holds lesson ids in teaching order; lesson documents carry no
// back-reference to the class.
type Class struct {
	ID         string                      `gorm:"primarykey" json:"id"`
	Name       string                      `gorm:"not null" json:"name"`
	Active     bool                        `json:"active"`
	Lessons    datatypes.JSONSlice[string] `json:"lessons"`
	TeacherIDs datatypes.JSONSlice[string] `json:"teacherIds"`
	StudentIDs datatypes.JSONSlice[string] `json:"studentIds"`
	CreatedAt  time.Time                   `json:"createdAt"`
	UpdatedAt  time.Time                   `json:"-"`
}
