package model

import (
	"time"

	"gorm.io/datatypes"
)

const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

// ClassRef is one entry in a user's enrolled-class list. LessonID is the
// student's "next lesson" cursor within that class; it may be blank or point
// at a lesson no longer in the class, and nothing here enforces membership.
type ClassRef struct {
	ClassID  string `json:"classId"`
	LessonID string `json:"lessonId"`
}

// User is keyed by the auth provider's subject id, not a generated id.
type User struct {
	ID        string                        `gorm:"primarykey" json:"id"`
	Name      string                        `json:"name"`
	Email     string                        `json:"email"`
	Role      string                        `gorm:"not null" json:"role"`
	Classes   datatypes.JSONSlice[ClassRef] `json:"classes"`
	CreatedAt time.Time                     `json:"created_at"`
	UpdatedAt time.Time                     `json:"updated_at"`
}
