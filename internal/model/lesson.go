package model

import (
	"time"

	"gorm.io/datatypes"
)

type Lesson struct {
	ID        string                      `gorm:"primarykey" json:"id"`
	Name      string                      `gorm:"not null" json:"name"`
	Questions datatypes.JSONSlice[string] `json:"questions"`
	CreatedAt time.Time                   `json:"created_at"`
	UpdatedAt time.Time                   `json:"-"`
}
