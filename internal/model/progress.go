package model

import (
	"time"

	"gorm.io/datatypes"
)

// CompletionThreshold is the confidence value at which a topic counts as
// mastered. A lesson is complete when every recorded confidence meets it.
const CompletionThreshold = 80.0

// QuestionScore is one submitted answer inside a progress record. There is at
// most one entry per question id; a resubmission replaces the old entry.
type QuestionScore struct {
	QuestionID  string    `json:"questionId"`
	Score       float64   `json:"score"`
	SubmittedAt time.Time `json:"submittedAt"`
}

// ProgressRecord is the per-student, per-lesson store of quiz answers and
// derived topic confidence. Records are upserted on every submission and
// never deleted. "Completed" is derived from ConfidenceLevels, never stored.
type ProgressRecord struct {
	LessonID         string                                 `gorm:"primarykey" json:"lessonId"`
	StudentID        string                                 `gorm:"primarykey" json:"studentId"`
	Questions        datatypes.JSONSlice[QuestionScore]     `json:"questions"`
	ConfidenceLevels datatypes.JSONType[map[string]float64] `json:"confidenceLevels"`
	CreatedAt        time.Time                              `json:"created_at"`
	UpdatedAt        time.Time                              `json:"updated_at"`
}

// Completed reports whether every recorded confidence value meets the
// threshold. An empty or absent map is vacuously complete.
func (p *ProgressRecord) Completed() bool {
	if p == nil {
		return true
	}
	for _, v := range p.ConfidenceLevels.Data() {
		if v < CompletionThreshold {
			return false
		}
	}
	return true
}
