package dto

import "time"

// ErrorResponse is the only error body shape the API produces.
type ErrorResponse struct {
	Message string `json:"message"`
}

type ClassRefResponse struct {
	ClassID  string `json:"classId"`
	LessonID string `json:"lessonId"`
}

type UserResponse struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Email   string             `json:"email"`
	Role    string             `json:"role"`
	Classes []ClassRefResponse `json:"classes"`
}

type QuestionResponse struct {
	ID          string   `json:"id"`
	LessonID    string   `json:"lessonId"`
	Question    string   `json:"question"`
	Options     []string `json:"options"`
	Answer      string   `json:"answer"`
	Explanation string   `json:"explanation,omitempty"`
	Difficulty  string   `json:"difficulty"`
	Tags        []string `json:"tags"`
}

type LessonResponse struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Questions []string `json:"questions"`
}

// LessonDetailResponse is the student view of one lesson: hydrated questions
// plus the caller's progress record, which is null until first submission.
type LessonDetailResponse struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Questions []QuestionResponse `json:"questions"`
	Progress  *ProgressResponse  `json:"progress"`
}

// ClassResponse is one hydrated class in a directory listing. NextLesson is
// resolved from the caller's cursor and may be null.
type ClassResponse struct {
	ID         string           `json:"id"`
	Name       string           `json:"name"`
	Active     bool             `json:"active"`
	CreatedAt  time.Time        `json:"createdAt"`
	Lessons    []LessonResponse `json:"lessons,omitempty"`
	LessonIDs  []string         `json:"lessonIds,omitempty"`
	NextLesson *LessonResponse  `json:"nextLesson"`
}

type QuestionScoreResponse struct {
	QuestionID  string    `json:"questionId"`
	Score       float64   `json:"score"`
	SubmittedAt time.Time `json:"submittedAt"`
}

type ProgressResponse struct {
	LessonID         string                  `json:"lessonId"`
	StudentID        string                  `json:"studentId"`
	Questions        []QuestionScoreResponse `json:"questions"`
	ConfidenceLevels map[string]float64      `json:"confidenceLevels"`
}

// LessonProgressDetail is one row of the aggregated class-progress view.
// Progress stays null when the student has never submitted for the lesson; in
// that case Completed is vacuously true.
type LessonProgressDetail struct {
	LessonID  string            `json:"lessonId"`
	Name      string            `json:"name"`
	Completed bool              `json:"completed"`
	Progress  *ProgressResponse `json:"progress"`
}

type ClassProgressResponse struct {
	NextLesson       *LessonResponse        `json:"nextLesson"`
	TotalLessons     int                    `json:"totalLessons"`
	CompletedLessons int                    `json:"completedLessons"`
	Details          []LessonProgressDetail `json:"details"`
}
