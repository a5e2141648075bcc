package dto

// GetProfileRequest carries the optional display fields sent on first contact.
// The subject id always comes from the bearer token, never the body.
type GetProfileRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CreateClassRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateLessonRequest struct {
	Name string `json:"name" binding:"required"`
}

type CreateQuestionRequest struct {
	Question    string   `json:"question" binding:"required"`
	Options     []string `json:"options" binding:"required,min=2"`
	Answer      string   `json:"answer" binding:"required"`
	Explanation string   `json:"explanation"`
	Difficulty  string   `json:"difficulty" binding:"omitempty,oneof=Easy Medium Hard"`
	Tags        []string `json:"tags"`
}

// QuestionScoreEntry is one per-question score in a quiz submission.
type QuestionScoreEntry struct {
	QuestionID string  `json:"questionId" binding:"required"`
	Score      float64 `json:"score"`
}

// UpdateProgressRequest upserts quiz results for one lesson. Scores are stored
// as given; there is no range check and no check that the question ids belong
// to the lesson.
type UpdateProgressRequest struct {
	Questions        []QuestionScoreEntry `json:"questions" binding:"required,dive"`
	ConfidenceLevels map[string]float64   `json:"confidenceLevels"`
}
