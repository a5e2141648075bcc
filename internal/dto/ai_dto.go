package dto

// ClassifyRequest asks the LLM-assisted classifier to suggest tags and a
// difficulty for a question before it is saved.
type ClassifyRequest struct {
	Question string   `json:"question" binding:"required"`
	Options  []string `json:"options" binding:"required"`
	Answer   string   `json:"answer" binding:"required"`
	ClassID  string   `json:"classId" binding:"required"`
	LessonID string   `json:"lessonId" binding:"required"`
}

// ClassifyResponse echoes the question enriched with the classification.
type ClassifyResponse struct {
	Question   string   `json:"question"`
	Options    []string `json:"options"`
	Answer     string   `json:"answer"`
	ClassID    string   `json:"classId"`
	LessonID   string   `json:"lessonId"`
	Tags       []string `json:"tags"`
	Difficulty string   `json:"difficulty"`
}

// QuizResultQuestion is the question half of one graded quiz answer, carrying
// its own tags and difficulty so the estimator needs no extra lookups.
type QuizResultQuestion struct {
	Question   string   `json:"question" binding:"required"`
	Tags       []string `json:"tags"`
	Difficulty string   `json:"difficulty"`
	Answer     string   `json:"answer"`
	ClassID    string   `json:"classId"`
	LessonID   string   `json:"lessonId"`
}

// QuizResult is one graded answer from a completed quiz attempt.
type QuizResult struct {
	Question      QuizResultQuestion `json:"question" binding:"required"`
	StudentAnswer string             `json:"studentAnswer"`
	IsCorrect     bool               `json:"isCorrect"`
}

type ConfidenceRequest struct {
	QuestionsData []QuizResult `json:"questionsData" binding:"required,min=1,dive"`
}

type TagConfidence struct {
	Tag        string  `json:"tag"`
	Confidence float64 `json:"confidence"`
}

// ConfidenceAnalysis is the estimator's output, whether it came from the LLM
// or from the local fallback heuristic.
type ConfidenceAnalysis struct {
	TagConfidence []TagConfidence `json:"tagConfidence"`
	Comments      string          `json:"comments"`
}

type ConfidenceResponse struct {
	ClassID       string          `json:"classId"`
	LessonID      string          `json:"lessonId"`
	TagConfidence []TagConfidence `json:"tagConfidence"`
}

type TranscriptRequest struct {
	AudioURL string `json:"audioUrl" binding:"required,url"`
}

type TranscriptResponse struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Text   string `json:"text,omitempty"`
}
