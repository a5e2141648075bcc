package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studybuddy/backend/internal/dto"
)

func quizResult(tags []string, difficulty string, correct bool) dto.QuizResult {
	return dto.QuizResult{
		Question: dto.QuizResultQuestion{
			Question:   "q",
			Tags:       tags,
			Difficulty: difficulty,
			Answer:     "a",
		},
		IsCorrect:     correct,
		StudentAnswer: "a",
	}
}

func TestFallbackAnalysis_WeightsByDifficulty(t *testing.T) {
	// One Hard correct (weight 3) and one Easy wrong (weight 1) on the same
	// tag: 3/4 = 75.
	analysis := fallbackAnalysis([]dto.QuizResult{
		quizResult([]string{"loops"}, "Hard", true),
		quizResult([]string{"loops"}, "Easy", false),
	})

	require.Len(t, analysis.TagConfidence, 1)
	assert.Equal(t, "loops", analysis.TagConfidence[0].Tag)
	assert.Equal(t, 75.0, analysis.TagConfidence[0].Confidence)
}

func TestFallbackAnalysis_SortsTagsAndDefaultsUntagged(t *testing.T) {
	analysis := fallbackAnalysis([]dto.QuizResult{
		quizResult([]string{"zeta"}, "Medium", true),
		quizResult([]string{"alpha"}, "Medium", false),
		quizResult(nil, "Medium", true),
	})

	require.Len(t, analysis.TagConfidence, 3)
	assert.Equal(t, "alpha", analysis.TagConfidence[0].Tag)
	assert.Equal(t, 0.0, analysis.TagConfidence[0].Confidence)
	assert.Equal(t, "general", analysis.TagConfidence[1].Tag)
	assert.Equal(t, 100.0, analysis.TagConfidence[1].Confidence)
	assert.Equal(t, "zeta", analysis.TagConfidence[2].Tag)
	assert.NotEmpty(t, analysis.Comments)
}

func TestFallbackAnalysis_IsDeterministic(t *testing.T) {
	results := []dto.QuizResult{
		quizResult([]string{"b", "a"}, "Hard", true),
		quizResult([]string{"a"}, "Easy", false),
	}
	first := fallbackAnalysis(results)
	second := fallbackAnalysis(results)
	assert.Equal(t, first, second)
}

func TestEstimate_WithoutClientUsesFallback(t *testing.T) {
	schema, err := compileConfidenceSchema()
	require.NoError(t, err)
	svc := &confidenceService{schema: schema}

	results := []dto.QuizResult{quizResult([]string{"loops"}, "Medium", true)}
	assert.Equal(t, fallbackAnalysis(results), svc.Estimate(context.Background(), results))
}

func TestParseAnalysis_AcceptsProseWrappedObject(t *testing.T) {
	schema, err := compileConfidenceSchema()
	require.NoError(t, err)
	svc := &confidenceService{schema: schema}

	analysis, err := svc.parseAnalysis(
		"Here is my analysis:\n" +
			`{"tagConfidence": [{"tag": "loops", "confidence": 85}], "comments": "Nice work"}` +
			"\nHope that helps!",
	)
	require.NoError(t, err)
	require.Len(t, analysis.TagConfidence, 1)
	assert.Equal(t, "loops", analysis.TagConfidence[0].Tag)
	assert.Equal(t, 85.0, analysis.TagConfidence[0].Confidence)
	assert.Equal(t, "Nice work", analysis.Comments)
}

func TestParseAnalysis_DefaultsMissingComments(t *testing.T) {
	schema, err := compileConfidenceSchema()
	require.NoError(t, err)
	svc := &confidenceService{schema: schema}

	analysis, err := svc.parseAnalysis(`{"tagConfidence": []}`)
	require.NoError(t, err)
	assert.Equal(t, "No feedback provided.", analysis.Comments)
}

func TestParseAnalysis_RejectsSchemaViolations(t *testing.T) {
	schema, err := compileConfidenceSchema()
	require.NoError(t, err)
	svc := &confidenceService{schema: schema}

	for name, reply := range map[string]string{
		"no object":             "I could not analyze this.",
		"missing tagConfidence": `{"comments": "only comments"}`,
		"confidence not number": `{"tagConfidence": [{"tag": "loops", "confidence": "high"}]}`,
		"confidence over 100":   `{"tagConfidence": [{"tag": "loops", "confidence": 140}]}`,
		"item missing tag":      `{"tagConfidence": [{"confidence": 50}]}`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.parseAnalysis(reply)
			assert.Error(t, err)
		})
	}
}

func TestDifficultyWeight(t *testing.T) {
	assert.Equal(t, 1.0, difficultyWeight("Easy"))
	assert.Equal(t, 2.0, difficultyWeight("Medium"))
	assert.Equal(t, 3.0, difficultyWeight("Hard"))
	assert.Equal(t, 2.0, difficultyWeight("unknown"))
}
