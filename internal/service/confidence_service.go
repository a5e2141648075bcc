package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/studybuddy/backend/config"
	"github.com/studybuddy/backend/internal/dto"
	"github.com/studybuddy/backend/internal/model"
	"google.golang.org/api/option"
)

// llmCallTimeout bounds every generation request; the upstream API specifies
// no deadline of its own.
const llmCallTimeout = 30 * time.Second

// confidenceSchema rejects any model reply that does not carry a usable
// tagConfidence list; rejection routes to the local fallback.
const confidenceSchema = `{
	"type": "object",
	"properties": {
		"tagConfidence": {
			"type": "array",
			"items": {
				"type": "object",
				"properties": {
					"tag": {"type": "string"},
					"confidence": {"type": "number", "minimum": 0, "maximum": 100}
				},
				"required": ["tag", "confidence"]
			}
		},
		"comments": {"type": "string"}
	},
	"required": ["tagConfidence"]
}`

// ConfidenceService estimates per-topic confidence from one quiz attempt. The
// external call is best effort: any API, parse or validation failure resolves
// to the deterministic local heuristic, never to a request error.
type ConfidenceService interface {
	Estimate(ctx context.Context, results []dto.QuizResult) *dto.ConfidenceAnalysis
}

type confidenceService struct {
	client *genai.GenerativeModel
	schema *jsonschema.Schema
}

func NewConfidenceService(cfg *config.Config) (ConfidenceService, error) {
	schema, err := compileConfidenceSchema()
	if err != nil {
		return nil, fmt.Errorf("failed to compile confidence schema: %w", err)
	}

	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Confidence estimates will use the local heuristic only.")
		return &confidenceService{schema: schema}, nil
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &confidenceService{client: client.GenerativeModel("gemini-1.5-flash"), schema: schema}, nil
}

func compileConfidenceSchema() (*jsonschema.Schema, error) {
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(confidenceSchema))
	if err != nil {
		return nil, err
	}
	c := jsonschema.NewCompiler()
	if err := c.AddResource("schema://confidence.json", doc); err != nil {
		return nil, err
	}
	return c.Compile("schema://confidence.json")
}

func (s *confidenceService) Estimate(ctx context.Context, results []dto.QuizResult) *dto.ConfidenceAnalysis {
	if s.client == nil {
		return fallbackAnalysis(results)
	}

	ctx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	defer cancel()

	prompt, err := buildConfidencePrompt(results)
	if err != nil {
		log.Error().Err(err).Msg("Failed to build confidence prompt, using fallback")
		return fallbackAnalysis(results)
	}

	resp, err := s.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during confidence analysis, using fallback")
		return fallbackAnalysis(results)
	}

	text := collectText(resp)
	if text == "" {
		log.Warn().Msg("Gemini returned no text content for confidence analysis, using fallback")
		return fallbackAnalysis(results)
	}

	analysis, err := s.parseAnalysis(text)
	if err != nil {
		log.Warn().Err(err).Str("rawResponse", text).Msg("Failed to parse confidence reply, using fallback")
		return fallbackAnalysis(results)
	}
	return analysis
}

// parseAnalysis extracts the first JSON object from the reply and accepts it
// only after schema validation passes.
func (s *confidenceService) parseAnalysis(text string) (*dto.ConfidenceAnalysis, error) {
	raw, ok := extractJSONObject(text)
	if !ok {
		return nil, fmt.Errorf("no JSON object found in response")
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, fmt.Errorf("invalid JSON in response: %w", err)
	}
	if err := s.schema.Validate(parsed); err != nil {
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	var analysis dto.ConfidenceAnalysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}
	if analysis.Comments == "" {
		analysis.Comments = "No feedback provided."
	}
	return &analysis, nil
}

type performanceEntry struct {
	Question      string   `json:"question"`
	Tags          []string `json:"tags"`
	Difficulty    string   `json:"difficulty"`
	IsCorrect     bool     `json:"isCorrect"`
	CorrectAnswer string   `json:"correctAnswer"`
	StudentAnswer string   `json:"studentAnswer"`
}

func buildConfidencePrompt(results []dto.QuizResult) (string, error) {
	entries := make([]performanceEntry, 0, len(results))
	for _, r := range results {
		difficulty := r.Question.Difficulty
		if difficulty == "" {
			difficulty = model.DifficultyMedium
		}
		tags := r.Question.Tags
		if tags == nil {
			tags = []string{}
		}
		entries = append(entries, performanceEntry{
			Question:      r.Question.Question,
			Tags:          tags,
			Difficulty:    difficulty,
			IsCorrect:     r.IsCorrect,
			CorrectAnswer: r.Question.Answer,
			StudentAnswer: r.StudentAnswer,
		})
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", err
	}

	var b strings.Builder
	b.WriteString("Analyze this student's quiz performance and provide confidence levels for each topic.\n\n")
	b.WriteString("Student Performance Data:\n")
	b.Write(data)
	b.WriteString("\n\nInstructions:\n")
	b.WriteString("1. Group similar tags together (e.g., \"sorting\", \"sort algorithms\" -> \"Sorting Algorithms\")\n")
	b.WriteString("2. For each topic group, calculate confidence level (0-100) based on:\n")
	b.WriteString("   - Correct vs incorrect answers for that topic\n")
	b.WriteString("   - Question difficulty (Easy questions worth less, Hard questions worth more)\n")
	b.WriteString("   - Overall performance pattern\n")
	b.WriteString("3. Confidence scale: 100=Perfect, 80+=Pass, <80=Need Improvement\n")
	b.WriteString("4. Provide encouraging but honest feedback comments\n\n")
	b.WriteString("Respond with a single JSON object in this exact format:\n")
	b.WriteString(`{"tagConfidence": [{"tag": "grouped_topic_name", "confidence": 0}], "comments": "Personalized feedback message for the student"}`)
	b.WriteString("\n")
	return b.String(), nil
}

func collectText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			b.WriteString(string(txt))
		}
	}
	return b.String()
}

func difficultyWeight(difficulty string) float64 {
	switch difficulty {
	case model.DifficultyEasy:
		return 1
	case model.DifficultyHard:
		return 3
	default:
		return 2
	}
}

// fallbackAnalysis is the deterministic local heuristic: per tag, the
// difficulty-weighted share of correct answers scaled to 0-100. It is the
// result whenever the LLM path errors out in any way.
func fallbackAnalysis(results []dto.QuizResult) *dto.ConfidenceAnalysis {
	totals := map[string]float64{}
	corrects := map[string]float64{}

	for _, r := range results {
		weight := difficultyWeight(r.Question.Difficulty)
		tags := r.Question.Tags
		if len(tags) == 0 {
			tags = []string{"general"}
		}
		for _, tag := range tags {
			totals[tag] += weight
			if r.IsCorrect {
				corrects[tag] += weight
			}
		}
	}

	tags := make([]string, 0, len(totals))
	for tag := range totals {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	passed := 0
	confidence := make([]dto.TagConfidence, 0, len(tags))
	for _, tag := range tags {
		value := math.Round(100 * corrects[tag] / totals[tag])
		if value >= model.CompletionThreshold {
			passed++
		}
		confidence = append(confidence, dto.TagConfidence{Tag: tag, Confidence: value})
	}

	return &dto.ConfidenceAnalysis{
		TagConfidence: confidence,
		Comments: fmt.Sprintf(
			"Automated analysis: you are at or above the pass mark in %d of %d topics. Keep practicing the rest.",
			passed, len(tags),
		),
	}
}
