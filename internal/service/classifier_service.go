package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"github.com/studybuddy/backend/config"
	"github.com/studybuddy/backend/internal/dto"
	"github.com/studybuddy/backend/internal/model"
	"google.golang.org/api/option"
)

var (
	topicsPattern     = regexp.MustCompile(`Topics:\s*\[?(.*?)\]?(?:\n|$)`)
	difficultyPattern = regexp.MustCompile(`Difficulty:\s*(Easy|Medium|Hard)`)
)

// ClassifierService suggests topic tags and a difficulty for a question via
// the text-generation API, degrading to a generic classification when the
// call or the parse fails.
type ClassifierService interface {
	Classify(ctx context.Context, req dto.ClassifyRequest) *dto.ClassifyResponse
}

type classifierService struct {
	client *genai.GenerativeModel
}

func NewClassifierService(cfg *config.Config) (ClassifierService, error) {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Question classification will use the fallback only.")
		return &classifierService{}, nil
	}
	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	return &classifierService{client: client.GenerativeModel("gemini-1.5-flash")}, nil
}

func (s *classifierService) Classify(ctx context.Context, req dto.ClassifyRequest) *dto.ClassifyResponse {
	resp := &dto.ClassifyResponse{
		Question: req.Question,
		Options:  req.Options,
		Answer:   req.Answer,
		ClassID:  req.ClassID,
		LessonID: req.LessonID,
	}
	resp.Tags, resp.Difficulty = s.classify(ctx, req)
	return resp
}

func (s *classifierService) classify(ctx context.Context, req dto.ClassifyRequest) ([]string, string) {
	if s.client == nil {
		return fallbackClassification()
	}

	ctx, cancel := context.WithTimeout(ctx, llmCallTimeout)
	defer cancel()

	reply, err := s.client.GenerateContent(ctx, genai.Text(buildClassifyPrompt(req)))
	if err != nil {
		log.Error().Err(err).Msg("Gemini API error during classification, using fallback")
		return fallbackClassification()
	}

	text := collectText(reply)
	if text == "" {
		log.Warn().Msg("Gemini returned no text content for classification, using fallback")
		return fallbackClassification()
	}

	tags, difficulty := parseClassification(text)
	if len(tags) == 0 {
		log.Warn().Str("rawResponse", text).Msg("No topics parsed from classification reply, using fallback")
		return fallbackClassification()
	}
	return tags, difficulty
}

func buildClassifyPrompt(req dto.ClassifyRequest) string {
	var b strings.Builder
	b.WriteString("Analyze this multiple choice question and provide:\n")
	b.WriteString("1. Topic tags (4 relevant subject/topic keywords)\n")
	b.WriteString("2. Difficulty level (Easy, Medium, Hard)\n\n")
	fmt.Fprintf(&b, "Question: %q\n", req.Question)
	fmt.Fprintf(&b, "Options: %s\n", strings.Join(req.Options, ", "))
	fmt.Fprintf(&b, "Answer: %s\n\n", req.Answer)
	b.WriteString("Respond in this exact format:\n")
	b.WriteString("Topics: [topic1, topic2, topic3, topic4]\n")
	b.WriteString("Difficulty: [Easy/Medium/Hard]\n")
	return b.String()
}

// parseClassification pulls the Topics and Difficulty lines out of the reply.
// Difficulty defaults to Medium when the line is missing or malformed.
func parseClassification(text string) ([]string, string) {
	var tags []string
	if m := topicsPattern.FindStringSubmatch(text); m != nil {
		for _, topic := range strings.Split(m[1], ",") {
			topic = strings.Trim(strings.TrimSpace(topic), `'"`)
			if topic != "" {
				tags = append(tags, topic)
			}
		}
	}

	difficulty := model.DifficultyMedium
	if m := difficultyPattern.FindStringSubmatch(text); m != nil {
		difficulty = m[1]
	}
	return tags, difficulty
}

func fallbackClassification() ([]string, string) {
	return []string{"general"}, model.DifficultyMedium
}
