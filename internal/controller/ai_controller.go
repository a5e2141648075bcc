package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/studybuddy/backend/internal/dto"
	"github.com/studybuddy/backend/internal/service"
)

// AIController fronts the external text-generation and transcription
// collaborators. Classification and confidence never fail outward; the
// services degrade to local fallbacks instead.
type AIController struct {
	classifierSvc service.ClassifierService
	confidenceSvc service.ConfidenceService
	transcriptSvc service.TranscriptService
}

func NewAIController(classifierSvc service.ClassifierService, confidenceSvc service.ConfidenceService, transcriptSvc service.TranscriptService) *AIController {
	return &AIController{classifierSvc: classifierSvc, confidenceSvc: confidenceSvc, transcriptSvc: transcriptSvc}
}

// Classify godoc
// @Summary LLM-assisted tag and difficulty suggestion for a question
// @Tags ai
// @Accept json
// @Produce json
// @Param question body dto.ClassifyRequest true "Question to classify"
// @Success 200 {object} dto.ClassifyResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /classify [post]
func (ctrl *AIController) Classify(c *gin.Context) {
	var req dto.ClassifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{
			Message: "Missing required fields: question, options, answer, classId, lessonId",
		})
		return
	}
	c.JSON(http.StatusOK, ctrl.classifierSvc.Classify(c.Request.Context(), req))
}

// Confidence godoc
// @Summary LLM-assisted per-topic confidence estimate for a quiz attempt
// @Tags ai
// @Accept json
// @Produce json
// @Param attempt body dto.ConfidenceRequest true "Graded quiz answers"
// @Success 200 {object} dto.ConfidenceResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /confidence [post]
func (ctrl *AIController) Confidence(c *gin.Context) {
	var req dto.ConfidenceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	analysis := ctrl.confidenceSvc.Estimate(c.Request.Context(), req.QuestionsData)

	first := req.QuestionsData[0].Question
	c.JSON(http.StatusOK, dto.ConfidenceResponse{
		ClassID:       first.ClassID,
		LessonID:      first.LessonID,
		TagConfidence: analysis.TagConfidence,
	})
}

// TranscriptURL godoc
// @Summary Forward a media URL to the transcription service
// @Tags ai
// @Accept json
// @Produce json
// @Param media body dto.TranscriptRequest true "Media URL to transcribe"
// @Success 200 {object} dto.TranscriptResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /transcript-url [post]
func (ctrl *AIController) TranscriptURL(c *gin.Context) {
	var req dto.TranscriptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: err.Error()})
		return
	}

	transcript, err := ctrl.transcriptSvc.Transcribe(c.Request.Context(), req.AudioURL)
	if err != nil {
		log.Error().Err(err).Str("audioUrl", req.AudioURL).Msg("Transcription request failed")
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Transcription service unavailable"})
		return
	}
	c.JSON(http.StatusOK, transcript)
}
