package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/architecture-survey/survey-api/internal/logging"
	"github.com/architecture-survey/survey-api/internal/models"
	"github.com/architecture-survey/survey-api/internal/services"
	"github.com/architecture-survey/survey-api/internal/utils"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// SurveyHandlers serves questionnaire submission and the researcher listing
type SurveyHandlers struct {
	logger        *logging.SafeLogger
	surveyService *services.SurveyService
}

// NewSurveyHandlers creates a new survey handlers instance
func NewSurveyHandlers(logger *logging.SafeLogger, surveyService *services.SurveyService) *SurveyHandlers {
	return &SurveyHandlers{
		logger:        logger,
		surveyService: surveyService,
	}
}

// SubmitSurvey godoc
// @Summary Envia uma resposta do questionário
// @Description Armazena o período do estudante e o mapa de respostas (id da questão para valor Likert). As respostas não são validadas.
// @Tags survey
// @Accept json
// @Produce json
// @Param data body models.SubmitSurveyRequest true "Resposta do questionário"
// @Success 200 {object} models.ResultResponse "Resposta salva com sucesso"
// @Failure 400 {object} models.ResultResponse "Período e respostas são obrigatórios"
// @Failure 500 {object} models.ResultResponse "Erro ao salvar resposta"
// @Router /submit-survey [post]
func (h *SurveyHandlers) SubmitSurvey(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "SubmitSurvey")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "submit_survey"),
		attribute.String("service", "survey"),
	)

	var req models.SubmitSurveyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{
			"error.type": "input_parsing",
		})
		c.JSON(http.StatusBadRequest, models.ResultResponse{Success: false, Message: models.MessageInvalidBody})
		return
	}

	saved, err := h.surveyService.Submit(ctx, req.Period, req.Responses)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		if errors.Is(err, models.ErrSurveyFieldsRequired) {
			c.JSON(http.StatusBadRequest, models.ResultResponse{Success: false, Message: models.MessageSurveyFieldsRequired})
			return
		}
		c.JSON(http.StatusInternalServerError, models.ResultResponse{
			Success: false,
			Message: fmt.Sprintf(models.MessageSurveySaveErrorFmt, err.Error()),
		})
		return
	}

	span.SetAttributes(attribute.String("survey.id", saved.ID))
	c.JSON(http.StatusOK, models.ResultResponse{Success: true, Message: models.MessageSurveySaved})
}

// ListResponses godoc
// @Summary Lista as respostas do questionário
// @Description Retorna todas as respostas, da mais recente para a mais antiga, e o número de emails utilizados.
// @Tags survey
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.SurveyResponsesList
// @Failure 401 {object} ErrorResponse "Acesso não autorizado"
// @Failure 500 {object} ErrorResponse "Erro ao buscar respostas"
// @Router /survey/responses [get]
func (h *SurveyHandlers) ListResponses(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "ListResponses")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "list_responses"),
		attribute.String("service", "survey"),
	)

	list, err := h.surveyService.List(ctx)
	if err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		h.logger.Error("ListResponses failed", zap.Error(err))
		switch {
		case errors.Is(err, models.ErrListResponsesFailed):
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: models.MessageSurveyListError})
		case errors.Is(err, models.ErrCountEmailsFailed):
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: models.MessageEmailCountError})
		default:
			c.JSON(http.StatusInternalServerError, ErrorResponse{Error: models.MessageInternalError})
		}
		return
	}

	span.SetAttributes(
		attribute.Int("survey.responses", len(list.Responses)),
		attribute.Int64("survey.email_count", list.EmailCount),
	)
	c.JSON(http.StatusOK, list)
}
