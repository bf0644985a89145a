package handlers

import (
	"errors"
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

// AdminHandlers serves researcher maintenance operations
type AdminHandlers struct {
	logger       *logging.SafeLogger
	adminService *services.AdminService
}

// NewAdminHandlers creates a new admin handlers instance
func NewAdminHandlers(logger *logging.SafeLogger, adminService *services.AdminService) *AdminHandlers {
	return &AdminHandlers{
		logger:       logger,
		adminService: adminService,
	}
}

// Reset godoc
// @Summary Reseta os dados coletados
// @Description "emails" apaga o registro de emails utilizados; "all" apaga também as respostas.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body models.ResetRequest true "Escopo do reset"
// @Success 200 {object} models.ResultResponse
// @Failure 400 {object} models.ResultResponse "Tipo de reset inválido"
// @Failure 401 {object} ErrorResponse "Acesso não autorizado"
// @Failure 500 {object} models.ResultResponse "Erro ao resetar emails"
// @Router /admin/reset [post]
func (h *AdminHandlers) Reset(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "Reset")
	defer span.End()

	var req models.ResetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RecordErrorInSpan(span, err, map[string]interface{}{
			"error.type": "input_parsing",
		})
		c.JSON(http.StatusBadRequest, models.ResultResponse{Success: false, Message: models.MessageInvalidBody})
		return
	}

	span.SetAttributes(
		attribute.String("operation", "reset"),
		attribute.String("reset.type", req.ResetType),
	)

	if err := h.adminService.Reset(ctx, req.ResetType); err != nil {
		utils.RecordErrorInSpan(span, err, nil)
		switch {
		case errors.Is(err, models.ErrInvalidResetType):
			c.JSON(http.StatusBadRequest, models.ResultResponse{Success: false, Message: models.MessageInvalidResetType})
		case errors.Is(err, models.ErrResetEmailsFailed):
			c.JSON(http.StatusInternalServerError, models.ResultResponse{Success: false, Message: models.MessageEmailsResetError})
		case errors.Is(err, models.ErrResetResponsesFailed):
			c.JSON(http.StatusInternalServerError, models.ResultResponse{Success: false, Message: models.MessageResponsesResetErr})
		default:
			h.logger.Error("Reset failed", zap.String("reset_type", req.ResetType), zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.ResultResponse{Success: false, Message: models.MessageInternalError})
		}
		return
	}

	message := models.MessageEmailsReset
	if req.ResetType == models.ResetScopeAll {
		message = models.MessageAllReset
	}
	c.JSON(http.StatusOK, models.ResultResponse{Success: true, Message: message})
}
