package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/architecture-survey/survey-api/internal/logging"
	"github.com/architecture-survey/survey-api/internal/models"
	"github.com/architecture-survey/survey-api/internal/observability"
	"github.com/architecture-survey/survey-api/internal/services"
	"github.com/architecture-survey/survey-api/internal/utils"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
)

// EmailHandlers serves the one-time email registry
type EmailHandlers struct {
	logger       *logging.SafeLogger
	emailService *services.EmailService
}

// NewEmailHandlers creates a new email handlers instance
func NewEmailHandlers(logger *logging.SafeLogger, emailService *services.EmailService) *EmailHandlers {
	return &EmailHandlers{
		logger:       logger,
		emailService: emailService,
	}
}

// CheckEmail godoc
// @Summary Verifica se o email já foi utilizado
// @Description Informa se o endereço já respondeu ao questionário. Emails fora do domínio configurado são reportados como disponíveis.
// @Tags emails
// @Accept json
// @Produce json
// @Param data body models.EmailRequest true "Email a verificar"
// @Success 200 {object} models.CheckEmailResponse
// @Failure 400 {object} ErrorResponse "Email é obrigatório"
// @Failure 500 {object} ErrorResponse "Erro ao verificar email"
// @Router /check-email [post]
func (h *EmailHandlers) CheckEmail(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "CheckEmail")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "check_email"),
		attribute.String("service", "email_registry"),
	)

	ctx, parseSpan := utils.TraceInputParsing(ctx, "EmailRequest")
	var req models.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RecordErrorInSpan(parseSpan, err, map[string]interface{}{
			"error.type": "input_parsing",
		})
		parseSpan.End()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: models.MessageInvalidBody})
		return
	}
	parseSpan.End()

	if !validEmailInput(ctx, req.Email) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: models.MessageEmailRequired})
		return
	}

	ctx, checkSpan := utils.TraceBusinessLogic(ctx, "check_email")
	result, err := h.emailService.CheckEmail(ctx, req.Email)
	if err != nil {
		utils.RecordErrorInSpan(checkSpan, err, nil)
		checkSpan.End()
		if errors.Is(err, models.ErrEmailRequired) {
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: models.MessageEmailRequired})
			return
		}
		h.logger.Error("CheckEmail failed",
			zap.String("email", observability.MaskEmail(req.Email)),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: models.MessageEmailCheckError})
		return
	}
	utils.AddSpanAttribute(checkSpan, "email.is_used", result.IsUsed)
	checkSpan.End()

	_, responseSpan := utils.TraceResponseSerialization(ctx, "check_email")
	c.JSON(http.StatusOK, result)
	responseSpan.End()

	h.logger.Debug("CheckEmail completed",
		zap.Bool("is_used", result.IsUsed),
		zap.Duration("total_duration", time.Since(startTime)))
}

// RegisterEmail godoc
// @Summary Registra o email como utilizado
// @Description Armazena um hash bcrypt do email normalizado. Um mesmo email só pode ser registrado uma vez.
// @Tags emails
// @Accept json
// @Produce json
// @Param data body models.EmailRequest true "Email a registrar"
// @Success 201 {object} models.ResultResponse "Email registrado com sucesso"
// @Failure 400 {object} ErrorResponse "Email é obrigatório"
// @Failure 409 {object} models.ResultResponse "Email já utilizado"
// @Failure 500 {object} models.ResultResponse "Erro ao registrar email"
// @Router /register-email [post]
func (h *EmailHandlers) RegisterEmail(c *gin.Context) {
	startTime := time.Now()
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "RegisterEmail")
	defer span.End()

	span.SetAttributes(
		attribute.String("operation", "register_email"),
		attribute.String("service", "email_registry"),
	)

	ctx, parseSpan := utils.TraceInputParsing(ctx, "EmailRequest")
	var req models.EmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RecordErrorInSpan(parseSpan, err, map[string]interface{}{
			"error.type": "input_parsing",
		})
		parseSpan.End()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: models.MessageInvalidBody})
		return
	}
	parseSpan.End()

	if !validEmailInput(ctx, req.Email) {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: models.MessageEmailRequired})
		return
	}

	ctx, registerSpan := utils.TraceBusinessLogic(ctx, "register_email")
	err := h.emailService.RegisterEmail(ctx, req.Email)
	if err != nil {
		utils.RecordErrorInSpan(registerSpan, err, nil)
		registerSpan.End()
		switch {
		case errors.Is(err, models.ErrEmailRequired):
			c.JSON(http.StatusBadRequest, ErrorResponse{Error: models.MessageEmailRequired})
		case errors.Is(err, models.ErrEmailDomainNotAllowed):
			c.JSON(http.StatusBadRequest, models.ResultResponse{Success: false, Message: models.MessageEmailDomain})
		case errors.Is(err, models.ErrEmailAlreadyUsed):
			c.JSON(http.StatusConflict, models.ResultResponse{Success: false, Message: models.MessageEmailDuplicate})
		default:
			h.logger.Error("RegisterEmail failed",
				zap.String("email", observability.MaskEmail(req.Email)),
				zap.Error(err))
			c.JSON(http.StatusInternalServerError, models.ResultResponse{Success: false, Message: models.MessageEmailRegError})
		}
		return
	}
	registerSpan.End()

	c.JSON(http.StatusCreated, models.ResultResponse{Success: true, Message: models.MessageEmailRegistered})

	h.logger.Debug("RegisterEmail completed", zap.Duration("total_duration", time.Since(startTime)))
}

// validEmailInput reports whether the request carries a non-blank email
func validEmailInput(ctx context.Context, email string) bool {
	_, span := utils.TraceInputValidation(ctx, "required", "email")
	defer span.End()

	present := strings.TrimSpace(email) != ""
	utils.AddSpanAttribute(span, "validation.passed", present)
	return present
}
