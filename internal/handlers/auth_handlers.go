package handlers

import (
	"errors"
	"net/http"

	"github.com/architecture-survey/survey-api/internal/logging"
	"github.com/architecture-survey/survey-api/internal/models"
	"github.com/architecture-survey/survey-api/internal/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandlers issues researcher session tokens
type AuthHandlers struct {
	logger      *logging.SafeLogger
	authService *services.AuthService
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(logger *logging.SafeLogger, authService *services.AuthService) *AuthHandlers {
	return &AuthHandlers{
		logger:      logger,
		authService: authService,
	}
}

// Login godoc
// @Summary Autentica o pesquisador
// @Description Troca a senha do pesquisador por um token de sessão assinado.
// @Tags auth
// @Accept json
// @Produce json
// @Param data body models.ResearcherLoginRequest true "Senha do pesquisador"
// @Success 200 {object} models.ResearcherTokenResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse "Credenciais inválidas"
// @Router /auth/researcher [post]
func (h *AuthHandlers) Login(c *gin.Context) {
	var req models.ResearcherLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: models.MessageInvalidBody})
		return
	}

	token, err := h.authService.Login(req.Password)
	if err != nil {
		if errors.Is(err, models.ErrInvalidCredentials) {
			h.logger.Warn("researcher login rejected", zap.String("ip", c.ClientIP()))
			c.JSON(http.StatusUnauthorized, ErrorResponse{Error: models.MessageInvalidCredentials})
			return
		}
		h.logger.Error("researcher login failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: models.MessageInternalError})
		return
	}

	h.logger.Info("researcher session issued", zap.Time("expires_at", token.ExpiresAt))
	c.JSON(http.StatusOK, token)
}
