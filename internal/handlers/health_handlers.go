package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/architecture-survey/survey-api/internal/logging"
	"github.com/architecture-survey/survey-api/internal/utils"
	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"
)

const healthCheckTimeout = 3 * time.Second

// Pinger is a dependency that can report its reachability
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandlers reports the reachability of the store and cache
type HealthHandlers struct {
	logger *logging.SafeLogger
	checks map[string]Pinger
}

// NewHealthHandlers creates a health handler over the named dependencies
func NewHealthHandlers(logger *logging.SafeLogger, checks map[string]Pinger) *HealthHandlers {
	return &HealthHandlers{logger: logger, checks: checks}
}

// HealthCheck godoc
// @Summary Verificação de saúde
// @Description Verifica a saúde da API e suas dependências (store e cache). Retorna status detalhado para cada serviço.
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse "Todos os serviços estão saudáveis"
// @Failure 503 {object} HealthResponse "Um ou mais serviços estão indisponíveis"
// @Router /health [get]
func (h *HealthHandlers) HealthCheck(c *gin.Context) {
	ctx, span := otel.Tracer("").Start(c.Request.Context(), "HealthCheck")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	health := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Checks:    make(map[string]string, len(h.checks)),
	}

	for name, dep := range h.checks {
		depCtx, depSpan, done := utils.TraceOperation(ctx, "health."+name, map[string]interface{}{
			"service.name":      name,
			"service.operation": "ping",
		})
		if err := dep.Ping(depCtx); err != nil {
			utils.RecordErrorInSpan(depSpan, err, nil)
			health.Status = "unhealthy"
			health.Checks[name] = "unhealthy"
			h.logger.Warn("health check failed", zap.String("dependency", name), zap.Error(err))
		} else {
			health.Checks[name] = "healthy"
		}
		done()
	}

	utils.AddSpanAttribute(span, "health.status", health.Status)

	if health.Status == "healthy" {
		c.JSON(http.StatusOK, health)
		return
	}
	c.JSON(http.StatusServiceUnavailable, health)
}
