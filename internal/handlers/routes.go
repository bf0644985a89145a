package handlers

import (
	"github.com/architecture-survey/survey-api/internal/middleware"
	"github.com/gin-gonic/gin"
)

// Set bundles the handlers mounted by RegisterRoutes
type Set struct {
	Email  *EmailHandlers
	Survey *SurveyHandlers
	Admin  *AdminHandlers
	Auth   *AuthHandlers
	Health *HealthHandlers
}

// Rate limited operations. Path aliases of an endpoint share its operation.
const (
	OperationCheckEmail      = "check_email"
	OperationRegisterEmail   = "register_email"
	OperationSubmitSurvey    = "submit_survey"
	OperationResearcherLogin = "researcher_login"
)

// RouteGuards select the middleware placed in front of groups of endpoints
type RouteGuards struct {
	// Limiter, when set, gives every client a separate budget per public operation.
	// Nil leaves the public endpoints unlimited.
	Limiter middleware.ClientLimiter
	// Researcher runs before the listing and reset endpoints
	Researcher []gin.HandlerFunc
}

// RegisterRoutes mounts every endpoint on r, including the legacy path aliases
func RegisterRoutes(r gin.IRoutes, h Set, guards RouteGuards) {
	researcher := chain(guards.Researcher)
	public := func(operation string, handler gin.HandlerFunc) []gin.HandlerFunc {
		if guards.Limiter == nil {
			return []gin.HandlerFunc{handler}
		}
		return []gin.HandlerFunc{middleware.RateLimit(guards.Limiter, operation), handler}
	}

	r.GET("/health", h.Health.HealthCheck)

	r.POST("/check-email", public(OperationCheckEmail, h.Email.CheckEmail)...)
	r.POST("/emails/check", public(OperationCheckEmail, h.Email.CheckEmail)...)
	r.POST("/register-email", public(OperationRegisterEmail, h.Email.RegisterEmail)...)
	r.POST("/emails/register", public(OperationRegisterEmail, h.Email.RegisterEmail)...)

	r.POST("/submit-survey", public(OperationSubmitSurvey, h.Survey.SubmitSurvey)...)
	r.POST("/survey/submit", public(OperationSubmitSurvey, h.Survey.SubmitSurvey)...)

	r.POST("/auth/researcher", public(OperationResearcherLogin, h.Auth.Login)...)

	r.GET("/survey/responses", researcher(h.Survey.ListResponses)...)
	r.GET("/get-responses", researcher(h.Survey.ListResponses)...)
	r.POST("/admin/reset", researcher(h.Admin.Reset)...)
	r.POST("/reset-data", researcher(h.Admin.Reset)...)
}

func chain(guards []gin.HandlerFunc) func(gin.HandlerFunc) []gin.HandlerFunc {
	return func(handler gin.HandlerFunc) []gin.HandlerFunc {
		handlers := make([]gin.HandlerFunc, 0, len(guards)+1)
		for _, guard := range guards {
			if guard != nil {
				handlers = append(handlers, guard)
			}
		}
		return append(handlers, handler)
	}
}
