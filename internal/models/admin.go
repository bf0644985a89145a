package models

import "time"

// Reset scopes accepted by the bulk reset endpoint
const (
	ResetScopeEmails = "emails"
	ResetScopeAll    = "all"
)

// ResetRequest is the body of the bulk reset endpoint
type ResetRequest struct {
	ResetType string `json:"resetType" example:"emails"`
}

// ResearcherLoginRequest exchanges the researcher password for a session token
type ResearcherLoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// ResearcherTokenResponse carries a signed researcher session token
type ResearcherTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ResultResponse is the {success, message} envelope used by mutating endpoints
type ResultResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Messages returned by the admin and auth endpoints
const (
	MessageEmailsReset        = "Emails resetados com sucesso"
	MessageAllReset           = "Dados resetados com sucesso"
	MessageInvalidResetType   = "Tipo de reset inválido"
	MessageEmailsResetError   = "Erro ao resetar emails"
	MessageResponsesResetErr  = "Erro ao resetar respostas"
	MessageInternalError      = "Erro interno do servidor"
	MessageInvalidBody        = "Corpo da requisição inválido"
	MessageInvalidCredentials = "Credenciais inválidas"
	MessageUnauthorized       = "Acesso não autorizado"
)
