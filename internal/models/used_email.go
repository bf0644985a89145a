package models

import "time"

// UsedEmail marks an address as already consumed. Email holds the bcrypt hash of the
// normalized address, never the plaintext.
type UsedEmail struct {
	ID        string    `bson:"_id" json:"id" gorm:"column:id;type:uuid;primaryKey"`
	Email     string    `bson:"email" json:"email" gorm:"column:email;not null;uniqueIndex"`
	CreatedAt time.Time `bson:"created_at" json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

// TableName keeps the table name shared with the Supabase schema
func (UsedEmail) TableName() string {
	return "used_emails"
}

// EmailRequest is the body of the check and register endpoints
type EmailRequest struct {
	Email string `json:"email" example:"aluno@universidade.edu.br"`
}

// CheckEmailResponse reports whether an address has already been used
type CheckEmailResponse struct {
	IsUsed  bool   `json:"isUsed"`
	Message string `json:"message"`
}

// Messages returned by the email endpoints
const (
	MessageEmailUsed       = "Email já utilizado"
	MessageEmailAvailable  = "Email disponível"
	MessageEmailRegistered = "Email registrado com sucesso"
	MessageEmailDuplicate  = "Este email já foi utilizado para responder ao questionário."
	MessageEmailRequired   = "Email é obrigatório"
	MessageEmailDomain     = "Email não pertence ao domínio permitido"
	MessageEmailCheckError = "Erro ao verificar email"
	MessageEmailRegError   = "Erro ao registrar email"
)
