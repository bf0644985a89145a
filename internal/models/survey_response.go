package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultPeriod is shown for responses stored without a period
const DefaultPeriod = "Não informado"

// Responses maps a question id to the Likert value chosen. Values are kept as
// sent: clients post numbers (2) or strings ("2") and both are stored unchanged.
type Responses map[string]interface{}

// Value stores Responses as a JSON document (jsonb column)
func (r Responses) Value() (driver.Value, error) {
	if r == nil {
		return nil, nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan reads a JSON document back into Responses
func (r *Responses) Scan(value interface{}) error {
	if value == nil {
		*r = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported type for Responses: %T", value)
	}
	return json.Unmarshal(raw, r)
}

// SurveyResponse is one completed questionnaire
type SurveyResponse struct {
	ID        string    `bson:"_id" json:"id" gorm:"column:id;type:uuid;primaryKey"`
	Period    string    `bson:"period" json:"period" gorm:"column:period;not null"`
	Responses Responses `bson:"responses" json:"responses" gorm:"column:responses;type:jsonb;not null"`
	CreatedAt time.Time `bson:"created_at" json:"created_at" gorm:"column:created_at;index"`
}

// TableName keeps the table name shared with the Supabase schema
func (SurveyResponse) TableName() string {
	return "survey_responses"
}

// DisplayPeriod returns the period or DefaultPeriod when it was left empty
func (s SurveyResponse) DisplayPeriod() string {
	if s.Period == "" {
		return DefaultPeriod
	}
	return s.Period
}

// SubmitSurveyRequest is the body of the survey submission endpoint
type SubmitSurveyRequest struct {
	Period    string    `json:"period" example:"5º período"`
	Responses Responses `json:"responses"`
}

// SurveyResponsesList is returned to researchers
type SurveyResponsesList struct {
	Responses  []SurveyResponse `json:"responses"`
	EmailCount int64            `json:"emailCount"`
}

// Messages returned by the survey endpoints
const (
	MessageSurveySaved          = "Resposta salva com sucesso"
	MessageSurveyFieldsRequired = "Período e respostas são obrigatórios"
	MessageSurveySaveErrorFmt   = "Erro ao salvar resposta: %s"
	MessageSurveyListError      = "Erro ao buscar respostas"
	MessageEmailCountError      = "Erro ao contar emails"
)
