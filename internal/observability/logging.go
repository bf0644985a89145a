package observability

import (
	"strings"

	"github.com/architecture-survey/survey-api/internal/logging"
)

// Logger returns the global safe logger instance
func Logger() *logging.SafeLogger {
	return logging.Logger
}

// MaskEmail masks a participant email for logging, keeping the first character of
// the local part and the domain: "aluno@uni.edu.br" -> "a****@uni.edu.br".
func MaskEmail(email string) string {
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return "****"
	}
	return email[:1] + "****" + email[at:]
}
