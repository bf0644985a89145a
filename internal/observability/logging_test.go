package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogger(t *testing.T) {
	logger := Logger()
	require.NotNil(t, logger)

	// Should be safe to use
	logger.Info("test message")
}

func TestMaskEmail(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		expected string
	}{
		{
			name:     "institutional email",
			email:    "aluno@uni.edu.br",
			expected: "a****@uni.edu.br",
		},
		{
			name:     "single character local part",
			email:    "x@y.com",
			expected: "x****@y.com",
		},
		{
			name:     "missing at sign",
			email:    "not-an-email",
			expected: "****",
		},
		{
			name:     "empty local part",
			email:    "@uni.edu.br",
			expected: "****",
		},
		{
			name:     "empty domain",
			email:    "aluno@",
			expected: "****",
		},
		{
			name:     "empty",
			email:    "",
			expected: "****",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, MaskEmail(tt.email))
		})
	}
}

func TestMaskEmail_HidesLocalPart(t *testing.T) {
	masked := MaskEmail("joao.silva@uni.edu.br")

	assert.NotContains(t, masked, "joao.silva")
	assert.Contains(t, masked, "@uni.edu.br")
}
