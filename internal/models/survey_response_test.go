package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponses_ValueScan(t *testing.T) {
	original := Responses{"q1": "4", "q2": "1"}

	value, err := original.Value()
	require.NoError(t, err)

	var scanned Responses
	require.NoError(t, scanned.Scan([]byte(value.(string))))
	assert.Equal(t, original, scanned)
}

func TestResponses_NilValue(t *testing.T) {
	var r Responses
	value, err := r.Value()
	require.NoError(t, err)
	assert.Nil(t, value)

	var scanned Responses = Responses{"x": "1"}
	require.NoError(t, scanned.Scan(nil))
	assert.Nil(t, scanned)
}

func TestResponses_ScanUnsupportedType(t *testing.T) {
	var r Responses
	err := r.Scan(42)
	assert.Error(t, err)
}

func TestSurveyResponse_DisplayPeriod(t *testing.T) {
	tests := []struct {
		name   string
		period string
		want   string
	}{
		{name: "empty period", period: "", want: DefaultPeriod},
		{name: "period set", period: "3º período", want: "3º período"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SurveyResponse{Period: tt.period}.DisplayPeriod()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "used_emails", UsedEmail{}.TableName())
	assert.Equal(t, "survey_responses", SurveyResponse{}.TableName())
}

func TestResponses_NumericAndStringValues(t *testing.T) {
	var decoded Responses
	require.NoError(t, json.Unmarshal([]byte(`{"q1":2,"q2":"4"}`), &decoded))

	value, err := decoded.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"q1":2,"q2":"4"}`, value.(string))

	var scanned Responses
	require.NoError(t, scanned.Scan(value))
	assert.Equal(t, float64(2), scanned["q1"])
	assert.Equal(t, "4", scanned["q2"])
}
