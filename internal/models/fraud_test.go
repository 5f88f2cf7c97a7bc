package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRiskLevelIsValid(t *testing.T) {
	assert.True(t, RiskLevelNormal.IsValid())
	assert.True(t, RiskLevelCaution.IsValid())
	assert.True(t, RiskLevelDanger.IsValid())

	assert.False(t, RiskLevel("").IsValid())
	assert.False(t, RiskLevel("high").IsValid())
	assert.False(t, RiskLevel("위험함").IsValid())
}

func TestRiskAssessmentJSON(t *testing.T) {
	raw := `{"risk_level": "주의", "confidence": 0.6, "detected_patterns": ["의심스러운 링크"], "explanation": "링크 주의.", "recommended_action": "전송 전 확인"}`

	var assessment RiskAssessment
	require.NoError(t, json.Unmarshal([]byte(raw), &assessment))

	assert.Equal(t, RiskLevelCaution, assessment.RiskLevel)
	assert.Equal(t, 0.6, assessment.Confidence)
	assert.Equal(t, ActionConfirmBeforeSend, assessment.RecommendedAction)
}

func TestCheckOutcomeJSONOmitsNilAssessment(t *testing.T) {
	data, err := json.Marshal(CheckOutcome{Failed: true})
	require.NoError(t, err)
	assert.JSONEq(t, `{"failed": true}`, string(data))
}

func TestConfigError(t *testing.T) {
	err := ConfigError{Message: "missing Ollama base URL"}
	assert.Equal(t, "missing Ollama base URL", err.Error())
}
