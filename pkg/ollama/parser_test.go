package ollama

import (
	"testing"

	"famguard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractAssessment(t *testing.T) {
	raw := `{"risk_level": "위험", "confidence": 0.95, "detected_patterns": ["긴급한 입금 요구"], "explanation": "계좌이체 요구는 사기일 가능성이 높습니다.", "recommended_action": "전송 중단 권고"}`

	assessment, err := ExtractAssessment(raw)
	require.NoError(t, err)
	assert.Equal(t, models.RiskLevelDanger, assessment.RiskLevel)
	assert.Equal(t, 0.95, assessment.Confidence)
	assert.Equal(t, []string{"긴급한 입금 요구"}, assessment.DetectedPatterns)
	assert.Equal(t, models.ActionBlockSend, assessment.RecommendedAction)
}

func TestExtractAssessmentSurroundedByProse(t *testing.T) {
	raw := "Sure! Here is the analysis:\n```json\n" +
		`{"risk_level": "정상", "confidence": 0.99, "detected_patterns": [], "explanation": "일상적인 질문입니다.", "recommended_action": "없음"}` +
		"\n```\nLet me know if you need anything else."

	assessment, err := ExtractAssessment(raw)
	require.NoError(t, err)
	assert.Equal(t, models.RiskLevelNormal, assessment.RiskLevel)
	assert.Empty(t, assessment.DetectedPatterns)
}

func TestExtractAssessmentSkipsNonMatchingObjects(t *testing.T) {
	raw := `{"note": "this is not an assessment"} and then ` +
		`{"risk_level": "주의", "confidence": 0.6, "detected_patterns": ["의심스러운 링크"], "explanation": "링크 주의.", "recommended_action": "전송 전 확인"}`

	assessment, err := ExtractAssessment(raw)
	require.NoError(t, err)
	assert.Equal(t, models.RiskLevelCaution, assessment.RiskLevel)
}

func TestExtractAssessmentErrors(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"empty completion", ""},
		{"no JSON at all", "the message looks fine to me"},
		{"missing field", `{"risk_level": "정상", "confidence": 0.9, "detected_patterns": [], "explanation": "ok"}`},
		{"unknown risk level", `{"risk_level": "높음", "confidence": 0.9, "detected_patterns": [], "explanation": "?", "recommended_action": "없음"}`},
		{"confidence out of range", `{"risk_level": "정상", "confidence": 1.5, "detected_patterns": [], "explanation": "?", "recommended_action": "없음"}`},
		{"truncated object", `{"risk_level": "정상", "confidence": 0.9,`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractAssessment(tt.raw)
			assert.Error(t, err)
		})
	}
}

func TestBuildPrompt(t *testing.T) {
	prompt := BuildPrompt("내일 학식 뭐야?")

	assert.Contains(t, prompt, "내일 학식 뭐야?")
	assert.NotContains(t, prompt, messagePlaceholder)
	assert.Contains(t, prompt, "risk_level")
}
