package models

// RiskLevel is the ordinal fraud risk category produced by the
// classifier.
type RiskLevel string

const (
	RiskLevelNormal  RiskLevel = "정상"
	RiskLevelCaution RiskLevel = "주의"
	RiskLevelDanger  RiskLevel = "위험"
)

// IsValid reports whether the level is one of the three known
// categories.
func (r RiskLevel) IsValid() bool {
	switch r {
	case RiskLevelNormal, RiskLevelCaution, RiskLevelDanger:
		return true
	}
	return false
}

// Recommended actions the classifier may return.
const (
	ActionConfirmBeforeSend = "전송 전 확인"
	ActionBlockSend         = "전송 중단 권고"
	ActionNone              = "없음"
)

// RiskAssessment is the structured output of a fraud classification.
type RiskAssessment struct {
	RiskLevel         RiskLevel `json:"risk_level"`
	Confidence        float64   `json:"confidence"`
	DetectedPatterns  []string  `json:"detected_patterns"`
	Explanation       string    `json:"explanation"`
	RecommendedAction string    `json:"recommended_action"`
}

// CheckOutcome is published by the fraud worker for a dequeued message.
// A failed classification is a real outcome, distinct from "no result
// yet": Failed is set when every classification attempt was exhausted
// without a parseable response.
type CheckOutcome struct {
	Assessment *RiskAssessment `json:"assessment,omitempty"`
	Failed     bool            `json:"failed"`
}
