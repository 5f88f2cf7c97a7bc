package ollama

import (
	"encoding/json"
	"fmt"
	"strings"

	"famguard/internal/models"
)

// assessmentPayload mirrors the expected JSON object. Pointer fields
// distinguish a missing field from a zero value.
type assessmentPayload struct {
	RiskLevel         *string   `json:"risk_level"`
	Confidence        *float64  `json:"confidence"`
	DetectedPatterns  *[]string `json:"detected_patterns"`
	Explanation       *string   `json:"explanation"`
	RecommendedAction *string   `json:"recommended_action"`
}

func (p *assessmentPayload) validate() error {
	if p.RiskLevel == nil || p.Confidence == nil || p.DetectedPatterns == nil ||
		p.Explanation == nil || p.RecommendedAction == nil {
		return fmt.Errorf("assessment object is missing required fields")
	}
	if !models.RiskLevel(*p.RiskLevel).IsValid() {
		return fmt.Errorf("unknown risk level %q", *p.RiskLevel)
	}
	if *p.Confidence < 0.0 || *p.Confidence > 1.0 {
		return fmt.Errorf("confidence %v out of range", *p.Confidence)
	}
	return nil
}

func (p *assessmentPayload) toModel() *models.RiskAssessment {
	return &models.RiskAssessment{
		RiskLevel:         models.RiskLevel(*p.RiskLevel),
		Confidence:        *p.Confidence,
		DetectedPatterns:  *p.DetectedPatterns,
		Explanation:       *p.Explanation,
		RecommendedAction: *p.RecommendedAction,
	}
}

// ExtractAssessment locates the first well-formed JSON object in the
// raw completion that carries exactly the expected assessment fields
// and decodes it. Models wrap the object in prose, markdown fences or
// stray tokens, so the scan tries every '{' until one decodes cleanly.
// Partially matching objects (missing fields, extra fields, invalid
// enum values) are skipped; if nothing matches the whole completion is
// a parse failure.
func ExtractAssessment(raw string) (*models.RiskAssessment, error) {
	for i := 0; i < len(raw); i++ {
		if raw[i] != '{' {
			continue
		}

		dec := json.NewDecoder(strings.NewReader(raw[i:]))
		dec.DisallowUnknownFields()

		var candidate assessmentPayload
		if err := dec.Decode(&candidate); err != nil {
			continue
		}
		if err := candidate.validate(); err != nil {
			continue
		}
		return candidate.toModel(), nil
	}
	return nil, fmt.Errorf("no valid assessment object in completion")
}
