package service

import (
	"testing"

	"famguard/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFraudResultStoreTakeConsumes(t *testing.T) {
	s := NewFraudResultStore()

	assessment := &models.RiskAssessment{
		RiskLevel:  models.RiskLevelDanger,
		Confidence: 0.9,
	}
	s.Insert("suspicious text", models.CheckOutcome{Assessment: assessment})
	assert.Equal(t, 1, s.Len())

	outcome, ok := s.Take("suspicious text")
	require.True(t, ok)
	assert.False(t, outcome.Failed)
	assert.Equal(t, assessment, outcome.Assessment)

	// Second take finds nothing
	_, ok = s.Take("suspicious text")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestFraudResultStoreTakeMissing(t *testing.T) {
	s := NewFraudResultStore()

	_, ok := s.Take("never inserted")
	assert.False(t, ok)
}

func TestFraudResultStoreFailedOutcome(t *testing.T) {
	s := NewFraudResultStore()

	s.Insert("broken", models.CheckOutcome{Failed: true})

	outcome, ok := s.Take("broken")
	require.True(t, ok)
	assert.True(t, outcome.Failed)
	assert.Nil(t, outcome.Assessment)
}

func TestFraudResultStoreInsertOverwrites(t *testing.T) {
	s := NewFraudResultStore()

	s.Insert("text", models.CheckOutcome{Failed: true})
	s.Insert("text", models.CheckOutcome{Assessment: &models.RiskAssessment{
		RiskLevel:  models.RiskLevelNormal,
		Confidence: 0.99,
	}})

	assert.Equal(t, 1, s.Len())

	outcome, ok := s.Take("text")
	require.True(t, ok)
	assert.False(t, outcome.Failed)
	assert.Equal(t, models.RiskLevelNormal, outcome.Assessment.RiskLevel)
}
