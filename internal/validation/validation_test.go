package validation

import (
	"strings"
	"testing"

	"famguard/internal/errors"

	"github.com/stretchr/testify/assert"
)

func TestValidateUserID(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		wantErr bool
	}{
		{"valid", "user-123", false},
		{"valid with dots", "kakao.user.42", false},
		{"empty", "", true},
		{"too long", strings.Repeat("a", 65), true},
		{"max length ok", strings.Repeat("a", 64), false},
		{"newline", "user\n123", true},
		{"null byte", "user\x00123", true},
		{"tab", "user\t123", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUserID(tt.userID)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateUserName(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		wantErr  bool
	}{
		{"valid", "Alice", false},
		{"korean name", "김철수", false},
		{"empty", "", true},
		{"too many runes", strings.Repeat("가", 65), true},
		{"64 korean runes ok", strings.Repeat("가", 64), false},
		{"control character", "Ali\x07ce", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateUserName(tt.userName)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateGroupName(t *testing.T) {
	tests := []struct {
		name      string
		groupName string
		wantErr   bool
	}{
		{"valid", "우리가족", false},
		{"single rune", "家", false},
		{"8 runes ok", strings.Repeat("가", 8), false},
		{"too many runes", strings.Repeat("가", 9), true},
		{"empty", "", true},
		{"control character", "가족\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateGroupName(tt.groupName)
			if tt.wantErr {
				assert.Error(t, err)
				assert.Equal(t, errors.ErrCodeInvalidInput, errors.GetCode(err))
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateJoinCode(t *testing.T) {
	tests := []struct {
		name     string
		joinCode string
		wantErr  bool
	}{
		{"valid", "ABC123XYZ0", false},
		{"all digits", "0123456789", false},
		{"too short", "ABC123", true},
		{"too long", "ABC123XYZ01", true},
		{"lowercase", "abc123xyz0", true},
		{"punctuation", "ABC123XY-0", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateJoinCode(tt.joinCode)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateMessage(t *testing.T) {
	assert.NoError(t, ValidateMessage("내일 학식 뭐야?"))
	assert.Error(t, ValidateMessage(""))
	assert.Error(t, ValidateMessage(strings.Repeat("가", 4001)))
	assert.NoError(t, ValidateMessage(strings.Repeat("가", 4000)))
}

func TestValidateWarningCount(t *testing.T) {
	assert.NoError(t, ValidateWarningCount(0))
	assert.NoError(t, ValidateWarningCount(3))
	assert.Error(t, ValidateWarningCount(-1))
}
