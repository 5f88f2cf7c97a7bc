package validation

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"famguard/internal/constants"
	"famguard/internal/errors"
)

// ValidateUserID validates user ID format and length
func ValidateUserID(userID string) error {
	if userID == "" {
		return errors.New(errors.ErrCodeInvalidInput, "user ID cannot be empty")
	}

	if len(userID) > constants.MaxUserIDLength {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("user ID too long (max %d characters)", constants.MaxUserIDLength))
	}

	for _, char := range userID {
		if char == '\x00' || char == '\n' || char == '\r' || char == '\t' {
			return errors.New(errors.ErrCodeInvalidInput, "user ID contains invalid characters")
		}
	}

	return nil
}

// ValidateUserName validates a display name. Names are user-facing
// free text, only control characters and length are rejected.
func ValidateUserName(userName string) error {
	if userName == "" {
		return errors.New(errors.ErrCodeInvalidInput, "user name cannot be empty")
	}

	if utf8.RuneCountInString(userName) > constants.MaxUserNameLength {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("user name too long (max %d characters)", constants.MaxUserNameLength))
	}

	for _, char := range userName {
		if unicode.IsControl(char) {
			return errors.New(errors.ErrCodeInvalidInput, "user name contains invalid characters")
		}
	}

	return nil
}

// ValidateGroupName validates a group display name. Names are short
// user-facing labels, at most 8 characters.
func ValidateGroupName(groupName string) error {
	if groupName == "" {
		return errors.New(errors.ErrCodeInvalidInput, "group name cannot be empty")
	}

	if utf8.RuneCountInString(groupName) > constants.MaxGroupNameLength {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("group name too long (max %d characters)", constants.MaxGroupNameLength))
	}

	for _, char := range groupName {
		if unicode.IsControl(char) {
			return errors.New(errors.ErrCodeInvalidInput, "group name contains invalid characters")
		}
	}

	return nil
}

// ValidateJoinCode validates join code format: exactly 10 characters,
// uppercase letters and digits only.
func ValidateJoinCode(joinCode string) error {
	if len(joinCode) != constants.JoinCodeLength {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("join code must be exactly %d characters", constants.JoinCodeLength))
	}

	for _, char := range joinCode {
		if !unicode.IsUpper(char) && !unicode.IsDigit(char) {
			return errors.New(errors.ErrCodeInvalidInput,
				"join code must contain only uppercase letters and digits")
		}
	}

	return nil
}

// ValidateMessage validates a message submitted for fraud checking
func ValidateMessage(message string) error {
	if message == "" {
		return errors.New(errors.ErrCodeInvalidInput, "message cannot be empty")
	}

	if utf8.RuneCountInString(message) > constants.MaxMessageLength {
		return errors.New(errors.ErrCodeInvalidInput,
			fmt.Sprintf("message too long (max %d characters)", constants.MaxMessageLength))
	}

	return nil
}

// ValidateWarningCount validates a warning count update
func ValidateWarningCount(count int) error {
	if count < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "warning count cannot be negative")
	}
	return nil
}
