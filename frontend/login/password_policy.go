package login

import (
	"errors"
	"unicode"
)

// MinPasswordLength is the shortest console password accepted.
const MinPasswordLength = 10

func ValidatePasswordPolicy(password string) error {
	if len([]rune(password)) < MinPasswordLength {
		return errors.New("password must be at least 10 characters")
	}

	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsSpace(r):
			return errors.New("password must not contain spaces")
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}

	if !hasLetter || !hasDigit {
		return errors.New("password must include a letter and a digit")
	}
	return nil
}
