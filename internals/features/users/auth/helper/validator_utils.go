package helpers

import (
	"errors"
	"regexp"
	"strings"
)

func isAlphaNumeric(s string) bool {
	hasLetter := regexp.MustCompile(`[A-Za-z]`).MatchString(s)
	hasNumber := regexp.MustCompile(`[0-9]`).MatchString(s)
	return hasLetter && hasNumber
}

// Simple email regex check
func isValidEmail(email string) bool {
	re := regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
	return re.MatchString(email)
}

func ValidateRegisterInput(userName, email, password, securityAnswer string) error {
	userName = strings.TrimSpace(userName)
	email = strings.TrimSpace(email)

	if len(userName) < 3 || len(userName) > 50 {
		return errors.New("username must be 3-50 characters")
	}
	if !isValidEmail(email) {
		return errors.New("invalid email format")
	}
	if len(password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	if !isAlphaNumeric(password) {
		return errors.New("password must contain letters and numbers")
	}
	if strings.TrimSpace(securityAnswer) == "" {
		return errors.New("security answer is required")
	}
	return nil
}

func ValidateLoginInput(identifier, password string) error {
	if strings.TrimSpace(identifier) == "" {
		return errors.New("identifier is required")
	}
	if password == "" {
		return errors.New("password is required")
	}
	return nil
}

func ValidateResetPassword(email, newPassword string) error {
	if !isValidEmail(strings.TrimSpace(email)) {
		return errors.New("invalid email format")
	}
	if len(newPassword) < 8 {
		return errors.New("new password must be at least 8 characters")
	}
	if !isAlphaNumeric(newPassword) {
		return errors.New("new password must contain letters and numbers")
	}
	return nil
}

func ValidateSecurityAnswerInput(email, answer string) error {
	if !isValidEmail(strings.TrimSpace(email)) {
		return errors.New("invalid email format")
	}
	if strings.TrimSpace(answer) == "" {
		return errors.New("security answer is required")
	}
	return nil
}
