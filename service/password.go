package service

import "unicode/utf8"

const MinPasswordLength = 12

// MaxPasswordBytes is the longest input bcrypt hashes.
const MaxPasswordBytes = 72

// CheckPasswordPolicy returns a *PasswordPolicyError naming each rule
// password breaks, or nil. Character classes are ASCII.
func CheckPasswordPolicy(password string) error {
	var hasDigit, hasLower, hasUpper, hasSymbol bool
	for _, r := range password {
		switch {
		case r >= '0' && r <= '9':
			hasDigit = true
		case r >= 'a' && r <= 'z':
			hasLower = true
		case r >= 'A' && r <= 'Z':
			hasUpper = true
		default:
			hasSymbol = true
		}
	}

	var problems []string
	if utf8.RuneCountInString(password) < MinPasswordLength {
		problems = append(problems, "Passwords must be at least 12 characters.")
	}
	if len(password) > MaxPasswordBytes {
		problems = append(problems, "Passwords must be at most 72 bytes.")
	}
	if !hasSymbol {
		problems = append(problems, "Passwords must have at least one non alphanumeric character.")
	}
	if !hasDigit {
		problems = append(problems, "Passwords must have at least one digit ('0'-'9').")
	}
	if !hasLower {
		problems = append(problems, "Passwords must have at least one lowercase ('a'-'z').")
	}
	if !hasUpper {
		problems = append(problems, "Passwords must have at least one uppercase ('A'-'Z').")
	}
	if len(problems) > 0 {
		return &PasswordPolicyError{Problems: problems}
	}
	return nil
}
