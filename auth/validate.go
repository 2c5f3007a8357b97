package auth

import "regexp"

var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidPassword reports whether a password satisfies the policy: at least 8
// characters, letters and digits only, containing at least one letter and
// one digit.
func ValidPassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	var hasLetter, hasDigit bool
	for _, c := range password {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z':
			hasLetter = true
		case c >= '0' && c <= '9':
			hasDigit = true
		default:
			return false
		}
	}
	return hasLetter && hasDigit
}

// ValidEmail reports whether s looks like local@domain.tld. Intentionally a
// shallow check; deliverability is not our problem.
func ValidEmail(s string) bool {
	return emailRegex.MatchString(s)
}
