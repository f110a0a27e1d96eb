package service

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	// usernameRe covers shape; consecutive separators are checked apart since
	// RE2 has no look-ahead.
	usernameRe = regexp.MustCompile(`^[a-zA-Z0-9][a-zA-Z0-9._]{1,18}[a-zA-Z0-9]$`)
)

const passwordSpecials = `!@#$%^&*(),.?":{}|<>`

// OTPLength is the number of characters in an emailed code.
const OTPLength = 6

func ValidEmail(s string) bool {
	return emailRe.MatchString(s)
}

// ValidUsername accepts 3 to 20 letters, digits, dots and underscores that
// start and end alphanumeric with no two separators in a row.
func ValidUsername(s string) bool {
	if !usernameRe.MatchString(s) {
		return false
	}
	for _, pair := range []string{"..", "__", "._", "_."} {
		if strings.Contains(s, pair) {
			return false
		}
	}
	return true
}

// ValidPassword requires at least 8 characters with an upper, a lower, a
// digit and a special character.
func ValidPassword(s string) bool {
	if utf8.RuneCountInString(s) < 8 {
		return false
	}
	var upper, lower, digit, special bool
	for _, r := range s {
		switch {
		case unicode.IsUpper(r) && r < unicode.MaxASCII:
			upper = true
		case unicode.IsLower(r) && r < unicode.MaxASCII:
			lower = true
		case unicode.IsDigit(r) && r < unicode.MaxASCII:
			digit = true
		case strings.ContainsRune(passwordSpecials, r):
			special = true
		}
	}
	return upper && lower && digit && special
}

func validOTP(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) == OTPLength
}
