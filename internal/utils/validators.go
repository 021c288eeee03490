package utils

import (
	"regexp"
	"strings"
)

// Legacy input validators. These guard the domain handlers in addition to
// the struct-tag validation on the request DTOs.

const (
	DefaultCountryCode = "254"
	PhoneNumberLength  = 12

	nameMinLength = 3
	nameMaxLength = 50
)

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9-.]+$`)
	namePattern  = regexp.MustCompile(`^[a-zA-Z\s]+$`)
	phonePattern = regexp.MustCompile(`^[0-9]{9,15}$`)
)

// ValidateEmail checks that the email has a sane local part, one '@' and a
// dotted domain.
func ValidateEmail(email string) bool {
	if len(email) <= 4 {
		return false
	}
	email = strings.ToLower(strings.ReplaceAll(email, " ", ""))
	return emailPattern.MatchString(email)
}

// ValidateName accepts alphabetic names between 3 and 50 characters.
func ValidateName(name string) bool {
	name = strings.TrimSpace(name)
	if !namePattern.MatchString(name) {
		return false
	}
	return len(name) >= nameMinLength && len(name) <= nameMaxLength
}

// NormalizePhoneNumber strips separators and enforces the configured country
// code, returning "" when the number cannot be normalized.
func NormalizePhoneNumber(phone, countryCode string, totalCount int) string {
	if countryCode == "" {
		countryCode = DefaultCountryCode
	}
	if totalCount == 0 {
		totalCount = PhoneNumberLength
	}
	replacer := strings.NewReplacer(" ", "", "(", "", ")", "", "-", "")
	phone = replacer.Replace(phone)
	phone = strings.TrimPrefix(phone, "+")

	switch {
	case len(phone) == totalCount:
		return phone
	case len(phone)+len(countryCode) == totalCount:
		return countryCode + phone
	case strings.HasPrefix(phone, "0") && len(phone)-1+len(countryCode) == totalCount:
		return countryCode + phone[1:]
	default:
		if len(countryCode) > 0 && len(phone)+len(countryCode) > totalCount {
			overlap := len(phone) + len(countryCode) - totalCount
			if overlap <= len(phone) {
				return countryCode + phone[overlap:]
			}
		}
		return ""
	}
}

// ValidatePhoneNumber checks the number after normalization.
func ValidatePhoneNumber(phone string) bool {
	return phonePattern.MatchString(NormalizePhoneNumber(phone, "", 0))
}

// ValidatePassword requires at least 8 characters with a digit, an upper and
// a lower case letter, one allowed special character and no illegal ones.
func ValidatePassword(password string) bool {
	if len(password) < 8 {
		return false
	}
	const allowed = `@#!$&/+-_*`
	const illegal = `\~=[]{}^%`
	var hasDigit, hasUpper, hasLower, hasSpecial bool
	for _, c := range password {
		switch {
		case c >= '0' && c <= '9':
			hasDigit = true
		case c >= 'A' && c <= 'Z':
			hasUpper = true
		case c >= 'a' && c <= 'z':
			hasLower = true
		}
		if strings.ContainsRune(allowed, c) {
			hasSpecial = true
		}
		if strings.ContainsRune(illegal, c) {
			return false
		}
	}
	return hasDigit && hasUpper && hasLower && hasSpecial
}
