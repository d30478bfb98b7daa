// Package validation holds the field-level rules shared by registration,
// profile editing and appointment booking. Every check returns nil on success
// or an error whose message names the violated rule.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/careconnect/careconnect-api/internal/constants"
)

var (
	emailPattern = regexp.MustCompile(`^[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}$`)
	phonePattern = regexp.MustCompile(`^[0-9 \-+()]{7,20}$`)

	// passwordSymbols is the fixed punctuation set a password must draw from.
	passwordSymbols = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"
)

func Email(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("email is required")
	}
	if !emailPattern.MatchString(s) {
		return errors.New("email must have the form local@domain.tld")
	}
	return nil
}

func Phone(s string) error {
	if strings.TrimSpace(s) == "" {
		return errors.New("phone number is required")
	}
	if !phonePattern.MatchString(s) {
		return errors.New("phone number may only contain digits, spaces, hyphens, plus and parentheses (7-20 characters)")
	}
	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}
	if digits < 7 || digits > 15 {
		return errors.New("phone number must contain between 7 and 15 digits")
	}
	return nil
}

func Password(s string) error {
	if len(s) < constants.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", constants.MinPasswordLength)
	}
	var upper, lower, digit, symbol bool
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= 'a' && r <= 'z':
			lower = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(passwordSymbols, r):
			symbol = true
		}
	}
	switch {
	case !upper:
		return errors.New("password must contain an uppercase letter")
	case !lower:
		return errors.New("password must contain a lowercase letter")
	case !digit:
		return errors.New("password must contain a digit")
	case !symbol:
		return errors.New("password must contain a symbol")
	}
	return nil
}

func HourlyRate(v float64) error {
	if v <= 0 {
		return errors.New("hourly rate must be a positive number")
	}
	return nil
}

func WorkHours(v float64) error {
	if v <= 0 {
		return errors.New("work hours must be a positive number")
	}
	if v > 24 {
		return errors.New("work hours cannot exceed 24")
	}
	return nil
}

// AppointmentDate requires d to fall strictly after today: tomorrow is the
// earliest bookable date.
func AppointmentDate(d time.Time) error {
	y, m, day := time.Now().Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, d.Location())
	dy, dm, dd := d.Date()
	d = time.Date(dy, dm, dd, 0, 0, 0, 0, d.Location())
	if !d.After(today) {
		return errors.New("appointment date must be in the future")
	}
	return nil
}

// AppointmentTime accepts 24-hour HH:MM clock values.
func AppointmentTime(s string) error {
	if _, err := time.Parse("15:04", s); err != nil {
		return errors.New("appointment time must use the HH:MM format")
	}
	return nil
}
