// Package validator checks raw credential fields before anything touches
// the database. Error messages double as form field error codes.
package validator

import (
	"fmt"
	"regexp"
)

const maxEmailLength = 64

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9]([a-zA-Z0-9._+-]*[a-zA-Z0-9])?@[a-zA-Z0-9]([a-zA-Z0-9.-]*[a-zA-Z0-9])?\.[a-zA-Z]{2,}$`)

func Email(email string) error {
	if len(email) > maxEmailLength {
		return fmt.Errorf("long_email")
	}

	if !emailRegex.MatchString(email) {
		return fmt.Errorf("bad_format")
	}

	return nil
}

var (
	lowercase = regexp.MustCompile(`[a-z]`)
	uppercase = regexp.MustCompile(`[A-Z]`)
	number    = regexp.MustCompile(`\d`)
)

func Password(password string) error {
	length := len(password)
	if length < 6 {
		return fmt.Errorf("short_password")
	} else if length > 32 {
		return fmt.Errorf("long_password")
	}

	if !lowercase.MatchString(password) {
		return fmt.Errorf("no_lowercase")
	}
	if !uppercase.MatchString(password) {
		return fmt.Errorf("no_uppercase")
	}
	if !number.MatchString(password) {
		return fmt.Errorf("no_number")
	}
	return nil
}

const maxUsernameLength = 32

var usernameRegex = regexp.MustCompile(`^[a-z0-9._]+$`)

func Username(username string) error {
	if len(username) < 2 {
		return fmt.Errorf("short_username")
	}
	if len(username) > maxUsernameLength {
		return fmt.Errorf("long_username")
	}
	if !usernameRegex.MatchString(username) {
		return fmt.Errorf("bad_format")
	}
	return nil
}
