// Package owner defines the canonical identifier that scopes every record
// to one account.
package owner

import (
	"errors"
	"strings"
)

const maxLen = 128

var ErrInvalid = errors.New("invalid owner id")

// ID is a normalized owner identifier. The zero value means "no owner".
type ID string

// Parse trims and lower-cases raw and checks the allowed alphabet.
func Parse(raw string) (ID, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" || len(s) > maxLen {
		return "", ErrInvalid
	}
	for _, r := range s {
		if !allowed(r) {
			return "", ErrInvalid
		}
	}
	return ID(s), nil
}

// MustParse is for fixtures and constants.
func MustParse(raw string) ID {
	id, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return id
}

func (id ID) String() string { return string(id) }

func (id ID) IsZero() bool { return id == "" }

func allowed(r rune) bool {
	switch {
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return true
	case r == '.', r == '_', r == '-', r == '@', r == ':':
		return true
	}
	return false
}
