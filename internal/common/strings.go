package common

import (
	"strings"
	"unicode/utf8"
)

// SplitName splits a full name into first and last on the first run of
// whitespace. The last name is empty for single-word names.
func SplitName(name string) (string, string) {
	parts := strings.Fields(strings.TrimSpace(name))
	if len(parts) == 0 {
		return "", ""
	}
	first := parts[0]
	rest := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(name), first))
	return first, rest
}

// HasMinLength counts runes, not bytes.
func HasMinLength(value string, min int) bool {
	return utf8.RuneCountInString(value) >= min
}

// IsCommand matches a typed command case-insensitively, ignoring padding.
func IsCommand(input string, command string) bool {
	return strings.EqualFold(strings.TrimSpace(input), command)
}
