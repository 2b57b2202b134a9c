package user

import "strings"

// NormalizeNickname trims, collapses internal whitespace runs to one space and lowercases.
// It is idempotent and yields the uniqueness key of an identity.
func NormalizeNickname(nickname string) string {
	return strings.ToLower(collapseSpaces(nickname))
}

// ValidateNickname rejects nicknames that are empty once whitespace is collapsed.
func ValidateNickname(nickname string) error {
	if collapseSpaces(nickname) == "" {
		return ErrInvalidNickname
	}
	return nil
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
