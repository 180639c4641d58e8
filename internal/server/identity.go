package server

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"strings"
)

const minNicknameLength = 3

var errNicknameTooShort = errors.New("nickname must be at least 3 characters")

// hashNickname maps a nickname to its stable account identifier: trim,
// lowercase, sha256, lowercase hex. The digest is the only thing ever stored,
// so equal nicknames always land on the same account and the nickname itself
// stays out of the database.
func hashNickname(nickname string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(nickname))
	if len(normalized) < minNicknameLength {
		return "", errNicknameTooShort
	}
	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:]), nil
}

// isAccountHash reports whether value looks like a hashNickname output.
// Cookie values are attacker-controlled, so anything else is rejected before
// it reaches a query.
func isAccountHash(value string) bool {
	if len(value) != sha256.Size*2 {
		return false
	}
	for _, r := range value {
		if r >= '0' && r <= '9' {
			continue
		}
		if r >= 'a' && r <= 'f' {
			continue
		}
		return false
	}
	return true
}
