package security

import (
	"crypto/sha512"
	"encoding/hex"
)

// HashPassword returns the lowercase hex SHA-512 of salt+input. The scheme
// matches what is already stored in the users table, so it cannot change
// without a migration.
func HashPassword(salt, input string) string {
	sum := sha512.Sum512([]byte(salt + input))
	return hex.EncodeToString(sum[:])
}
