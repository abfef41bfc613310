package storage

import (
	"crypto/sha256"
	"encoding/base64"
)

// TokenKey возвращает ключ реестра для токена: base64url(SHA-256).
// Реестры хранят только хэш, сам токен не сохраняется.
func TokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))

	return base64.RawURLEncoding.EncodeToString(sum[:])
}
