// redact маскирует чувствительные данные перед записью в логи:
// e-mail сохраняет домен, токены заменяются коротким отпечатком,
// пароли не попадают в логи вовсе.
package redact

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Email маскирует e-mail: первые два символа локальной части + "***@домен".
// Строка без ровно одного '@' целиком заменяется на "***".
//
//	"alice@x.com" -> "al***@x.com"
//	"ab@x.com"    -> "***@x.com"
func Email(s string) string {
	if strings.Count(s, "@") != 1 {
		return "***"
	}

	i := strings.IndexByte(s, '@')
	local, domain := []rune(s[:i]), s[i+1:]

	if len(local) > 2 {
		return string(local[:2]) + "***@" + domain
	}

	return "***@" + domain
}

// Token возвращает отпечаток токена вида "tok:1a2b3c4d" (первые 4 байта SHA-256).
// Позволяет сопоставлять записи логов, не раскрывая сам токен.
func Token(tok string) string {
	if tok == "" {
		return "tok:-"
	}

	sum := sha256.Sum256([]byte(tok))

	return "tok:" + hex.EncodeToString(sum[:4])
}

// Password возвращает литерал-заглушку для пароля в логах.
func Password() string { return "[REDACTED_PASSWORD]" }
