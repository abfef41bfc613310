package middleware

import (
	"context"
	"net/http"
	"strings"

	apierrors "github.com/pribylovaa/go-resource-market/internal/http/errors"
	"github.com/pribylovaa/go-resource-market/internal/pkg/log"
	"github.com/pribylovaa/go-resource-market/internal/token"
)

type claimsKey struct{}

// AccessVerifier проверяет access-токен без обращения к реестру.
type AccessVerifier interface {
	ValidateAccessToken(ctx context.Context, accessToken string) (*token.Claims, error)
}

// RequireAuth защищает маршрут access-токеном из заголовка
// "Authorization: Bearer <token>":
//   - заголовка нет или он не Bearer -> 401 с описанием;
//   - токен недействителен или истёк -> 403;
//   - иначе claims кладутся в контекст (см. ClaimsFromContext).
func RequireAuth(v AccessVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				apierrors.Write(w, r, http.StatusUnauthorized, "unauthenticated", "access token required")
				return
			}

			claims, err := v.ValidateAccessToken(r.Context(), raw)
			if err != nil {
				apierrors.Write(w, r, http.StatusForbidden, "forbidden", "invalid or expired access token")
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			ctx = log.With(ctx, "user_id", claims.ID)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext возвращает claims, положенные RequireAuth.
func ClaimsFromContext(ctx context.Context) (*token.Claims, bool) {
	c, ok := ctx.Value(claimsKey{}).(*token.Claims)

	return c, ok && c != nil
}

func bearerToken(header string) (string, bool) {
	const prefix = "bearer "

	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}

	tok := strings.TrimSpace(header[len(prefix):])

	return tok, tok != ""
}
