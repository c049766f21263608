package transport

import (
	"context"
	"net/http"
	"strings"

	"github.com/tindaph/tindaph/application/auth"
	"github.com/tindaph/tindaph/constant"
	utilsContext "github.com/tindaph/tindaph/utils/context"
	"github.com/tindaph/tindaph/utils/errors"
)

// Authenticate validates the bearer token and attaches the caller's id and
// role to the request context. A missing token and an invalid token fail
// with distinct 401 messages.
func Authenticate(authApp auth.AuthApp) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" || !strings.HasPrefix(header, "Bearer ") {
				writeError(w, errors.SetCustomError(constant.ErrNoToken))
				return
			}
			token := strings.TrimPrefix(header, "Bearer ")

			claims, err := authApp.ValidateToken(token)
			if err != nil {
				writeError(w, errors.SetCustomError(constant.ErrInvalidToken))
				return
			}

			ctx := context.WithValue(r.Context(), constant.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, constant.RoleKey, claims.Role)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSeller gates a route to sellers and admins. It must run after
// Authenticate: without an identity on the context the request is rejected
// as unauthenticated, never allowed through.
func RequireSeller(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := utilsContext.GetRole(r.Context())
		if !ok {
			writeError(w, errors.SetCustomError(constant.ErrNoToken))
			return
		}
		if role != constant.RoleSeller && role != constant.RoleAdmin {
			writeError(w, errors.SetCustomError(constant.ErrSellerOnly))
			return
		}
		next.ServeHTTP(w, r)
	})
}
