package web

import (
	"context"
	"fmt"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
)

// authTokenHeader carries the bearer token issued by the identity provider.
const authTokenHeader = "X-Auth-Token"

type authClaimsKey struct{}

// AuthClaims holds the verified identity plus the tenant id resolved from the
// stored user → company mapping. CompanyID may be empty when the user has no
// company yet; handlers that require a tenant must check it.
type AuthClaims struct {
	UserID    string
	Email     string
	CompanyID string
}

// authFromContext returns the auth claims stored in ctx, or nil.
func authFromContext(ctx context.Context) *AuthClaims {
	v, _ := ctx.Value(authClaimsKey{}).(*AuthClaims)
	return v
}

// jwtClaims is the JWT payload struct used for parsing identity tokens.
type jwtClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// RequireAuth validates the identity token from the X-Auth-Token header,
// resolves the tenant from the stored mapping, and injects AuthClaims into
// the request context. The tenant id is always sourced here, server-side,
// never from request bodies or query parameters.
func (h *Handler) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(authTokenHeader)
		if raw == "" {
			writeError(w, r, "authentication required", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}

		claims := &jwtClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(h.jwtSecret), nil
		})
		if err != nil || !token.Valid || claims.Subject == "" {
			writeError(w, r, "invalid or expired token", "UNAUTHORIZED", http.StatusUnauthorized)
			return
		}

		companyID, err := h.svc.ResolveTenant(r.Context(), claims.Subject)
		if err != nil {
			writeError(w, r, err.Error(), "STORE_ERROR", http.StatusInternalServerError)
			return
		}

		ctx := context.WithValue(r.Context(), authClaimsKey{}, &AuthClaims{
			UserID:    claims.Subject,
			Email:     claims.Email,
			CompanyID: companyID,
		})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// requireTenant returns the caller's tenant id, writing a 403 when the
// authenticated user has no associated company.
func requireTenant(w http.ResponseWriter, r *http.Request) (string, bool) {
	claims := authFromContext(r.Context())
	if claims == nil || claims.CompanyID == "" {
		writeError(w, r, "no business associated with this account", "NO_TENANT", http.StatusForbidden)
		return "", false
	}
	return claims.CompanyID, true
}
