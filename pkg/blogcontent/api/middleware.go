package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/jwtauth"
	"github.com/go-chi/render"
	"github.com/google/uuid"

	"github.com/Nainjain26/new-blogbackend/pkg/blogcontent"
)

// PrincipalFromRequest extracts the authenticated identity from the
// verified JWT claims attached by jwtauth.Verifier. Expected claims are
// user_id, name and role.
func PrincipalFromRequest(r *http.Request) (blogcontent.Principal, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return blogcontent.Principal{}, err
	}

	rawID, ok := claims["user_id"].(string)
	if !ok {
		return blogcontent.Principal{}, fmt.Errorf("token is missing the user_id claim")
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return blogcontent.Principal{}, fmt.Errorf("user_id claim is not a uuid: %w", err)
	}

	principal := blogcontent.Principal{ID: id}
	if name, ok := claims["name"].(string); ok {
		principal.Name = name
	}
	if role, ok := claims["role"].(string); ok {
		principal.Role = role
	}
	return principal, nil
}

// RequireAdmin rejects requests whose principal lacks the administrator
// role. It must run after jwtauth.Authenticator.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := PrincipalFromRequest(r)
		if err != nil {
			render.Status(r, http.StatusUnauthorized)
			render.JSON(w, r, ErrorResponse{Error: "invalid token"})
			return
		}
		if !principal.IsAdmin() {
			render.Status(r, http.StatusForbidden)
			render.JSON(w, r, ErrorResponse{Error: "admin access required"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
