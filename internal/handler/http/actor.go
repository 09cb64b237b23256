package http

import (
	"errors"
	"net/http"

	"github.com/brightline-ops/cleanops-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

var errMissingIdentity = errors.New("missing user identity in token")

// actorFromRequest resolves the authenticated caller from the JWT claims.
// Services receive the result as an Actor value and never read claims
// themselves.
func actorFromRequest(r *http.Request) (userID string, isManager bool, err error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false, err
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", false, errMissingIdentity
	}

	roleStr, _ := claims["role"].(string)
	return userID, user.IsManagerOrAbove(user.Role(roleStr)), nil
}
