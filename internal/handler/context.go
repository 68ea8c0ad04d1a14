package handler

import (
	"errors"

	jwtv5 "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/auth"
	apperrors "github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/errors"
	"github.com/kevykibbz/beatrice-cherono-foundation-sub001/internal/model"
)

// currentClaims pulls the verified JWT claims the echo-jwt middleware left on
// the context. Returns nil when the request carried no valid token.
func currentClaims(c echo.Context) *auth.Claims {
	token, ok := c.Get("user").(*jwtv5.Token)
	if !ok {
		return nil
	}
	mc, ok := token.Claims.(jwtv5.MapClaims)
	if !ok {
		return nil
	}

	claims := &auth.Claims{}
	if s, ok := mc["user_id"].(string); ok {
		if id, err := uuid.Parse(s); err == nil {
			claims.UserID = id
		}
	}
	if s, ok := mc["email"].(string); ok {
		claims.Email = s
	}
	if s, ok := mc["role"].(string); ok {
		claims.Role = model.Role(s)
	}
	if claims.UserID == uuid.Nil {
		return nil
	}
	return claims
}

// resolveActor turns request claims into a fresh user record via the gate.
// Anonymous requests resolve to a nil actor; the services decide whether
// that is acceptable for the operation.
func resolveActor(c echo.Context, gate *auth.Gate) (*model.User, error) {
	claims := currentClaims(c)
	if claims == nil {
		return nil, nil
	}
	user, err := gate.ResolveUser(c.Request().Context(), claims)
	if err != nil {
		if errors.Is(err, apperrors.ErrUnauthenticated) {
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

// respondError maps a domain error onto the standard HTTP error envelope.
func respondError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}
