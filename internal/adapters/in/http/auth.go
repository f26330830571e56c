package http

import (
	"net/http"
	"strings"

	"loadboard/internal/core/domain/model/kernel"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Roles a token subject can carry. Admins may cancel orders that are
// already on transit; merchants and drivers act only on their own records.
const (
	RoleMerchant = "merchant"
	RoleDriver   = "driver"
	RoleAdmin    = "admin"
)

const identityContextKey = "identity"

// Identity is the authenticated caller extracted from a bearer token.
type Identity struct {
	SubjectID kernel.UUID
	Role      string
}

// IsAdmin reports whether the caller holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == RoleAdmin
}

// AuthMiddleware validates the Authorization bearer token and stores the
// caller's Identity in the request context.
func AuthMiddleware(secret []byte) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			identity, err := parseIdentity(ctx.Request().Header.Get(echo.HeaderAuthorization), secret)
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, ErrorResponse{
					Code:    http.StatusUnauthorized,
					Message: "Invalid or missing bearer token",
				})
			}

			ctx.Set(identityContextKey, identity)

			return next(ctx)
		}
	}
}

func parseIdentity(header string, secret []byte) (Identity, error) {
	rawToken, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return Identity{}, echo.ErrUnauthorized
	}

	claims := jwt.MapClaims{}

	token, err := jwt.ParseWithClaims(rawToken, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return Identity{}, err
	}

	if !token.Valid {
		return Identity{}, jwt.ErrTokenUnverifiable
	}

	subject, err := claims.GetSubject()
	if err != nil {
		return Identity{}, err
	}

	subjectID, err := kernel.UUIDFromString(subject)
	if err != nil {
		return Identity{}, err
	}

	role, _ := claims["role"].(string)
	if role != RoleMerchant && role != RoleDriver && role != RoleAdmin {
		return Identity{}, jwt.ErrTokenInvalidClaims
	}

	return Identity{SubjectID: subjectID, Role: role}, nil
}

func identityFrom(ctx echo.Context) Identity {
	identity, _ := ctx.Get(identityContextKey).(Identity)

	return identity
}
