package middleware

import (
	"strings"

	"authgate/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

const (
	principalKey = "principal"
	bearerPrefix = "bearer "
)

// AuthMiddleware gates routes behind a valid session token.
type AuthMiddleware struct {
	uc usecase.AuthUsecase
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(uc usecase.AuthUsecase) *AuthMiddleware {
	return &AuthMiddleware{uc: uc}
}

// Authenticate validates the token carried in the Authorization header and stores
// the decoded principal on the echo context. Rejections are returned as errors and
// rendered by the HTTP error handler.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token := tokenFromHeader(c.Request().Header.Get(echo.HeaderAuthorization))

		principal, err := m.uc.AccessProtectedResource(c.Request().Context(), token)
		if err != nil {
			return errors.WithStack(err)
		}

		c.Set(principalKey, principal)

		return next(c)
	}
}

// PrincipalFrom returns the principal stored by Authenticate.
func PrincipalFrom(c echo.Context) (*usecase.Principal, bool) {
	principal, ok := c.Get(principalKey).(*usecase.Principal)

	return principal, ok && principal != nil
}

// tokenFromHeader accepts both the raw token and the "Bearer <token>" form.
func tokenFromHeader(header string) string {
	header = strings.TrimSpace(header)
	if len(header) >= len(bearerPrefix) && strings.EqualFold(header[:len(bearerPrefix)], bearerPrefix) {
		return strings.TrimSpace(header[len(bearerPrefix):])
	}

	return header
}
