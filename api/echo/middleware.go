package echoapi

import "github.com/labstack/echo/v4"

// TeacherMiddleware only lets authenticated teachers through.
func TeacherMiddleware() echo.MiddlewareFunc {
	return roleMiddleware(func(claims Claims) bool { return claims.IsTeacher })
}

// StudentMiddleware only lets authenticated students through.
func StudentMiddleware() echo.MiddlewareFunc {
	return roleMiddleware(func(claims Claims) bool { return claims.IsStudent })
}

func roleMiddleware(allowed func(Claims) bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			claims, err := getContextClaims(ctx)
			if err != nil {
				return err
			}
			if allowed(claims) {
				return next(ctx)
			}
			return ErrHttpForbidden
		}
	}
}
