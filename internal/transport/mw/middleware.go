package mw

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"vn.io.arda/taskmail/internal/session"
)

// JWTAuth validates the Bearer token issued by the platform (HS256, shared
// secret) and stores the acting user's id both in echo.Context and in the
// request context, where the application service reads it to exclude the
// actor from their own notifications.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}
			tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

			token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (any, error) {
				if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				log.Warn().Err(err).Msg("JWT verification failed")
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}

			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid claims")
			}

			userID := subjectID(claims)
			if userID <= 0 {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid subject")
			}

			c.Set("userID", userID)
			c.SetRequest(c.Request().WithContext(session.WithActor(c.Request().Context(), userID)))

			return next(c)
		}
	}
}

// subjectID reads the numeric user id from the "sub" claim. Tokens encode
// it either as a JSON number or a numeric string.
func subjectID(claims jwt.MapClaims) int64 {
	switch sub := claims["sub"].(type) {
	case string:
		id, err := strconv.ParseInt(sub, 10, 64)
		if err != nil {
			return 0
		}
		return id
	case float64:
		return int64(sub)
	default:
		return 0
	}
}
