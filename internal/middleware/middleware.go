package middleware

import (
	"net/http"
	"strings"

	"user-api/internal/model"
	"user-api/internal/service"

	"github.com/labstack/echo/v4"
)

const ContextUserKey = "user"

// extractClaims 從 Authorization 標頭取出並驗證 Bearer 令牌。
// 缺少或格式錯誤的標頭回 401；令牌驗證失敗（過期、竄改）回 403。
func extractClaims(c echo.Context, auth *service.Auth) (*service.CustomClaims, error) {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "missing token")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header format")
	}
	claims, err := auth.VerifyAccessToken(parts[1])
	if err != nil {
		return nil, echo.NewHTTPError(http.StatusForbidden, "invalid or expired token")
	}
	return claims, nil
}

func RequireAuth(auth *service.Auth) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, err := extractClaims(c, auth)
			if err != nil {
				return err
			}
			c.Set(ContextUserKey, claims)
			return next(c)
		}
	}
}

// RequireRole 先通過 RequireAuth，再以字串完全比對檢查角色，無階層關係
func RequireRole(auth *service.Auth, role model.Role) echo.MiddlewareFunc {
	requireAuth := RequireAuth(auth)
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return requireAuth(func(c echo.Context) error {
			claims := c.Get(ContextUserKey).(*service.CustomClaims)
			if claims.Role != role {
				return echo.NewHTTPError(http.StatusForbidden, "insufficient permissions")
			}
			return next(c)
		})
	}
}
