// File: internal/handler/auth/login.go
package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"user-api/internal/api"
	"user-api/internal/database"
	"user-api/internal/service"
	"user-api/internal/store"
	"user-api/internal/worker"

	"github.com/labstack/echo/v4"
)

var (
	getUserByEmail   = store.GetUserByEmail
	authenticateUser = service.AuthenticateUser
	touchLastLogin   = store.TouchLastLogin
	timeNow          = time.Now
)

// LoginHandler 使用 Email/Password 驗證並回傳 JWT
// @Summary     登入使用者
// @Description 使用 Email 與 Password 進行驗證，回傳存取令牌與到期時間
// @Tags        auth
// @Accept      json
// @Produce     json
// @Success     200 {object} api.LoginResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     401 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users/login [post]
func LoginHandler(db database.DB, authSvc *service.Auth, wp worker.Pool) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.LoginRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		user, err := getUserByEmail(c.Request().Context(), db, strings.ToLower(req.Email))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to look up user"})
		}

		if err := authenticateUser(c.Request().Context(), *user, req.Password); err != nil {
			return c.JSON(http.StatusUnauthorized, api.ErrorResponse{Message: "invalid credentials"})
		}

		token, err := authSvc.IssueAccessToken(*user)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to issue token"})
		}

		// 最後登入時間離線更新，不阻塞登入請求
		userID := user.ID
		wp.Submit(func() {
			_ = touchLastLogin(context.Background(), db, userID)
		})

		return c.JSON(http.StatusOK, api.LoginResponse{
			AccessToken: token,
			ExpiresAt:   timeNow().Add(authSvc.TTL()),
		})
	}
}
