// File: internal/router/router.go
package router

import (
	"github.com/labstack/echo/v4"

	"user-api/internal/cache"
	"user-api/internal/database"
	"user-api/internal/handler"
	"user-api/internal/handler/auth"
	"user-api/internal/handler/users"
	"user-api/internal/middleware"
	"user-api/internal/model"
	"user-api/internal/service"
	"user-api/internal/worker"
)

// Setup 註冊所有路由與中介層
func Setup(e *echo.Echo, db database.DB, rdb cache.Cache, authSvc *service.Auth, wp worker.Pool) {
	api := e.Group("/api")

	requireAuth := middleware.RequireAuth(authSvc)
	requireAdmin := middleware.RequireRole(authSvc, model.RoleAdmin)

	// 健康檢查（需登入）
	api.GET("/ping", handler.PingHandler(db, rdb), requireAuth)

	apiUsers := api.Group("/users")

	// 登入與註冊不經過認證
	apiUsers.POST("/login", auth.LoginHandler(db, authSvc, wp))
	apiUsers.POST("", users.CreateUserHandler(db))

	// 其餘操作需持有效令牌；刪除限 admin 角色
	apiUsers.GET("", users.ListUsersHandler(db), requireAuth)
	apiUsers.GET("/:id", users.GetUserHandler(db), requireAuth)
	apiUsers.PUT("/:id", users.UpdateUserHandler(db), requireAuth)
	apiUsers.PATCH("/:id", users.PatchUserHandler(db), requireAuth)
	apiUsers.DELETE("/:id", users.DeleteUserHandler(db), requireAdmin)
}
