package users

import (
	"errors"
	"math"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"time"

	"user-api/internal/api"
	"user-api/internal/database"
	"user-api/internal/model"
	"user-api/internal/service"
	"user-api/internal/store"

	"github.com/labstack/echo/v4"
)

var (
	hashPassword     = service.HashPassword
	validatePassword = service.ValidatePassword
	createUser       = store.CreateUser
	getUserByID      = store.GetUserByID
	updateUser       = store.UpdateUser
	patchUser        = store.PatchUser
	deleteUser       = store.DeleteUser
	listUsers        = store.ListUsers
)

// dateLayouts 查詢參數 date 接受的格式
var dateLayouts = []string{time.RFC3339, "2006-01-02"}

func toUserResponse(u *model.User) api.UserResponse {
	return api.UserResponse{
		ID:          u.ID,
		Name:        u.Name,
		Email:       u.Email,
		Role:        string(u.Role),
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
		LastLoginAt: u.LastLoginAt,
	}
}

func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(email)
	if _, err := mail.ParseAddress(email); err != nil {
		return "", err
	}
	return email, nil
}

// @Summary     List users
// @Description 依條件查詢使用者並分頁回傳 (name 子字串、email 完全比對、date 建立時間下界)
// @Tags        users
// @Produce     json
// @Param       name  query string false "名稱子字串 (不分大小寫)"
// @Param       email query string false "Email 完全比對"
// @Param       date  query string false "建立時間下界 (RFC3339 或 2006-01-02)"
// @Param       page  query int    false "頁碼 (預設 1)"
// @Param       limit query int    false "每頁筆數 (預設 10，無上限)"
// @Param       sort  query string false "排序欄位 (預設 name)"
// @Success     200   {object} api.ListUsersResponse
// @Failure     400   {object} api.ErrorResponse
// @Failure     401   {object} api.ErrorResponse
// @Failure     403   {object} api.ErrorResponse
// @Failure     500   {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users [get]
func ListUsersHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.ListUsersRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid query parameters"})
		}
		if req.Page < 1 {
			req.Page = 1
		}
		if req.Limit < 1 {
			req.Limit = 10
		}

		filter := store.UserFilter{
			Name:  req.Name,
			Email: strings.ToLower(req.Email),
		}
		if req.Date != "" {
			var parsed bool
			for _, layout := range dateLayouts {
				if ts, err := time.Parse(layout, req.Date); err == nil {
					filter.CreatedAfter = &ts
					parsed = true
					break
				}
			}
			if !parsed {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid date"})
			}
		}

		items, total, err := listUsers(c.Request().Context(), db, store.ListParams{
			Filter: filter,
			Page:   req.Page,
			Limit:  req.Limit,
			Sort:   req.Sort,
		})
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to list users"})
		}

		data := make([]api.UserResponse, 0, len(items))
		for i := range items {
			data = append(data, toUserResponse(&items[i]))
		}
		return c.JSON(http.StatusOK, api.ListUsersResponse{
			Total:      total,
			Page:       req.Page,
			Limit:      req.Limit,
			TotalPages: int(math.Ceil(float64(total) / float64(req.Limit))),
			Data:       data,
		})
	}
}

// @Summary     Create a new user
// @Description 接收使用者資料並建立新帳號 (Email 會自動轉小寫，role 預設 user)
// @Tags        users
// @Accept      json
// @Produce     json
// @Success     201 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Router      /users [post]
func CreateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		var req api.CreateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		if err := validatePassword(req.Password); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		email, err := normalizeEmail(req.Email)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
		}

		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
		}

		role := model.Role(req.Role)
		if role == "" {
			role = model.RoleUser
		}

		user, err := createUser(c.Request().Context(), db, &model.User{
			Name:         req.Name,
			Email:        email,
			PasswordHash: hash,
			Role:         role,
		})
		if err != nil {
			if errors.Is(err, store.ErrDuplicateEmail) {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "email already in use"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to create user"})
		}

		return c.JSON(http.StatusCreated, toUserResponse(user))
	}
}

// @Summary     Get a user by ID
// @Description 透過 ID 查詢並回傳使用者詳細資料
// @Tags        users
// @Produce     json
// @Param       id   path      int  true  "使用者 ID"
// @Success     200  {object}  api.UserResponse
// @Failure     400  {object}  api.ErrorResponse
// @Failure     404  {object}  api.ErrorResponse
// @Failure     500  {object}  api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id} [get]
func GetUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		user, err := getUserByID(c.Request().Context(), db, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			}
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to get user"})
		}
		return c.JSON(http.StatusOK, toUserResponse(user))
	}
}

// @Summary     Update a user by ID
// @Description 全量更新使用者資料，套用與建立相同的驗證規則並重新哈希密碼
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id path int true "使用者 ID"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id} [put]
func UpdateUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		var req api.UpdateUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}
		if err := validatePassword(req.Password); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		email, err := normalizeEmail(req.Email)
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
		}

		// 密碼在請求中出現才重新哈希；PUT 一律要求密碼，故總是重哈希
		hash, err := hashPassword(req.Password)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
		}

		role := model.Role(req.Role)
		if role == "" {
			role = model.RoleUser
		}

		user, err := updateUser(c.Request().Context(), db, &model.User{
			ID:           id,
			Name:         req.Name,
			Email:        email,
			PasswordHash: hash,
			Role:         role,
		})
		if err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			case errors.Is(err, store.ErrDuplicateEmail):
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "email already in use"})
			default:
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to update user"})
			}
		}

		return c.JSON(http.StatusOK, toUserResponse(user))
	}
}

// @Summary     Partially update a user by ID
// @Description 僅更新請求中出現的欄位；空請求為 no-op，回傳未變更的使用者
// @Tags        users
// @Accept      json
// @Produce     json
// @Param       id path int true "使用者 ID"
// @Success     200 {object} api.UserResponse
// @Failure     400 {object} api.ErrorResponse
// @Failure     404 {object} api.ErrorResponse
// @Failure     500 {object} api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id} [patch]
func PatchUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}

		var req api.PatchUserRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid request body"})
		}
		if err := c.Validate(&req); err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
		}

		patch := store.UserPatch{Name: req.Name}
		if req.Email != nil {
			email, err := normalizeEmail(*req.Email)
			if err != nil {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid email format"})
			}
			patch.Email = &email
		}
		if req.Password != nil {
			if err := validatePassword(*req.Password); err != nil {
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: err.Error()})
			}
			hash, err := hashPassword(*req.Password)
			if err != nil {
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to hash password"})
			}
			patch.PasswordHash = &hash
		}
		if req.Role != nil {
			role := model.Role(*req.Role)
			patch.Role = &role
		}

		user, err := patchUser(c.Request().Context(), db, id, patch)
		if err != nil {
			switch {
			case errors.Is(err, store.ErrNotFound):
				return c.JSON(http.StatusNotFound, api.ErrorResponse{Message: "user not found"})
			case errors.Is(err, store.ErrDuplicateEmail):
				return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "email already in use"})
			default:
				return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to update user"})
			}
		}

		return c.JSON(http.StatusOK, toUserResponse(user))
	}
}

// @Summary     Delete a user by ID
// @Description 根據使用者 ID 刪除帳號；目標不存在時同樣回 204
// @Tags        users
// @Param       id   path      int  true  "使用者 ID"
// @Success     204  "No Content"
// @Failure     400  {object}  api.ErrorResponse
// @Failure     401  {object}  api.ErrorResponse
// @Failure     403  {object}  api.ErrorResponse
// @Failure     500  {object}  api.ErrorResponse
// @Security    ApiKeyAuth
// @Router      /users/{id} [delete]
func DeleteUserHandler(db database.DB) echo.HandlerFunc {
	return func(c echo.Context) error {
		id, err := strconv.Atoi(c.Param("id"))
		if err != nil {
			return c.JSON(http.StatusBadRequest, api.ErrorResponse{Message: "invalid user ID"})
		}
		if err := deleteUser(c.Request().Context(), db, id); err != nil {
			return c.JSON(http.StatusInternalServerError, api.ErrorResponse{Message: "failed to delete user"})
		}
		return c.NoContent(http.StatusNoContent)
	}
}
