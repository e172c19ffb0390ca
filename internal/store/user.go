package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"user-api/internal/database"
	"user-api/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already in use")
)

const userColumns = `id, name, email, password_hash, role, created_at, updated_at, last_login_at`

// sortColumns 列出允許的排序欄位，避免將使用者輸入直接串入 SQL
var sortColumns = map[string]string{
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
	"updated_at": "updated_at",
	"id":         "id",
}

// UserFilter 動態查詢條件，零值欄位不參與過濾，多條件以 AND 結合
type UserFilter struct {
	Name         string     // 名稱子字串，不分大小寫
	Email        string     // Email 完全比對
	CreatedAfter *time.Time // 建立時間下界（含）
}

// ListParams 分頁與排序參數
type ListParams struct {
	Filter UserFilter
	Page   int
	Limit  int
	Sort   string
}

// UserPatch 部分更新欄位，nil 表示不變更
type UserPatch struct {
	Name         *string
	Email        *string
	PasswordHash *string
	Role         *model.Role
}

// IsZero reports whether the patch carries no mutable field.
func (p UserPatch) IsZero() bool {
	return p.Name == nil && p.Email == nil && p.PasswordHash == nil && p.Role == nil
}

func scanUser(row pgx.Row) (*model.User, error) {
	u := &model.User{}
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.UpdatedAt,
		&u.LastLoginAt,
	)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

func GetUserByID(ctx context.Context, db database.DB, userID int) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		userID,
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetUserByID: %w", err)
	}
	return u, nil
}

func GetUserByEmail(ctx context.Context, db database.DB, email string) (*model.User, error) {
	row := db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	)
	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("GetUserByEmail: %w", err)
	}
	return u, nil
}

func CreateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`INSERT INTO users (name, email, password_hash, role)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role,
	)
	if err := row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt); err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("CreateUser: %w", err)
	}
	return u, nil
}

// UpdateUser 全量覆寫 name、email、password_hash 與 role，回傳更新後的使用者
func UpdateUser(ctx context.Context, db database.DB, u *model.User) (*model.User, error) {
	row := db.QueryRow(ctx,
		`UPDATE users
		 SET name = $1, email = $2, password_hash = $3, role = $4, updated_at = now()
		 WHERE id = $5
		 RETURNING `+userColumns,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.ID,
	)
	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("UpdateUser: %w", err)
	}
	return updated, nil
}

// PatchUser 只更新補丁中出現的欄位；空補丁不發出 UPDATE，直接回傳現況
func PatchUser(ctx context.Context, db database.DB, userID int, p UserPatch) (*model.User, error) {
	if p.IsZero() {
		return GetUserByID(ctx, db, userID)
	}

	sets := make([]string, 0, 5)
	args := make([]any, 0, 5)
	add := func(col string, val any) {
		args = append(args, val)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}
	if p.Name != nil {
		add("name", *p.Name)
	}
	if p.Email != nil {
		add("email", *p.Email)
	}
	if p.PasswordHash != nil {
		add("password_hash", *p.PasswordHash)
	}
	if p.Role != nil {
		add("role", *p.Role)
	}
	sets = append(sets, "updated_at = now()")
	args = append(args, userID)

	row := db.QueryRow(ctx,
		fmt.Sprintf(`UPDATE users SET %s WHERE id = $%d RETURNING %s`,
			strings.Join(sets, ", "), len(args), userColumns),
		args...,
	)
	updated, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("PatchUser: %w", err)
	}
	return updated, nil
}

// DeleteUser 依 ID 刪除；目標不存在時同樣視為成功
func DeleteUser(ctx context.Context, db database.DB, userID int) error {
	_, err := db.Exec(ctx,
		`DELETE FROM users WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("DeleteUser: %w", err)
	}
	return nil
}

// TouchLastLogin 更新最後登入時間
func TouchLastLogin(ctx context.Context, db database.DB, userID int) error {
	_, err := db.Exec(ctx,
		`UPDATE users SET last_login_at = now() WHERE id = $1`,
		userID,
	)
	if err != nil {
		return fmt.Errorf("TouchLastLogin: %w", err)
	}
	return nil
}

func buildWhere(f UserFilter) (string, []any) {
	conds := make([]string, 0, 3)
	args := make([]any, 0, 3)
	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		conds = append(conds, fmt.Sprintf("name ILIKE $%d", len(args)))
	}
	if f.Email != "" {
		args = append(args, f.Email)
		conds = append(conds, fmt.Sprintf("email = $%d", len(args)))
	}
	if f.CreatedAfter != nil {
		args = append(args, *f.CreatedAfter)
		conds = append(conds, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// ListUsers 依條件查詢一頁使用者並回傳符合條件的總筆數。
// 排序欄位限定於白名單，預設 name 升冪；排序值相同的列依儲存層的
// 掃描順序回傳，跨次查詢不保證穩定。
func ListUsers(ctx context.Context, db database.DB, params ListParams) ([]model.User, int, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 10
	}
	col, ok := sortColumns[params.Sort]
	if !ok {
		col = "name"
	}

	where, args := buildWhere(params.Filter)

	var total int
	if err := db.QueryRow(ctx, `SELECT count(*) FROM users`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ListUsers: count: %w", err)
	}

	offset := (params.Page - 1) * params.Limit
	args = append(args, params.Limit, offset)
	rows, err := db.Query(ctx,
		fmt.Sprintf(`SELECT %s FROM users%s ORDER BY %s LIMIT $%d OFFSET $%d`,
			userColumns, where, col, len(args)-1, len(args)),
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("ListUsers: %w", err)
	}
	defer rows.Close()

	users := []model.User{}
	for rows.Next() {
		u := model.User{}
		if err := rows.Scan(
			&u.ID,
			&u.Name,
			&u.Email,
			&u.PasswordHash,
			&u.Role,
			&u.CreatedAt,
			&u.UpdatedAt,
			&u.LastLoginAt,
		); err != nil {
			return nil, 0, fmt.Errorf("ListUsers: scan: %w", err)
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("ListUsers: rows: %w", err)
	}
	return users, total, nil
}
