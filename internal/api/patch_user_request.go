package api

// PatchUserRequest 部分更新請求，nil 欄位表示不變更
// swagger:model api.PatchUserRequest
type PatchUserRequest struct {
	Name     *string `form:"name" json:"name,omitempty" validate:"omitempty,min=1" example:"Alice"`
	Email    *string `form:"email" json:"email,omitempty" validate:"omitempty,email" example:"alice@example.com"`
	Password *string `form:"password" json:"password,omitempty" validate:"omitempty" example:"Secret123!"`
	Role     *string `form:"role" json:"role,omitempty" validate:"omitempty,oneof=admin user" example:"user"`
}
