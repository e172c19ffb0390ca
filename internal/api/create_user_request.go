package api

// swagger:model api.CreateUserRequest
type CreateUserRequest struct {
	Name     string `form:"name" json:"name" validate:"required" example:"Alice"`
	Email    string `form:"email" json:"email" validate:"required,email" example:"alice@example.com"`
	Password string `form:"password" json:"password" validate:"required" example:"Secret123!"`
	Role     string `form:"role" json:"role" validate:"omitempty,oneof=admin user" example:"user"`
}
