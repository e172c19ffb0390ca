package api

// swagger:model api.ListUsersResponse
type ListUsersResponse struct {
	Total      int            `json:"total" example:"42"`
	Page       int            `json:"page" example:"1"`
	Limit      int            `json:"limit" example:"10"`
	TotalPages int            `json:"totalPages" example:"5"`
	Data       []UserResponse `json:"data"`
}
