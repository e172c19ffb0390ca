package api

// ListUsersRequest 查詢參數；name 為子字串比對、email 為完全比對、
// date 為建立時間下界（RFC3339 或 2006-01-02）
// swagger:model api.ListUsersRequest
type ListUsersRequest struct {
	Name  string `query:"name" example:"ali"`
	Email string `query:"email" example:"alice@example.com"`
	Date  string `query:"date" example:"2025-01-01"`
	Page  int    `query:"page" example:"1"`
	Limit int    `query:"limit" example:"10"`
	Sort  string `query:"sort" example:"name"`
}
