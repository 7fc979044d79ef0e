package dto

type CreatePromptRequest struct {
	Name     string `json:"name" binding:"required"`
	Content  string `json:"content" binding:"required"`
	IsActive bool   `json:"is_active"`
}

type UpdatePromptRequest struct {
	Name     *string `json:"name"`
	Content  *string `json:"content"`
	IsActive *bool   `json:"is_active"`
}
