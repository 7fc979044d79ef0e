package dto

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type CreateUserRequest struct {
	Email     string `json:"email" binding:"required"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	SlackID   string `json:"slack_id"`
	IsAdmin   bool   `json:"is_admin"`
}

type UpdateUserRequest struct {
	Email     *string `json:"email"`
	Password  *string `json:"password"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	SlackID   *string `json:"slack_id"`
	IsAdmin   *bool   `json:"is_admin"`
}

type SlackUserSyncResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}
