package dto

type CreateMappingRequest struct {
	Title      string   `json:"title"`
	Cadence    string   `json:"cadence" binding:"required"`
	CompanyID  string   `json:"company_id" binding:"required"`
	ChannelIDs []string `json:"channel_ids" binding:"required,min=1"`
}

type UpdateMappingRequest struct {
	Title      *string  `json:"title"`
	Cadence    *string  `json:"cadence"`
	CompanyID  *string  `json:"company_id"`
	ChannelIDs []string `json:"channel_ids"`
}
