package dto

type CreateSlackChannelRequest struct {
	ChannelID string `json:"channel_id" binding:"required"`
	Name      string `json:"name"`
}

type UpdateSlackChannelRequest struct {
	Name *string `json:"name"`
}

type CreateHubspotCompanyRequest struct {
	CompanyID string `json:"company_id" binding:"required"`
	Name      string `json:"name"`
}

type UpdateHubspotCompanyRequest struct {
	Name *string `json:"name"`
}

type ProviderSyncResponse struct {
	Created int `json:"created"`
	Updated int `json:"updated"`
}
