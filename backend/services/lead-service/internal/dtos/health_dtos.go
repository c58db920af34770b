package dtos

type HealthCheckResponse struct {
	Status  string `json:"status"`
	Backend string `json:"backend"`
}
