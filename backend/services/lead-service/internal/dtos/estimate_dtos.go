package dtos

import "github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"

type SubmitEstimateRequest = models.EstimateRequest

type SubmitEstimateResponse struct {
	Success bool `json:"success"`
}

type ListEstimatesResponse struct {
	Estimates []models.Estimate `json:"estimates"`
}
