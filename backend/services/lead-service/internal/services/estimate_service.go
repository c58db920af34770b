package services

import (
	"context"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/clients/backend"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/form"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"
)

type EstimateService interface {
	// Submit returns form.EstimateErrors when any field is invalid. Valid
	// requests are forwarded exactly as received.
	Submit(ctx context.Context, req models.EstimateRequest) error
	List(ctx context.Context) ([]models.Estimate, error)
}

type estimateService struct {
	client backend.Client
}

func NewEstimateService(client backend.Client) EstimateService {
	return &estimateService{client: client}
}

func (s *estimateService) Submit(ctx context.Context, req models.EstimateRequest) error {
	if errs := form.ValidateEstimate(req); len(errs) > 0 {
		return errs
	}
	return s.client.SubmitEstimate(ctx, req)
}

func (s *estimateService) List(ctx context.Context) ([]models.Estimate, error) {
	return s.client.ListEstimates(ctx)
}
