package services

import (
	"context"
	"net/http"
	"strings"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/clients/backend"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

type TestimonialService interface {
	List(ctx context.Context) ([]models.Testimonial, error)
	Delete(ctx context.Context, id string) error
}

type testimonialService struct {
	client backend.Client
}

func NewTestimonialService(client backend.Client) TestimonialService {
	return &testimonialService{client: client}
}

// List returns the testimonials with ratings clamped to 0..5.
func (s *testimonialService) List(ctx context.Context) ([]models.Testimonial, error) {
	list, err := s.client.ListTestimonials(ctx)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Rating = list[i].ClampedRating()
	}
	return list, nil
}

func (s *testimonialService) Delete(ctx context.Context, id string) error {
	if strings.TrimSpace(id) == "" {
		return &utils.AppError{
			StatusCode: http.StatusBadRequest,
			Code:       utils.ErrCodeValidation,
			Message:    "Testimonial id is required",
		}
	}
	return s.client.DeleteTestimonial(ctx, id)
}
