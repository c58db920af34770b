package dtos

import "github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"

type ListTestimonialsResponse struct {
	Testimonials []models.Testimonial `json:"testimonials"`
}

type DeleteTestimonialResponse struct {
	Deleted string `json:"deleted"`
}
