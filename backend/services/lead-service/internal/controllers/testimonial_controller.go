package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/dtos"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/services"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

type TestimonialController struct {
	svc services.TestimonialService
}

func NewTestimonialController(s services.TestimonialService) *TestimonialController {
	return &TestimonialController{svc: s}
}

// -----------------------------------------------------------------------------
// GET /api/v1/testimonials
// -----------------------------------------------------------------------------
func (c *TestimonialController) ListTestimonialsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := c.svc.List(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []models.Testimonial{}
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListTestimonialsResponse{Testimonials: list})
}

// -----------------------------------------------------------------------------
// DELETE /api/v1/testimonials/{id} (admin)
// -----------------------------------------------------------------------------
func (c *TestimonialController) DeleteTestimonialHandler(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := c.svc.Delete(r.Context(), id); err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.Logger.WithField("admin", r.Context().Value(utils.CtxKeyAdminSubject)).Infof("Deleted testimonial %s", id)
	utils.RespondWithJSON(w, http.StatusOK, dtos.DeleteTestimonialResponse{Deleted: id})
}
