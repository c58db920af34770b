package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/dtos"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/form"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/services"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

type EstimateController struct {
	svc services.EstimateService
}

func NewEstimateController(s services.EstimateService) *EstimateController {
	return &EstimateController{svc: s}
}

// -----------------------------------------------------------------------------
// POST /api/v1/estimates
// -----------------------------------------------------------------------------
func (c *EstimateController) SubmitEstimateHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.SubmitEstimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON payload", nil, err)
		return
	}

	if err := c.svc.Submit(r.Context(), req); err != nil {
		var fieldErrs form.EstimateErrors
		if errors.As(err, &fieldErrs) {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, fieldErrs.Error(), fieldErrs)
			return
		}
		respondServiceError(w, r, err)
		return
	}

	utils.RespondWithJSON(w, http.StatusCreated, dtos.SubmitEstimateResponse{Success: true})
}

// -----------------------------------------------------------------------------
// GET /api/v1/estimates (admin)
// -----------------------------------------------------------------------------
func (c *EstimateController) ListEstimatesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := c.svc.List(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	if list == nil {
		list = []models.Estimate{}
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.ListEstimatesResponse{Estimates: list})
}
