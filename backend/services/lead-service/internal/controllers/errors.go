package controllers

import (
	"context"
	"errors"
	"net/http"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/clients/backend"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

// respondServiceError maps errors from the services to the JSON error envelope.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var sErr *backend.SubmissionError
	switch {
	case errors.Is(err, context.Canceled) && r.Context().Err() != nil:
		utils.Logger.WithError(err).Debug("Client went away before the backend answered")
	case errors.As(err, &sErr):
		status, code := submissionStatus(sErr.Kind)
		utils.RespondErrorWithCode(w, status, code, sErr.Message, nil, err)
	default:
		utils.HandleAppError(w, err)
	}
}

func submissionStatus(kind backend.SubmissionErrorKind) (int, string) {
	switch kind {
	case backend.KindRejected:
		return http.StatusBadRequest, utils.ErrCodeSubmissionRejected
	case backend.KindUnreachable:
		return http.StatusServiceUnavailable, utils.ErrCodeBackendUnavailable
	default:
		return http.StatusBadGateway, utils.ErrCodeExternalServiceFailure
	}
}
