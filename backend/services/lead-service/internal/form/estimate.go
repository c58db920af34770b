package form

import (
	"strings"

	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"
)

// EstimateErrors maps a footer-modal field name to its message.
type EstimateErrors map[string]string

func (e EstimateErrors) Error() string {
	parts := make([]string, 0, len(e))
	for _, k := range []string{"fullName", "email", "phone", "serviceRequested"} {
		if msg, ok := e[k]; ok {
			parts = append(parts, msg)
		}
	}
	return strings.Join(parts, "; ")
}

// ValidateEstimate checks every field of the estimate modal and reports all
// failures at once. It returns nil when the request may be sent.
func ValidateEstimate(req models.EstimateRequest) EstimateErrors {
	errs := EstimateErrors{}
	if validate.Var(strings.TrimSpace(req.FullName), "required") != nil {
		errs["fullName"] = "Full name is required"
	}
	switch {
	case validate.Var(strings.TrimSpace(req.Email), "required") != nil:
		errs["email"] = "Email is required"
	case validate.Var(req.Email, "lead_email") != nil:
		errs["email"] = "Email is invalid"
	}
	if validate.Var(strings.TrimSpace(req.Phone), "required") != nil {
		errs["phone"] = "Phone is required"
	}
	if validate.Var(req.ServiceRequested, "required") != nil {
		errs["serviceRequested"] = "Service is required"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
