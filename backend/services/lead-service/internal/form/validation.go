package form

import (
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

// ValidationError is the first rule the form failed. Message is meant for
// the person filling the form.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("lead_email", func(fl validator.FieldLevel) bool {
		return utils.IsLeadEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("lead_phone", func(fl validator.FieldLevel) bool {
		return utils.IsLeadPhone(fl.Field().String())
	})
	return v
}

type rule struct {
	field   string
	value   func(s *State) any
	tag     string
	message string
}

// rules run in this order and stop at the first failure.
var rules = []rule{
	{
		field:   "Contact_Details.First_name",
		value:   func(s *State) any { return strings.TrimSpace(s.ContactDetails.FirstName) },
		tag:     "required",
		message: "First name is required.",
	},
	{
		field:   "Contact_Details.Last_name",
		value:   func(s *State) any { return strings.TrimSpace(s.ContactDetails.LastName) },
		tag:     "required",
		message: "Last name is required.",
	},
	{
		field:   "Contact_Details.Email",
		value:   func(s *State) any { return strings.TrimSpace(s.ContactDetails.Email) },
		tag:     "required",
		message: "Email is required.",
	},
	{
		field:   "Contact_Details.Email",
		value:   func(s *State) any { return s.ContactDetails.Email },
		tag:     "lead_email",
		message: "Please enter a valid email address.",
	},
	{
		field:   "Contact_Details.Phone",
		value:   func(s *State) any { return strings.TrimSpace(s.ContactDetails.Phone) },
		tag:     "required",
		message: "Phone number is required.",
	},
	{
		field:   "Contact_Details.Phone",
		value:   func(s *State) any { return s.ContactDetails.Phone },
		tag:     "lead_phone",
		message: "Please enter a valid phone number.",
	},
	{
		field:   "Service_details.PropertyType",
		value:   func(s *State) any { return s.ServiceDetails.PropertyType },
		tag:     "required",
		message: "Property type is required.",
	},
	{
		field:   "Service_details",
		value:   func(s *State) any { return len(s.ServiceDetails.Selected()) > 0 },
		tag:     "eq=true",
		message: "Please select at least one service type.",
	},
}

// Validate checks the form the way the site does at submit time. It returns
// nil or a *ValidationError for the first failing rule.
func (c *Container) Validate() error {
	for _, r := range rules {
		if err := validate.Var(r.value(&c.state), r.tag); err != nil {
			return &ValidationError{Field: r.field, Message: r.message}
		}
	}
	return nil
}
