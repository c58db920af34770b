package form

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

// Summary derives the record kept for the browser once the request was accepted.
func (c *Container) Summary(id string, now time.Time) models.SubmittedRequest {
	selected := c.state.ServiceDetails.Selected()
	names := make([]string, len(selected))
	for i, f := range selected {
		names[i] = f.String()
	}
	return models.SubmittedRequest{
		ID:        id,
		Name:      c.state.ContactDetails.FirstName + " " + c.state.ContactDetails.LastName,
		Service:   strings.Join(names, ", "),
		Timestamp: models.FormatTimestamp(now),
	}
}

// Payload is the non-file part of the multipart body: each section as a JSON string.
type Payload struct {
	ContactDetails string
	Address        string
	ServiceDetails string
	Availability   string
	Status         string
}

// Fields returns the payload in the order the parts are written.
func (p Payload) Fields() [][2]string {
	return [][2]string{
		{"Contact_Details", p.ContactDetails},
		{"Address", p.Address},
		{"Service_details", p.ServiceDetails},
		{"Availability", p.Availability},
		{"Status", p.Status},
	}
}

// Encode serializes the state for the backend. Status defaults to "Pending".
func Encode(s State) (Payload, error) {
	var (
		p   Payload
		err error
	)
	if p.ContactDetails, err = jsonString(s.ContactDetails); err != nil {
		return Payload{}, err
	}
	if p.Address, err = jsonString(s.Address); err != nil {
		return Payload{}, err
	}
	if p.ServiceDetails, err = jsonString(s.ServiceDetails); err != nil {
		return Payload{}, err
	}
	if p.Availability, err = jsonString(s.Availability); err != nil {
		return Payload{}, err
	}
	p.Status = s.Status
	if p.Status == "" {
		p.Status = utils.DefaultRequestStatus
	}
	return p, nil
}

func jsonString(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
