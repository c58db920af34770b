package form

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-utils"
)

var (
	ErrUnknownField      = errors.New("unknown form field")
	ErrInvalidFieldValue = errors.New("invalid form field value")
)

// Container owns one FormState. Every setter replaces a single leaf and
// leaves its siblings untouched. A Container is not safe for concurrent use.
type Container struct {
	state State
}

// New returns a container holding the empty initial state.
func New() *Container {
	return &Container{}
}

// State returns a copy of the current state.
func (c *Container) State() State {
	return c.state.clone()
}

// Reset restores the initial empty state.
func (c *Container) Reset() {
	c.state = State{}
}

// ------------------------------------------------------------------
// Section updates
// ------------------------------------------------------------------

func (c *Container) SetContact(f ContactField, v string) error {
	d := &c.state.ContactDetails
	switch f {
	case ContactFirstName:
		d.FirstName = v
	case ContactLastName:
		d.LastName = v
	case ContactCompany:
		d.Company = v
	case ContactEmail:
		d.Email = v
	case ContactPhone:
		d.Phone = v
	default:
		return fmt.Errorf("%w: contact field %d", ErrUnknownField, int(f))
	}
	return nil
}

func (c *Container) SetAddress(f AddressField, v string) error {
	a := &c.state.Address
	switch f {
	case AddressStreet1:
		a.Street1 = v
	case AddressStreet2:
		a.Street2 = v
	case AddressCity:
		a.City = v
	case AddressState:
		a.State = v
	case AddressZip:
		a.Zip = v
	default:
		return fmt.Errorf("%w: address field %d", ErrUnknownField, int(f))
	}
	return nil
}

func (c *Container) SetPropertyType(v string) { c.state.ServiceDetails.PropertyType = v }

func (c *Container) SetService(f ServiceFlag, checked bool) error {
	p := c.state.ServiceDetails.flag(f)
	if p == nil {
		return fmt.Errorf("%w: %s", ErrUnknownField, f)
	}
	*p = checked
	return nil
}

func (c *Container) SetJobSize(v string) { c.state.ServiceDetails.JobSize = v }

func (c *Container) SetJobDetails(v string) { c.state.ServiceDetails.JobDetails = v }

func (c *Container) SetAvailabilityDay(v string) { c.state.Availability.Day = v }

func (c *Container) SetAnotherDay(v string) { c.state.Availability.AnotherDay = v }

func (c *Container) SetArrivalTime(slot ArrivalSlot, checked bool) error {
	at := &c.state.Availability.ArrivalTime
	switch slot {
	case ArrivalAnyTime:
		at.AnyTime = checked
	case ArrivalMorning:
		at.Morning = checked
	case ArrivalAfternoon:
		at.Afternoon = checked
	default:
		return fmt.Errorf("%w: arrival slot %d", ErrUnknownField, int(slot))
	}
	return nil
}

func (c *Container) SetStatus(v string) { c.state.Status = v }

// ------------------------------------------------------------------
// Images
// ------------------------------------------------------------------

// AddFiles appends files picked through the file input and keeps only the
// first utils.MaxLeadImages attachments. It returns how many were kept.
func (c *Container) AddFiles(files []Attachment) int {
	before := len(c.state.Images)
	c.state.Images = appendCapped(c.state.Images, files)
	return len(c.state.Images) - before
}

// DropFiles is AddFiles for a drag-and-drop batch: anything that is not an
// image is discarded first.
func (c *Container) DropFiles(files []Attachment) int {
	images := make([]Attachment, 0, len(files))
	for _, f := range files {
		if ct := DetectContentType(f); strings.HasPrefix(ct, "image/") {
			f.ContentType = ct
			images = append(images, f)
		}
	}
	return c.AddFiles(images)
}

func appendCapped(cur, more []Attachment) []Attachment {
	out := make([]Attachment, 0, utils.MaxLeadImages)
	out = append(out, cur...)
	out = append(out, more...)
	if len(out) > utils.MaxLeadImages {
		out = out[:utils.MaxLeadImages]
	}
	return out
}

// DetectContentType sniffs the attachment bytes and falls back to the
// declared type when there is nothing to sniff.
func DetectContentType(a Attachment) string {
	if len(a.Data) == 0 {
		return strings.ToLower(strings.TrimSpace(a.ContentType))
	}
	return mimetype.Detect(a.Data).String()
}
