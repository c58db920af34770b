package form

import (
	"fmt"
	"strconv"
	"strings"
)

// setter applies one raw form value.
type setter func(c *Container, raw string) error

func textSetter(fn func(c *Container, v string)) setter {
	return func(c *Container, raw string) error {
		fn(c, raw)
		return nil
	}
}

func checkboxSetter(fn func(c *Container, checked bool) error) setter {
	return func(c *Container, raw string) error {
		checked, err := parseChecked(raw)
		if err != nil {
			return err
		}
		return fn(c, checked)
	}
}

// fieldSetters maps the site's dotted input names onto typed updates.
var fieldSetters = map[string]setter{
	"Contact_Details.First_name": textSetter(func(c *Container, v string) { _ = c.SetContact(ContactFirstName, v) }),
	"Contact_Details.Last_name":  textSetter(func(c *Container, v string) { _ = c.SetContact(ContactLastName, v) }),
	"Contact_Details.Company":    textSetter(func(c *Container, v string) { _ = c.SetContact(ContactCompany, v) }),
	"Contact_Details.Email":      textSetter(func(c *Container, v string) { _ = c.SetContact(ContactEmail, v) }),
	"Contact_Details.Phone":      textSetter(func(c *Container, v string) { _ = c.SetContact(ContactPhone, v) }),

	"Address.Street1": textSetter(func(c *Container, v string) { _ = c.SetAddress(AddressStreet1, v) }),
	"Address.Street2": textSetter(func(c *Container, v string) { _ = c.SetAddress(AddressStreet2, v) }),
	"Address.City":    textSetter(func(c *Container, v string) { _ = c.SetAddress(AddressCity, v) }),
	"Address.State":   textSetter(func(c *Container, v string) { _ = c.SetAddress(AddressState, v) }),
	"Address.Zip":     textSetter(func(c *Container, v string) { _ = c.SetAddress(AddressZip, v) }),

	"Service_details.PropertyType": textSetter((*Container).SetPropertyType),
	"Service_details.Job_Size":     textSetter((*Container).SetJobSize),
	"Service_details.Job_Details":  textSetter((*Container).SetJobDetails),

	"Availability.Day":         textSetter((*Container).SetAvailabilityDay),
	"Availability.Another_Day": textSetter((*Container).SetAnotherDay),

	"Availability.Arrival_time.Any_time": checkboxSetter(func(c *Container, b bool) error {
		return c.SetArrivalTime(ArrivalAnyTime, b)
	}),
	"Availability.Arrival_time.Morning": checkboxSetter(func(c *Container, b bool) error {
		return c.SetArrivalTime(ArrivalMorning, b)
	}),
	"Availability.Arrival_time.Afternoon": checkboxSetter(func(c *Container, b bool) error {
		return c.SetArrivalTime(ArrivalAfternoon, b)
	}),

	"Status": textSetter((*Container).SetStatus),
}

func init() {
	for _, f := range ServiceFlags {
		flag := f
		fieldSetters["Service_details."+flag.String()] = checkboxSetter(func(c *Container, b bool) error {
			return c.SetService(flag, b)
		})
	}
}

// ApplyField sets the leaf named by a dotted input name such as
// "Contact_Details.Email" or "Availability.Arrival_time.Morning".
// Checkbox leaves take the checked flag ("on", "true", "1", ...).
func (c *Container) ApplyField(name, value string) error {
	set, ok := fieldSetters[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	if err := set(c, value); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// KnownField reports whether name addresses a form leaf.
func KnownField(name string) bool {
	_, ok := fieldSetters[name]
	return ok
}

func parseChecked(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "on", "yes", "checked":
		return true, nil
	case "", "off", "no":
		return false, nil
	}
	b, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%w: %q is not a checkbox value", ErrInvalidFieldValue, raw)
	}
	return b, nil
}
