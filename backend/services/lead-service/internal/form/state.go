// Package form holds the contact-form state of one service request: typed
// sections, attachment rules, ordered validation and the wire encoding the
// tree-services backend expects.
package form

// ContactDetails is the "Contact_Details" section.
type ContactDetails struct {
	FirstName string `json:"First_name"`
	LastName  string `json:"Last_name"`
	Company   string `json:"Company"`
	Email     string `json:"Email"`
	Phone     string `json:"Phone"`
}

// Address is optional as a whole.
type Address struct {
	Street1 string `json:"Street1"`
	Street2 string `json:"Street2"`
	City    string `json:"City"`
	State   string `json:"State"`
	Zip     string `json:"Zip"`
}

// ServiceDetails is the "Service_details" section. Field order matters: the
// submitted-request summary lists flags in this order.
type ServiceDetails struct {
	PropertyType            string `json:"PropertyType"`
	TreeRemoval             bool   `json:"Tree_Removal"`
	TreeTrimming            bool   `json:"Tree_Trimming"`
	PalmTrimming            bool   `json:"Palm_Trimming"`
	HurricanePreparation    bool   `json:"Hurricane_Preparation"`
	RootHealth              bool   `json:"Root_Health"`
	TreeMaintenancePlanning bool   `json:"Tree_Maintenance_Planning"`
	JobSize                 string `json:"Job_Size"`
	JobDetails              string `json:"Job_Details"`
}

// ArrivalTime slots are independent of each other.
type ArrivalTime struct {
	AnyTime   bool `json:"Any_time"`
	Morning   bool `json:"Morning"`
	Afternoon bool `json:"Afternoon"`
}

type Availability struct {
	Day         string      `json:"Day"`
	AnotherDay  string      `json:"Another_Day"`
	ArrivalTime ArrivalTime `json:"Arrival_time"`
}

// Attachment is one uploaded photo.
type Attachment struct {
	Filename    string
	ContentType string
	Data        []byte
}

// State is the whole contact form.
type State struct {
	ContactDetails ContactDetails
	Address        Address
	ServiceDetails ServiceDetails
	Availability   Availability
	Images         []Attachment
	Status         string
}

func (s State) clone() State {
	out := s
	if s.Images != nil {
		out.Images = make([]Attachment, len(s.Images))
		copy(out.Images, s.Images)
	}
	return out
}

// Property types offered by the site. Other non-empty values are accepted.
var PropertyTypes = []string{
	"Residential",
	"Estate or large residential",
	"HOA Condo/Townhomes",
	"Apartment complex",
	"Mobile home Community",
	"Golf course",
	"Propery Management",
	"Municipal",
	"Church",
	"Other",
}

// Job sizes offered by the site.
const (
	JobSizeSmall  = "Small"
	JobSizeMedium = "Medium"
	JobSizeLarge  = "Large"
)

var JobSizes = []string{JobSizeSmall, JobSizeMedium, JobSizeLarge}
