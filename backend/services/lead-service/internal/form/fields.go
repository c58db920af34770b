package form

import "fmt"

type ContactField int

const (
	ContactFirstName ContactField = iota
	ContactLastName
	ContactCompany
	ContactEmail
	ContactPhone
)

type AddressField int

const (
	AddressStreet1 AddressField = iota
	AddressStreet2
	AddressCity
	AddressState
	AddressZip
)

// ServiceFlag is one of the six service checkboxes.
type ServiceFlag int

const (
	ServiceTreeRemoval ServiceFlag = iota
	ServiceTreeTrimming
	ServicePalmTrimming
	ServiceHurricanePreparation
	ServiceRootHealth
	ServiceTreeMaintenancePlanning
)

// ServiceFlags lists every flag in declaration order.
var ServiceFlags = []ServiceFlag{
	ServiceTreeRemoval,
	ServiceTreeTrimming,
	ServicePalmTrimming,
	ServiceHurricanePreparation,
	ServiceRootHealth,
	ServiceTreeMaintenancePlanning,
}

// String is the key the site and the backend use for the flag.
func (f ServiceFlag) String() string {
	switch f {
	case ServiceTreeRemoval:
		return "Tree_Removal"
	case ServiceTreeTrimming:
		return "Tree_Trimming"
	case ServicePalmTrimming:
		return "Palm_Trimming"
	case ServiceHurricanePreparation:
		return "Hurricane_Preparation"
	case ServiceRootHealth:
		return "Root_Health"
	case ServiceTreeMaintenancePlanning:
		return "Tree_Maintenance_Planning"
	default:
		return fmt.Sprintf("ServiceFlag(%d)", int(f))
	}
}

func (d *ServiceDetails) flag(f ServiceFlag) *bool {
	switch f {
	case ServiceTreeRemoval:
		return &d.TreeRemoval
	case ServiceTreeTrimming:
		return &d.TreeTrimming
	case ServicePalmTrimming:
		return &d.PalmTrimming
	case ServiceHurricanePreparation:
		return &d.HurricanePreparation
	case ServiceRootHealth:
		return &d.RootHealth
	case ServiceTreeMaintenancePlanning:
		return &d.TreeMaintenancePlanning
	default:
		return nil
	}
}

// Selected returns the flags that are set, in declaration order.
func (d ServiceDetails) Selected() []ServiceFlag {
	var out []ServiceFlag
	for _, f := range ServiceFlags {
		if *d.flag(f) {
			out = append(out, f)
		}
	}
	return out
}

type ArrivalSlot int

const (
	ArrivalAnyTime ArrivalSlot = iota
	ArrivalMorning
	ArrivalAfternoon
)
