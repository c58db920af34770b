package models

// Estimate is one footer-modal lead as the backend stores it.
type Estimate struct {
	ID           string `json:"_id"`
	CustomerName string `json:"customerName"`
	Service      string `json:"service,omitempty"`
	Email        string `json:"email,omitempty"`
	Phone        string `json:"phone,omitempty"`
}

// EstimateRequest is what the footer modal submits.
type EstimateRequest struct {
	FullName         string `json:"fullName"`
	Email            string `json:"email"`
	Phone            string `json:"phone"`
	ServiceRequested string `json:"serviceRequested"`
}

// Estimate service options offered by the footer modal.
const (
	EstimateServiceTreeRemoval        = "TREE REMOVAL"
	EstimateServiceTreeTrimming       = "TREE TRIMMING & PRUNING"
	EstimateServiceStructuralPruning  = "STRUCTURAL PRUNING"
	EstimateServiceLandClearing       = "LAND CLEARING"
	EstimateServiceStormCleanUp       = "STORM CLEAN UP"
	EstimateServiceCommercialServices = "COMMERCIAL TREE SERVICES"
)

// EstimateServices lists the options in the order the modal shows them.
var EstimateServices = []string{
	EstimateServiceTreeRemoval,
	EstimateServiceTreeTrimming,
	EstimateServiceStructuralPruning,
	EstimateServiceLandClearing,
	EstimateServiceStormCleanUp,
	EstimateServiceCommercialServices,
}
