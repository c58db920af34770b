package dtos

import "github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-models"

// SubmitRequestResponse is returned after the backend accepted a contact form.
type SubmitRequestResponse struct {
	Record         models.SubmittedRequest   `json:"record"`
	RecentRequests []models.SubmittedRequest `json:"recentRequests"`
}

type RecentRequestsResponse struct {
	RecentRequests []models.SubmittedRequest `json:"recentRequests"`
}

// Multipart part names of the contact form's files.
const (
	PartImages        = "Images"
	PartDroppedImages = "DroppedImages"
)

// FormOptionsResponse lists the choices the contact form and estimate modal offer.
type FormOptionsResponse struct {
	PropertyTypes    []string `json:"propertyTypes"`
	Services         []string `json:"services"`
	JobSizes         []string `json:"jobSizes"`
	EstimateServices []string `json:"estimateServices"`
	MaxImages        int      `json:"maxImages"`
}
