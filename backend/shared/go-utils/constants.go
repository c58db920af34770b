package utils

import "time"

const (
	OrganizationName  = "American Tree Experts"
	OrganizationPhone = "812-457-3433"

	CORSLowSecurityAllowedOriginLocalhost = "http://localhost:*"

	// DefaultBackendURL is used when BACKEND_URL is unset.
	DefaultBackendURL = "http://localhost:8000"

	// MaxLeadImages is the attachment capacity of one service request.
	MaxLeadImages = 4

	// LeadRetentionHorizon is how long a submitted request stays listed for its browser.
	LeadRetentionHorizon = 48 * time.Hour

	// SubmittedRequestsKey is the storage key the site has always used for its summaries.
	SubmittedRequestsKey = "submittedRequests"

	DefaultRequestStatus = "Pending"
)
