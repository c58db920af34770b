package routes

const (
	// Health
	Health = "/health"

	// Service requests (contact form)
	Requests       = "/api/v1/requests"
	RequestsRecent = "/api/v1/requests/recent"
	RequestOptions = "/api/v1/requests/options"

	// Footer estimate modal / admin estimate viewer
	Estimates = "/api/v1/estimates"

	// Testimonials
	Testimonials     = "/api/v1/testimonials"
	TestimonialsByID = "/api/v1/testimonials/{id}"

	// Chatbot
	Chat         = "/api/v1/chat"
	ChatGreeting = "/api/v1/chat/greeting"
)
