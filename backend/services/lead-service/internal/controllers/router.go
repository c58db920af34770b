package controllers

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/app"
	"github.com/mudassir779/Frant-Ent-Tree/backend/services/lead-service/internal/routes"
	"github.com/mudassir779/Frant-Ent-Tree/backend/shared/go-middleware"
)

// NewRouter registers every endpoint. POST endpoints that reach the backend
// share submitLimiter; admin endpoints require an admin JWT.
func NewRouter(a *app.App, submitLimiter *middleware.RateLimiter) *mux.Router {
	healthCtrl := NewHealthController(a)
	requestCtrl := NewRequestController(a.LeadService)
	estimateCtrl := NewEstimateController(a.EstimateService)
	testimonialCtrl := NewTestimonialController(a.TestimonialService)
	chatCtrl := NewChatController(a.ChatService)

	clientScope := middleware.ClientScopeMiddleware(a.Config.TrustedProxies)

	router := mux.NewRouter()
	router.HandleFunc(routes.Health, healthCtrl.HealthCheckHandler).Methods(http.MethodGet)

	// Public
	public := router.NewRoute().Subrouter()
	public.Use(clientScope)
	public.HandleFunc(routes.RequestsRecent, requestCtrl.RecentRequestsHandler).Methods(http.MethodGet)
	public.HandleFunc(routes.RequestOptions, requestCtrl.FormOptionsHandler).Methods(http.MethodGet)
	public.HandleFunc(routes.Testimonials, testimonialCtrl.ListTestimonialsHandler).Methods(http.MethodGet)
	public.HandleFunc(routes.ChatGreeting, chatCtrl.GreetingHandler).Methods(http.MethodGet)

	// Public, rate limited
	limited := router.NewRoute().Subrouter()
	limited.Use(clientScope, submitLimiter.Handler)
	limited.HandleFunc(routes.Requests, requestCtrl.SubmitRequestHandler).Methods(http.MethodPost)
	limited.HandleFunc(routes.Estimates, estimateCtrl.SubmitEstimateHandler).Methods(http.MethodPost)
	limited.HandleFunc(routes.Chat, chatCtrl.ChatHandler).Methods(http.MethodPost)

	// Admin
	admin := router.NewRoute().Subrouter()
	admin.Use(middleware.AdminAuthMiddleware(a.Config.AdminJWTSecret))
	admin.HandleFunc(routes.Estimates, estimateCtrl.ListEstimatesHandler).Methods(http.MethodGet)
	admin.HandleFunc(routes.TestimonialsByID, testimonialCtrl.DeleteTestimonialHandler).Methods(http.MethodDelete)

	return router
}
