package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"eventplanner/internal/delivery/http/controllers"
)

// RouterDeps bundles the controllers and middleware the router wires up.
type RouterDeps struct {
	Events        *controllers.EventController
	Invitations   *controllers.InvitationController
	Notifications *controllers.NotificationController
	Venues        *controllers.VenueController
	Speakers      *controllers.SpeakerController
	Sponsors      *controllers.SponsorController
	Taxonomy      *controllers.TaxonomyController
	RequireAuth   func(http.HandlerFunc) http.HandlerFunc
	OptionalAuth  func(http.HandlerFunc) http.HandlerFunc
}

// NewRouter initializes the HTTP router with all application routes.
// Event reads run behind OptionalAuth so anonymous callers see the public
// catalog while authenticated callers also see their own private events.
func NewRouter(d RouterDeps) *http.ServeMux {
	mux := http.NewServeMux()

	// Events
	mux.HandleFunc("GET /api/v1/events", d.OptionalAuth(d.Events.List))
	mux.HandleFunc("POST /api/v1/events", d.RequireAuth(d.Events.Create))
	mux.HandleFunc("GET /api/v1/events/{slug}", d.OptionalAuth(d.Events.Get))
	mux.HandleFunc("PUT /api/v1/events/{slug}", d.RequireAuth(d.Events.Update))
	mux.HandleFunc("DELETE /api/v1/events/{slug}", d.RequireAuth(d.Events.Delete))

	// Registrations and invitations
	mux.HandleFunc("POST /api/v1/events/{slug}/rsvp", d.RequireAuth(d.Events.RSVP))
	mux.HandleFunc("POST /api/v1/events/{slug}/invite", d.RequireAuth(d.Events.Invite))
	mux.HandleFunc("GET /api/v1/events/{slug}/invitations", d.RequireAuth(d.Events.ListInvitations))
	mux.HandleFunc("GET /api/v1/invitations/accept/{token}", d.Invitations.Accept)
	mux.HandleFunc("GET /api/v1/me/registrations", d.RequireAuth(d.Events.MyRegistrations))

	// Notifications
	mux.HandleFunc("GET /api/v1/notifications", d.RequireAuth(d.Notifications.List))
	mux.HandleFunc("POST /api/v1/notifications/{id}/mark-read", d.RequireAuth(d.Notifications.MarkRead))

	// Venues
	mux.HandleFunc("POST /api/v1/venues", d.RequireAuth(d.Venues.Create))
	mux.HandleFunc("GET /api/v1/venues", d.Venues.List)
	mux.HandleFunc("GET /api/v1/venues/{id}", d.Venues.Get)
	mux.HandleFunc("PUT /api/v1/venues/{id}", d.RequireAuth(d.Venues.Update))
	mux.HandleFunc("DELETE /api/v1/venues/{id}", d.RequireAuth(d.Venues.Delete))

	// Speakers
	mux.HandleFunc("POST /api/v1/speakers", d.RequireAuth(d.Speakers.Create))
	mux.HandleFunc("GET /api/v1/speakers", d.Speakers.List)
	mux.HandleFunc("GET /api/v1/speakers/{id}", d.Speakers.Get)
	mux.HandleFunc("PUT /api/v1/speakers/{id}", d.RequireAuth(d.Speakers.Update))
	mux.HandleFunc("DELETE /api/v1/speakers/{id}", d.RequireAuth(d.Speakers.Delete))

	// Sponsors
	mux.HandleFunc("POST /api/v1/sponsors", d.RequireAuth(d.Sponsors.Create))
	mux.HandleFunc("GET /api/v1/sponsors", d.Sponsors.List)
	mux.HandleFunc("GET /api/v1/sponsors/{id}", d.Sponsors.Get)
	mux.HandleFunc("PUT /api/v1/sponsors/{id}", d.RequireAuth(d.Sponsors.Update))
	mux.HandleFunc("DELETE /api/v1/sponsors/{id}", d.RequireAuth(d.Sponsors.Delete))

	// Categories and tags
	mux.HandleFunc("POST /api/v1/categories", d.RequireAuth(d.Taxonomy.CreateCategory))
	mux.HandleFunc("GET /api/v1/categories", d.Taxonomy.ListCategories)
	mux.HandleFunc("POST /api/v1/tags", d.RequireAuth(d.Taxonomy.CreateTag))
	mux.HandleFunc("GET /api/v1/tags", d.Taxonomy.ListTags)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
