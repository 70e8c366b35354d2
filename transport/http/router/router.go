package router

import (
	"github.com/go-chi/chi/v5"

	"merobooking/internal/handlers/auth"
	"merobooking/internal/handlers/availability"
	"merobooking/internal/handlers/booking"
	"merobooking/internal/handlers/concierge"
	"merobooking/internal/handlers/dashboard"
	"merobooking/internal/handlers/facility"
	"merobooking/internal/handlers/review"
	"merobooking/internal/handlers/room"
	"merobooking/internal/handlers/user"
)

type DomainHandlers struct {
	Auth         auth.Handler
	Availability availability.Handler
	Booking      booking.Handler
	Concierge    concierge.Handler
	Dashboard    dashboard.Handler
	Facility     facility.Handler
	Review       review.Handler
	Room         room.Handler
	User         user.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.Availability.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Concierge.Router(routerGroup)
		r.DomainHandlers.Dashboard.Router(routerGroup)
		r.DomainHandlers.Facility.Router(routerGroup)
		r.DomainHandlers.Review.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
