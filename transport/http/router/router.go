package router

import (
	"roomly/internal/handlers/auth"
	"roomly/internal/handlers/booking"
	"roomly/internal/handlers/comment"
	"roomly/internal/handlers/favorite"
	"roomly/internal/handlers/location"
	"roomly/internal/handlers/room"
	"roomly/internal/handlers/user"

	"github.com/go-chi/chi/v5"
)

type DomainHandlers struct {
	Auth     auth.Handler
	User     user.Handler
	Location location.Handler
	Room     room.Handler
	Booking  booking.Handler
	Comment  comment.Handler
	Favorite favorite.Handler
}

type Router struct {
	DomainHandlers DomainHandlers
}

func (r *Router) SetupRoutes(router chi.Router) {
	router.Route("/v1", func(routerGroup chi.Router) {
		r.DomainHandlers.Auth.Router(routerGroup)
		r.DomainHandlers.User.Router(routerGroup)
		r.DomainHandlers.Location.Router(routerGroup)
		r.DomainHandlers.Room.Router(routerGroup)
		r.DomainHandlers.Booking.Router(routerGroup)
		r.DomainHandlers.Comment.Router(routerGroup)
		r.DomainHandlers.Favorite.Router(routerGroup)
	})
}

func New(domainHandlers DomainHandlers) Router {
	return Router{
		DomainHandlers: domainHandlers,
	}
}
