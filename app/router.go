// Package app wires the HTTP handlers to their routes.
package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/kbo-registry/kbo-crud/app/activities"
	"github.com/kbo-registry/kbo-crud/app/companies"
	"github.com/kbo-registry/kbo-crud/app/establishments"
	"github.com/kbo-registry/kbo-crud/app/health"
	"github.com/kbo-registry/kbo-crud/app/middleware"
	"github.com/kbo-registry/kbo-crud/app/web"
)

type Services struct {
	Companies      companies.CompanyProvider
	Establishments establishments.EstablishmentProvider
	Activities     activities.ActivityProvider
}

func NewRouter(svc Services, log zerolog.Logger) http.Handler {
	companyHandler := companies.NewCompanyHandler(svc.Companies)
	establishmentHandler := establishments.NewEstablishmentHandler(svc.Establishments)
	activityHandler := activities.NewActivityHandler(svc.Activities)

	r := chi.NewRouter()
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(middleware.RequestID)
	r.Use(middleware.AccessLog)
	r.Use(chimw.Recoverer)

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		web.WriteJSON(w, http.StatusNotFound, web.ErrorResponse{Error: "Not found"})
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		web.WriteJSON(w, http.StatusMethodNotAllowed, web.ErrorResponse{Error: "Method not allowed"})
	})

	r.Get("/ping", health.HandlePing)

	r.Route("/companies", func(r chi.Router) {
		r.Post("/", companyHandler.HandleCreate)
		r.Get("/", companyHandler.HandleList)
		r.Get("/{id}", companyHandler.HandleGet)
		r.Put("/{id}", companyHandler.HandleUpdate)
		r.Delete("/{id}", companyHandler.HandleDelete)
		r.Post("/{id}/establishments", establishmentHandler.HandleCreate)
		r.Get("/{id}/establishments", establishmentHandler.HandleListForCompany)
	})

	r.Route("/establishments", func(r chi.Router) {
		r.Get("/{id}", establishmentHandler.HandleGet)
		r.Put("/{id}", establishmentHandler.HandleReplace)
		r.Delete("/{id}", establishmentHandler.HandleDelete)
	})

	r.Get("/activities", activityHandler.HandleList)

	return r
}
