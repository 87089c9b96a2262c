package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/kioskops/fleetconfig/models"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization: login and the read-only surface the
	// kiosk runtimes poll
	router.Group(func(r chi.Router) {
		r.Post("/api/admin/login", h.login)
		r.Get("/api/kiosks/{kioskID}/config", h.getEffectiveConfig)
		r.Get("/api/kiosks/{kioskID}/status", h.getScheduleStatus)
	})

	// authorized admin surface
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/kiosks", h.listKiosks)
		r.With(h.requirePermission(models.PermissionManageUsers)).
			Post("/api/kiosks", h.registerKiosk)

		r.Put("/api/kiosks/{kioskID}/overrides/{domain}", h.setOverride)
		r.Delete("/api/kiosks/{kioskID}/overrides/{domain}", h.removeOverride)
		r.Put("/api/admin/config/{domain}", h.setGlobalDefault)

		r.Group(func(r chi.Router) {
			r.Use(h.requirePermission(models.PermissionManagePins))

			r.Put("/api/admin/pins/global", h.setGlobalPin)
			r.Put("/api/kiosks/{kioskID}/pin", h.setKioskPin)
			r.Post("/api/admin/pins/validate", h.validatePin)
		})
	})

	return router
}
