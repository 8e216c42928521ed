package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/text/language"
	"gorm.io/gorm"

	"github.com/doru1011/swa06/middleware"
	"github.com/doru1011/swa06/services"
	"github.com/doru1011/swa06/utils"
	"github.com/doru1011/swa06/validation"
)

var localeMatcher = language.NewMatcher([]language.Tag{
	language.German,
	language.English,
})

// Handler owns the HTTP surface of the shop and dispatches into the services.
type Handler struct {
	artikelService    *services.ArtikelService
	kundeService      *services.KundeService
	bestellungService *services.BestellungService
}

// New wires the services onto a fresh handler.
func New(db *gorm.DB, v *validation.Validator, notifier services.Notifier) *Handler {
	kundeService := services.NewKundeService(db, v, notifier)
	return &Handler{
		artikelService:    services.NewArtikelService(db, v),
		kundeService:      kundeService,
		bestellungService: services.NewBestellungService(db, v, kundeService, notifier),
	}
}

// Routes builds the router with middleware and all resource endpoints.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.PanicRecoveryMiddleware)
	r.Use(middleware.RequestLoggerMiddleware)
	r.Use(middleware.CORSMiddleware(middleware.DefaultCORSConfig()))

	r.Get("/health", h.HealthCheck)

	r.Route("/artikel", func(r chi.Router) {
		r.Get("/", h.GetArtikel)
		r.Get("/ladenhueter", h.GetLadenhueter)
		r.Get("/{id:[1-9][0-9]*}", h.GetArtikelByID)
		r.Post("/", h.CreateArtikel)
		r.Put("/", h.UpdateArtikel)
		r.Delete("/{id:[1-9][0-9]*}", h.DeleteArtikel)
	})

	r.Route("/kunden", func(r chi.Router) {
		r.Get("/", h.GetKunden)
		r.Get("/nachnamen", h.GetNachnamen)
		r.Get("/{id:[1-9][0-9]*}", h.GetKundeByID)
		r.Get("/{id:[1-9][0-9]*}/bestellungen", h.GetBestellungenByKundeID)
		r.Get("/{id:[1-9][0-9]*}/bestellungenIds", h.GetBestellungenIdsByKundeID)
		r.Post("/", h.CreateKunde)
		r.Put("/", h.UpdateKunde)
		r.Delete("/{id:[1-9][0-9]*}", h.DeleteKunde)
	})

	r.Route("/bestellungen", func(r chi.Router) {
		r.Get("/{id:[1-9][0-9]*}", h.GetBestellungByID)
		r.Get("/{id:[1-9][0-9]*}/kunde", h.GetKundeByBestellungID)
		r.Post("/", h.CreateBestellung)
	})

	return r
}

// HealthCheck reports liveness.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithSuccess(w, http.StatusOK, map[string]string{"status": "healthy"})
}

// localeFromRequest negotiates the violation-message language from the
// Accept-Language header, defaulting to German.
func localeFromRequest(r *http.Request) validation.Locale {
	accept := r.Header.Get("Accept-Language")
	if accept == "" {
		return validation.DefaultLocale
	}

	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return validation.DefaultLocale
	}

	_, index, _ := localeMatcher.Match(tags...)
	if index == 1 {
		return validation.LocaleEN
	}
	return validation.LocaleDE
}
