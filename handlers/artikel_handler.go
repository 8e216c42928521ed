package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/doru1011/swa06/models"
	apperrors "github.com/doru1011/swa06/pkg/errors"
	"github.com/doru1011/swa06/utils"
)

// GetArtikel lists available articles, filtered by suchbegriff or maxPreis
// when given. An empty result is a 404, matching the by-id lookups.
func (h *Handler) GetArtikel(w http.ResponseWriter, r *http.Request) {
	locale := localeFromRequest(r)

	if maxPreis := r.URL.Query().Get("maxPreis"); maxPreis != "" {
		preis, err := decimal.NewFromString(maxPreis)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid maxPreis: "+maxPreis)
			return
		}
		artikel, err := h.artikelService.FindArtikelByMaxPreis(r.Context(), preis)
		if err != nil {
			utils.RespondWithAPIError(w, err)
			return
		}
		h.respondArtikelList(w, artikel)
		return
	}

	suchbegriff := r.URL.Query().Get("suchbegriff")
	artikel, err := h.artikelService.FindArtikelBySuchbegriff(r.Context(), suchbegriff, locale)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	h.respondArtikelList(w, artikel)
}

// GetArtikelByID returns a single article.
func (h *Handler) GetArtikelByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	artikel, err := h.artikelService.FindArtikelByID(r.Context(), id, localeFromRequest(r))
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if artikel == nil {
		utils.RespondWithAPIError(w, apperrors.NotFoundByIDError("artikel", id))
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, artikel)
}

// GetLadenhueter lists articles never referenced by any order line. The anzahl
// query parameter caps the result, default 5.
func (h *Handler) GetLadenhueter(w http.ResponseWriter, r *http.Request) {
	anzahl := 5
	if raw := r.URL.Query().Get("anzahl"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid anzahl: "+raw)
			return
		}
		anzahl = parsed
	}

	artikel, err := h.bestellungService.Ladenhueter(r.Context(), anzahl)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	h.respondArtikelList(w, artikel)
}

// CreateArtikel persists a new article and answers 201 with a Location header.
func (h *Handler) CreateArtikel(w http.ResponseWriter, r *http.Request) {
	var artikel models.Artikel
	if err := json.NewDecoder(r.Body).Decode(&artikel); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.artikelService.CreateArtikel(r.Context(), &artikel, localeFromRequest(r))
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	w.Header().Set("Location", utils.AbsoluteURI(r, "/artikel/%d", created.ID))
	utils.RespondWithSuccess(w, http.StatusCreated, created)
}

// UpdateArtikel merges an article identified by the id in the body.
func (h *Handler) UpdateArtikel(w http.ResponseWriter, r *http.Request) {
	var artikel models.Artikel
	if err := json.NewDecoder(r.Body).Decode(&artikel); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.artikelService.UpdateArtikel(r.Context(), &artikel, localeFromRequest(r)); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondNoContent(w)
}

// DeleteArtikel flips an article to unavailable.
func (h *Handler) DeleteArtikel(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	if err := h.artikelService.DeleteArtikel(r.Context(), id, localeFromRequest(r)); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondNoContent(w)
}

func (h *Handler) respondArtikelList(w http.ResponseWriter, artikel []models.Artikel) {
	if len(artikel) == 0 {
		utils.RespondWithAPIError(w, apperrors.NotFoundError("artikel"))
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, artikel)
}

func parseID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
}
