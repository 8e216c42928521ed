package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/doru1011/swa06/models"
	apperrors "github.com/doru1011/swa06/pkg/errors"
	"github.com/doru1011/swa06/utils"
)

// GetBestellungByID returns a single order with its lines.
func (h *Handler) GetBestellungByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	bestellung, err := h.bestellungService.FindBestellungByID(r.Context(), id, localeFromRequest(r))
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if bestellung == nil {
		utils.RespondWithAPIError(w, apperrors.NotFoundByIDError("bestellung", id))
		return
	}

	bestellung.KundeURI = utils.AbsoluteURI(r, "/kunden/%d", bestellung.KundeID)
	utils.RespondWithSuccess(w, http.StatusOK, bestellung)
}

// GetKundeByBestellungID returns the customer an order belongs to.
func (h *Handler) GetKundeByBestellungID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	kunde, err := h.bestellungService.FindKundeByBestellungID(r.Context(), id, localeFromRequest(r))
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if kunde == nil {
		utils.RespondWithAPIError(w, apperrors.NotFoundError("kunde"))
		return
	}

	h.setKundeURIs(r, kunde)
	utils.RespondWithSuccess(w, http.StatusOK, kunde)
}

// CreateBestellung persists a new order for the customer named by kundeId in
// the body and answers 201 with a Location header.
func (h *Handler) CreateBestellung(w http.ResponseWriter, r *http.Request) {
	var bestellung models.Bestellung
	if err := json.NewDecoder(r.Body).Decode(&bestellung); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.bestellungService.CreateBestellungForKundeID(r.Context(), &bestellung, bestellung.KundeID, localeFromRequest(r))
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	created.KundeURI = utils.AbsoluteURI(r, "/kunden/%d", created.KundeID)
	w.Header().Set("Location", utils.AbsoluteURI(r, "/bestellungen/%d", created.ID))
	utils.RespondWithSuccess(w, http.StatusCreated, created)
}
