package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/doru1011/swa06/models"
	apperrors "github.com/doru1011/swa06/pkg/errors"
	"github.com/doru1011/swa06/services"
	"github.com/doru1011/swa06/utils"
)

// GetKunden lists customers, filtered by nachname or email when given. An
// empty result is a 404.
func (h *Handler) GetKunden(w http.ResponseWriter, r *http.Request) {
	locale := localeFromRequest(r)

	if email := r.URL.Query().Get("email"); email != "" {
		kunde, err := h.kundeService.FindKundeByEmail(r.Context(), email, locale)
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
		return
	}

	var kunden []models.Kunde
	var err error
	if nachname := r.URL.Query().Get("nachname"); nachname != "" {
		kunden, err = h.kundeService.FindKundenByNachname(r.Context(), nachname, services.NurKunde, locale)
	} else {
		kunden, err = h.kundeService.FindAllKunden(r.Context(), services.NurKunde, services.OrderByID)
	}
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if len(kunden) == 0 {
		utils.RespondWithAPIError(w, apperrors.NotFoundError("kunde"))
		return
	}

	for i := range kunden {
		h.setKundeURIs(r, &kunden[i])
	}
	utils.RespondWithSuccess(w, http.StatusOK, kunden)
}

// GetNachnamen lists the distinct last names starting with the prefix.
func (h *Handler) GetNachnamen(w http.ResponseWriter, r *http.Request) {
	prefix := r.URL.Query().Get("prefix")
	if prefix == "" {
		utils.RespondWithError(w, http.StatusBadRequest, "Missing prefix")
		return
	}

	nachnamen, err := h.kundeService.FindNachnamenByPrefix(r.Context(), prefix)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if len(nachnamen) == 0 {
		utils.RespondWithAPIError(w, apperrors.NotFoundError("nachnamen"))
		return
	}
	utils.RespondWithSuccess(w, http.StatusOK, nachnamen)
}

// GetKundeByID returns a single customer with its address.
func (h *Handler) GetKundeByID(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	kunde, err := h.kundeService.FindKundeByID(r.Context(), id, services.NurKunde, localeFromRequest(r))
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if kunde == nil {
		utils.RespondWithAPIError(w, apperrors.NotFoundByIDError("kunde", id))
		return
	}

	h.setKundeURIs(r, kunde)
	utils.RespondWithSuccess(w, http.StatusOK, kunde)
}

// GetBestellungenByKundeID lists the orders of a customer.
func (h *Handler) GetBestellungenByKundeID(w http.ResponseWriter, r *http.Request) {
	kunde, ok := h.resolveKunde(w, r)
	if !ok {
		return
	}

	bestellungen, err := h.bestellungService.FindBestellungenByKunde(r.Context(), kunde)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if len(bestellungen) == 0 {
		utils.RespondWithAPIError(w, apperrors.NotFoundError("bestellungen"))
		return
	}

	for i := range bestellungen {
		bestellungen[i].KundeURI = utils.AbsoluteURI(r, "/kunden/%d", kunde.ID)
	}
	utils.RespondWithSuccess(w, http.StatusOK, bestellungen)
}

// GetBestellungenIdsByKundeID lists only the order ids of a customer.
func (h *Handler) GetBestellungenIdsByKundeID(w http.ResponseWriter, r *http.Request) {
	kunde, ok := h.resolveKunde(w, r)
	if !ok {
		return
	}

	bestellungen, err := h.bestellungService.FindBestellungenByKunde(r.Context(), kunde)
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	if len(bestellungen) == 0 {
		utils.RespondWithAPIError(w, apperrors.NotFoundError("bestellungen"))
		return
	}

	ids := make([]uint64, 0, len(bestellungen))
	for _, b := range bestellungen {
		ids = append(ids, b.ID)
	}
	utils.RespondWithSuccess(w, http.StatusOK, ids)
}

// CreateKunde persists a new customer with its address and answers 201 with a
// Location header.
func (h *Handler) CreateKunde(w http.ResponseWriter, r *http.Request) {
	var kunde models.Kunde
	if err := json.NewDecoder(r.Body).Decode(&kunde); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	created, err := h.kundeService.CreateKunde(r.Context(), &kunde, localeFromRequest(r))
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	h.setKundeURIs(r, created)
	w.Header().Set("Location", utils.AbsoluteURI(r, "/kunden/%d", created.ID))
	utils.RespondWithSuccess(w, http.StatusCreated, created)
}

// UpdateKunde merges a customer identified by the id in the body. The address
// in the body, when present, is merged onto the owned address row.
func (h *Handler) UpdateKunde(w http.ResponseWriter, r *http.Request) {
	var kunde models.Kunde
	if err := json.NewDecoder(r.Body).Decode(&kunde); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if _, err := h.kundeService.UpdateKunde(r.Context(), &kunde, &kunde.Adresse, localeFromRequest(r)); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondNoContent(w)
}

// DeleteKunde removes a customer without orders.
func (h *Handler) DeleteKunde(w http.ResponseWriter, r *http.Request) {
	id, err := parseID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return
	}

	kunde, err := h.kundeService.FindKundeByID(r.Context(), id, services.NurKunde, localeFromRequest(r))
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}

	if err := h.kundeService.DeleteKunde(r.Context(), kunde); err != nil {
		utils.RespondWithAPIError(w, err)
		return
	}
	utils.RespondNoContent(w)
}

func (h *Handler) resolveKunde(w http.ResponseWriter, r *http.Request) (*models.Kunde, bool) {
	id, err := parseID(r)
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid id")
		return nil, false
	}

	kunde, err := h.kundeService.FindKundeByID(r.Context(), id, services.NurKunde, localeFromRequest(r))
	if err != nil {
		utils.RespondWithAPIError(w, err)
		return nil, false
	}
	if kunde == nil {
		utils.RespondWithAPIError(w, apperrors.NotFoundByIDError("kunde", id))
		return nil, false
	}
	return kunde, true
}

func (h *Handler) setKundeURIs(r *http.Request, kunde *models.Kunde) {
	kunde.BestellungenURI = utils.AbsoluteURI(r, "/kunden/%d/bestellungen", kunde.ID)
}
