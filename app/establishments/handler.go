package establishments

import (
	"context"
	"net/http"

	"github.com/kbo-registry/kbo-crud/app/web"
	"github.com/kbo-registry/kbo-crud/models"
	"github.com/kbo-registry/kbo-crud/schemas"
	"github.com/kbo-registry/kbo-crud/validation"
)

type EstablishmentProvider interface {
	CreateEstablishment(ctx context.Context, companyID uint, in schemas.EstablishmentCreate) (*models.Establishment, error)
	ListEstablishments(ctx context.Context, companyID uint) ([]models.Establishment, error)
	GetEstablishment(ctx context.Context, id uint) (*models.Establishment, error)
	ReplaceEstablishment(ctx context.Context, id uint, in schemas.EstablishmentInput) (*models.Establishment, error)
	DeleteEstablishment(ctx context.Context, id uint) error
}

type EstablishmentHandler struct {
	svc EstablishmentProvider
}

func NewEstablishmentHandler(s EstablishmentProvider) *EstablishmentHandler {
	return &EstablishmentHandler{svc: s}
}

// HandleCreate serves POST /companies/{id}/establishments.
func (h *EstablishmentHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	companyID, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	var input schemas.EstablishmentCreate
	if err := validation.DecodeAndValidate(r, &input); err != nil {
		web.WriteError(w, r, err)
		return
	}

	establishment, err := h.svc.CreateEstablishment(r.Context(), companyID, input)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	web.WriteJSON(w, http.StatusCreated, schemas.FromEstablishment(establishment))
}

// HandleListForCompany serves GET /companies/{id}/establishments.
func (h *EstablishmentHandler) HandleListForCompany(w http.ResponseWriter, r *http.Request) {
	companyID, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	res, err := h.svc.ListEstablishments(r.Context(), companyID)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	establishments := make([]schemas.EstablishmentRead, len(res))
	for i := range res {
		establishments[i] = schemas.FromEstablishment(&res[i])
	}
	web.WriteJSON(w, http.StatusOK, establishments)
}

func (h *EstablishmentHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	establishment, err := h.svc.GetEstablishment(r.Context(), id)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, schemas.FromEstablishment(establishment))
}

// HandleReplace replaces every editable field with the body's values.
func (h *EstablishmentHandler) HandleReplace(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	var input schemas.EstablishmentInput
	if err := validation.DecodeAndValidate(r, &input); err != nil {
		web.WriteError(w, r, err)
		return
	}

	establishment, err := h.svc.ReplaceEstablishment(r.Context(), id, input)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, schemas.FromEstablishment(establishment))
}

func (h *EstablishmentHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteEstablishment(r.Context(), id); err != nil {
		web.WriteError(w, r, err)
		return
	}

	web.WriteMessage(w, http.StatusOK, "Establishment deleted")
}
