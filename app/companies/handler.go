package companies

import (
	"context"
	"net/http"

	"github.com/kbo-registry/kbo-crud/app/web"
	"github.com/kbo-registry/kbo-crud/models"
	"github.com/kbo-registry/kbo-crud/schemas"
	"github.com/kbo-registry/kbo-crud/validation"
)

type CompanyProvider interface {
	CreateCompany(ctx context.Context, in schemas.CompanyCreate) (*models.Company, error)
	ListCompanies(ctx context.Context, skip, limit int) ([]models.Company, error)
	GetCompany(ctx context.Context, id uint) (*models.Company, error)
	UpdateCompany(ctx context.Context, id uint, in schemas.CompanyUpdate) (*models.Company, error)
	DeleteCompany(ctx context.Context, id uint) error
}

type CompanyHandler struct {
	svc CompanyProvider
}

func NewCompanyHandler(s CompanyProvider) *CompanyHandler {
	return &CompanyHandler{
		svc: s,
	}
}

func (h *CompanyHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input schemas.CompanyCreate
	if err := validation.DecodeAndValidate(r, &input); err != nil {
		web.WriteError(w, r, err)
		return
	}

	company, err := h.svc.CreateCompany(r.Context(), input)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	web.WriteJSON(w, http.StatusCreated, schemas.FromCompany(company))
}

func (h *CompanyHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := web.Page(r)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	res, err := h.svc.ListCompanies(r.Context(), skip, limit)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	companies := make([]schemas.CompanyRead, len(res))
	for i := range res {
		companies[i] = schemas.FromCompany(&res[i])
	}
	web.WriteJSON(w, http.StatusOK, companies)
}

func (h *CompanyHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	company, err := h.svc.GetCompany(r.Context(), id)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, schemas.FromCompany(company))
}

// HandleUpdate applies a partial update: only the fields in the body change.
func (h *CompanyHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	var input schemas.CompanyUpdate
	if err := validation.DecodeAndValidate(r, &input); err != nil {
		web.WriteError(w, r, err)
		return
	}

	company, err := h.svc.UpdateCompany(r.Context(), id, input)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	web.WriteJSON(w, http.StatusOK, schemas.FromCompany(company))
}

func (h *CompanyHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := web.PathID(r, "id")
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	if err := h.svc.DeleteCompany(r.Context(), id); err != nil {
		web.WriteError(w, r, err)
		return
	}

	web.WriteMessage(w, http.StatusOK, "Company deleted")
}
