package activities

import (
	"context"
	"net/http"

	"github.com/kbo-registry/kbo-crud/app/web"
	"github.com/kbo-registry/kbo-crud/models"
	"github.com/kbo-registry/kbo-crud/schemas"
)

type ActivityProvider interface {
	ListActivities(ctx context.Context, skip, limit int) ([]models.Activity, error)
}

type ActivityHandler struct {
	svc ActivityProvider
}

func NewActivityHandler(s ActivityProvider) *ActivityHandler {
	return &ActivityHandler{svc: s}
}

func (h *ActivityHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	skip, limit, err := web.Page(r)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	res, err := h.svc.ListActivities(r.Context(), skip, limit)
	if err != nil {
		web.WriteError(w, r, err)
		return
	}

	response := make([]schemas.ActivityRead, len(res))
	for i := range res {
		response[i] = schemas.FromActivity(&res[i])
	}
	web.WriteJSON(w, http.StatusOK, response)
}
