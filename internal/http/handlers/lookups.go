package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-resource-market/internal/http/errors"
	"github.com/pribylovaa/go-resource-market/internal/models"
)

// Lookup возвращает обработчик GET-списка справочника kind. Для курсов
// поддерживается фильтр ?universityId=.
func (h *Handlers) Lookup(kind models.LookupKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var universityID *int64
		if kind == models.LookupCourses {
			id, ok := queryID(r, "universityId")
			if !ok {
				writeInvalidArgument(w, r, nil)
				return
			}
			universityID = id
		}

		items, err := h.svc.ListLookup(r.Context(), kind, universityID)
		if err != nil {
			apierrors.WriteError(w, r, err)
			return
		}

		out := make([]lookupResponse, 0, len(items))
		for _, it := range items {
			out = append(out, lookupResponse{ID: it.ID, Name: it.Name, UniversityID: it.UniversityID})
		}

		writeJSON(w, http.StatusOK, out)
	}
}
