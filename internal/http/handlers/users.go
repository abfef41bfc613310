package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-resource-market/internal/http/errors"
)

// Me — GET /users/me: учётная запись владельца access-токена.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	user, err := h.svc.UserByID(r.Context(), userID)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userFromModel(user))
}

// UpdateProfile — PUT /users/{id}/profile: только свой профиль.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	targetID, ok := pathID(r, "id")
	if !ok {
		apierrors.Write(w, r, http.StatusNotFound, "not_found", "not found")
		return
	}

	var in profileRequest
	if err := decodeStrict(r, &in); err != nil {
		writeMalformed(w, r)
		return
	}
	in.normalize()

	if err := in.Validate(); err != nil {
		writeInvalidArgument(w, r, err)
		return
	}

	user, err := h.svc.UpdateProfile(r.Context(), userID, targetID, in.toUpdate())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, userFromModel(user))
}
