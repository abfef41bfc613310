package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	apierrors "github.com/pribylovaa/go-resource-market/internal/http/errors"
	"github.com/pribylovaa/go-resource-market/internal/service"
)

// Register — POST /register: 201 {id}.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var in registerRequest
	if err := decodeStrict(r, &in); err != nil {
		writeMalformed(w, r)
		return
	}
	if err := in.Validate(); err != nil {
		writeInvalidArgument(w, r, err)
		return
	}

	id, err := h.svc.Register(r.Context(), service.RegisterInput{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, registerResponse{ID: id})
}

// Login — POST /login: 200 {accessToken, refreshToken}.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var in loginRequest
	if err := decodeStrict(r, &in); err != nil {
		writeMalformed(w, r)
		return
	}
	if err := in.Validate(); err != nil {
		writeInvalidArgument(w, r, err)
		return
	}

	pair, err := h.svc.Login(r.Context(), in.Email, in.Password)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenPairResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	})
}

// Token — POST /token: обмен refresh-токена на новый access-токен.
// Пустое тело или отсутствующий токен -> 401.
func (h *Handlers) Token(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := decodeStrict(r, &in); err != nil && !errors.Is(err, io.EOF) {
		writeMalformed(w, r)
		return
	}

	access, err := h.svc.Refresh(r.Context(), in.value())
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, accessTokenResponse{AccessToken: access})
}

// Logout — DELETE /logout: отзыв refresh-токена. Всегда 204, кроме
// нечитаемого JSON (400) и отказа хранилища (500).
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	var in refreshRequest
	if err := decodeOptional(r, &in); err != nil {
		writeMalformed(w, r)
		return
	}

	if err := h.svc.Logout(r.Context(), in.value()); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Health — GET /health.
func (h *Handlers) Health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthResponse{Status: "healthy", Timestamp: time.Now().UTC()})
}
