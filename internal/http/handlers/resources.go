package handlers

import (
	"net/http"

	apierrors "github.com/pribylovaa/go-resource-market/internal/http/errors"
	"github.com/pribylovaa/go-resource-market/internal/service"
	"github.com/pribylovaa/go-resource-market/internal/storage"
)

func writeNotFound(w http.ResponseWriter, r *http.Request) {
	apierrors.Write(w, r, http.StatusNotFound, "not_found", "not found")
}

// ListResources — GET /resources?ownerId=&categoryId=&limit=&offset=.
func (h *Handlers) ListResources(w http.ResponseWriter, r *http.Request) {
	ownerID, ok1 := queryID(r, "ownerId")
	categoryID, ok2 := queryID(r, "categoryId")
	limit, ok3 := queryInt(r, "limit")
	offset, ok4 := queryInt(r, "offset")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		writeInvalidArgument(w, r, nil)
		return
	}

	list, err := h.svc.ListResources(r.Context(), storage.ResourceFilter{
		OwnerID:    ownerID,
		CategoryID: categoryID,
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	out := make([]resourceResponse, 0, len(list))
	for i := range list {
		out = append(out, resourceFromModel(&list[i]))
	}

	writeJSON(w, http.StatusOK, out)
}

// GetResource — GET /resources/{id}.
func (h *Handlers) GetResource(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r, "id")
	if !ok {
		writeNotFound(w, r)
		return
	}

	res, err := h.svc.ResourceByID(r.Context(), id)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resourceFromModel(res))
}

// CreateResource — POST /resources: 201 {resourceId}. Владелец — из токена.
func (h *Handlers) CreateResource(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	var in createResourceRequest
	if err := decodeStrict(r, &in); err != nil {
		writeMalformed(w, r)
		return
	}
	in.normalize()

	if err := in.Validate(); err != nil {
		writeInvalidArgument(w, r, err)
		return
	}

	res, err := h.svc.CreateResource(r.Context(), service.CreateResourceInput{
		OwnerID:     userID,
		Title:       in.Title,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		StatusID:    in.StatusID,
		Price:       in.Price,
		Images:      []string(in.Images),
	})
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, createResourceResponse{ResourceID: res.ID})
}

// UpdateResource — PATCH /resources/{id}: только владелец.
func (h *Handlers) UpdateResource(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeNotFound(w, r)
		return
	}

	var in updateResourceRequest
	if err := decodeStrict(r, &in); err != nil {
		writeMalformed(w, r)
		return
	}
	in.normalize()

	if err := in.Validate(); err != nil {
		writeInvalidArgument(w, r, err)
		return
	}

	upd := service.UpdateResourceInput{
		Title:       in.Title,
		Description: in.Description,
		CategoryID:  in.CategoryID,
		StatusID:    in.StatusID,
		Price:       in.Price,
	}
	if in.Images != nil {
		images := []string(*in.Images)
		if images == nil {
			images = []string{}
		}
		upd.Images = &images
	}

	res, err := h.svc.UpdateResource(r.Context(), userID, id, upd)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, resourceFromModel(res))
}

// DeleteResource — DELETE /resources/{id}: 204, только владелец.
func (h *Handlers) DeleteResource(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeNotFound(w, r)
		return
	}

	if err := h.svc.DeleteResource(r.Context(), userID, id); err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ImagePresign — POST /resources/{id}/images/presign: presigned PUT URL
// для загрузки изображения владельцем.
func (h *Handlers) ImagePresign(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUser(w, r)
	if !ok {
		return
	}

	id, ok := pathID(r, "id")
	if !ok {
		writeNotFound(w, r)
		return
	}

	var in presignRequest
	if err := decodeStrict(r, &in); err != nil {
		writeMalformed(w, r)
		return
	}
	if err := in.Validate(); err != nil {
		writeInvalidArgument(w, r, err)
		return
	}

	info, err := h.svc.ImageUploadURL(r.Context(), userID, id, in.ContentType, in.ContentLength)
	if err != nil {
		apierrors.WriteError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, presignResponse{
		UploadURL:      info.UploadURL,
		ObjectKey:      info.ObjectKey,
		PublicURL:      info.PublicURL,
		ExpiresSeconds: int64(info.Expires.Seconds()),
		RequiredHeader: info.RequiredHeader,
	})
}
