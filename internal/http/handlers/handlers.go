// handlers содержит REST-обработчики market-service. Обработчики только
// декодируют/валидируют запрос, вызывают сервисный слой и сериализуют
// ответ; ошибки выводятся через apierrors.WriteError.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	apierrors "github.com/pribylovaa/go-resource-market/internal/http/errors"
	"github.com/pribylovaa/go-resource-market/internal/http/middleware"
	"github.com/pribylovaa/go-resource-market/internal/models"
	"github.com/pribylovaa/go-resource-market/internal/service"
	"github.com/pribylovaa/go-resource-market/internal/storage"
	"github.com/pribylovaa/go-resource-market/internal/token"
)

// Service — методы сервисного слоя, которые нужны обработчикам.
type Service interface {
	Register(ctx context.Context, in service.RegisterInput) (int64, error)
	Login(ctx context.Context, email, password string) (*models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
	Logout(ctx context.Context, refreshToken string) error
	ValidateAccessToken(ctx context.Context, accessToken string) (*token.Claims, error)

	UserByID(ctx context.Context, id int64) (*models.User, error)
	UpdateProfile(ctx context.Context, userID, targetID int64, upd storage.ProfileUpdate) (*models.User, error)

	CreateResource(ctx context.Context, in service.CreateResourceInput) (*models.Resource, error)
	ListResources(ctx context.Context, filter storage.ResourceFilter) ([]models.Resource, error)
	ResourceByID(ctx context.Context, id int64) (*models.Resource, error)
	UpdateResource(ctx context.Context, userID, resourceID int64, in service.UpdateResourceInput) (*models.Resource, error)
	DeleteResource(ctx context.Context, userID, resourceID int64) error
	ImageUploadURL(ctx context.Context, userID, resourceID int64, contentType string, contentLength int64) (*storage.UploadInfo, error)

	ListLookup(ctx context.Context, kind models.LookupKind, universityID *int64) ([]models.LookupItem, error)
}

var _ Service = (*service.Service)(nil)

// Handlers агрегирует зависимости обработчиков.
type Handlers struct {
	svc Service
}

func New(svc Service) *Handlers {
	return &Handlers{svc: svc}
}

// writeJSON — единый ответ JSON с нужным Content-Type.
func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

// decodeStrict — строгий JSON-декодер: запрещаем неизвестные поля.
// Пустое тело возвращает io.EOF как есть.
func decodeStrict(r *http.Request, value any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(value)
}

// decodeOptional — как decodeStrict, но пустое тело не ошибка.
func decodeOptional(r *http.Request, value any) error {
	if err := decodeStrict(r, value); err != nil && !errors.Is(err, io.EOF) {
		return err
	}

	return nil
}

func writeInvalidArgument(w http.ResponseWriter, r *http.Request, err error) {
	msg := "invalid argument"
	if err != nil {
		msg = err.Error()
	}

	apierrors.Write(w, r, http.StatusBadRequest, "invalid_argument", msg)
}

func writeMalformed(w http.ResponseWriter, r *http.Request) {
	apierrors.Write(w, r, http.StatusBadRequest, "invalid_argument", "malformed JSON body")
}

// pathID разбирает положительный int64 из параметра пути.
func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}

	return id, true
}

// queryID разбирает необязательный положительный int64 из query.
func queryID(r *http.Request, name string) (*int64, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, true
	}

	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return nil, false
	}

	return &id, true
}

func queryInt(r *http.Request, name string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, false
	}

	return n, true
}

// currentUser достаёт id пользователя из claims, положенных RequireAuth.
func currentUser(w http.ResponseWriter, r *http.Request) (int64, bool) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok || claims.ID <= 0 {
		apierrors.Write(w, r, http.StatusUnauthorized, "unauthenticated", "access token required")
		return 0, false
	}

	return claims.ID, true
}
