// memory — потокобезопасная in-memory реализация storage.Storage и
// storage.RefreshRegistry. Используется для локального запуска
// (storage.driver: memory) и в тестах HTTP-слоя. Данные живут до
// остановки процесса.
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/pribylovaa/go-resource-market/internal/models"
	"github.com/pribylovaa/go-resource-market/internal/storage"
)

// Storage хранит пользователей, ресурсы и справочники под одним RWMutex.
type Storage struct {
	mu sync.RWMutex

	nextUserID     int64
	nextResourceID int64

	users       map[int64]*models.User
	usersByMail map[string]int64
	resources   map[int64]*models.Resource
	lookups     map[models.LookupKind][]models.LookupItem

	now func() time.Time
}

// New создаёт пустое хранилище.
func New() *Storage {
	return &Storage{
		users:       make(map[int64]*models.User),
		usersByMail: make(map[string]int64),
		resources:   make(map[int64]*models.Resource),
		lookups:     make(map[models.LookupKind][]models.LookupItem),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SeedLookup добавляет строки в справочник kind.
func (s *Storage) SeedLookup(kind models.LookupKind, items ...models.LookupItem) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lookups[kind] = append(s.lookups[kind], items...)
	sort.Slice(s.lookups[kind], func(i, j int) bool {
		return s.lookups[kind][i].ID < s.lookups[kind][j].ID
	})
}

// SeedDefaults заполняет справочники минимальным набором для локального запуска.
func SeedDefaults(s *Storage) {
	uni := int64(1)

	s.SeedLookup(models.LookupRoles, models.LookupItem{ID: 1, Name: "student"}, models.LookupItem{ID: 2, Name: "admin"})
	s.SeedLookup(models.LookupStatuses, models.LookupItem{ID: 1, Name: "Available"}, models.LookupItem{ID: 2, Name: "Borrowed"})
	s.SeedLookup(models.LookupCategories, models.LookupItem{ID: 1, Name: "Books"}, models.LookupItem{ID: 2, Name: "Electronics"})
	s.SeedLookup(models.LookupUniversities, models.LookupItem{ID: 1, Name: "Test University"})
	s.SeedLookup(models.LookupCourses, models.LookupItem{ID: 1, Name: "Test Course", UniversityID: &uni})
}

// Ping всегда успешен.
func (s *Storage) Ping(context.Context) error { return nil }

// Close — no-op.
func (s *Storage) Close() {}

func (s *Storage) SaveUser(ctx context.Context, user *models.User) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	key := strings.ToLower(user.Email)
	if _, ok := s.usersByMail[key]; ok {
		return storage.ErrAlreadyExists
	}

	s.nextUserID++
	user.ID = s.nextUserID
	user.CreatedAt = s.now()

	cp := *user
	s.users[cp.ID] = &cp
	s.usersByMail[key] = cp.ID

	return nil
}

func (s *Storage) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.usersByMail[strings.ToLower(email)]
	if !ok {
		return nil, storage.ErrNotFound
	}

	cp := *s.users[id]

	return &cp, nil
}

func (s *Storage) UserByID(ctx context.Context, id int64) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	cp := *u

	return &cp, nil
}

func (s *Storage) UpdateProfile(ctx context.Context, id int64, update storage.ProfileUpdate) (*models.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	if update.CourseID != nil && !s.hasLookup(models.LookupCourses, *update.CourseID) ||
		update.UniversityID != nil && !s.hasLookup(models.LookupUniversities, *update.UniversityID) ||
		update.RoleID != nil && !s.hasLookup(models.LookupRoles, *update.RoleID) {
		return nil, storage.ErrInvalidReference
	}

	p := &u.Profile
	if update.CourseID != nil {
		p.CourseID = ptr(*update.CourseID)
	}
	if update.UniversityID != nil {
		p.UniversityID = ptr(*update.UniversityID)
	}
	if update.RoleID != nil {
		p.RoleID = ptr(*update.RoleID)
	}
	if update.Address != nil {
		p.Address = ptr(*update.Address)
	}
	if update.Latitude != nil {
		p.Latitude = ptr(*update.Latitude)
	}
	if update.Longitude != nil {
		p.Longitude = ptr(*update.Longitude)
	}

	cp := *u

	return &cp, nil
}

func (s *Storage) CreateResource(ctx context.Context, res *models.Resource) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[res.OwnerID]; !ok {
		return storage.ErrInvalidReference
	}
	if !s.hasLookup(models.LookupCategories, res.CategoryID) || !s.hasLookup(models.LookupStatuses, res.StatusID) {
		return storage.ErrInvalidReference
	}

	s.nextResourceID++
	now := s.now()
	res.ID = s.nextResourceID
	res.CreatedAt = now
	res.UpdatedAt = now

	s.resources[res.ID] = cloneResource(res)

	return nil
}

func (s *Storage) ResourceByID(ctx context.Context, id int64) (*models.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.resources[id]
	if !ok {
		return nil, storage.ErrNotFound
	}

	return cloneResource(r), nil
}

func (s *Storage) ResourceOwner(ctx context.Context, id int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	r, ok := s.resources[id]
	if !ok {
		return 0, storage.ErrNotFound
	}

	return r.OwnerID, nil
}

func (s *Storage) ListResources(ctx context.Context, filter storage.ResourceFilter) ([]models.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Resource, 0, len(s.resources))
	for _, r := range s.resources {
		if filter.OwnerID != nil && r.OwnerID != *filter.OwnerID {
			continue
		}
		if filter.CategoryID != nil && r.CategoryID != *filter.CategoryID {
			continue
		}
		out = append(out, *cloneResource(r))
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []models.Resource{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}

	return out, nil
}

func (s *Storage) UpdateResource(ctx context.Context, id, ownerID int64, update storage.ResourceUpdate) (*models.Resource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.resources[id]
	if !ok || r.OwnerID != ownerID {
		return nil, storage.ErrNotFound
	}

	if update.CategoryID != nil && !s.hasLookup(models.LookupCategories, *update.CategoryID) ||
		update.StatusID != nil && !s.hasLookup(models.LookupStatuses, *update.StatusID) {
		return nil, storage.ErrInvalidReference
	}

	next := cloneResource(r)
	if update.Title != nil {
		next.Title = *update.Title
	}
	if update.Description != nil {
		next.Description = *update.Description
	}
	if update.CategoryID != nil {
		next.CategoryID = *update.CategoryID
	}
	if update.StatusID != nil {
		next.StatusID = *update.StatusID
	}
	if update.Price != nil {
		next.Price = ptr(*update.Price)
	}
	if update.Images != nil {
		next.Images = append([]string(nil), (*update.Images)...)
	}
	next.UpdatedAt = s.now()

	s.resources[id] = next

	return cloneResource(next), nil
}

func (s *Storage) DeleteResource(ctx context.Context, id, ownerID int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	r, ok := s.resources[id]
	if !ok || r.OwnerID != ownerID {
		return storage.ErrNotFound
	}

	delete(s.resources, id)

	return nil
}

func (s *Storage) ListLookup(ctx context.Context, kind models.LookupKind, universityID *int64) ([]models.LookupItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.LookupItem, 0, len(s.lookups[kind]))
	for _, it := range s.lookups[kind] {
		if kind == models.LookupCourses && universityID != nil &&
			(it.UniversityID == nil || *it.UniversityID != *universityID) {
			continue
		}
		out = append(out, it)
	}

	return out, nil
}

// hasLookup вызывается под блокировкой.
func (s *Storage) hasLookup(kind models.LookupKind, id int64) bool {
	for _, it := range s.lookups[kind] {
		if it.ID == id {
			return true
		}
	}

	return false
}

func cloneResource(r *models.Resource) *models.Resource {
	cp := *r
	cp.Images = append([]string{}, r.Images...)
	if r.Price != nil {
		cp.Price = ptr(*r.Price)
	}

	return &cp
}

func ptr[T any](v T) *T { return &v }

var _ storage.Storage = (*Storage)(nil)
