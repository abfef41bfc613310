// storage описывает контракты слоя хранения: учётные записи, ресурсы,
// справочники и реестр refresh-токенов. Реализации: postgres (основная),
// memory (локальный запуск и тесты), redis (только реестр).
package storage

//go:generate mockgen -destination=../../mocks/storage.go -package=mocks github.com/pribylovaa/go-resource-market/internal/storage ImageStorage,LookupStorage,RefreshRegistry,ResourceStorage,UserStorage

import (
	"context"
	"errors"
	"time"

	"github.com/pribylovaa/go-resource-market/internal/models"
)

var (
	// ErrNotFound — запись не найдена.
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists — нарушение уникальности (email).
	ErrAlreadyExists = errors.New("already exists")
	// ErrInvalidReference — ссылка на несуществующую запись (категория, статус и т.п.).
	ErrInvalidReference = errors.New("invalid reference")
)

// ProfileUpdate — частичное обновление профиля: обновляются только
// непустые указатели.
type ProfileUpdate struct {
	CourseID     *int64
	UniversityID *int64
	RoleID       *int64
	Address      *string
	Latitude     *float64
	Longitude    *float64
}

// UserStorage — хранилище учётных записей.
type UserStorage interface {
	// SaveUser создаёт пользователя и заполняет user.ID и user.CreatedAt.
	// Дубликат email -> ErrAlreadyExists.
	SaveUser(ctx context.Context, user *models.User) error
	// UserByEmail находит пользователя по email. Нет записи -> ErrNotFound.
	UserByEmail(ctx context.Context, email string) (*models.User, error)
	// UserByID находит пользователя по id. Нет записи -> ErrNotFound.
	UserByID(ctx context.Context, id int64) (*models.User, error)
	// UpdateProfile обновляет поля профиля. Нет записи -> ErrNotFound.
	UpdateProfile(ctx context.Context, id int64, update ProfileUpdate) (*models.User, error)
}

// ResourceUpdate — частичное обновление ресурса. Images != nil заменяет
// набор изображений целиком (в той же транзакции).
type ResourceUpdate struct {
	Title       *string
	Description *string
	CategoryID  *int64
	StatusID    *int64
	Price       *float64
	Images      *[]string
}

// ResourceFilter — параметры выборки ресурсов.
type ResourceFilter struct {
	OwnerID    *int64
	CategoryID *int64
	Limit      int
	Offset     int
}

// ResourceStorage — хранилище ресурсов и их изображений.
type ResourceStorage interface {
	// CreateResource атомарно вставляет ресурс и все его изображения:
	// либо видно всё, либо ничего. Заполняет ID/CreatedAt/UpdatedAt.
	CreateResource(ctx context.Context, res *models.Resource) error
	// ResourceByID возвращает ресурс с изображениями. Нет записи -> ErrNotFound.
	ResourceByID(ctx context.Context, id int64) (*models.Resource, error)
	// ResourceOwner возвращает owner_id ресурса. Нет записи -> ErrNotFound.
	ResourceOwner(ctx context.Context, id int64) (int64, error)
	// ListResources возвращает ресурсы по фильтру, новые первыми.
	ListResources(ctx context.Context, filter ResourceFilter) ([]models.Resource, error)
	// UpdateResource обновляет ресурс владельца ownerID. Если строки
	// (id, ownerID) нет -> ErrNotFound.
	UpdateResource(ctx context.Context, id, ownerID int64, update ResourceUpdate) (*models.Resource, error)
	// DeleteResource удаляет ресурс владельца ownerID вместе с изображениями.
	// Если строки (id, ownerID) нет -> ErrNotFound.
	DeleteResource(ctx context.Context, id, ownerID int64) error
}

// LookupStorage — справочники (только чтение).
type LookupStorage interface {
	// ListLookup возвращает строки справочника kind, отсортированные по id.
	// universityID учитывается только для LookupCourses.
	ListLookup(ctx context.Context, kind models.LookupKind, universityID *int64) ([]models.LookupItem, error)
}

// RefreshRegistry — реестр действующих refresh-токенов. Токен пригоден,
// пока он зарегистрирован и не отозван. Операции идемпотентны и
// линеаризуемы для одного токена.
type RefreshRegistry interface {
	// Register добавляет токен. Повторная регистрация -> no-op.
	// expiresAt.IsZero() -> без срока.
	Register(ctx context.Context, token string, userID int64, expiresAt time.Time) error
	// IsValid сообщает, присутствует ли токен в реестре.
	IsValid(ctx context.Context, token string) (bool, error)
	// Revoke удаляет токен. Отсутствующий токен -> no-op, не ошибка.
	Revoke(ctx context.Context, token string) error
}

// Storage — полный набор хранилищ сервиса.
type Storage interface {
	UserStorage
	ResourceStorage
	LookupStorage
	Ping(ctx context.Context) error
	Close()
}
