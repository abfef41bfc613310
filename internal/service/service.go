// service содержит бизнес-логику маркетплейса:
//   - регистрацию, вход, обмен и отзыв refresh-токенов;
//   - проверку access-токенов и владения ресурсами;
//   - операции над ресурсами, профилями и справочниками.
//
// Service не хранит состояние запроса и безопасен для конкурентного
// использования, если потокобезопасны переданные хранилища.
// Ошибки возвращаются как обёртки над переменными ниже; транспорт
// маппит их в HTTP-статусы (см. internal/http/errors).
package service

import (
	"errors"
	"fmt"

	"github.com/pribylovaa/go-resource-market/internal/config"
	"github.com/pribylovaa/go-resource-market/internal/storage"
	"github.com/pribylovaa/go-resource-market/internal/token"
)

var (
	// ErrInvalidCredentials — общий класс ошибок входа.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUserNotFound — пользователь с таким email не найден (HTTP 400).
	ErrUserNotFound = fmt.Errorf("%w: user not found", ErrInvalidCredentials)
	// ErrWrongPassword — пароль не совпал (HTTP 403).
	ErrWrongPassword = fmt.Errorf("%w: wrong password", ErrInvalidCredentials)

	// ErrUnauthenticated — токен не передан (HTTP 401).
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden — токен недействителен, не зарегистрирован или
	// принадлежит не владельцу (HTTP 403).
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidArgument — некорректные входные данные (HTTP 400).
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNotFound — сущность не найдена (HTTP 404).
	ErrNotFound = errors.New("not found")
	// ErrEmailTaken — e-mail уже занят (HTTP 409).
	ErrEmailTaken = errors.New("email already taken")
	// ErrImagesDisabled — объектное хранилище не сконфигурировано (HTTP 501).
	ErrImagesDisabled = errors.New("image uploads are disabled")
	// ErrInternal — внутренняя ошибка сервиса (HTTP 500).
	ErrInternal = errors.New("internal")
)

// Storages — зависимости Service от слоя хранения.
type Storages struct {
	Users     storage.UserStorage
	Resources storage.ResourceStorage
	Lookups   storage.LookupStorage
	Registry  storage.RefreshRegistry
	// Images может быть nil: загрузка изображений отключена.
	Images storage.ImageStorage
}

// Service описывает бизнес-логику market-service.
type Service struct {
	users     storage.UserStorage
	resources storage.ResourceStorage
	lookups   storage.LookupStorage
	registry  storage.RefreshRegistry
	images    storage.ImageStorage
	tokens    *token.Codec
	cfg       config.ImagesConfig
}

// New создаёт новый экземпляр Service.
func New(st Storages, tokens *token.Codec, cfg config.ImagesConfig) *Service {
	return &Service{
		users:     st.Users,
		resources: st.Resources,
		lookups:   st.Lookups,
		registry:  st.Registry,
		images:    st.Images,
		tokens:    tokens,
		cfg:       cfg,
	}
}
