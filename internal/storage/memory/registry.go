package memory

import (
	"context"
	"sync"
	"time"

	"github.com/pribylovaa/go-resource-market/internal/storage"
)

type registryEntry struct {
	userID    int64
	expiresAt time.Time
}

// Registry — реестр refresh-токенов в памяти процесса. Перезапуск
// процесса обнуляет реестр: все выданные refresh-токены становятся
// недействительными.
type Registry struct {
	mu      sync.Mutex
	entries map[string]registryEntry
	now     func() time.Time
}

// NewRegistry создаёт пустой реестр.
func NewRegistry() *Registry {
	return &Registry{
		entries: make(map[string]registryEntry),
		now:     time.Now,
	}
}

func (r *Registry) Register(ctx context.Context, token string, userID int64, expiresAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := storage.TokenKey(token)
	if _, ok := r.entries[key]; ok {
		return nil
	}
	r.entries[key] = registryEntry{userID: userID, expiresAt: expiresAt}

	return nil
}

func (r *Registry) IsValid(ctx context.Context, token string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.entries[storage.TokenKey(token)]
	if !ok {
		return false, nil
	}

	if !e.expiresAt.IsZero() && !r.now().Before(e.expiresAt) {
		return false, nil
	}

	return true, nil
}

func (r *Registry) Revoke(ctx context.Context, token string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.entries, storage.TokenKey(token))

	return nil
}

// Len возвращает число записей в реестре.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.entries)
}

var _ storage.RefreshRegistry = (*Registry)(nil)
