package service

// Тесты сервисного слоя: моки хранилищ сгенерированы в пакете /mocks,
// токены подписываются настоящим token.Codec.
//
//   go test ./internal/service -v -race -count=1

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-resource-market/internal/config"
	"github.com/pribylovaa/go-resource-market/internal/token"
	"github.com/pribylovaa/go-resource-market/mocks"
)

type testDeps struct {
	users     *mocks.MockUserStorage
	resources *mocks.MockResourceStorage
	lookups   *mocks.MockLookupStorage
	registry  *mocks.MockRefreshRegistry
	images    *mocks.MockImageStorage
	codec     *token.Codec
}

func newCodec(t *testing.T, opts ...token.Option) *token.Codec {
	t.Helper()

	codec, err := token.New(token.Config{
		AccessSecret:  "access-secret",
		RefreshSecret: "refresh-secret",
		Issuer:        "market-test",
	}, opts...)
	require.NoError(t, err)

	return codec
}

// newServiceWithMocks собирает Service на моках; withImages=false
// оставляет загрузку изображений выключенной.
func newServiceWithMocks(t *testing.T, withImages bool) (*Service, *testDeps) {
	t.Helper()

	ctrl := gomock.NewController(t)
	d := &testDeps{
		users:     mocks.NewMockUserStorage(ctrl),
		resources: mocks.NewMockResourceStorage(ctrl),
		lookups:   mocks.NewMockLookupStorage(ctrl),
		registry:  mocks.NewMockRefreshRegistry(ctrl),
		images:    mocks.NewMockImageStorage(ctrl),
		codec:     newCodec(t),
	}

	st := Storages{
		Users:     d.users,
		Resources: d.resources,
		Lookups:   d.lookups,
		Registry:  d.registry,
	}
	if withImages {
		st.Images = d.images
	}

	return New(st, d.codec, defaultImages()), d
}

func ptr[T any](v T) *T { return &v }

func defaultImages() config.ImagesConfig { return config.ImagesConfig{MaxPerResource: 3} }
