package service

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"

	"github.com/pribylovaa/go-resource-market/internal/models"
	"github.com/pribylovaa/go-resource-market/internal/storage"
)

func validCreateInput() CreateResourceInput {
	return CreateResourceInput{
		OwnerID:    1,
		Title:      " Calculus ",
		CategoryID: 1,
		StatusID:   1,
		Price:      ptr(12.5),
		Images:     []string{"https://img/1.png", "https://img/2.png"},
	}
}

func TestService_CreateResource_OK(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	d.resources.EXPECT().
		CreateResource(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, r *models.Resource) error {
			require.Equal(t, "Calculus", r.Title)
			require.Equal(t, int64(1), r.OwnerID)
			require.Len(t, r.Images, 2)
			r.ID = 42
			return nil
		})

	res, err := s.CreateResource(context.Background(), validCreateInput())
	require.NoError(t, err)
	require.Equal(t, int64(42), res.ID)
}

func TestService_CreateResource_Validation(t *testing.T) {
	s, _ := newServiceWithMocks(t, false)

	cases := map[string]func(in *CreateResourceInput){
		"no owner":       func(in *CreateResourceInput) { in.OwnerID = 0 },
		"blank title":    func(in *CreateResourceInput) { in.Title = "  " },
		"no category":    func(in *CreateResourceInput) { in.CategoryID = 0 },
		"no status":      func(in *CreateResourceInput) { in.StatusID = -1 },
		"negative price": func(in *CreateResourceInput) { in.Price = ptr(-1.0) },
		"empty image":    func(in *CreateResourceInput) { in.Images = []string{"https://img/1.png", " "} },
		"too many images": func(in *CreateResourceInput) {
			in.Images = []string{"a", "b", "c", "d"}
		},
	}

	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			in := validCreateInput()
			mutate(&in)

			_, err := s.CreateResource(context.Background(), in)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestService_CreateResource_StorageErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{name: "bad reference", err: storage.ErrInvalidReference, wantErr: ErrInvalidArgument},
		{name: "internal", err: errors.New("tx aborted"), wantErr: ErrInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, d := newServiceWithMocks(t, false)
			d.resources.EXPECT().CreateResource(gomock.Any(), gomock.Any()).Return(tt.err)

			_, err := s.CreateResource(context.Background(), validCreateInput())
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestService_ListResources_Limits(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	d.resources.EXPECT().
		ListResources(gomock.Any(), storage.ResourceFilter{Limit: DefaultListLimit}).
		Return([]models.Resource{{ID: 1}}, nil)
	d.resources.EXPECT().
		ListResources(gomock.Any(), storage.ResourceFilter{Limit: MaxListLimit, Offset: 5}).
		Return(nil, nil)

	list, err := s.ListResources(context.Background(), storage.ResourceFilter{})
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = s.ListResources(context.Background(), storage.ResourceFilter{Limit: 1000, Offset: 5})
	require.NoError(t, err)

	_, err = s.ListResources(context.Background(), storage.ResourceFilter{Offset: -1})
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestService_ResourceByID(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	d.resources.EXPECT().ResourceByID(gomock.Any(), int64(3)).Return(&models.Resource{ID: 3}, nil)
	d.resources.EXPECT().ResourceByID(gomock.Any(), int64(4)).Return(nil, storage.ErrNotFound)

	res, err := s.ResourceByID(context.Background(), 3)
	require.NoError(t, err)
	require.Equal(t, int64(3), res.ID)

	_, err = s.ResourceByID(context.Background(), 4)
	require.ErrorIs(t, err, ErrNotFound)

	_, err = s.ResourceByID(context.Background(), 0)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateResource_Owner(t *testing.T) {
	s, d := newServiceWithMocks(t, false)
	images := []string{"https://img/new.png"}

	gomock.InOrder(
		d.resources.EXPECT().ResourceOwner(gomock.Any(), int64(10)).Return(int64(1), nil),
		d.resources.EXPECT().
			UpdateResource(gomock.Any(), int64(10), int64(1), gomock.Any()).
			DoAndReturn(func(_ context.Context, _, _ int64, upd storage.ResourceUpdate) (*models.Resource, error) {
				require.Equal(t, "New", *upd.Title)
				require.Equal(t, images, *upd.Images)
				require.Nil(t, upd.Price)
				return &models.Resource{ID: 10, Title: "New", Images: images}, nil
			}),
	)

	res, err := s.UpdateResource(context.Background(), 1, 10, UpdateResourceInput{Title: ptr(" New "), Images: &images})
	require.NoError(t, err)
	require.Equal(t, "New", res.Title)
}

func TestService_UpdateResource_NotOwner(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	d.resources.EXPECT().ResourceOwner(gomock.Any(), int64(10)).Return(int64(1), nil)

	_, err := s.UpdateResource(context.Background(), 2, 10, UpdateResourceInput{Title: ptr("x")})
	require.ErrorIs(t, err, ErrForbidden)
}

func TestService_UpdateResource_Absent(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	d.resources.EXPECT().ResourceOwner(gomock.Any(), int64(10)).Return(int64(0), storage.ErrNotFound)

	_, err := s.UpdateResource(context.Background(), 2, 10, UpdateResourceInput{Title: ptr("x")})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestService_UpdateResource_Validation(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	d.resources.EXPECT().ResourceOwner(gomock.Any(), int64(10)).Return(int64(1), nil).AnyTimes()

	for _, in := range []UpdateResourceInput{
		{Title: ptr("  ")},
		{CategoryID: ptr(int64(0))},
		{Price: ptr(-5.0)},
		{Images: &[]string{""}},
	} {
		_, err := s.UpdateResource(context.Background(), 1, 10, in)
		require.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestService_DeleteResource(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	d.resources.EXPECT().ResourceOwner(gomock.Any(), int64(10)).Return(int64(1), nil).Times(2)
	d.resources.EXPECT().DeleteResource(gomock.Any(), int64(10), int64(1)).Return(nil)

	require.NoError(t, s.DeleteResource(context.Background(), 1, 10))
	require.ErrorIs(t, s.DeleteResource(context.Background(), 2, 10), ErrForbidden)
}

func TestService_ImageUploadURL(t *testing.T) {
	t.Run("disabled", func(t *testing.T) {
		s, _ := newServiceWithMocks(t, false)

		_, err := s.ImageUploadURL(context.Background(), 1, 10, "image/png", 100)
		require.ErrorIs(t, err, ErrImagesDisabled)
	})

	t.Run("owner", func(t *testing.T) {
		s, d := newServiceWithMocks(t, true)
		want := &storage.UploadInfo{UploadURL: "http://s3/put", ObjectKey: "resources/10/x.png"}

		d.resources.EXPECT().ResourceOwner(gomock.Any(), int64(10)).Return(int64(1), nil)
		d.images.EXPECT().ImageUploadURL(gomock.Any(), int64(10), "image/png", int64(100)).Return(want, nil)

		got, err := s.ImageUploadURL(context.Background(), 1, 10, "image/png", 100)
		require.NoError(t, err)
		require.Equal(t, want, got)
	})

	t.Run("not owner", func(t *testing.T) {
		s, d := newServiceWithMocks(t, true)
		d.resources.EXPECT().ResourceOwner(gomock.Any(), int64(10)).Return(int64(1), nil)

		_, err := s.ImageUploadURL(context.Background(), 2, 10, "image/png", 100)
		require.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("rejected by storage", func(t *testing.T) {
		s, d := newServiceWithMocks(t, true)
		d.resources.EXPECT().ResourceOwner(gomock.Any(), int64(10)).Return(int64(1), nil)
		d.images.EXPECT().ImageUploadURL(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, storage.ErrInvalidArgument)

		_, err := s.ImageUploadURL(context.Background(), 1, 10, "text/plain", 100)
		require.ErrorIs(t, err, ErrInvalidArgument)
	})
}
