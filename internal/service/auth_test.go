package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-resource-market/internal/models"
	"github.com/pribylovaa/go-resource-market/internal/storage"
	"github.com/pribylovaa/go-resource-market/internal/token"
)

func storedUser(t *testing.T, id int64, email, password string) *models.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &models.User{ID: id, Name: "Alice", Email: email, PasswordHash: string(hash)}
}

func TestService_Register_OK(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	d.users.EXPECT().
		SaveUser(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, u *models.User) error {
			require.Equal(t, "Alice", u.Name)
			require.Equal(t, "alice@x.com", u.Email)
			require.NotEqual(t, "pw", u.PasswordHash)
			require.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("pw")))
			u.ID = 7
			return nil
		})

	id, err := s.Register(context.Background(), RegisterInput{Name: " Alice ", Email: " Alice@X.com ", Password: "pw"})
	require.NoError(t, err)
	require.Equal(t, int64(7), id)
}

func TestService_Register_InvalidArgument(t *testing.T) {
	s, _ := newServiceWithMocks(t, false)

	for _, in := range []RegisterInput{
		{Email: "a@x.com", Password: "pw"},
		{Name: "A", Password: "pw"},
		{Name: "A", Email: "a@x.com"},
		{Name: "   ", Email: "a@x.com", Password: "pw"},
		{Name: "A", Email: "a@x.com", Password: strings.Repeat("p", 73)},
	} {
		_, err := s.Register(context.Background(), in)
		require.ErrorIs(t, err, ErrInvalidArgument)
	}
}

func TestService_Register_EmailTaken(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	d.users.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(storage.ErrAlreadyExists)

	_, err := s.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "pw"})
	require.ErrorIs(t, err, ErrEmailTaken)
}

func TestService_Register_StorageError(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	d.users.EXPECT().SaveUser(gomock.Any(), gomock.Any()).Return(errors.New("pg down"))

	_, err := s.Register(context.Background(), RegisterInput{Name: "A", Email: "a@x.com", Password: "pw"})
	require.ErrorIs(t, err, ErrInternal)
}

func TestService_Login_OK_RegistersRefresh(t *testing.T) {
	s, d := newServiceWithMocks(t, false)
	user := storedUser(t, 7, "alice@x.com", "pw")

	d.users.EXPECT().UserByEmail(gomock.Any(), "alice@x.com").Return(user, nil)

	var registered string
	d.registry.EXPECT().
		Register(gomock.Any(), gomock.Any(), int64(7), time.Time{}).
		DoAndReturn(func(_ context.Context, tok string, _ int64, _ time.Time) error {
			registered = tok
			return nil
		})

	pair, err := s.Login(context.Background(), "Alice@x.com", "pw")
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)
	require.NotEqual(t, pair.AccessToken, pair.RefreshToken)
	require.Equal(t, pair.RefreshToken, registered)

	access, err := d.codec.Verify(pair.AccessToken, token.Access)
	require.NoError(t, err)
	require.Equal(t, token.Claims{ID: 7, Email: "alice@x.com"}, *access)

	refresh, err := d.codec.Verify(pair.RefreshToken, token.Refresh)
	require.NoError(t, err)
	require.Equal(t, *access, *refresh)
}

func TestService_Login_UserNotFound(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	d.users.EXPECT().UserByEmail(gomock.Any(), "nobody@x.com").Return(nil, storage.ErrNotFound)

	_, err := s.Login(context.Background(), "nobody@x.com", "pw")
	require.ErrorIs(t, err, ErrUserNotFound)
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.NotErrorIs(t, err, ErrWrongPassword)
}

func TestService_Login_WrongPassword(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	d.users.EXPECT().UserByEmail(gomock.Any(), "alice@x.com").Return(storedUser(t, 7, "alice@x.com", "pw"), nil)

	_, err := s.Login(context.Background(), "alice@x.com", "wrong")
	require.ErrorIs(t, err, ErrWrongPassword)
	require.ErrorIs(t, err, ErrInvalidCredentials)
	require.NotErrorIs(t, err, ErrUserNotFound)
}

func TestService_Login_EmptyFields(t *testing.T) {
	s, _ := newServiceWithMocks(t, false)

	_, err := s.Login(context.Background(), "", "pw")
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = s.Login(context.Background(), "a@x.com", "")
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestService_Login_RegistryError(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	d.users.EXPECT().UserByEmail(gomock.Any(), gomock.Any()).Return(storedUser(t, 7, "alice@x.com", "pw"), nil)
	d.registry.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("redis down"))

	_, err := s.Login(context.Background(), "alice@x.com", "pw")
	require.ErrorIs(t, err, ErrInternal)
}

func TestService_Refresh_Missing(t *testing.T) {
	s, _ := newServiceWithMocks(t, false)

	_, err := s.Refresh(context.Background(), "")
	require.ErrorIs(t, err, ErrUnauthenticated)
}

func TestService_Refresh_NotRegistered(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	tok, err := d.codec.IssueRefreshToken(token.Claims{ID: 7, Email: "alice@x.com"})
	require.NoError(t, err)

	d.registry.EXPECT().IsValid(gomock.Any(), tok).Return(false, nil)

	_, err = s.Refresh(context.Background(), tok)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestService_Refresh_RegisteredButBadSignature(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	// Access-токен подписан другим секретом и не проходит как refresh.
	tok, err := d.codec.IssueAccessToken(token.Claims{ID: 7, Email: "alice@x.com"})
	require.NoError(t, err)

	d.registry.EXPECT().IsValid(gomock.Any(), tok).Return(true, nil)

	_, err = s.Refresh(context.Background(), tok)
	require.ErrorIs(t, err, ErrForbidden)
}

func TestService_Refresh_OK_DoesNotRotate(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	tok, err := d.codec.IssueRefreshToken(token.Claims{ID: 7, Email: "alice@x.com"})
	require.NoError(t, err)

	d.registry.EXPECT().IsValid(gomock.Any(), tok).Return(true, nil).Times(2)

	for i := 0; i < 2; i++ {
		access, err := s.Refresh(context.Background(), tok)
		require.NoError(t, err)

		claims, err := d.codec.Verify(access, token.Access)
		require.NoError(t, err)
		require.Equal(t, int64(7), claims.ID)
		require.Equal(t, "alice@x.com", claims.Email)
	}
}

func TestService_Refresh_RegistryError(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	d.registry.EXPECT().IsValid(gomock.Any(), "tok").Return(false, errors.New("down"))

	_, err := s.Refresh(context.Background(), "tok")
	require.ErrorIs(t, err, ErrInternal)
}

func TestService_Logout(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	d.registry.EXPECT().Revoke(gomock.Any(), "tok").Return(nil).Times(2)

	require.NoError(t, s.Logout(context.Background(), "tok"))
	require.NoError(t, s.Logout(context.Background(), "tok"))

	// Пустой токен -> без обращения к реестру.
	require.NoError(t, s.Logout(context.Background(), ""))
}

func TestService_Logout_RegistryError(t *testing.T) {
	s, d := newServiceWithMocks(t, false)

	d.registry.EXPECT().Revoke(gomock.Any(), "tok").Return(errors.New("down"))

	require.ErrorIs(t, s.Logout(context.Background(), "tok"), ErrInternal)
}

func TestService_ValidateAccessToken(t *testing.T) {
	s, d := newServiceWithMocks(t, false)
	ctx := context.Background()

	_, err := s.ValidateAccessToken(ctx, "")
	require.ErrorIs(t, err, ErrUnauthenticated)

	_, err = s.ValidateAccessToken(ctx, "garbage")
	require.ErrorIs(t, err, ErrForbidden)

	refresh, err := d.codec.IssueRefreshToken(token.Claims{ID: 1, Email: "a@x.com"})
	require.NoError(t, err)
	_, err = s.ValidateAccessToken(ctx, refresh)
	require.ErrorIs(t, err, ErrForbidden)

	access, err := d.codec.IssueAccessToken(token.Claims{ID: 1, Email: "a@x.com"})
	require.NoError(t, err)
	claims, err := s.ValidateAccessToken(ctx, access)
	require.NoError(t, err)
	require.Equal(t, int64(1), claims.ID)
}

func TestService_ValidateAccessToken_ExpiryBoundary(t *testing.T) {
	issuedAt := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	now := issuedAt

	codec := newCodec(t, token.WithClock(func() time.Time { return now }))
	s := New(Storages{}, codec, defaultImages())

	access, err := codec.IssueAccessToken(token.Claims{ID: 1, Email: "a@x.com"})
	require.NoError(t, err)

	now = issuedAt.Add(15*time.Minute - time.Second)
	_, err = s.ValidateAccessToken(context.Background(), access)
	require.NoError(t, err)

	now = issuedAt.Add(15 * time.Minute)
	_, err = s.ValidateAccessToken(context.Background(), access)
	require.ErrorIs(t, err, ErrForbidden)
}
