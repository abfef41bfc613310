package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/pribylovaa/go-resource-market/internal/models"
	"github.com/pribylovaa/go-resource-market/internal/pkg/log"
	"github.com/pribylovaa/go-resource-market/internal/pkg/redact"
	"github.com/pribylovaa/go-resource-market/internal/storage"
	"github.com/pribylovaa/go-resource-market/internal/token"
)

// RegisterInput — данные регистрации.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register создаёт учётную запись и возвращает её id.
//
// Валидация: name, email и password обязательны (ErrInvalidArgument).
// Дубликат email -> ErrEmailTaken. Пароль хранится только как bcrypt-хэш.
func (s *Service) Register(ctx context.Context, in RegisterInput) (int64, error) {
	const op = "service.auth.Register"

	email := normalizeEmail(in.Email)
	lg := log.From(ctx).With("op", op, "email", redact.Email(email))

	name := strings.TrimSpace(in.Name)
	if name == "" || email == "" || in.Password == "" || len(in.Password) > maxPasswordBytes {
		lg.Warn("register_invalid_argument")

		return 0, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		lg.Error("register_hash_failed", "err", err)

		return 0, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.SaveUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			lg.Info("register_email_taken")

			return 0, fmt.Errorf("%s: %w", op, ErrEmailTaken)
		}

		lg.Error("register_storage_failed", "err", err)

		return 0, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	lg.Info("user_registered", "user_id", user.ID)

	return user.ID, nil
}

// Login проверяет пару email/пароль и выдаёт пару токенов.
//
// Пользователь не найден -> ErrUserNotFound; пароль не совпал ->
// ErrWrongPassword. Обе ошибки оборачивают ErrInvalidCredentials.
// Выданный refresh-токен регистрируется в реестре.
func (s *Service) Login(ctx context.Context, email, password string) (*models.TokenPair, error) {
	const op = "service.auth.Login"

	email = normalizeEmail(email)
	lg := log.From(ctx).With("op", op, "email", redact.Email(email))

	if email == "" || password == "" {
		lg.Warn("login_invalid_argument")

		return nil, fmt.Errorf("%s: %w", op, ErrInvalidArgument)
	}

	user, err := s.users.UserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			lg.Info("login_user_not_found")

			return nil, fmt.Errorf("%s: %w", op, ErrUserNotFound)
		}

		lg.Error("login_storage_failed", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if !checkPassword(user.PasswordHash, password) {
		lg.Info("login_wrong_password", "user_id", user.ID)

		return nil, fmt.Errorf("%s: %w", op, ErrWrongPassword)
	}

	pair, err := s.issueTokenPair(ctx, token.Claims{ID: user.ID, Email: user.Email})
	if err != nil {
		lg.Error("login_issue_failed", "err", err)

		return nil, fmt.Errorf("%s: %w", op, ErrInternal)
	}

	lg.Info("user_logged_in", "user_id", user.ID, "refresh", redact.Token(pair.RefreshToken))

	return pair, nil
}

// Refresh обменивает зарегистрированный refresh-токен на новый access-токен.
// Refresh-токен не ротируется и остаётся пригодным до отзыва.
//
// Пустой токен -> ErrUnauthenticated; токен не в реестре или с неверной
// подписью -> ErrForbidden.
func (s *Service) Refresh(ctx context.Context, refreshToken string) (string, error) {
	const op = "service.auth.Refresh"

	lg := log.From(ctx).With("op", op, "refresh", redact.Token(refreshToken))

	if refreshToken == "" {
		return "", fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	ok, err := s.registry.IsValid(ctx, refreshToken)
	if err != nil {
		lg.Error("refresh_registry_failed", "err", err)

		return "", fmt.Errorf("%s: %w", op, ErrInternal)
	}

	if !ok {
		lg.Info("refresh_not_registered")

		return "", fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	claims, err := s.tokens.Verify(refreshToken, token.Refresh)
	if err != nil {
		lg.Info("refresh_invalid_token")

		return "", fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	access, err := s.tokens.IssueAccessToken(*claims)
	if err != nil {
		lg.Error("refresh_issue_failed", "err", err)

		return "", fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return access, nil
}

// Logout отзывает refresh-токен. Пустой или уже отозванный токен не
// считается ошибкой: повторный выход даёт то же состояние, что и первый.
func (s *Service) Logout(ctx context.Context, refreshToken string) error {
	const op = "service.auth.Logout"

	if refreshToken == "" {
		return nil
	}

	if err := s.registry.Revoke(ctx, refreshToken); err != nil {
		log.From(ctx).Error("logout_registry_failed", "op", op, "refresh", redact.Token(refreshToken), "err", err)

		return fmt.Errorf("%s: %w", op, ErrInternal)
	}

	return nil
}

// ValidateAccessToken проверяет access-токен только по подписи и сроку,
// без обращения к реестру. Пустой токен -> ErrUnauthenticated,
// недействительный -> ErrForbidden.
func (s *Service) ValidateAccessToken(_ context.Context, accessToken string) (*token.Claims, error) {
	const op = "service.auth.ValidateAccessToken"

	if accessToken == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrUnauthenticated)
	}

	claims, err := s.tokens.Verify(accessToken, token.Access)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, ErrForbidden)
	}

	return claims, nil
}

// issueTokenPair подписывает access и refresh с одинаковыми claims и
// регистрирует refresh-токен.
func (s *Service) issueTokenPair(ctx context.Context, claims token.Claims) (*models.TokenPair, error) {
	const op = "service.auth.issueTokenPair"

	access, err := s.tokens.IssueAccessToken(claims)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	refresh, err := s.tokens.IssueRefreshToken(claims)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if err := s.registry.Register(ctx, refresh, claims.ID, s.tokens.RefreshExpiresAt()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &models.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// maxPasswordBytes — предел длины пароля для bcrypt.
const maxPasswordBytes = 72

// hashPassword хэширует пароль с помощью bcrypt.
func hashPassword(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	return string(b), nil
}

// checkPassword сравнивает пароль с хэшем за постоянное время.
func checkPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func normalizeEmail(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}
