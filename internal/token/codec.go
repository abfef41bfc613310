// token выпускает и проверяет подписанные JWT (HS256) двух классов:
// access — с фиксированным сроком жизни, refresh — без срока (или с
// настраиваемым). Каждый класс подписывается собственным секретом.
//
// Codec не хранит состояния между вызовами и безопасен для конкурентного
// использования. Проверка не различает «истёк» и «подделан»: любая
// неудача возвращается как ErrInvalid.
package token

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Kind — класс токена; определяет секрет подписи.
type Kind int

const (
	Access Kind = iota
	Refresh
)

func (k Kind) String() string {
	if k == Refresh {
		return "refresh"
	}

	return "access"
}

// DefaultAccessTTL — срок жизни access-токена по умолчанию.
const DefaultAccessTTL = 15 * time.Minute

var (
	// ErrInvalid — подпись не сошлась, токен истёк или повреждён.
	ErrInvalid = errors.New("invalid token")
	// ErrConfig — секреты не заданы или совпадают.
	ErrConfig = errors.New("invalid token codec config")
)

// Claims — полезная нагрузка токена. Одинакова для обоих путей выпуска
// (логин и обмен refresh-токена).
type Claims struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
}

// Config — параметры Codec.
type Config struct {
	AccessSecret  string
	RefreshSecret string
	// AccessTTL <= 0 заменяется на DefaultAccessTTL.
	AccessTTL time.Duration
	// RefreshTTL <= 0 -> refresh-токен без exp.
	RefreshTTL time.Duration
	Issuer     string
}

type signedClaims struct {
	UserID int64  `json:"id"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

// Codec подписывает и проверяет токены.
type Codec struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

// Option настраивает Codec.
type Option func(*Codec)

// WithClock подменяет источник времени (для тестов границы истечения).
func WithClock(now func() time.Time) Option {
	return func(c *Codec) {
		if now != nil {
			c.now = now
		}
	}
}

// New создаёт Codec. Секреты обязательны и должны различаться.
func New(cfg Config, opts ...Option) (*Codec, error) {
	const op = "token.New"

	if cfg.AccessSecret == "" || cfg.RefreshSecret == "" {
		return nil, fmt.Errorf("%s: %w: empty signing secret", op, ErrConfig)
	}

	if cfg.AccessSecret == cfg.RefreshSecret {
		return nil, fmt.Errorf("%s: %w: access and refresh secrets must differ", op, ErrConfig)
	}

	ttl := cfg.AccessTTL
	if ttl <= 0 {
		ttl = DefaultAccessTTL
	}

	c := &Codec{
		accessSecret:  []byte(cfg.AccessSecret),
		refreshSecret: []byte(cfg.RefreshSecret),
		accessTTL:     ttl,
		refreshTTL:    cfg.RefreshTTL,
		issuer:        cfg.Issuer,
		now:           time.Now,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// AccessTTL возвращает срок жизни access-токена.
func (c *Codec) AccessTTL() time.Duration { return c.accessTTL }

// RefreshTTL возвращает срок жизни refresh-токена (0 -> бессрочный).
func (c *Codec) RefreshTTL() time.Duration { return c.refreshTTL }

// issuedAt — момент выпуска T, усечённый до секунды: iat в JWT хранится
// в целых секундах, и exp должен быть ровно T+TTL.
func (c *Codec) issuedAt() time.Time {
	return c.now().Truncate(time.Second)
}

// IssueAccessToken подписывает claims access-секретом со сроком AccessTTL.
// Токен принимается, пока время проверки < iat+AccessTTL.
func (c *Codec) IssueAccessToken(claims Claims) (string, error) {
	const op = "token.IssueAccessToken"

	now := c.issuedAt()
	signed, err := c.sign(claims, now, now.Add(c.accessTTL), c.accessSecret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// IssueRefreshToken подписывает claims refresh-секретом. Каждый выпуск
// получает уникальный jti, поэтому два входа одного пользователя дают
// разные токены.
func (c *Codec) IssueRefreshToken(claims Claims) (string, error) {
	const op = "token.IssueRefreshToken"

	now := c.issuedAt()

	var exp time.Time
	if c.refreshTTL > 0 {
		exp = now.Add(c.refreshTTL)
	}

	signed, err := c.sign(claims, now, exp, c.refreshSecret)
	if err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	return signed, nil
}

// RefreshExpiresAt возвращает момент истечения refresh-токена, выпущенного
// сейчас, или нулевое время для бессрочных токенов.
func (c *Codec) RefreshExpiresAt() time.Time {
	if c.refreshTTL <= 0 {
		return time.Time{}
	}

	return c.issuedAt().Add(c.refreshTTL)
}

func (c *Codec) sign(claims Claims, now, exp time.Time, secret []byte) (string, error) {
	rc := jwt.RegisteredClaims{
		ID:       uuid.NewString(),
		Subject:  strconv.FormatInt(claims.ID, 10),
		Issuer:   c.issuer,
		IssuedAt: jwt.NewNumericDate(now),
	}
	if !exp.IsZero() {
		rc.ExpiresAt = jwt.NewNumericDate(exp)
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, signedClaims{
		UserID:           claims.ID,
		Email:            claims.Email,
		RegisteredClaims: rc,
	})

	return tok.SignedString(secret)
}

// Verify проверяет подпись секретом класса kind и, если есть, срок действия.
// Access-токен без exp считается недействительным.
func (c *Codec) Verify(tokenStr string, kind Kind) (*Claims, error) {
	const op = "token.Verify"

	secret := c.accessSecret
	if kind == Refresh {
		secret = c.refreshSecret
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	}
	if c.issuer != "" {
		opts = append(opts, jwt.WithIssuer(c.issuer))
	}
	if kind == Access {
		opts = append(opts, jwt.WithExpirationRequired())
	}

	var sc signedClaims
	tok, err := jwt.ParseWithClaims(tokenStr, &sc, func(*jwt.Token) (any, error) {
		return secret, nil
	}, opts...)
	if err != nil || !tok.Valid {
		return nil, fmt.Errorf("%s: %s: %w", op, kind, ErrInvalid)
	}

	if sc.UserID <= 0 || sc.Email == "" {
		return nil, fmt.Errorf("%s: %s: %w", op, kind, ErrInvalid)
	}

	return &Claims{ID: sc.UserID, Email: sc.Email}, nil
}
