package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	apierrors "github.com/pribylovaa/go-resource-market/internal/http/errors"
	"github.com/pribylovaa/go-resource-market/internal/pkg/log"
	"github.com/pribylovaa/go-resource-market/internal/token"
)

// capHandler — тестовый slog.Handler, запоминающий последнюю запись.
type capHandler struct {
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	out := make(map[string]any, len(h.base)+8)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})

	h.count++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out

	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &capHandler{base: append(append([]slog.Attr{}, h.base...), attrs...), count: h.count}
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

// sharedCap пишет все записи (включая дочерние логгеры) в один capHandler.
type sharedCap struct {
	root *capHandler
	base []slog.Attr
}

func (s *sharedCap) Enabled(context.Context, slog.Level) bool { return true }

func (s *sharedCap) Handle(ctx context.Context, r slog.Record) error {
	r2 := r.Clone()
	r2.AddAttrs(s.base...)
	return s.root.Handle(ctx, r2)
}

func (s *sharedCap) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &sharedCap{root: s.root, base: append(append([]slog.Attr{}, s.base...), attrs...)}
}

func (s *sharedCap) WithGroup(string) slog.Handler { return s }

func decodeEnvelope(t *testing.T, body string) apierrors.ErrorResponse {
	t.Helper()

	var env apierrors.ErrorResponse
	require.NoError(t, json.Unmarshal([]byte(body), &env))

	return env
}

func TestChain_Order(t *testing.T) {
	var order []string

	mk := func(name string) Middleware {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				order = append(order, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		order = append(order, "handler")
	}), mk("m1"), mk("m2"))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, []string{"m1", "m2", "handler"}, order)
}

func TestStatusWriter_DefaultsTo200(t *testing.T) {
	rec := httptest.NewRecorder()
	sw := newStatusWriter(rec)

	require.Equal(t, http.StatusOK, sw.Status())

	_, err := sw.Write([]byte("abc"))
	require.NoError(t, err)
	sw.WriteHeader(http.StatusTeapot)

	require.Equal(t, http.StatusOK, sw.Status())
	require.Equal(t, 3, sw.count)
}

func TestRecover_PanicTo500(t *testing.T) {
	h := Chain(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}), RequestID(), Recover())

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	env := decodeEnvelope(t, rec.Body.String())
	require.Equal(t, "internal", env.Error.Code)
	require.NotContains(t, rec.Body.String(), "boom")
	require.NotEmpty(t, env.Error.RequestID)
}

func TestRequestID(t *testing.T) {
	var seen string
	h := RequestID()(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	t.Run("generated", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

		require.NotEmpty(t, seen)
		require.Equal(t, seen, rec.Header().Get(HeaderRequestID))
	})

	t.Run("propagated", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, "rid-1")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)

		require.Equal(t, "rid-1", seen)
		require.Equal(t, "rid-1", rec.Header().Get(HeaderRequestID))
	})

	t.Run("too_long_replaced", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(HeaderRequestID, strings.Repeat("a", 200))
		h.ServeHTTP(httptest.NewRecorder(), req)

		require.Len(t, seen, 36)
	})
}

func TestLogging_WritesRequestRecord(t *testing.T) {
	ch := &capHandler{}
	logger := slog.New(&sharedCap{root: ch})

	var inner *slog.Logger
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inner = log.From(r.Context())
		w.WriteHeader(http.StatusCreated)
	}), RequestID(), Logging(logger))

	req := httptest.NewRequest(http.MethodPost, "/resources", nil)
	req.Header.Set(HeaderRequestID, "rid-42")
	h.ServeHTTP(httptest.NewRecorder(), req)

	require.NotNil(t, inner)
	require.Equal(t, "http_request", ch.lastMsg)
	require.Equal(t, slog.LevelInfo, ch.lastLvl)
	require.Equal(t, "rid-42", ch.attrs["request_id"])
	require.Equal(t, int64(http.StatusCreated), ch.attrs["status"])
	require.Equal(t, "/resources", ch.attrs["path"])
}

func TestLogging_ServerErrorLevel(t *testing.T) {
	ch := &capHandler{}
	h := Logging(slog.New(&sharedCap{root: ch}))(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, slog.LevelError, ch.lastLvl)
}

func TestTimeout(t *testing.T) {
	t.Run("sets_deadline", func(t *testing.T) {
		var ok bool
		h := Timeout(time.Second)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			_, ok = r.Context().Deadline()
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.True(t, ok)
	})

	t.Run("keeps_existing_deadline", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), time.Hour)
		defer cancel()
		want, _ := ctx.Deadline()

		var got time.Time
		h := Timeout(time.Second)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			got, _ = r.Context().Deadline()
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil).WithContext(ctx))
		require.Equal(t, want, got)
	})

	t.Run("disabled", func(t *testing.T) {
		var ok bool
		h := Timeout(0)(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
			_, ok = r.Context().Deadline()
		}))
		h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
		require.False(t, ok)
	})
}

func TestHTTPMetrics_RoutePattern(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)

	r := chi.NewRouter()
	r.Use(m.Middleware())
	r.Get("/resources/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/resources/7", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/resources/8", nil))

	require.Equal(t, 2.0, testutil.ToFloat64(m.requests.WithLabelValues(http.MethodGet, "/resources/{id}", "404")))
	require.Equal(t, 1, testutil.CollectAndCount(m.duration))
}

type fakeVerifier struct {
	claims *token.Claims
	err    error
	got    string
}

func (f *fakeVerifier) ValidateAccessToken(_ context.Context, tok string) (*token.Claims, error) {
	f.got = tok
	return f.claims, f.err
}

func TestRequireAuth(t *testing.T) {
	okHandler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, ok := ClaimsFromContext(r.Context())
		if !ok {
			w.WriteHeader(http.StatusTeapot)
			return
		}
		_ = json.NewEncoder(w).Encode(c)
	})

	tests := []struct {
		name     string
		header   string
		verifier *fakeVerifier
		status   int
		code     string
	}{
		{name: "no_header", header: "", verifier: &fakeVerifier{}, status: http.StatusUnauthorized, code: "unauthenticated"},
		{name: "not_bearer", header: "Basic abc", verifier: &fakeVerifier{}, status: http.StatusUnauthorized, code: "unauthenticated"},
		{name: "empty_bearer", header: "Bearer   ", verifier: &fakeVerifier{}, status: http.StatusUnauthorized, code: "unauthenticated"},
		{name: "invalid", header: "Bearer bad", verifier: &fakeVerifier{err: token.ErrInvalid}, status: http.StatusForbidden, code: "forbidden"},
		{name: "wrapped_invalid", header: "Bearer bad", verifier: &fakeVerifier{err: errors.New("x")}, status: http.StatusForbidden, code: "forbidden"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()

			RequireAuth(tc.verifier)(okHandler).ServeHTTP(rec, req)

			require.Equal(t, tc.status, rec.Code)
			env := decodeEnvelope(t, rec.Body.String())
			require.Equal(t, tc.code, env.Error.Code)
			require.NotEmpty(t, env.Error.Message)
		})
	}

	t.Run("valid", func(t *testing.T) {
		v := &fakeVerifier{claims: &token.Claims{ID: 7, Email: "a@b.c"}}
		req := httptest.NewRequest(http.MethodGet, "/users/me", nil)
		req.Header.Set("Authorization", "bearer good")
		rec := httptest.NewRecorder()

		RequireAuth(v)(okHandler).ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		require.Equal(t, "good", v.got)

		var got token.Claims
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
		require.Equal(t, token.Claims{ID: 7, Email: "a@b.c"}, got)
	})
}

func TestClaimsFromContext_Empty(t *testing.T) {
	_, ok := ClaimsFromContext(context.Background())
	require.False(t, ok)
}
