package interceptors

import (
	"context"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/peer"
	"google.golang.org/grpc/status"

	"github.com/pribylovaa/go-resource-market/internal/pkg/log"
)

// capHandler — slog.Handler, запоминающий последнюю запись и число
// записей по тексту сообщения.
type capHandler struct {
	mu      sync.Mutex
	base    []slog.Attr
	lastMsg string
	lastLvl slog.Level
	attrs   map[string]any
	count   map[string]int
}

func (h *capHandler) Enabled(context.Context, slog.Level) bool { return true }

func (h *capHandler) Handle(_ context.Context, r slog.Record) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make(map[string]any, len(h.base)+8)
	for _, a := range h.base {
		out[a.Key] = a.Value.Any()
	}
	r.Attrs(func(a slog.Attr) bool {
		out[a.Key] = a.Value.Any()
		return true
	})
	if h.count == nil {
		h.count = make(map[string]int)
	}
	h.count[r.Message]++
	h.lastMsg = r.Message
	h.lastLvl = r.Level
	h.attrs = out

	return nil
}

func (h *capHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	h.base = append(h.base, attrs...)
	return h
}

func (h *capHandler) WithGroup(string) slog.Handler { return h }

func TestUnaryLogging_WithRequestIDAndPeer(t *testing.T) {
	h := &capHandler{}

	ctx := metadata.NewIncomingContext(context.Background(), metadata.Pairs("x-request-id", "rid-1"))
	ctx = peer.NewContext(ctx, &peer.Peer{Addr: &net.TCPAddr{IP: net.IPv4(127, 0, 0, 1), Port: 50051}})
	info := &grpc.UnaryServerInfo{FullMethod: "/grpc.health.v1.Health/Check"}

	resp, err := UnaryLogging(slog.New(h))(ctx, "req", info, func(ctx context.Context, _ any) (any, error) {
		log.From(ctx).Info("inside")
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", resp)

	require.Equal(t, 1, h.count["inside"])
	require.Equal(t, "grpc", h.lastMsg)
	require.Equal(t, slog.LevelInfo, h.lastLvl)
	require.Equal(t, "rid-1", h.attrs["request_id"])
	require.Equal(t, info.FullMethod, h.attrs["method"])
	require.Equal(t, "127.0.0.1:50051", h.attrs["peer"])
	require.Equal(t, "OK", h.attrs["code"])
}

func TestUnaryLogging_GeneratesRequestID(t *testing.T) {
	h := &capHandler{}
	info := &grpc.UnaryServerInfo{FullMethod: "/x/Y"}

	_, err := UnaryLogging(slog.New(h))(context.Background(), "req", info, func(context.Context, any) (any, error) {
		return nil, status.Error(codes.NotFound, "nope")
	})
	require.Error(t, err)

	require.Equal(t, "NotFound", h.attrs["code"])
	require.Equal(t, "-", h.attrs["peer"])

	rid, _ := h.attrs["request_id"].(string)
	_, perr := uuid.Parse(rid)
	require.NoError(t, perr)
}

func TestUnaryLogging_InternalIsError(t *testing.T) {
	h := &capHandler{}

	_, _ = UnaryLogging(slog.New(h))(context.Background(), "req", &grpc.UnaryServerInfo{FullMethod: "/x/Y"}, func(context.Context, any) (any, error) {
		return nil, status.Error(codes.Internal, "boom")
	})

	require.Equal(t, slog.LevelError, h.lastLvl)
}

func TestRecover_PanicToInternal(t *testing.T) {
	h := &capHandler{}
	info := &grpc.UnaryServerInfo{FullMethod: "/x/Panic"}

	resp, err := Recover(slog.New(h))(context.Background(), "req", info, func(context.Context, any) (any, error) {
		panic("boom")
	})

	require.Nil(t, resp)
	require.Equal(t, codes.Internal, status.Code(err))
	require.NotContains(t, err.Error(), "boom")

	require.Equal(t, "panic_recovered", h.lastMsg)
	require.Equal(t, slog.LevelError, h.lastLvl)
	require.Equal(t, info.FullMethod, h.attrs["method"])
	require.NotEmpty(t, h.attrs["stack"])
}

func TestRecover_PassThrough(t *testing.T) {
	resp, err := Recover(nil)(context.Background(), "req", &grpc.UnaryServerInfo{}, func(context.Context, any) (any, error) {
		return "ok", nil
	})
	require.NoError(t, err)
	require.Equal(t, "ok", resp)
}

func TestWithTimeout(t *testing.T) {
	info := &grpc.UnaryServerInfo{}

	t.Run("sets_deadline", func(t *testing.T) {
		_, err := WithTimeout(time.Second)(context.Background(), nil, info, func(ctx context.Context, _ any) (any, error) {
			_, ok := ctx.Deadline()
			require.True(t, ok)
			return nil, nil
		})
		require.NoError(t, err)
	})

	t.Run("keeps_existing", func(t *testing.T) {
		parent, cancel := context.WithTimeout(context.Background(), time.Hour)
		defer cancel()
		want, _ := parent.Deadline()

		_, err := WithTimeout(time.Second)(parent, nil, info, func(ctx context.Context, _ any) (any, error) {
			got, _ := ctx.Deadline()
			require.Equal(t, want, got)
			return nil, nil
		})
		require.NoError(t, err)
	})

	t.Run("disabled", func(t *testing.T) {
		_, err := WithTimeout(0)(context.Background(), nil, info, func(ctx context.Context, _ any) (any, error) {
			_, ok := ctx.Deadline()
			require.False(t, ok)
			return nil, nil
		})
		require.NoError(t, err)
	})

	t.Run("expires", func(t *testing.T) {
		_, err := WithTimeout(10*time.Millisecond)(context.Background(), nil, info, func(ctx context.Context, _ any) (any, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
		require.ErrorIs(t, err, context.DeadlineExceeded)
	})
}
