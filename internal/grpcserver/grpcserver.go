// grpcserver — служебный gRPC-сервер market-service: стандартный health
// (grpc.health.v1), reflection в local/dev и метрики grpc_prometheus.
// Статус health отражает доступность хранилищ.
package grpcserver

import (
	"context"
	"log/slog"
	"net"
	"time"

	grpc_prometheus "github.com/grpc-ecosystem/go-grpc-prometheus"
	"github.com/prometheus/client_golang/prometheus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"

	"github.com/pribylovaa/go-resource-market/internal/interceptors"
)

// ServiceName — имя сервиса в health-ответах.
const ServiceName = "market.v1.MarketService"

// Pinger — зависимость, доступность которой определяет готовность.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Options — параметры сервера.
type Options struct {
	Logger     *slog.Logger
	Timeout    time.Duration
	Reflection bool
	// Registerer == nil отключает метрики.
	Registerer prometheus.Registerer
}

// Server — обёртка над grpc.Server с health-сервисом.
type Server struct {
	srv    *grpc.Server
	health *health.Server
	log    *slog.Logger
}

// New собирает сервер с цепочкой интерсепторов. Статус изначально
// NOT_SERVING.
func New(opts Options) *Server {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	unary := []grpc.UnaryServerInterceptor{
		interceptors.Recover(opts.Logger),
		interceptors.UnaryLogging(opts.Logger),
		interceptors.WithTimeout(opts.Timeout),
	}
	var stream []grpc.StreamServerInterceptor

	var metrics *grpc_prometheus.ServerMetrics
	if opts.Registerer != nil {
		metrics = grpc_prometheus.NewServerMetrics()
		metrics.EnableHandlingTimeHistogram()
		opts.Registerer.MustRegister(metrics)

		unary = append(unary, metrics.UnaryServerInterceptor())
		stream = append(stream, metrics.StreamServerInterceptor())
	}

	srv := grpc.NewServer(
		grpc.ChainUnaryInterceptor(unary...),
		grpc.ChainStreamInterceptor(stream...),
	)

	hs := health.NewServer()
	healthpb.RegisterHealthServer(srv, hs)

	if opts.Reflection {
		reflection.Register(srv)
	}

	if metrics != nil {
		metrics.InitializeMetrics(srv)
	}

	s := &Server{srv: srv, health: hs, log: opts.Logger}
	s.SetServing(false)

	return s
}

// Serve блокируется до остановки сервера.
func (s *Server) Serve(lis net.Listener) error {
	return s.srv.Serve(lis)
}

// SetServing переключает статус health для общего и именованного сервиса.
func (s *Server) SetServing(ok bool) {
	st := healthpb.HealthCheckResponse_NOT_SERVING
	if ok {
		st = healthpb.HealthCheckResponse_SERVING
	}

	s.health.SetServingStatus("", st)
	s.health.SetServingStatus(ServiceName, st)
}

// Monitor периодически пингует зависимости и обновляет статус health,
// пока ctx не завершён. Первая проверка выполняется сразу.
func (s *Server) Monitor(ctx context.Context, interval time.Duration, deps ...Pinger) {
	check := func() {
		pctx, cancel := context.WithTimeout(ctx, interval)
		defer cancel()

		for _, d := range deps {
			if err := d.Ping(pctx); err != nil {
				if ctx.Err() == nil {
					s.log.Warn("health_ping_failed", slog.String("err", err.Error()))
				}
				s.SetServing(false)
				return
			}
		}

		s.SetServing(true)
	}

	check()

	t := time.NewTicker(interval)
	defer t.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-t.C:
			check()
		}
	}
}

// Shutdown переводит health в NOT_SERVING и останавливает сервер
// gracefully, а по истечении ctx принудительно.
func (s *Server) Shutdown(ctx context.Context) {
	s.health.Shutdown()

	done := make(chan struct{})
	go func() {
		s.srv.GracefulStop()
		close(done)
	}()

	select {
	case <-done:
		s.log.Info("grpc_stopped")
	case <-ctx.Done():
		s.log.Warn("grpc_force_stop")
		s.srv.Stop()
	}
}
