package grpc

import (
	"context"
	"net"
	"time"

	"github.com/sirupsen/logrus"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/reflection"
)

// ServiceName is the health service name reported next to the overall
// ("") status.
const ServiceName = "cfresh.inventory.Dashboard"

type Pinger interface {
	PingContext(ctx context.Context) error
}

// HealthServer mirrors database reachability into the standard gRPC
// health service so orchestrators can probe the dashboard.
type HealthServer struct {
	server   *grpc.Server
	health   *health.Server
	db       Pinger
	interval time.Duration
	log      *logrus.Logger
}

func NewHealthServer(db Pinger, interval time.Duration, logger *logrus.Logger) *HealthServer {
	if interval <= 0 {
		interval = 15 * time.Second
	}
	s := &HealthServer{
		server:   grpc.NewServer(),
		health:   health.NewServer(),
		db:       db,
		interval: interval,
		log:      logger,
	}
	healthpb.RegisterHealthServer(s.server, s.health)
	reflection.Register(s.server)
	s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
	return s
}

func (s *HealthServer) setStatus(status healthpb.HealthCheckResponse_ServingStatus) {
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

// Check pings the database once and publishes the result.
func (s *HealthServer) Check(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := s.db.PingContext(ctx); err != nil {
		s.log.Warnf("gRPC Health: Database ping failed: %v", err)
		s.setStatus(healthpb.HealthCheckResponse_NOT_SERVING)
		return
	}
	s.setStatus(healthpb.HealthCheckResponse_SERVING)
}

// Watch re-checks on every interval until ctx is done.
func (s *HealthServer) Watch(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	s.Check(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Check(ctx)
		}
	}
}

func (s *HealthServer) Serve(lis net.Listener) error {
	s.log.Infof("gRPC Health: Listening on %s", lis.Addr())
	return s.server.Serve(lis)
}

func (s *HealthServer) Stop() {
	s.health.Shutdown()
	s.server.GracefulStop()
}
