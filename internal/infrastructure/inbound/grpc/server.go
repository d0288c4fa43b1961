package grpc_server

import (
	"fmt"
	"log/slog"
	"net"

	ports "board-post-service/internal/domain/ports/output"

	grpc_middleware "github.com/grpc-ecosystem/go-grpc-middleware"
	grpc_recovery "github.com/grpc-ecosystem/go-grpc-middleware/recovery"
	"google.golang.org/grpc"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

// ServiceName is the name reported by the health endpoint.
const ServiceName = "board.post.v1"

// Server exposes the standard gRPC health protocol for orchestrators.
type Server struct {
	health  *health.Server
	server  *grpc.Server
	address string
	port    int
	log     ports.Logger
}

func NewServer(address string, port int, log ports.Logger) *Server {
	s := &Server{
		health:  health.NewServer(),
		address: address,
		port:    port,
		log:     log,
	}

	s.server = grpc.NewServer(
		grpc.UnaryInterceptor(grpc_middleware.ChainUnaryServer(
			UnaryLoggerInterceptor(log),
			grpc_recovery.UnaryServerInterceptor(),
		)),
	)
	healthpb.RegisterHealthServer(s.server, s.health)
	s.SetServing(true)

	return s
}

func (s *Server) Run() error {
	address := fmt.Sprintf("%s:%d", s.address, s.port)
	lis, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen: %v", err)
	}

	s.log.Info("Starting gRPC health server", slog.Int("port", s.port))
	return s.server.Serve(lis)
}

// SetServing flips both the overall and the named service status.
func (s *Server) SetServing(serving bool) {
	status := healthpb.HealthCheckResponse_NOT_SERVING
	if serving {
		status = healthpb.HealthCheckResponse_SERVING
	}
	s.health.SetServingStatus("", status)
	s.health.SetServingStatus(ServiceName, status)
}

func (s *Server) Shutdown() error {
	s.health.Shutdown()
	s.server.GracefulStop()
	return nil
}
