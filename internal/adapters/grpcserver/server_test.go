package grpcserver_test

import (
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/mazerepair/internal/adapters/grpcserver"
	"go.trai.ch/mazerepair/internal/core/domain"
	"go.trai.ch/mazerepair/internal/core/ports/mocks"
	"go.uber.org/goleak"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newServer(t *testing.T, port int) *grpcserver.Server {
	t.Helper()

	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Debug(gomock.Any(), gomock.Any()).AnyTimes()

	settings := &domain.Settings{
		App:        domain.AppSettings{Name: "maze-repair"},
		Server:     domain.ServerSettings{Host: "127.0.0.1", ShutdownTimeout: 200 * time.Millisecond},
		Management: domain.ManagementSettings{GRPC: domain.GRPCSettings{Enabled: true, Port: port}},
	}
	return grpcserver.NewServer(settings, log)
}

func dial(t *testing.T, addr string) healthpb.HealthClient {
	t.Helper()

	conn, err := grpc.NewClient(addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return healthpb.NewHealthClient(conn)
}

func TestServer_ServesHealth(t *testing.T) {
	srv := newServer(t, 0)
	assert.Equal(t, "grpc", srv.Name())
	assert.Equal(t, domain.StatusDown, srv.Health(t.Context()).Status)

	require.NoError(t, srv.Start(t.Context()))
	t.Cleanup(func() { require.NoError(t, srv.Stop(t.Context())) })
	require.NotEmpty(t, srv.Addr())
	assert.Equal(t, domain.StatusUp, srv.Health(t.Context()).Status)

	client := dial(t, srv.Addr())
	for _, service := range []string{"", "maze-repair"} {
		resp, err := client.Check(t.Context(), &healthpb.HealthCheckRequest{Service: service})
		require.NoError(t, err)
		assert.Equal(t, healthpb.HealthCheckResponse_SERVING, resp.GetStatus(), service)
	}

	_, err := client.Check(t.Context(), &healthpb.HealthCheckRequest{Service: "unknown"})
	require.Error(t, err)
}

func TestServer_StopReportsNotServing(t *testing.T) {
	srv := newServer(t, 0)
	require.NoError(t, srv.Start(t.Context()))
	addr := srv.Addr()

	client := dial(t, addr)
	stream, err := client.Watch(t.Context(), &healthpb.HealthCheckRequest{})
	require.NoError(t, err)

	first, err := stream.Recv()
	require.NoError(t, err)
	require.Equal(t, healthpb.HealthCheckResponse_SERVING, first.GetStatus())

	stopErr := make(chan error, 1)
	go func() { stopErr <- srv.Stop(t.Context()) }()

	next, err := stream.Recv()
	require.NoError(t, err)
	assert.Equal(t, healthpb.HealthCheckResponse_NOT_SERVING, next.GetStatus())

	require.NoError(t, <-stopErr)
	assert.Empty(t, srv.Addr())
	require.Error(t, srv.Start(t.Context()), "a stopped server cannot restart")

	lis, err := net.Listen("tcp", addr)
	require.NoError(t, err, "port must be released after Stop")
	require.NoError(t, lis.Close())
}

func TestServer_ListenFailure(t *testing.T) {
	lis, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer func() { _ = lis.Close() }()

	srv := newServer(t, lis.Addr().(*net.TCPAddr).Port)
	err = srv.Start(t.Context())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to bind listener")
	require.NoError(t, srv.Stop(t.Context()))
}
