// Package control exposes machine administration over gRPC: sync
// checks, snapshot requests, status and command proposals. One server
// fronts any number of machines, addressed by partition id.
package control

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"sync"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/shrtyk/stm-core/api"
	stmpb "github.com/shrtyk/stm-core/internal/proto/gen"
	"github.com/shrtyk/stm-core/pkg/logger"
)

// Partition is one machine registered with the server, paired with the
// engine it is bound to.
type Partition struct {
	Machine api.Machine
	Engine  api.Engine
}

// Server serves the ControlService for a set of registered partitions.
type Server struct {
	stmpb.UnimplementedControlServiceServer

	logger      *slog.Logger
	addr        string
	syncTimeout time.Duration

	partitions *xsync.MapOf[uint64, *Partition]

	server *grpc.Server
	wg     sync.WaitGroup
}

func NewServer(addr string, syncTimeout time.Duration, log *slog.Logger) *Server {
	s := &Server{
		logger:      log,
		addr:        addr,
		syncTimeout: syncTimeout,
		partitions:  xsync.NewMapOf[uint64, *Partition](),
		server:      grpc.NewServer(),
	}
	stmpb.RegisterControlServiceServer(s.server, s)
	return s
}

// Register makes a machine addressable by partition id. Registering
// the same id again replaces the previous entry.
func (s *Server) Register(partition uint64, m api.Machine, e api.Engine) {
	s.partitions.Store(partition, &Partition{Machine: m, Engine: e})
}

// Deregister removes a partition. In-flight requests against it finish
// with whatever machine reference they already hold.
func (s *Server) Deregister(partition uint64) {
	s.partitions.Delete(partition)
}

// Start begins serving on the configured address.
func (s *Server) Start() error {
	l, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		if err := s.server.Serve(l); err != nil && err != grpc.ErrServerStopped {
			s.logger.Error("control gRPC server failed", logger.ErrAttr(err))
		}
	}()

	return nil
}

// Stop gracefully stops the gRPC server and waits for the serve
// goroutine to exit.
func (s *Server) Stop() error {
	if s.server != nil {
		s.server.GracefulStop()
	}
	s.wg.Wait()
	return nil
}

func (s *Server) partition(id uint64) (*Partition, error) {
	p, ok := s.partitions.Load(id)
	if !ok {
		return nil, status.Errorf(codes.NotFound, "unknown partition %d", id)
	}
	return p, nil
}

func (s *Server) Sync(ctx context.Context, req *stmpb.SyncRequest) (*stmpb.SyncResponse, error) {
	p, err := s.partition(req.Partition)
	if err != nil {
		return nil, err
	}

	timeout := s.syncTimeout
	if req.TimeoutMs > 0 {
		timeout = time.Duration(req.TimeoutMs) * time.Millisecond
	}

	synced := p.Machine.Sync(timeout)
	return &stmpb.SyncResponse{
		Synced: synced,
		Term:   p.Engine.Term(),
	}, nil
}

func (s *Server) TakeSnapshot(ctx context.Context, req *stmpb.TakeSnapshotRequest) (*stmpb.TakeSnapshotResponse, error) {
	p, err := s.partition(req.Partition)
	if err != nil {
		return nil, err
	}

	if err := p.Machine.MakeSnapshot(ctx); err != nil {
		return nil, status.Errorf(codes.Internal, "snapshot failed: %v", err)
	}
	return &stmpb.TakeSnapshotResponse{
		CoveredOffset: p.Machine.LastSnapshotOffset(),
	}, nil
}

func (s *Server) EnsureSnapshot(ctx context.Context, req *stmpb.EnsureSnapshotRequest) (*stmpb.EnsureSnapshotResponse, error) {
	p, err := s.partition(req.Partition)
	if err != nil {
		return nil, err
	}

	if err := p.Machine.EnsureSnapshotExists(ctx, req.TargetOffset); err != nil {
		return nil, status.Errorf(codes.Internal, "ensure snapshot failed: %v", err)
	}
	return &stmpb.EnsureSnapshotResponse{}, nil
}

func (s *Server) Status(ctx context.Context, req *stmpb.StatusRequest) (*stmpb.StatusResponse, error) {
	p, err := s.partition(req.Partition)
	if err != nil {
		return nil, err
	}

	inSyncTerm := api.NoOffset
	if st, ok := p.Machine.(interface{ InSyncTerm() int64 }); ok {
		inSyncTerm = st.InSyncTerm()
	}

	return &stmpb.StatusResponse{
		InSyncOffset:       p.Machine.InSyncOffset(),
		InSyncTerm:         inSyncTerm,
		LastSnapshotOffset: p.Machine.LastSnapshotOffset(),
		CommittedOffset:    p.Engine.CommittedOffset(),
		DirtyOffset:        p.Engine.DirtyOffset(),
		LogStartOffset:     p.Engine.StartOffset(),
		Term:               p.Engine.Term(),
		Leader:             p.Engine.IsLeader(),
	}, nil
}

func (s *Server) Propose(ctx context.Context, req *stmpb.ProposeRequest) (*stmpb.ProposeResponse, error) {
	p, err := s.partition(req.Partition)
	if err != nil {
		return nil, err
	}

	offset, term, accepted := p.Engine.Propose(req.Command)
	return &stmpb.ProposeResponse{
		Offset:   offset,
		Term:     term,
		Accepted: accepted,
	}, nil
}
