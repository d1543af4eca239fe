package control

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/shrtyk/stm-core/internal/cbreaker"
	stmpb "github.com/shrtyk/stm-core/internal/proto/gen"
	"github.com/shrtyk/stm-core/internal/retry"
)

// Client is a thread-safe client for a control server. Transient RPC
// failures are retried; a run of failures opens the circuit breaker
// and fails calls fast until the server recovers.
type Client struct {
	logger         *slog.Logger
	requestTimeout time.Duration

	conn    *grpc.ClientConn
	client  stmpb.ControlServiceClient
	breaker *cbreaker.CircuitBreaker
}

func NewClient(addr string, reqTimeout time.Duration, log *slog.Logger) (*Client, error) {
	conn, err := grpc.NewClient(
		addr, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, fmt.Errorf("failed to dial control server %s: %w", addr, err)
	}

	return &Client{
		logger:         log,
		requestTimeout: reqTimeout,
		conn:           conn,
		client:         stmpb.NewControlServiceClient(conn),
		breaker:        cbreaker.NewCircuitBreaker(6, 4, 5*time.Second),
	}, nil
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// call runs one RPC with per-attempt timeout, retry and the breaker.
func call[Resp any](
	ctx context.Context,
	c *Client,
	rpc func(context.Context) (Resp, error),
) (Resp, error) {
	var resp Resp
	err := retry.Do(ctx, func(ctx context.Context) error {
		tctx, tcancel := context.WithTimeout(ctx, c.requestTimeout)
		defer tcancel()

		var rerr error
		resp, rerr = cbreaker.Do(tctx, c.breaker, rpc)
		return rerr
	})
	return resp, err
}

// Sync asks the server whether the partition's state reflects
// everything committed under the current term.
func (c *Client) Sync(ctx context.Context, partition uint64, timeout time.Duration) (*stmpb.SyncResponse, error) {
	return call(ctx, c, func(ctx context.Context) (*stmpb.SyncResponse, error) {
		return c.client.Sync(ctx, &stmpb.SyncRequest{
			Partition: partition,
			TimeoutMs: timeout.Milliseconds(),
		})
	})
}

// TakeSnapshot requests an immediate snapshot of the partition.
func (c *Client) TakeSnapshot(ctx context.Context, partition uint64) (*stmpb.TakeSnapshotResponse, error) {
	return call(ctx, c, func(ctx context.Context) (*stmpb.TakeSnapshotResponse, error) {
		return c.client.TakeSnapshot(ctx, &stmpb.TakeSnapshotRequest{Partition: partition})
	})
}

// EnsureSnapshot blocks until a snapshot covering targetOffset is
// durable on the server.
func (c *Client) EnsureSnapshot(ctx context.Context, partition uint64, targetOffset int64) error {
	_, err := call(ctx, c, func(ctx context.Context) (*stmpb.EnsureSnapshotResponse, error) {
		return c.client.EnsureSnapshot(ctx, &stmpb.EnsureSnapshotRequest{
			Partition:    partition,
			TargetOffset: targetOffset,
		})
	})
	return err
}

// Status fetches the partition's cursors and engine view.
func (c *Client) Status(ctx context.Context, partition uint64) (*stmpb.StatusResponse, error) {
	return call(ctx, c, func(ctx context.Context) (*stmpb.StatusResponse, error) {
		return c.client.Status(ctx, &stmpb.StatusRequest{Partition: partition})
	})
}

// Propose submits a command to the partition's engine.
func (c *Client) Propose(ctx context.Context, partition uint64, cmd []byte) (*stmpb.ProposeResponse, error) {
	return call(ctx, c, func(ctx context.Context) (*stmpb.ProposeResponse, error) {
		return c.client.Propose(ctx, &stmpb.ProposeRequest{
			Partition: partition,
			Command:   cmd,
		})
	})
}
