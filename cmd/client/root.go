// Package client implements the subcommands that talk to a running
// control server.
package client

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/shrtyk/stm-core/control"
	"github.com/shrtyk/stm-core/pkg/kvstm"
	"github.com/shrtyk/stm-core/pkg/logger"
)

var (
	addr      string
	partition uint64
	timeout   time.Duration

	ClientCommands = &cobra.Command{
		Use:   "client",
		Short: "Administer a running machine server",
	}
)

func init() {
	ClientCommands.PersistentFlags().StringVar(&addr, "addr", "localhost:9090", "control server address")
	ClientCommands.PersistentFlags().Uint64Var(&partition, "partition", 0, "partition id")
	ClientCommands.PersistentFlags().DurationVar(&timeout, "timeout", 5*time.Second, "request timeout")

	ClientCommands.AddCommand(syncCmd)
	ClientCommands.AddCommand(snapshotCmd)
	ClientCommands.AddCommand(ensureCmd)
	ClientCommands.AddCommand(statusCmd)
	ClientCommands.AddCommand(setCmd)
	ClientCommands.AddCommand(deleteCmd)
}

func withClient(fn func(ctx context.Context, c *control.Client) error) error {
	log := logger.NewLogger(logger.Prod, false)
	c, err := control.NewClient(addr, timeout, log)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return fn(ctx, c)
}

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Check whether the machine reflects everything committed",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withClient(func(ctx context.Context, c *control.Client) error {
			resp, err := c.Sync(ctx, partition, timeout)
			if err != nil {
				return err
			}
			fmt.Printf("synced=%v term=%d\n", resp.Synced, resp.Term)
			return nil
		})
	},
}

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Take a snapshot of the machine's current state",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withClient(func(ctx context.Context, c *control.Client) error {
			resp, err := c.TakeSnapshot(ctx, partition)
			if err != nil {
				return err
			}
			fmt.Printf("covered_offset=%d\n", resp.CoveredOffset)
			return nil
		})
	},
}

var ensureCmd = &cobra.Command{
	Use:   "ensure <target-offset>",
	Short: "Ensure a snapshot covering the target offset exists",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid target offset %q: %w", args[0], err)
		}
		return withClient(func(ctx context.Context, c *control.Client) error {
			if err := c.EnsureSnapshot(ctx, partition, target); err != nil {
				return err
			}
			fmt.Println("ok")
			return nil
		})
	},
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the machine's cursors and engine view",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return withClient(func(ctx context.Context, c *control.Client) error {
			resp, err := c.Status(ctx, partition)
			if err != nil {
				return err
			}
			fmt.Printf("in_sync_offset=%d\n", resp.InSyncOffset)
			fmt.Printf("in_sync_term=%d\n", resp.InSyncTerm)
			fmt.Printf("last_snapshot_offset=%d\n", resp.LastSnapshotOffset)
			fmt.Printf("committed_offset=%d\n", resp.CommittedOffset)
			fmt.Printf("dirty_offset=%d\n", resp.DirtyOffset)
			fmt.Printf("log_start_offset=%d\n", resp.LogStartOffset)
			fmt.Printf("term=%d leader=%v\n", resp.Term, resp.Leader)
			return nil
		})
	},
}

func propose(cmd kvstm.Command) error {
	data, err := kvstm.EncodeCommand(cmd)
	if err != nil {
		return err
	}
	return withClient(func(ctx context.Context, c *control.Client) error {
		resp, err := c.Propose(ctx, partition, data)
		if err != nil {
			return err
		}
		if !resp.Accepted {
			return fmt.Errorf("rejected: replica is not the leader (term %d)", resp.Term)
		}
		fmt.Printf("offset=%d term=%d\n", resp.Offset, resp.Term)
		return nil
	})
}

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Propose a key-value write",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return propose(kvstm.Command{Op: kvstm.OpSet, Key: args[0], Value: args[1]})
	},
}

var deleteCmd = &cobra.Command{
	Use:   "delete <key>",
	Short: "Propose a key deletion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return propose(kvstm.Command{Op: kvstm.OpDelete, Key: args[0]})
	},
}
