// Package serve implements the serve subcommand: a single-node server
// hosting one machine partition behind the gRPC control plane.
package serve

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/shrtyk/stm-core/control"
	"github.com/shrtyk/stm-core/pkg/kvstm"
	"github.com/shrtyk/stm-core/pkg/localengine"
	"github.com/shrtyk/stm-core/pkg/logger"
	"github.com/shrtyk/stm-core/stm"
)

var ServeCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start a single-node machine server",
	Long: `Start a single-node server hosting one key-value machine partition.
Configuration can be set via flags or environment variables with the
STM_ prefix (e.g. STM_GRPC_ADDR=:9090).`,
	RunE: run,
}

func init() {
	cobra.OnInitialize(initConfig)

	ServeCmd.PersistentFlags().String("grpc-addr", ":9090", "address the gRPC control plane listens on")
	ServeCmd.PersistentFlags().String("http-addr", "", "address of the HTTP monitoring endpoint (empty disables it)")
	ServeCmd.PersistentFlags().String("data-dir", "data", "directory for snapshot artifacts")
	ServeCmd.PersistentFlags().Uint64("partition", 0, "partition id the machine registers under")
	ServeCmd.PersistentFlags().String("name", "kv", "machine name, also the snapshot file prefix")
	ServeCmd.PersistentFlags().Duration("snapshot-interval", 0, "interval between automatic snapshots (0 disables)")
	ServeCmd.PersistentFlags().Duration("sync-timeout", 5*time.Second, "default timeout for sync requests")
	ServeCmd.PersistentFlags().String("env", "prod", "logging environment (prod, dev, staging)")
}

func initConfig() {
	viper.SetEnvPrefix("STM")
	viper.AutomaticEnv()
}

func parseEnv(s string) logger.Enviroment {
	switch s {
	case "dev":
		return logger.Dev
	case "staging":
		return logger.Staging
	default:
		return logger.Prod
	}
}

func run(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	cfg := stm.DefaultConfig()
	cfg.Log.Env = parseEnv(viper.GetString("env"))
	cfg.Snapshots.Dir = viper.GetString("data-dir")
	cfg.Snapshots.Interval = viper.GetDuration("snapshot-interval")
	cfg.Timings.SyncTimeout = viper.GetDuration("sync-timeout")
	cfg.HTTPMonitoringAddr = viper.GetString("http-addr")

	log := logger.NewLogger(cfg.Log.Env, false)
	name := viper.GetString("name")

	engine := localengine.NewEngine(log)
	defer engine.Stop()

	machine, err := stm.NewMachineBuilder(name, engine, kvstm.New()).
		WithConfig(cfg).
		WithLogger(log).
		Build()
	if err != nil {
		return fmt.Errorf("failed to build machine: %w", err)
	}
	if err := machine.Start(); err != nil {
		return fmt.Errorf("failed to start machine: %w", err)
	}

	srv := control.NewServer(viper.GetString("grpc-addr"), cfg.Timings.SyncTimeout, log)
	srv.Register(viper.GetUint64("partition"), machine, engine)
	if err := srv.Start(); err != nil {
		stopErr := machine.Stop()
		if stopErr != nil {
			err = fmt.Errorf("%w; also failed to stop machine: %v", err, stopErr)
		}
		return fmt.Errorf("failed to start control server: %w", err)
	}

	log.Info("server started")

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Info("shutting down")

	if err := srv.Stop(); err != nil {
		log.Error("failed to stop control server", logger.ErrAttr(err))
	}
	if err := machine.Stop(); err != nil {
		return fmt.Errorf("failed to stop machine: %w", err)
	}
	return nil
}
