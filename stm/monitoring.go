package stm

import (
	"context"
	"encoding/json"
	"net/http"

	vm "github.com/VictoriaMetrics/metrics"
	"github.com/shrtyk/stm-core/pkg/logger"
)

// status represents the machine's externally visible cursors.
type status struct {
	Name               string `json:"name"`
	Hydrated           bool   `json:"hydrated"`
	InSyncOffset       int64  `json:"inSyncOffset"`
	InSyncTerm         int64  `json:"inSyncTerm"`
	NextOffset         int64  `json:"nextOffset"`
	LastSnapshotOffset int64  `json:"lastSnapshotOffset"`
	CatchingUp         bool   `json:"catchingUp"`
	SyncWaiters        int    `json:"syncWaiters"`

	EngineInfo struct {
		Term            int64 `json:"term"`
		Leader          bool  `json:"leader"`
		CommittedOffset int64 `json:"committedOffset"`
		DirtyOffset     int64 `json:"dirtyOffset"`
		LogStartOffset  int64 `json:"logStartOffset"`
	} `json:"engineInfo"`
}

// statusHandler implements the http.Handler interface.
type statusHandler struct {
	m *Machine
}

func (h *statusHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.Header().Set("Allow", http.MethodGet)
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	s := h.getStatus()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s); err != nil {
		h.m.logger.Warn("failed to encode status for monitoring", logger.ErrAttr(err))
		http.Error(w, "failed to encode status", http.StatusInternalServerError)
	}
}

// getStatus collects the current status from the machine instance.
func (h *statusHandler) getStatus() status {
	m := h.m

	hydrated := false
	select {
	case <-m.hydrated:
		hydrated = true
	default:
	}

	m.mu.Lock()
	s := status{
		Name:               m.name,
		Hydrated:           hydrated,
		InSyncOffset:       m.insyncOffset,
		InSyncTerm:         m.insyncTerm,
		NextOffset:         m.nextOffset,
		LastSnapshotOffset: m.lastSnapshotOffset,
		CatchingUp:         m.catchingUp,
		SyncWaiters:        len(m.syncWaiters),
	}
	m.mu.Unlock()

	s.EngineInfo.Term = m.engine.Term()
	s.EngineInfo.Leader = m.engine.IsLeader()
	s.EngineInfo.CommittedOffset = m.engine.CommittedOffset()
	s.EngineInfo.DirtyOffset = m.engine.DirtyOffset()
	s.EngineInfo.LogStartOffset = m.engine.StartOffset()
	return s
}

type MonitoringServer interface {
	Start() error
	Stop(ctx context.Context) error
}

type monitoringServer struct {
	m      *Machine
	server *http.Server
}

// NewMonitoringServer creates an HTTP server exposing the machine's
// status as JSON on /status and Prometheus text metrics on /metrics.
func NewMonitoringServer(m *Machine, addr string) MonitoringServer {
	mux := http.NewServeMux()
	mux.Handle("/status", &statusHandler{m: m})
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		vm.WritePrometheus(w, true)
	})

	return &monitoringServer{
		m:      m,
		server: &http.Server{Addr: addr, Handler: mux},
	}
}

// Start starts the monitoring HTTP server.
func (s *monitoringServer) Start() error {
	s.m.wg.Add(1)
	go func() {
		defer s.m.wg.Done()
		if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			s.m.logger.Error("monitoring server failed", logger.ErrAttr(err))
		}
	}()
	return nil
}

// Stop gracefully stops the monitoring HTTP server.
func (s *monitoringServer) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
