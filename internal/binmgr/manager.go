package binmgr

import (
	"sync"

	"github.com/bytedance/sonic"
	"go.uber.org/zap"

	"github.com/updateos/binmgr/internal/header"
	"github.com/updateos/binmgr/internal/infrastructure/logging"
	"github.com/updateos/binmgr/internal/infrastructure/monitoring"
	"github.com/updateos/binmgr/internal/registry"
	"github.com/updateos/binmgr/internal/shared/paths"
	"github.com/updateos/binmgr/internal/shared/types"
)

// HeaderReader extracts the embedded metadata from a binary file.
type HeaderReader interface {
	Read(path string) (header.Info, error)
}

// Responder delivers a response payload to a named channel, best-effort.
type Responder interface {
	Send(channel string, payload []byte) bool
}

// Config holds the manager's storage settings.
type Config struct {
	// StorageDir is the flat directory holding versioned user binaries.
	StorageDir string
	// DevnameFmt formats kernel partition device paths.
	DevnameFmt string
}

// Manager is the binary slot and version lifecycle manager.
type Manager struct {
	cfg       Config
	registry  registry.Registry
	responder Responder
	headers   HeaderReader
	logger    *logging.Logger
	metrics   *monitoring.Metrics

	// slotLocks serializes CreateEntry per binary name, held across
	// garbage collection and file creation.
	slotLocks sync.Map
}

type headerReaderFunc func(path string) (header.Info, error)

func (f headerReaderFunc) Read(path string) (header.Info, error) { return f(path) }

// New creates a manager over the given registry and response channel.
func New(cfg Config, reg registry.Registry, responder Responder) *Manager {
	if cfg.StorageDir == "" {
		cfg.StorageDir = paths.DefaultStorageDir
	}
	if cfg.DevnameFmt == "" {
		cfg.DevnameFmt = "/dev/mtdblock%d"
	}

	m := &Manager{
		cfg:       cfg,
		registry:  reg,
		responder: responder,
		headers:   headerReaderFunc(header.Read),
		logger:    logging.NewNop(),
	}
	m.metrics, _ = monitoring.NewMetrics()
	return m
}

// WithLogger sets the manager's logger.
func (m *Manager) WithLogger(logger *logging.Logger) *Manager {
	if logger != nil {
		m.logger = logger
	}
	return m
}

// WithMetrics sets the metrics collector.
func (m *Manager) WithMetrics(metrics *monitoring.Metrics) *Manager {
	if metrics != nil {
		m.metrics = metrics
	}
	return m
}

// WithHeaderReader replaces the header reader, for tests.
func (m *Manager) WithHeaderReader(r HeaderReader) *Manager {
	if r != nil {
		m.headers = r
	}
	return m
}

// StorageDir returns the configured binary storage directory.
func (m *Manager) StorageDir() string {
	return m.cfg.StorageDir
}

// lockSlot acquires the per-name mutex and returns its unlock func.
func (m *Manager) lockSlot(name string) func() {
	v, _ := m.slotLocks.LoadOrStore(name, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// respond sends the terminal response for a request to the requester's
// channel. Fire-and-forget: delivery is counted but never retried.
func (m *Manager) respond(requesterID int, resp types.CreateEntryResponse) {
	payload, err := sonic.Marshal(resp)
	if err != nil {
		m.logger.Error("failed to encode response",
			zap.Int("requester_id", requesterID),
			zap.Error(err),
		)
		return
	}

	if m.responder.Send(paths.ResponseChannel(requesterID), payload) {
		m.metrics.ResponsesSent.Inc()
	} else {
		m.metrics.ResponsesDropped.Inc()
	}
}
