package mq

import (
	"sync"

	"go.uber.org/zap"

	"github.com/updateos/binmgr/internal/infrastructure/logging"
)

// DefaultCapacity is the per-queue message capacity.
const DefaultCapacity = 16

// Broker routes messages to named queues.
type Broker struct {
	mu       sync.RWMutex
	queues   map[string]chan []byte
	capacity int
	logger   *logging.Logger
}

// NewBroker creates a broker. capacity <= 0 selects DefaultCapacity.
func NewBroker(capacity int, logger *logging.Logger) *Broker {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Broker{
		queues:   make(map[string]chan []byte),
		capacity: capacity,
		logger:   logger,
	}
}

// Send delivers payload to the named queue, creating it if needed.
// It never blocks; a full queue drops the message. The returned bool
// reports delivery and exists for metrics, not for callers to retry on.
func (b *Broker) Send(channel string, payload []byte) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	q, exists := b.queues[channel]
	if !exists {
		q = make(chan []byte, b.capacity)
		b.queues[channel] = q
	}

	select {
	case q <- payload:
		return true
	default:
		b.logger.Warn("response queue full, dropping message",
			zap.String("channel", channel),
			zap.Int("capacity", b.capacity),
		)
		return false
	}
}

// Receive pops one message from the named queue without blocking.
// ok is false when the queue is empty or was never written to.
// A queue that is empty after the receive is torn down; it exists only
// for the duration of an exchange, and the next Send recreates it.
func (b *Broker) Receive(channel string) ([]byte, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	q, exists := b.queues[channel]
	if !exists {
		return nil, false
	}

	var msg []byte
	var ok bool
	select {
	case msg = <-q:
		ok = true
	default:
	}

	if len(q) == 0 {
		delete(b.queues, channel)
	}
	return msg, ok
}

// Channels returns the number of queues currently holding messages.
func (b *Broker) Channels() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.queues)
}
