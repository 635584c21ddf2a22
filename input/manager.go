package input

import (
	"sync"
	"time"

	"github.com/edaniels/golog"

	"github.com/db47h/rodent/mouse"
)

// A Manager queues mouse events posted by the platform layer and delivers them
// to its listeners when Flush is called, typically once per frame from the
// main loop.
//
// Hooks run on the goroutine calling Flush or Dispatch. Post may be called from
// any goroutine.
type Manager struct {
	Registry

	cfg    Config
	logger golog.Logger

	qm    sync.Mutex
	queue []mouse.Event
	spare []mouse.Event

	sm         sync.Mutex
	timer      Timer
	dispatched uint64
	dropped    uint64
	failures   uint64
}

// NewManager returns a new Manager configured with DefaultConfig and the given
// options. If logger is nil, the global golog logger is used.
func NewManager(logger golog.Logger, options ...Option) (*Manager, error) {
	cfg := DefaultConfig()
	for _, o := range options {
		o.set(&cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = golog.Global()
	}
	return &Manager{
		cfg:    cfg,
		logger: logger,
		queue:  make([]mouse.Event, 0, cfg.QueueSize),
	}, nil
}

// Config returns the configuration of m.
func (m *Manager) Config() Config {
	return m.cfg
}

// Post enqueues e for delivery by the next call to Flush. If the queue is
// full, the oldest event is dropped.
func (m *Manager) Post(e mouse.Event) {
	var drop mouse.Event
	m.qm.Lock()
	full := len(m.queue) >= m.cfg.QueueSize
	if full {
		drop = m.queue[0]
		copy(m.queue, m.queue[1:])
		m.queue = m.queue[:len(m.queue)-1]
	}
	m.queue = append(m.queue, e)
	m.qm.Unlock()

	if full {
		m.sm.Lock()
		m.dropped++
		m.sm.Unlock()
		m.logger.Warnw("mouse event queue full, dropping oldest event", "kind", drop.Kind, "size", m.cfg.QueueSize)
	}
}

// Pending returns the number of queued events.
func (m *Manager) Pending() int {
	m.qm.Lock()
	defer m.qm.Unlock()
	return len(m.queue)
}

// Flush delivers all queued events in the order they were posted and returns
// the number of events delivered.
//
// Events posted by hooks during Flush are delivered by the next Flush.
func (m *Manager) Flush() int {
	m.qm.Lock()
	events := m.queue
	m.queue, m.spare = m.spare[:0], nil
	m.qm.Unlock()

	if m.cfg.CoalesceMoves {
		events = coalesceMoves(events)
	}
	for _, e := range events {
		m.Dispatch(e)
	}

	m.qm.Lock()
	if m.spare == nil {
		m.spare = events[:0]
	}
	m.qm.Unlock()
	return len(events)
}

// coalesceMoves drops every Move immediately followed by another Move. It
// filters events in place.
func coalesceMoves(events []mouse.Event) []mouse.Event {
	out := events[:0]
	for i, e := range events {
		if e.Kind == mouse.Move && i+1 < len(events) && events[i+1].Kind == mouse.Move {
			continue
		}
		out = append(out, e)
	}
	return out
}

// Dispatch delivers e to all listeners immediately, bypassing the queue.
// Listener failures are logged and counted; they never interrupt delivery.
func (m *Manager) Dispatch(e mouse.Event) {
	start := time.Now()
	err := m.Deliver(e)
	dt := time.Since(start)

	errs := HookErrors(err)
	m.sm.Lock()
	m.timer.Add(dt)
	m.dispatched++
	m.failures += uint64(len(errs))
	m.sm.Unlock()

	for _, err := range errs {
		m.logger.Errorw("mouse listener failed", "kind", e.Kind, "error", err)
	}
	if m.cfg.SlowDispatch > 0 && dt > m.cfg.SlowDispatch {
		m.logger.Warnw("slow mouse event dispatch", "kind", e.Kind, "duration", dt, "listeners", m.Len())
	}
}

// Stats reports dispatch statistics.
type Stats struct {
	Average    time.Duration // average dispatch time over the last 32 events
	PerSecond  float64       // dispatches per second at the average dispatch time
	Dispatched uint64
	Dropped    uint64
	Failures   uint64
}

func (m *Manager) Stats() Stats {
	m.sm.Lock()
	defer m.sm.Unlock()
	return Stats{
		Average:    m.timer.Average(),
		PerSecond:  m.timer.AveragePerSecond(),
		Dispatched: m.dispatched,
		Dropped:    m.dropped,
		Failures:   m.failures,
	}
}

// Failures returns the number of hook failures since m was created.
func (m *Manager) Failures() uint64 {
	return m.Stats().Failures
}
