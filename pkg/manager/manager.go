package manager

import (
	"context"
	"errors"
	"sync"
	"time"

	"devinfo/pkg/device"
	"devinfo/pkg/log"
)

const (
	// DefaultInterval is how often the device is re-read.
	DefaultInterval = time.Second
	// DefaultReadTimeout bounds a single provider call.
	DefaultReadTimeout = 5 * time.Second
	subscriberBuffer    = 1
)

// ErrNoSnapshot is returned before the first successful refresh.
var ErrNoSnapshot = errors.New("no device snapshot available")

// Manager keeps the latest device snapshot and pushes new ones to subscribers.
type Manager struct {
	provider device.Provider

	mu       sync.RWMutex
	current  *device.Device
	lastErr  error
	interval time.Duration
	subs     map[int]chan device.Device
	nextSub  int

	resetCh chan time.Duration
	stopCh  chan struct{}
	wg      sync.WaitGroup
	started bool
	stopped bool
}

// New creates a Manager around provider. A non-positive interval uses DefaultInterval.
func New(provider device.Provider, interval time.Duration) *Manager {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Manager{
		provider: provider,
		interval: interval,
		subs:     make(map[int]chan device.Device),
		resetCh:  make(chan time.Duration, 1),
		stopCh:   make(chan struct{}),
	}
}

// Start refreshes once synchronously and then keeps refreshing in the background.
// A stopped Manager cannot be started again.
func (m *Manager) Start() {
	m.mu.Lock()
	if m.started || m.stopped {
		m.mu.Unlock()
		return
	}
	m.started = true
	m.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), DefaultReadTimeout)
	if err := m.Refresh(ctx); err != nil {
		log.Warn().Err(err).Msg("Initial device refresh failed")
	}
	cancel()

	m.wg.Add(1)
	go m.refreshLoop()

	log.Info().Dur("interval", m.Interval()).Msg("Device manager started")
}

// Stop ends the refresh loop and closes every subscription.
func (m *Manager) Stop() {
	m.mu.Lock()
	if !m.started {
		m.mu.Unlock()
		return
	}
	m.started = false
	m.stopped = true
	m.mu.Unlock()

	close(m.stopCh)
	m.wg.Wait()

	m.mu.Lock()
	for id, ch := range m.subs {
		close(ch)
		delete(m.subs, id)
	}
	m.mu.Unlock()

	log.Info().Msg("Device manager stopped")
}

// SetInterval changes the refresh period of a running manager.
func (m *Manager) SetInterval(interval time.Duration) {
	if interval <= 0 {
		interval = DefaultInterval
	}

	m.mu.Lock()
	m.interval = interval
	m.mu.Unlock()

	select {
	case m.resetCh <- interval:
	default:
		// A pending reset is picked up by the loop and reads the latest interval.
	}
}

// Interval returns the current refresh period.
func (m *Manager) Interval() time.Duration {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.interval
}

// Refresh reads the provider now and publishes the result.
func (m *Manager) Refresh(ctx context.Context) error {
	dev, err := m.provider.Snapshot(ctx)
	if err != nil {
		m.mu.Lock()
		m.lastErr = err
		m.mu.Unlock()
		log.Error().Err(err).Msg("Failed to refresh device snapshot")
		return err
	}

	m.mu.Lock()
	m.current = dev
	m.lastErr = nil
	m.publishLocked(*dev)
	m.mu.Unlock()

	log.Debug().Str("device", dev.Description()).Msg("Device snapshot refreshed")
	return nil
}

// Current returns the latest snapshot, or the last refresh error if none exists.
func (m *Manager) Current() (*device.Device, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		if m.lastErr != nil {
			return nil, m.lastErr
		}
		return nil, ErrNoSnapshot
	}

	dev := *m.current
	return &dev, nil
}

// Snapshot satisfies device.Provider with the cached snapshot, refreshing
// first if nothing has been read yet.
func (m *Manager) Snapshot(ctx context.Context) (*device.Device, error) {
	if dev, err := m.Current(); err == nil {
		return dev, nil
	}
	if err := m.Refresh(ctx); err != nil {
		return nil, err
	}
	return m.Current()
}

// Subscribe returns a channel receiving every new snapshot and a cancel
// function. A subscriber that has not drained its previous snapshot misses
// the next one rather than blocking the refresh loop. After Stop the channel
// is returned already closed.
func (m *Manager) Subscribe() (<-chan device.Device, func()) {
	ch := make(chan device.Device, subscriberBuffer)

	m.mu.Lock()
	if m.stopped {
		m.mu.Unlock()
		close(ch)
		return ch, func() {}
	}
	id := m.nextSub
	m.nextSub++
	m.subs[id] = ch
	if m.current != nil {
		ch <- *m.current
	}
	m.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			m.mu.Lock()
			defer m.mu.Unlock()
			if sub, ok := m.subs[id]; ok {
				close(sub)
				delete(m.subs, id)
			}
		})
	}

	return ch, cancel
}

func (m *Manager) publishLocked(dev device.Device) {
	for id, ch := range m.subs {
		select {
		case ch <- dev:
		default:
			log.Debug().Int("subscriber", id).Msg("Subscriber busy, snapshot dropped")
		}
	}
}

func (m *Manager) refreshLoop() {
	defer m.wg.Done()

	ticker := time.NewTicker(m.Interval())
	defer ticker.Stop()

	for {
		select {
		case <-m.stopCh:
			return
		case <-m.resetCh:
			ticker.Reset(m.Interval())
			log.Debug().Dur("interval", m.Interval()).Msg("Refresh interval changed")
		case <-ticker.C:
			ctx, cancel := context.WithTimeout(context.Background(), DefaultReadTimeout)
			_ = m.Refresh(ctx)
			cancel()
		}
	}
}
