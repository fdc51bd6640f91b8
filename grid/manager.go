package grid

import (
	"context"
	"strings"
	"sync"
	"time"

	gomidi "gitlab.com/gomidi/midi/v2"
	"gitlab.com/gomidi/midi/v2/drivers"
	_ "gitlab.com/gomidi/midi/v2/drivers/rtmididrv" // register MIDI driver
)

// DeviceEvent is emitted when a pad surface connects or disconnects
type DeviceEvent struct {
	Type       DeviceEventType
	Controller Controller
	ID         string
}

type DeviceEventType int

const (
	DeviceConnected DeviceEventType = iota
	DeviceDisconnected
)

// Manager handles hot-plug detection of pad surfaces
type Manager struct {
	portName    string // exact port to bind, or "" for any grid-looking port
	controllers map[string]Controller
	mu          sync.RWMutex
	events      chan DeviceEvent
	pollRate    time.Duration
}

// NewManager creates a manager bound to the configured port name. An empty
// name matches any port that looks like a pad surface.
func NewManager(portName string) *Manager {
	return &Manager{
		portName:    portName,
		controllers: make(map[string]Controller),
		events:      make(chan DeviceEvent, 16),
		pollRate:    time.Second,
	}
}

// Events returns a channel of connect/disconnect events
func (m *Manager) Events() <-chan DeviceEvent {
	return m.events
}

// First returns any connected surface (or nil)
func (m *Manager) First() Controller {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.controllers {
		return c
	}
	return nil
}

// Run starts the polling loop (blocking - run in goroutine)
func (m *Manager) Run(ctx context.Context) {
	ticker := time.NewTicker(m.pollRate)
	defer ticker.Stop()

	m.scan()

	for {
		select {
		case <-ctx.Done():
			m.closeAll()
			close(m.events)
			return
		case <-ticker.C:
			m.scan()
		}
	}
}

func (m *Manager) scan() {
	// fetch ports with a timeout; some backends can hang mid-replug
	type portsResult struct {
		inPorts  []drivers.In
		outPorts []drivers.Out
	}

	ch := make(chan portsResult, 1)
	go func() {
		ch <- portsResult{inPorts: gomidi.GetInPorts(), outPorts: gomidi.GetOutPorts()}
	}()

	var inPorts []drivers.In
	var outPorts []drivers.Out
	select {
	case result := <-ch:
		inPorts = result.inPorts
		outPorts = result.outPorts
	case <-time.After(3 * time.Second):
		return
	}

	seenIDs := make(map[string]bool)

	for i, inPort := range inPorts {
		if !m.matches(inPort.String()) {
			continue
		}
		id := inPort.String()
		seenIDs[id] = true

		m.mu.RLock()
		_, exists := m.controllers[id]
		m.mu.RUnlock()
		if exists {
			continue
		}

		var outPort drivers.Out
		for j, op := range outPorts {
			if strings.EqualFold(op.String(), id) {
				outPort = outPorts[j]
				break
			}
		}

		g, err := NewMIDIGrid(id, inPorts[i], outPort)
		if err != nil {
			continue
		}

		m.mu.Lock()
		m.controllers[id] = g
		m.mu.Unlock()

		m.events <- DeviceEvent{Type: DeviceConnected, Controller: g, ID: id}
	}

	// disconnects
	m.mu.Lock()
	var gone []string
	for id := range m.controllers {
		if !seenIDs[id] {
			gone = append(gone, id)
		}
	}
	for _, id := range gone {
		m.controllers[id].Close()
		delete(m.controllers, id)
		m.events <- DeviceEvent{Type: DeviceDisconnected, ID: id}
	}
	m.mu.Unlock()
}

func (m *Manager) matches(name string) bool {
	if m.portName != "" {
		return name == m.portName
	}
	lower := strings.ToLower(name)
	return strings.Contains(lower, "monome") ||
		strings.Contains(lower, "grid") ||
		strings.Contains(lower, "launchpad")
}

func (m *Manager) closeAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range m.controllers {
		c.Close()
	}
	m.controllers = make(map[string]Controller)
}
