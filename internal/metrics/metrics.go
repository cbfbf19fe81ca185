package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mutex     sync.RWMutex
	entries   map[string]int64
	exits     map[string]int64
	faults    map[string]int64
	repoCalls map[string]int64
	startTime time.Time
}

type Snapshot struct {
	TotalCalls      int64                    `json:"total_calls"`
	TotalFaults     int64                    `json:"total_faults"`
	TotalRepository int64                    `json:"total_repository_calls"`
	Uptime          time.Duration            `json:"uptime"`
	Targets         map[string]TargetMetrics `json:"targets"`
}

// TargetMetrics aggregates interception counters for one "Type.Method" target.
type TargetMetrics struct {
	Entries         int64 `json:"entries"`
	Exits           int64 `json:"exits"`
	Faults          int64 `json:"faults"`
	RepositoryCalls int64 `json:"repository_calls"`
}

func (m *Metrics) RecordEntry(target string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.entries[target]++
}

func (m *Metrics) RecordExit(target string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.exits[target]++
}

func (m *Metrics) RecordFault(target string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.faults[target]++
}

func (m *Metrics) RecordRepositoryCall(target string) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	m.repoCalls[target]++
}

func (m *Metrics) Snapshot() Snapshot {
	m.mutex.RLock()
	defer m.mutex.RUnlock()

	snap := Snapshot{
		Uptime:  time.Since(m.startTime),
		Targets: make(map[string]TargetMetrics),
	}

	// Collect all unique targets
	allTargets := make(map[string]bool)
	for target := range m.entries {
		allTargets[target] = true
	}
	for target := range m.exits {
		allTargets[target] = true
	}
	for target := range m.faults {
		allTargets[target] = true
	}
	for target := range m.repoCalls {
		allTargets[target] = true
	}

	for target := range allTargets {
		snap.TotalCalls += m.entries[target]
		snap.TotalFaults += m.faults[target]
		snap.TotalRepository += m.repoCalls[target]

		snap.Targets[target] = TargetMetrics{
			Entries:         m.entries[target],
			Exits:           m.exits[target],
			Faults:          m.faults[target],
			RepositoryCalls: m.repoCalls[target],
		}
	}

	return snap
}

func NewMetrics() *Metrics {
	return &Metrics{
		entries:   make(map[string]int64),
		exits:     make(map[string]int64),
		faults:    make(map[string]int64),
		repoCalls: make(map[string]int64),
		startTime: time.Now(),
	}
}
