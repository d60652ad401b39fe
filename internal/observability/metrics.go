package observability

import "sync"

// Metrics provides basic in-memory counters for client operations, keyed by
// operation and outcome. All methods are safe on a nil receiver so metrics
// stay optional.
type Metrics struct {
	mu             sync.Mutex
	operationCount map[string]int64
	errorCount     map[string]int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		operationCount: make(map[string]int64),
		errorCount:     make(map[string]int64),
	}
}

// RecordOperation increments the counter for an operation outcome.
func (m *Metrics) RecordOperation(op, outcome string) {
	if m == nil {
		return
	}
	key := counterKey(op, outcome)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.operationCount[key]++
}

// RecordError increments the counter for an operation error kind.
func (m *Metrics) RecordError(op, kind string) {
	if m == nil {
		return
	}
	key := counterKey(op, kind)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// OperationCount returns the current count for an operation outcome.
func (m *Metrics) OperationCount(op, outcome string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.operationCount[counterKey(op, outcome)]
}

// ErrorCount returns the current count for an operation error kind.
func (m *Metrics) ErrorCount(op, kind string) int64 {
	if m == nil {
		return 0
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.errorCount[counterKey(op, kind)]
}

// Snapshot returns a copy of every counter. Error counters are prefixed
// with "error|" to keep the two families apart in one map.
func (m *Metrics) Snapshot() map[string]int64 {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make(map[string]int64, len(m.operationCount)+len(m.errorCount))
	for key, count := range m.operationCount {
		out[key] = count
	}
	for key, count := range m.errorCount {
		out["error|"+key] = count
	}
	return out
}

func counterKey(op, qualifier string) string {
	return op + "|" + qualifier
}
