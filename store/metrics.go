package store

import "sync/atomic"

type MetricsSnapshot struct {
	Dispatched    int64
	Committed     int64
	Skipped       int64
	Notifications int64
	Faults        int64
	Subscribers   int64
	Pending       int64
}

type Metrics struct {
	dispatched    atomic.Int64
	committed     atomic.Int64
	skipped       atomic.Int64
	notifications atomic.Int64
	faults        atomic.Int64
	subscribers   atomic.Int64
}

func NewMetrics() *Metrics {
	return &Metrics{}
}

func (m *Metrics) RecordDispatch() {
	m.dispatched.Add(1)
}

func (m *Metrics) RecordCommit() {
	m.committed.Add(1)
}

func (m *Metrics) RecordSkip() {
	m.skipped.Add(1)
}

func (m *Metrics) RecordNotification() {
	m.notifications.Add(1)
}

func (m *Metrics) RecordFault() {
	m.faults.Add(1)
}

func (m *Metrics) SetSubscribers(n int) {
	m.subscribers.Store(int64(n))
}

func (m *Metrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Dispatched:    m.dispatched.Load(),
		Committed:     m.committed.Load(),
		Skipped:       m.skipped.Load(),
		Notifications: m.notifications.Load(),
		Faults:        m.faults.Load(),
		Subscribers:   m.subscribers.Load(),
	}
}
