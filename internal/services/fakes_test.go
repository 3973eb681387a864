package services

import (
	"context"
	"errors"
	"sync"

	"cashflow/internal/core"
)

type publishedEvent struct {
	kind, id, action string
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (f *fakePublisher) PublishItemChanged(_ context.Context, kind, id, action string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, publishedEvent{kind, id, action})
	return f.err
}

type fakeReportCache struct {
	mu          sync.Mutex
	items       map[string]core.ForecastReport
	invalidated int
}

func newFakeReportCache() *fakeReportCache {
	return &fakeReportCache{items: map[string]core.ForecastReport{}}
}

func (c *fakeReportCache) Get(_ context.Context, key string) (core.ForecastReport, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.items[key]
	return r, ok
}

func (c *fakeReportCache) Set(_ context.Context, key string, r core.ForecastReport) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items[key] = r
}

func (c *fakeReportCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = map[string]core.ForecastReport{}
	c.invalidated++
}

type countingSnapshots struct {
	mu    sync.Mutex
	snap  core.Snapshot
	calls int
	err   error
}

func (c *countingSnapshots) Snapshot(context.Context) (core.Snapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.calls++
	return c.snap, c.err
}

type staticSettings struct {
	settings core.Settings
	err      error
}

func (s *staticSettings) GetSettings(context.Context) (core.Settings, error) {
	return s.settings, s.err
}

func (s *staticSettings) UpdateSettings(_ context.Context, v core.Settings) error {
	if s.err != nil {
		return s.err
	}
	s.settings = v
	return nil
}

type fakeNotifier struct {
	alerts []core.LowBalanceAlert
	err    error
}

func (n *fakeNotifier) NotifyLowBalance(_ context.Context, a core.LowBalanceAlert) error {
	n.alerts = append(n.alerts, a)
	return n.err
}

type fakeExporter struct {
	mu       sync.Mutex
	reports  []core.ForecastReport
	failures int
	// when set, exports signal entered and wait for gate to close
	gate    chan struct{}
	entered chan struct{}
}

func (e *fakeExporter) ExportForecast(_ context.Context, r core.ForecastReport) (string, error) {
	if e.gate != nil {
		select {
		case e.entered <- struct{}{}:
		default:
		}
		<-e.gate
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.failures > 0 {
		e.failures--
		return "", errors.New("sheets unavailable")
	}
	e.reports = append(e.reports, r)
	return "sheet!A1", nil
}

func (e *fakeExporter) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.reports)
}

type fakeMetrics struct {
	mu       sync.Mutex
	outcomes []string
	hits     int
	misses   int
	writes   []string
	alerts   int
}

func (m *fakeMetrics) RecordForecast(outcome string, _ int, _ float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes = append(m.outcomes, outcome)
}

func (m *fakeMetrics) RecordCacheLookup(hit bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hit {
		m.hits++
	} else {
		m.misses++
	}
}

func (m *fakeMetrics) RecordItemWrite(kind, action string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.writes = append(m.writes, kind+":"+action)
}

func (m *fakeMetrics) RecordAlertCheck(_ float64, sent bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if sent {
		m.alerts++
	}
}

func intPtr(v int) *int { return &v }
