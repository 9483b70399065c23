package metrics

import (
	"log/slog"
	"sync/atomic"
)

// Collector считает исходящие вызовы API.
type Collector struct {
	requests   uint64
	failures   uint64
	noResponse uint64
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) IncRequests() {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.requests, 1)
}

// IncFailures считает вызовы, завершившиеся ответом не 2xx.
func (c *Collector) IncFailures() {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.failures, 1)
}

// IncNoResponse считает вызовы, оставшиеся без ответа.
func (c *Collector) IncNoResponse() {
	if c == nil {
		return
	}
	atomic.AddUint64(&c.noResponse, 1)
}

type Snapshot struct {
	Requests   uint64
	Failures   uint64
	NoResponse uint64
}

func (c *Collector) Snapshot() Snapshot {
	if c == nil {
		return Snapshot{}
	}
	return Snapshot{
		Requests:   atomic.LoadUint64(&c.requests),
		Failures:   atomic.LoadUint64(&c.failures),
		NoResponse: atomic.LoadUint64(&c.noResponse),
	}
}

// LogValue позволяет передавать снимок прямо как атрибут slog.
func (s Snapshot) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Uint64("requests", s.Requests),
		slog.Uint64("failures", s.Failures),
		slog.Uint64("no_response", s.NoResponse),
	)
}
